package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Bange254/Bttshoes/pkg/logger"

	"go.uber.org/zap"
)

// SimulatedMailer logs instead of sending. Selected at start-up when
// no API key is configured. Recipients containing "invalid" fail, so
// the outbox's failure handling stays exercisable.
type SimulatedMailer struct{}

func NewSimulatedMailer() *SimulatedMailer {
	logger.Log.Warn("email: no API key configured, using SIMULATED mailer - messages are logged, not sent")
	return &SimulatedMailer{}
}

func (m *SimulatedMailer) Send(ctx context.Context, msg Message) (string, error) {
	if strings.Contains(msg.To, "invalid") {
		return "", errors.New("invalid email address")
	}

	logger.Log.Info("email(sim): sending",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return fmt.Sprintf("sim-message-%d", time.Now().UnixMilli()), nil
}

var _ Mailer = (*SimulatedMailer)(nil)
