package strategy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Bange254/Bttshoes/pkg/logger"

	"go.uber.org/zap"
)

// SimulatedGateway fabricates plausible gateway responses so the rest
// of the application stays exercisable without live credentials. It is
// selected at start-up when no consumer key is configured and announces
// itself loudly in the logs.
//
// Responses are deterministic and keyed off the input so tests can
// drive every branch:
//   - initiation: phone ending in 1 -> invalid format, ending in 2 ->
//     insufficient funds, anything else succeeds
//   - status: checkout id ending in 1 -> failed, 2 -> cancelled,
//     0 -> pending, anything else -> success
type SimulatedGateway struct{}

func NewSimulatedGateway() *SimulatedGateway {
	logger.Log.Warn("mpesa: no credentials configured, using SIMULATED gateway - payments are not real")
	return &SimulatedGateway{}
}

func (g *SimulatedGateway) InitiateSTKPush(ctx context.Context, req STKPushRequest) STKPushResponse {
	logger.Log.Info("mpesa(sim): initiating stk push",
		zap.String("phone", req.PhoneNumber),
		zap.Int64("amount", req.Amount),
		zap.String("reference", req.AccountReference),
	)

	switch lastChar(req.PhoneNumber) {
	case "1":
		return STKPushResponse{Success: false, ErrorMessage: "Invalid phone number format"}
	case "2":
		return STKPushResponse{Success: false, ErrorMessage: "Insufficient funds"}
	}

	return STKPushResponse{
		Success:             true,
		CheckoutRequestID:   fmt.Sprintf("SIM-%d", time.Now().UnixMilli()),
		ResponseCode:        "0",
		ResponseDescription: "Success. Request accepted for processing",
		CustomerMessage:     "Success. Request accepted for processing",
	}
}

func (g *SimulatedGateway) CheckStatus(ctx context.Context, checkoutRequestID string) PaymentStatus {
	logger.Log.Info("mpesa(sim): checking payment status", zap.String("checkout_request_id", checkoutRequestID))

	switch lastChar(checkoutRequestID) {
	case "1":
		return PaymentStatus{Success: false, Status: StatusFailed, ErrorMessage: "Payment failed"}
	case "2":
		return PaymentStatus{Success: false, Status: StatusCancelled, ErrorMessage: "Payment cancelled by user"}
	case "0":
		return PaymentStatus{Success: false, Status: StatusPending}
	}

	now := time.Now().UnixMilli()
	return PaymentStatus{
		Success:            true,
		Status:             StatusSuccess,
		TransactionID:      fmt.Sprintf("SIM-TXN-%d", now),
		MpesaReceiptNumber: fmt.Sprintf("MP%d", now%100000000),
		Amount:             1000,
		PhoneNumber:        "254700123456",
	}
}

func lastChar(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[len(s)-1:])
}

var _ Gateway = (*SimulatedGateway)(nil)
