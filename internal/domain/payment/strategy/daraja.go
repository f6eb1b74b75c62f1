package strategy

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/Bange254/Bttshoes/internal/pkg/config"
	"github.com/Bange254/Bttshoes/pkg/logger"

	"go.uber.org/zap"
)

const (
	sandboxBaseURL    = "https://sandbox.safaricom.co.ke"
	productionBaseURL = "https://api.safaricom.co.ke"

	// refresh the token slightly before the provider expires it
	tokenExpirySlack = 30 * time.Second
)

// DarajaGateway is the live Safaricom Daraja client. Business failures
// (wrong shortcode, insufficient funds, user cancellation) come back as
// result values; only the transport layer produces generic failures,
// and those are logged with their root cause but never surfaced raw.
type DarajaGateway struct {
	cfg     config.MpesaConfig
	baseURL string
	client  *http.Client

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// NewDarajaGateway builds the live gateway from injected config.
func NewDarajaGateway(cfg config.MpesaConfig) *DarajaGateway {
	baseURL := sandboxBaseURL
	if cfg.Environment == "production" {
		baseURL = productionBaseURL
	}
	return &DarajaGateway{
		cfg:     cfg,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"` // seconds, sent as a string
}

// accessToken returns a cached bearer token, re-authenticating only
// when the cached one is within the expiry slack.
func (g *DarajaGateway) accessToken(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.token != "" && time.Now().Before(g.tokenExpiry.Add(-tokenExpirySlack)) {
		return g.token, nil
	}

	url := g.baseURL + "/oauth/v1/generate?grant_type=client_credentials"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	auth := base64.StdEncoding.EncodeToString([]byte(g.cfg.ConsumerKey + ":" + g.cfg.ConsumerSecret))
	req.Header.Set("Authorization", "Basic "+auth)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request: unexpected status %d", resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("token response: empty access_token")
	}

	ttl, err := strconv.Atoi(tr.ExpiresIn)
	if err != nil || ttl <= 0 {
		ttl = 3600
	}

	g.token = tr.AccessToken
	g.tokenExpiry = time.Now().Add(time.Duration(ttl) * time.Second)
	return g.token, nil
}

// timestamp renders the compact YYYYMMDDHHmmss form the API requires.
func timestamp(now time.Time) string {
	return now.Format("20060102150405")
}

// password derives the push password: base64(shortcode+passkey+timestamp).
func (g *DarajaGateway) password(ts string) string {
	return base64.StdEncoding.EncodeToString([]byte(g.cfg.Shortcode + g.cfg.Passkey + ts))
}

type stkPushPayload struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int64  `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

type stkPushResult struct {
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	CustomerMessage     string `json:"CustomerMessage"`
	ErrorMessage        string `json:"errorMessage"`
}

// InitiateSTKPush submits the push request to the gateway.
func (g *DarajaGateway) InitiateSTKPush(ctx context.Context, req STKPushRequest) STKPushResponse {
	token, err := g.accessToken(ctx)
	if err != nil {
		logger.Log.Error("mpesa: token acquisition failed", zap.Error(err))
		return STKPushResponse{Success: false, ErrorMessage: "Failed to initiate payment"}
	}

	ts := timestamp(time.Now())
	payload := stkPushPayload{
		BusinessShortCode: g.cfg.Shortcode,
		Password:          g.password(ts),
		Timestamp:         ts,
		TransactionType:   "CustomerPayBillOnline",
		Amount:            req.Amount,
		PartyA:            req.PhoneNumber,
		PartyB:            g.cfg.Shortcode,
		PhoneNumber:       req.PhoneNumber,
		CallBackURL:       req.CallbackURL,
		AccountReference:  req.AccountReference,
		TransactionDesc:   req.TransactionDesc,
	}

	var result stkPushResult
	if err := g.post(ctx, token, "/mpesa/stkpush/v1/processrequest", payload, &result); err != nil {
		logger.Log.Error("mpesa: stk push failed", zap.Error(err))
		return STKPushResponse{Success: false, ErrorMessage: "Failed to initiate payment"}
	}

	if result.ResponseCode == "0" {
		return STKPushResponse{
			Success:             true,
			CheckoutRequestID:   result.CheckoutRequestID,
			ResponseCode:        result.ResponseCode,
			ResponseDescription: result.ResponseDescription,
			CustomerMessage:     result.CustomerMessage,
		}
	}

	msg := result.ResponseDescription
	if msg == "" {
		msg = result.ErrorMessage
	}
	if msg == "" {
		msg = "STK push failed"
	}
	return STKPushResponse{Success: false, ErrorMessage: msg}
}

type stkQueryPayload struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	CheckoutRequestID string `json:"CheckoutRequestID"`
}

type stkQueryResult struct {
	ResponseCode        string  `json:"ResponseCode"`
	ResponseDescription string  `json:"ResponseDescription"`
	ResultCode          string  `json:"ResultCode"`
	ResultDesc          string  `json:"ResultDesc"`
	MpesaReceiptNumber  string  `json:"MpesaReceiptNumber"`
	Amount              float64 `json:"Amount"`
	PhoneNumber         string  `json:"PhoneNumber"`
}

// CheckStatus polls the outcome of a previously initiated push.
// Result codes: 0 success, 1032 cancelled by user, 1037 still pending,
// anything else a failure with the gateway's description.
func (g *DarajaGateway) CheckStatus(ctx context.Context, checkoutRequestID string) PaymentStatus {
	token, err := g.accessToken(ctx)
	if err != nil {
		logger.Log.Error("mpesa: token acquisition failed", zap.Error(err))
		return PaymentStatus{Success: false, Status: StatusFailed, ErrorMessage: "Failed to check payment status"}
	}

	ts := timestamp(time.Now())
	payload := stkQueryPayload{
		BusinessShortCode: g.cfg.Shortcode,
		Password:          g.password(ts),
		Timestamp:         ts,
		CheckoutRequestID: checkoutRequestID,
	}

	var result stkQueryResult
	if err := g.post(ctx, token, "/mpesa/stkpushquery/v1/query", payload, &result); err != nil {
		logger.Log.Error("mpesa: status query failed", zap.Error(err))
		return PaymentStatus{Success: false, Status: StatusFailed, ErrorMessage: "Failed to check payment status"}
	}

	code := result.ResultCode
	if code == "" {
		code = result.ResponseCode
	}

	switch code {
	case "0":
		return PaymentStatus{
			Success:            true,
			Status:             StatusSuccess,
			TransactionID:      result.MpesaReceiptNumber,
			MpesaReceiptNumber: result.MpesaReceiptNumber,
			Amount:             result.Amount,
			PhoneNumber:        result.PhoneNumber,
		}
	case "1032":
		return PaymentStatus{Success: false, Status: StatusCancelled, ErrorMessage: "Payment cancelled by user"}
	case "1037":
		return PaymentStatus{Success: false, Status: StatusPending}
	default:
		msg := result.ResultDesc
		if msg == "" {
			msg = result.ResponseDescription
		}
		if msg == "" {
			msg = "Payment failed"
		}
		return PaymentStatus{Success: false, Status: StatusFailed, ErrorMessage: msg}
	}
}

func (g *DarajaGateway) post(ctx context.Context, token, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

var _ Gateway = (*DarajaGateway)(nil)
