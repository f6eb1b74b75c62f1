package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Bange254/Bttshoes/internal/domain/payment/service"
	"github.com/Bange254/Bttshoes/internal/domain/payment/strategy"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPaymentService lets each test script the service outcome.
type stubPaymentService struct {
	initiateResp strategy.STKPushResponse
	initiateErr  error
	callbackErr  error
	status       strategy.PaymentStatus

	callbacks []strategy.CallbackEnvelope
}

func (s *stubPaymentService) InitiatePayment(ctx context.Context, orderNumber, phoneNumber string) (strategy.STKPushResponse, error) {
	return s.initiateResp, s.initiateErr
}

func (s *stubPaymentService) HandleCallback(ctx context.Context, envelope strategy.CallbackEnvelope) error {
	s.callbacks = append(s.callbacks, envelope)
	return s.callbackErr
}

func (s *stubPaymentService) CheckStatus(ctx context.Context, checkoutRequestID string) strategy.PaymentStatus {
	return s.status
}

func setupRouter(svc service.PaymentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPaymentHandler(svc)

	r := gin.New()
	r.POST("/api/payments/mpesa/initiate", h.Initiate)
	r.POST("/api/payments/mpesa/callback", h.Callback)
	r.GET("/api/payments/mpesa/status/:checkoutRequestId", h.Status)
	return r
}

func TestInitiateEndpoint(t *testing.T) {
	t.Run("Missing fields rejected", func(t *testing.T) {
		router := setupRouter(&stubPaymentService{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/payments/mpesa/initiate", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Invalid phone returns 400", func(t *testing.T) {
		router := setupRouter(&stubPaymentService{initiateErr: service.ErrInvalidPhone})

		body := `{"orderNumber":"BTT-000001-000001","phoneNumber":"0812345678"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/payments/mpesa/initiate", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Gateway rejection surfaces the provider message", func(t *testing.T) {
		router := setupRouter(&stubPaymentService{
			initiateResp: strategy.STKPushResponse{Success: false, ErrorMessage: "Insufficient funds"},
		})

		body := `{"orderNumber":"BTT-000001-000001","phoneNumber":"0712345672"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/payments/mpesa/initiate", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Insufficient funds")
	})

	t.Run("Successful push returns the gateway response", func(t *testing.T) {
		router := setupRouter(&stubPaymentService{
			initiateResp: strategy.STKPushResponse{Success: true, CheckoutRequestID: "ws_CO_1"},
		})

		body := `{"orderNumber":"BTT-000001-000001","phoneNumber":"0712345678"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/payments/mpesa/initiate", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "ws_CO_1")
	})
}

func TestCallbackEndpointAlwaysAcks(t *testing.T) {
	assertAck := func(t *testing.T, w *httptest.ResponseRecorder) {
		t.Helper()
		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, float64(0), body["ResultCode"])
		assert.Equal(t, "Accepted", body["ResultDesc"])
	}

	validPayload := `{
		"Body": {
			"stkCallback": {
				"MerchantRequestID": "29115-34620561-1",
				"CheckoutRequestID": "ws_CO_191220191020363925",
				"ResultCode": 0,
				"ResultDesc": "The service request is processed successfully."
			}
		}
	}`

	t.Run("Valid callback acknowledged and forwarded", func(t *testing.T) {
		svc := &stubPaymentService{}
		router := setupRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/payments/mpesa/callback", bytes.NewBufferString(validPayload))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assertAck(t, w)
		require.Len(t, svc.callbacks, 1)
		assert.Equal(t, "ws_CO_191220191020363925", svc.callbacks[0].Body.STKCallback.CheckoutRequestID)
	})

	t.Run("Malformed payload still acknowledged", func(t *testing.T) {
		svc := &stubPaymentService{}
		router := setupRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/payments/mpesa/callback", bytes.NewBufferString(`not json`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assertAck(t, w)
		assert.Empty(t, svc.callbacks)
	})

	t.Run("Processing error still acknowledged", func(t *testing.T) {
		svc := &stubPaymentService{callbackErr: assert.AnError}
		router := setupRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/payments/mpesa/callback", bytes.NewBufferString(validPayload))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assertAck(t, w)
	})
}

func TestStatusEndpoint(t *testing.T) {
	router := setupRouter(&stubPaymentService{
		status: strategy.PaymentStatus{Success: true, Status: strategy.StatusSuccess, MpesaReceiptNumber: "NLJ7RT61SV"},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/payments/mpesa/status/ws_CO_1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "NLJ7RT61SV")
}
