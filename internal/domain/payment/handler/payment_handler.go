package handler

import (
	"errors"
	"net/http"

	"github.com/Bange254/Bttshoes/internal/domain/payment/service"
	"github.com/Bange254/Bttshoes/internal/domain/payment/strategy"
	"github.com/Bange254/Bttshoes/pkg/logger"
	"github.com/Bange254/Bttshoes/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	service service.PaymentService
}

func NewPaymentHandler(s service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: s}
}

type initiateInput struct {
	OrderNumber string `json:"orderNumber" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

// Initiate triggers the STK push for an order.
func (h *PaymentHandler) Initiate(c *gin.Context) {
	var input initiateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	resp, err := h.service.InitiatePayment(c.Request.Context(), input.OrderNumber, input.PhoneNumber)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPhone):
			response.Error(c, http.StatusBadRequest, response.ErrPaymentInvalidPhone, err.Error())
		case errors.Is(err, service.ErrInvalidAmount):
			response.Error(c, http.StatusBadRequest, response.ErrPaymentInvalidAmount, err.Error())
		case errors.Is(err, service.ErrOrderNotFound):
			response.Error(c, http.StatusNotFound, response.ErrOrderNotFound, err.Error())
		case errors.Is(err, service.ErrOrderNotPayable):
			response.Error(c, http.StatusConflict, response.ErrOrderInvalidState, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}

	if !resp.Success {
		// provider-level rejection: surface the provider's message
		response.Error(c, http.StatusBadRequest, response.ErrPaymentInitFailed, resp.ErrorMessage)
		return
	}

	response.Success(c, resp)
}

// Callback receives asynchronous payment results from the provider.
//
// The provider retries deliveries it considers failed, so this endpoint
// always acknowledges with ResultCode 0 regardless of what happened
// internally; anything else would cause duplicate deliveries of results
// we already processed.
func (h *PaymentHandler) Callback(c *gin.Context) {
	ack := gin.H{"ResultCode": 0, "ResultDesc": "Accepted"}

	var envelope strategy.CallbackEnvelope
	if err := c.ShouldBindJSON(&envelope); err != nil {
		logger.Log.Error("unparseable payment callback", zap.Error(err))
		c.JSON(http.StatusOK, ack)
		return
	}

	if err := h.service.HandleCallback(c.Request.Context(), envelope); err != nil {
		logger.Log.Error("payment callback processing failed",
			zap.String("checkout_request_id", envelope.Body.STKCallback.CheckoutRequestID),
			zap.Error(err),
		)
	}

	c.JSON(http.StatusOK, ack)
}

// Status polls the push outcome for a checkout request id.
func (h *PaymentHandler) Status(c *gin.Context) {
	id := c.Param("checkoutRequestId")
	if id == "" {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "checkoutRequestId is required")
		return
	}

	status := h.service.CheckStatus(c.Request.Context(), id)
	response.Success(c, status)
}
