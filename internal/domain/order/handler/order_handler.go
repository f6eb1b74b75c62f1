package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Bange254/Bttshoes/internal/domain/order/model"
	"github.com/Bange254/Bttshoes/internal/domain/order/service"
	"github.com/Bange254/Bttshoes/pkg/response"
	"github.com/Bange254/Bttshoes/pkg/utils"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

type checkoutInput struct {
	Email           string                 `json:"email" binding:"required,email"`
	Items           []service.CheckoutItem `json:"items" binding:"required,dive"`
	ShippingAddress model.Address          `json:"shippingAddress" binding:"required"`
	BillingAddress  model.Address          `json:"billingAddress"`
	PaymentMethod   string                 `json:"paymentMethod" binding:"required,oneof=mpesa cod"`
	OrderType       string                 `json:"orderType" binding:"omitempty,oneof=retail wholesale"`
	CouponID        string                 `json:"couponId"`
	Notes           string                 `json:"notes"`
}

// Checkout creates an order from the submitted cart. Works for both
// authenticated users and guests; a guest order is keyed by email.
func (h *OrderHandler) Checkout(c *gin.Context) {
	var input checkoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	var userID *string
	if id := c.GetString("userID"); id != "" {
		userID = &id
	}

	billing := input.BillingAddress
	if billing.Address == "" {
		billing = input.ShippingAddress
	}

	order, err := h.service.Checkout(service.CheckoutInput{
		UserID:          userID,
		Email:           strings.ToLower(input.Email),
		Items:           input.Items,
		ShippingAddress: input.ShippingAddress,
		BillingAddress:  billing,
		PaymentMethod:   input.PaymentMethod,
		OrderType:       input.OrderType,
		CouponID:        input.CouponID,
		Notes:           input.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			response.Error(c, http.StatusBadRequest, response.ErrOrderEmptyCart, err.Error())
		case errors.Is(err, service.ErrProductNotFound):
			response.Error(c, http.StatusBadRequest, response.ErrProductNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}

	response.Success(c, order)
}

// ListMine returns the authenticated user's order history.
func (h *OrderHandler) ListMine(c *gin.Context) {
	var pg utils.Pagination
	if err := c.ShouldBindQuery(&pg); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	orders, total, err := h.service.GetUserOrders(c.GetString("userID"), pg.Page, pg.Limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, utils.PageResult{List: orders, Total: total, Page: pg.Page, Limit: pg.Limit})
}

type trackQuery struct {
	OrderNumber string `form:"orderNumber" binding:"required"`
	Email       string `form:"email" binding:"required,email"`
}

// Track lets a guest look up an order by number plus the email it was
// placed with.
func (h *OrderHandler) Track(c *gin.Context) {
	var q trackQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	order, err := h.service.TrackOrder(q.OrderNumber, q.Email)
	if err != nil {
		response.Error(c, http.StatusNotFound, response.ErrOrderNotFound, "Order not found")
		return
	}

	response.Success(c, order)
}

type updateStatusInput struct {
	Status         string `json:"status" binding:"required"`
	TrackingNumber string `json:"trackingNumber"`
}

// UpdateStatus applies a fulfilment transition. Admin only.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var input updateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	order, err := h.service.UpdateStatus(c.Param("orderNumber"), input.Status, input.TrackingNumber)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			response.Error(c, http.StatusNotFound, response.ErrOrderNotFound, "Order not found")
		case errors.Is(err, service.ErrBadTransition), errors.Is(err, service.ErrInvalidStatusPair):
			response.Error(c, http.StatusConflict, response.ErrOrderBadTransition, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}

	response.Success(c, order)
}
