package handler

import (
	"net/http"
	"time"

	"github.com/Bange254/Bttshoes/internal/domain/coupon/service"
	"github.com/Bange254/Bttshoes/pkg/response"

	"github.com/gin-gonic/gin"
)

type CouponHandler struct {
	service service.CouponService
}

func NewCouponHandler(s service.CouponService) *CouponHandler {
	return &CouponHandler{service: s}
}

type createCouponInput struct {
	Name      string    `json:"name" binding:"required"`
	Total     int       `json:"total" binding:"required,gt=0"`
	Amount    float64   `json:"amount" binding:"required,gt=0"`
	StartTime time.Time `json:"startTime" binding:"required"`
	EndTime   time.Time `json:"endTime" binding:"required"`
}

// Create adds a coupon. Admin only.
func (h *CouponHandler) Create(c *gin.Context) {
	var input createCouponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	coupon, err := h.service.CreateCoupon(input.Name, input.Total, input.Amount, input.StartTime, input.EndTime)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, coupon)
}

// Claim reserves one coupon for the authenticated user.
func (h *CouponHandler) Claim(c *gin.Context) {
	couponID := c.Param("id")
	userID := getUserIDFromContext(c)

	if err := h.service.ClaimCoupon(userID, couponID); err != nil {
		switch err {
		case service.ErrOutOfStock:
			response.Fail(c, response.ErrCouponOutOfStock, err.Error())
		case service.ErrAlreadyClaimed:
			response.Fail(c, response.ErrCouponClaimed, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}

	response.Success(c, nil)
}

func getUserIDFromContext(c *gin.Context) string {
	val, _ := c.Get("userID")
	if str, ok := val.(string); ok {
		return str
	}
	return ""
}
