package handler

import (
	"net/http"

	"github.com/Bange254/Bttshoes/internal/domain/user/service"
	"github.com/Bange254/Bttshoes/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

type registerInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
}

// Register creates an account and returns the user plus a token.
func (h *UserHandler) Register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	user, token, err := h.service.Register(input.Name, input.Email, input.Password, input.Phone)
	if err != nil {
		if err == service.ErrEmailTaken {
			response.Error(c, http.StatusConflict, response.ErrUserExists, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, gin.H{"user": user, "token": token})
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates and returns a token.
func (h *UserHandler) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	user, token, err := h.service.Login(input.Email, input.Password)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			response.Error(c, http.StatusUnauthorized, response.ErrAuthFailed, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, gin.H{"user": user, "token": token})
}

// Profile returns the authenticated user.
func (h *UserHandler) Profile(c *gin.Context) {
	userID := getUserIDFromContext(c)
	user, err := h.service.GetUser(userID)
	if err != nil {
		response.Error(c, http.StatusNotFound, response.ErrUserNotFound, "User not found")
		return
	}
	response.Success(c, user)
}

func getUserIDFromContext(c *gin.Context) string {
	val, _ := c.Get("userID")
	if str, ok := val.(string); ok {
		return str
	}
	return ""
}
