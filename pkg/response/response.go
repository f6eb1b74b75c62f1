package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the unified JSON envelope for all API endpoints.
type Response struct {
	Code    int         `json:"code"`    // business code
	Message string      `json:"message"` // human readable message
	Data    interface{} `json:"data"`    // payload
}

// Success writes a 200 with business code 0.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

// Error writes an error with both an HTTP status and a business code.
func Error(c *gin.Context, httpCode int, errCode int, msg string) {
	c.JSON(httpCode, Response{
		Code:    errCode,
		Message: msg,
		Data:    nil,
	})
}

// Fail writes a business failure (HTTP 200, nonzero business code).
func Fail(c *gin.Context, errCode int, msg string) {
	c.JSON(http.StatusOK, Response{
		Code:    errCode,
		Message: msg,
		Data:    nil,
	})
}
