package response

import (
	"github.com/gin-gonic/gin"
)

// Body is the wire shape for every JSON response: exactly one of Message or
// Error is set, plus an optional retry hint. The frontend form controller
// matches on these keys, so the shape is part of the API contract.
type Body struct {
	Message    string      `json:"message,omitempty"`
	Error      string      `json:"error,omitempty"`
	RetryAfter int         `json:"retryAfter,omitempty"`
	Data       interface{} `json:"data,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Body{
		Message: message,
		Data:    data,
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Body{
		Error: message,
	})
}

// RateLimited sends a 429-style error with the seconds-to-wait hint.
func RateLimited(c *gin.Context, code int, message string, retryAfter int) {
	c.JSON(code, Body{
		Error:      message,
		RetryAfter: retryAfter,
	})
}
