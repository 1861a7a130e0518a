package response

import (
	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON response
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Count     *int        `json:"count,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// SuccessCount sends a success response for list endpoints that expose a count
func SuccessCount(c *gin.Context, code int, message string, count int, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Count:     &count,
		Data:      data,
		RequestID: requestID(c),
	})
}

// Auth sends a success response carrying a bearer token and the principal
// under its variant key ("user" or "company").
func Auth(c *gin.Context, code int, message, token, principalKey string, principal interface{}) {
	c.JSON(code, gin.H{
		"success":    true,
		"message":    message,
		"token":      token,
		principalKey: principal,
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string, err interface{}) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Error:     err,
		RequestID: requestID(c),
	})
}

func requestID(c *gin.Context) string {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string) // Safe type assertion
	return idStr
}
