// internal/utils/response.go
package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aniefioke/intellectual-property/internal/marketplace"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

type APIError struct {
	Code    string      `json:"code"`
	Number  uint        `json:"number,omitempty"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
	})
}

func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func BadRequestResponse(c *gin.Context, message string, details interface{}) {
	if message == "" {
		message = "Invalid request"
	}
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message, details)
}

func UnauthorizedResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}

func ForbiddenResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	ErrorResponse(c, http.StatusForbidden, "FORBIDDEN", message, nil)
}

func NotFoundResponse(c *gin.Context, resource string) {
	ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", resource+" not found", nil)
}

func InternalErrorResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", message, nil)
}

func ValidationErrorResponse(c *gin.Context, errors []ValidationError) {
	ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", errors)
}

// MarketplaceErrorResponse translates a ledger failure into an HTTP status
// plus the contract's numeric error code.
func MarketplaceErrorResponse(c *gin.Context, err error) {
	var mpErr *marketplace.Error
	if !errors.As(err, &mpErr) {
		InternalErrorResponse(c, "")
		return
	}

	status := http.StatusInternalServerError
	switch mpErr.Kind {
	case marketplace.KindUnauthorized:
		status = http.StatusForbidden
	case marketplace.KindNotFound:
		status = http.StatusNotFound
	case marketplace.KindInvalidInput, marketplace.KindInvalidDuration:
		status = http.StatusBadRequest
	case marketplace.KindDuplicate, marketplace.KindUnavailable,
		marketplace.KindInactive, marketplace.KindAlreadyInactive,
		marketplace.KindExpired:
		status = http.StatusConflict
	case marketplace.KindPaymentFailed:
		status = http.StatusPaymentRequired
	case marketplace.KindSuspended:
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, APIResponse{
		Success: false,
		Error: &APIError{
			Code:    string(mpErr.Kind),
			Number:  mpErr.Code,
			Message: mpErr.Message,
		},
	})
}

func GetCallerFromContext(c *gin.Context) (marketplace.Principal, bool) {
	if caller, exists := c.Get("caller"); exists {
		if p, ok := caller.(marketplace.Principal); ok {
			return p, true
		}
	}
	return "", false
}
