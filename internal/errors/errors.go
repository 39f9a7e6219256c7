// Package errors writes the API's JSON error envelope:
//
//	{"error": {"code": "...", "message": "...", "details": {...}, "request_id": "..."}}
package errors

import (
	"net/http"

	"github.com/apper-canvas/homescout-pixel-alarm/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Error code constants for standardized error responses
const (
	ErrNotFound           = "NOT_FOUND"
	ErrBadRequest         = "BAD_REQUEST"
	ErrInternalServer     = "INTERNAL_SERVER_ERROR"
	ErrValidation         = "VALIDATION_ERROR"
	ErrInvalidParameter   = "INVALID_PARAMETER"
	ErrSubmission         = "SUBMISSION_ERROR"
	ErrRateLimited        = "RATE_LIMITED"
	ErrServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// ErrorResponse is the top-level error response structure.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains the error information.
type ErrorDetail struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// respond logs the failure on the request logger and aborts with the envelope.
// Server-side failures log at error level with err attached, the rest at warn.
func respond(c *gin.Context, status int, code, message string, details map[string]interface{}, err error) {
	requestID := middleware.GetRequestID(c)

	if log := middleware.GetLogger(c); log != nil {
		fields := map[string]interface{}{
			"code":       code,
			"message":    message,
			"request_id": requestID,
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
		}
		if details != nil {
			fields["details"] = details
		}
		if status >= http.StatusInternalServerError {
			log.Error("Request failed", err, fields)
		} else {
			log.Warn("Request rejected", fields)
		}
	}

	if err != nil {
		_ = c.Error(err)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorDetail{
			Code:      code,
			Message:   message,
			Details:   details,
			RequestID: requestID,
		},
	})
}

// NotFound returns a 404 Not Found error response.
func NotFound(c *gin.Context, message string) {
	respond(c, http.StatusNotFound, ErrNotFound, message, nil, nil)
}

// BadRequest returns a 400 Bad Request error response with optional details.
func BadRequest(c *gin.Context, message string, details map[string]interface{}) {
	respond(c, http.StatusBadRequest, ErrBadRequest, message, details, nil)
}

// InvalidParameter returns a 400 response naming the offending parameter.
func InvalidParameter(c *gin.Context, parameter, message string) {
	respond(c, http.StatusBadRequest, ErrInvalidParameter, message, map[string]interface{}{
		"parameter": parameter,
	}, nil)
}

// ValidationError returns a 400 response with one message per invalid field.
func ValidationError(c *gin.Context, validationErrors validator.ValidationErrors) {
	respond(c, http.StatusBadRequest, ErrValidation,
		"Validation failed for one or more fields", FieldErrors(validationErrors), nil)
}

// SubmissionError returns a 502 response carrying a message the user can act on.
// err is logged but never sent to the client.
func SubmissionError(c *gin.Context, message string, err error) {
	respond(c, http.StatusBadGateway, ErrSubmission, message, nil, err)
}

// TooManyRequests returns a 429 response.
func TooManyRequests(c *gin.Context, message string) {
	respond(c, http.StatusTooManyRequests, ErrRateLimited, message, nil, nil)
}

// ServiceUnavailable returns a 503 response, used when a dependency is down.
func ServiceUnavailable(c *gin.Context, message string, err error) {
	respond(c, http.StatusServiceUnavailable, ErrServiceUnavailable, message, nil, err)
}

// InternalServerError returns a 500 response with a generic message.
// The actual error is logged but not exposed to the client.
func InternalServerError(c *gin.Context, message string, err error) {
	respond(c, http.StatusInternalServerError, ErrInternalServer, message, nil, err)
}

// FieldErrors maps each failing field to a human-readable message.
func FieldErrors(validationErrors validator.ValidationErrors) map[string]interface{} {
	details := make(map[string]interface{}, len(validationErrors))
	for _, fe := range validationErrors {
		details[fe.Field()] = formatValidationError(fe)
	}
	return details
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		return "Value is too short or small (minimum: " + err.Param() + ")"
	case "max":
		return "Value is too long or large (maximum: " + err.Param() + ")"
	case "gt":
		return "Must be greater than " + err.Param()
	case "gte":
		return "Must be greater than or equal to " + err.Param()
	case "lte":
		return "Must be less than or equal to " + err.Param()
	case "oneof":
		return "Must be one of: " + err.Param()
	case "numeric":
		return "Must be a number"
	default:
		return "Validation failed for tag: " + err.Tag()
	}
}
