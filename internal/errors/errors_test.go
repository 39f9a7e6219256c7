package errors

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/apper-canvas/homescout-pixel-alarm/internal/logger"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/middleware"
	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Set Gin to test mode to suppress logs during tests
	gin.SetMode(gin.TestMode)
}

// setupTestContext creates a test Gin context with logger and request ID in context.
func setupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/listings/1/inquiries", nil)
	c.Set(middleware.LoggerKey, logger.Nop())
	c.Set(middleware.RequestIDKey, "test-request-id")
	return c, w
}

// parseErrorResponse parses the JSON response into an ErrorResponse struct.
func parseErrorResponse(t *testing.T, body *bytes.Buffer) ErrorResponse {
	t.Helper()
	var response ErrorResponse
	require.NoError(t, json.Unmarshal(body.Bytes(), &response), "Failed to parse error response JSON")
	return response
}

func TestHelpers(t *testing.T) {
	tests := []struct {
		name    string
		call    func(c *gin.Context)
		status  int
		code    string
		message string
		details map[string]interface{}
	}{
		{
			name:    "not found",
			call:    func(c *gin.Context) { NotFound(c, "Listing not found") },
			status:  http.StatusNotFound,
			code:    ErrNotFound,
			message: "Listing not found",
		},
		{
			name:    "bad request with details",
			call:    func(c *gin.Context) { BadRequest(c, "Invalid body", map[string]interface{}{"field": "price"}) },
			status:  http.StatusBadRequest,
			code:    ErrBadRequest,
			message: "Invalid body",
			details: map[string]interface{}{"field": "price"},
		},
		{
			name:    "invalid parameter",
			call:    func(c *gin.Context) { InvalidParameter(c, "loanTerm", "Loan term must be at least one month") },
			status:  http.StatusBadRequest,
			code:    ErrInvalidParameter,
			message: "Loan term must be at least one month",
			details: map[string]interface{}{"parameter": "loanTerm"},
		},
		{
			name: "submission error",
			call: func(c *gin.Context) {
				SubmissionError(c, "Failed to send inquiry. Please try again.", errors.New("smtp down"))
			},
			status:  http.StatusBadGateway,
			code:    ErrSubmission,
			message: "Failed to send inquiry. Please try again.",
		},
		{
			name:    "too many requests",
			call:    func(c *gin.Context) { TooManyRequests(c, "Slow down") },
			status:  http.StatusTooManyRequests,
			code:    ErrRateLimited,
			message: "Slow down",
		},
		{
			name:    "service unavailable",
			call:    func(c *gin.Context) { ServiceUnavailable(c, "Listing source unavailable", errors.New("dial tcp")) },
			status:  http.StatusServiceUnavailable,
			code:    ErrServiceUnavailable,
			message: "Listing source unavailable",
		},
		{
			name:    "internal server error",
			call:    func(c *gin.Context) { InternalServerError(c, "An unexpected error occurred", errors.New("boom")) },
			status:  http.StatusInternalServerError,
			code:    ErrInternalServer,
			message: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := setupTestContext()

			tt.call(c)

			assert.Equal(t, tt.status, w.Code)
			assert.True(t, c.IsAborted())
			response := parseErrorResponse(t, w.Body)
			assert.Equal(t, tt.code, response.Error.Code)
			assert.Equal(t, tt.message, response.Error.Message)
			assert.Equal(t, "test-request-id", response.Error.RequestID)
			assert.Equal(t, tt.details, response.Error.Details)
		})
	}
}

func TestServerErrorsAreRecordedButNotExposed(t *testing.T) {
	c, w := setupTestContext()

	InternalServerError(c, "An unexpected error occurred", errors.New("password=hunter2"))

	assert.NotContains(t, w.Body.String(), "hunter2")
	require.Len(t, c.Errors, 1)
	assert.Contains(t, c.Errors.String(), "hunter2")
}

func TestValidationError(t *testing.T) {
	c, w := setupTestContext()

	type inquiry struct {
		Email string `validate:"required,email"`
		Name  string `validate:"required"`
	}

	err := validator.New().Struct(inquiry{Email: "not-an-email"})
	var validationErrors validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrors))

	ValidationError(c, validationErrors)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := parseErrorResponse(t, w.Body)
	assert.Equal(t, ErrValidation, response.Error.Code)
	assert.Equal(t, "Validation failed for one or more fields", response.Error.Message)
	assert.Equal(t, "Must be a valid email address", response.Error.Details["Email"])
	assert.Equal(t, "This field is required", response.Error.Details["Name"])
}

func TestFormatValidationError(t *testing.T) {
	tests := []struct {
		tag      string
		param    string
		expected string
	}{
		{"required", "", "This field is required"},
		{"email", "", "Must be a valid email address"},
		{"min", "5", "Value is too short or small (minimum: 5)"},
		{"max", "200", "Value is too long or large (maximum: 200)"},
		{"gt", "0", "Must be greater than 0"},
		{"gte", "18", "Must be greater than or equal to 18"},
		{"lte", "100", "Must be less than or equal to 100"},
		{"oneof", "House Condo", "Must be one of: House Condo"},
		{"numeric", "", "Must be a number"},
		{"unknown_tag", "", "Validation failed for tag: unknown_tag"},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			mockErr := &mockFieldError{tag: tt.tag, param: tt.param}
			assert.Equal(t, tt.expected, formatValidationError(mockErr))
		})
	}
}

func TestErrorResponseWithoutContext(t *testing.T) {
	// Error helpers still work without logger/request ID in context
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	NotFound(c, "Resource not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	response := parseErrorResponse(t, w.Body)
	assert.Equal(t, ErrNotFound, response.Error.Code)
	assert.Empty(t, response.Error.RequestID)
	assert.NotContains(t, w.Body.String(), "request_id")
}

// mockFieldError is a mock implementation of validator.FieldError for testing.
type mockFieldError struct {
	tag   string
	param string
}

func (m *mockFieldError) Tag() string                    { return m.tag }
func (m *mockFieldError) ActualTag() string              { return m.tag }
func (m *mockFieldError) Namespace() string              { return "" }
func (m *mockFieldError) StructNamespace() string        { return "" }
func (m *mockFieldError) Field() string                  { return "field" }
func (m *mockFieldError) StructField() string            { return "Field" }
func (m *mockFieldError) Value() interface{}             { return nil }
func (m *mockFieldError) Param() string                  { return m.param }
func (m *mockFieldError) Kind() reflect.Kind             { return reflect.String }
func (m *mockFieldError) Type() reflect.Type             { return nil }
func (m *mockFieldError) Translate(ut.Translator) string { return "" }
func (m *mockFieldError) Error() string                  { return "" }
