package handlers

import (
	"context"
	"errors"
	"strconv"

	apierrors "github.com/apper-canvas/homescout-pixel-alarm/internal/errors"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/mortgage"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// writeServiceError maps domain errors onto the API error envelope.
// action completes the sentence "Failed to ..." for unexpected errors.
func writeServiceError(c *gin.Context, err error, action string) {
	var validationErrors validator.ValidationErrors
	var submissionErr *services.SubmissionError
	var loanErr *mortgage.ParameterError

	switch {
	case errors.Is(err, services.ErrListingNotFound):
		apierrors.NotFound(c, "Listing not found")
	case errors.Is(err, services.ErrInvalidListing):
		apierrors.BadRequest(c, err.Error(), nil)
	case errors.Is(err, services.ErrCompareSelection):
		apierrors.InvalidParameter(c, "ids", "Select between 2 and 3 listings to compare")
	case errors.As(err, &loanErr):
		apierrors.InvalidParameter(c, loanErr.Param, loanErr.Reason)
	case errors.Is(err, mortgage.ErrInvalidParameter):
		apierrors.InvalidParameter(c, "loanTerm", "Loan term must be at least one month")
	case errors.As(err, &validationErrors):
		apierrors.ValidationError(c, validationErrors)
	case errors.As(err, &submissionErr):
		apierrors.SubmissionError(c, submissionErr.UserMessage, err)
	case errors.Is(err, context.DeadlineExceeded):
		apierrors.ServiceUnavailable(c, "The listing service timed out. Please try again.", err)
	default:
		apierrors.InternalServerError(c, "Failed to "+action, err)
	}
}

// paramID parses a positive integer path parameter, writing an
// INVALID_PARAMETER response and returning false when it is malformed.
func paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		apierrors.InvalidParameter(c, name, "Must be a positive integer")
		return 0, false
	}
	return id, true
}
