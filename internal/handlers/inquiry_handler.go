package handlers

import (
	"errors"
	"net/http"

	apierrors "github.com/apper-canvas/homescout-pixel-alarm/internal/errors"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/metrics"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/models"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/services"
	"github.com/gin-gonic/gin"
)

// InquiryHandler accepts listing inquiries and general contact messages.
type InquiryHandler struct {
	service services.InquiryService
	metrics *metrics.Metrics
}

// NewInquiryHandler creates a new InquiryHandler. m may be nil.
func NewInquiryHandler(service services.InquiryService, m *metrics.Metrics) *InquiryHandler {
	return &InquiryHandler{service: service, metrics: m}
}

func submissionOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, services.ErrSubmissionFailed):
		return "failed"
	default:
		return "rejected"
	}
}

// Submit handles POST /api/v1/listings/:id/inquiries.
func (h *InquiryHandler) Submit(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req services.InquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid inquiry body", map[string]interface{}{"reason": err.Error()})
		return
	}

	result, err := h.service.SubmitInquiry(c.Request.Context(), id, req)
	h.metrics.Submission("inquiry", submissionOutcome(err))
	if err != nil {
		writeServiceError(c, err, "send inquiry")
		return
	}

	c.JSON(http.StatusCreated, result)
}

// Contact handles POST /api/v1/contact.
func (h *InquiryHandler) Contact(c *gin.Context) {
	var msg models.ContactMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		apierrors.BadRequest(c, "Invalid contact body", map[string]interface{}{"reason": err.Error()})
		return
	}

	result, err := h.service.SubmitContact(c.Request.Context(), msg)
	h.metrics.Submission("contact", submissionOutcome(err))
	if err != nil {
		writeServiceError(c, err, "send message")
		return
	}

	c.JSON(http.StatusCreated, result)
}
