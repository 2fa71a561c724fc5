package lead

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"leadform/internal/pkg/response"
)

// HistoryReader reads the submission history.
type HistoryReader interface {
	List(ctx context.Context, result *SubmissionResult, limit, offset int) ([]Submission, int64, error)
	CountByResult(ctx context.Context) (map[SubmissionResult]int64, error)
}

// Handler handles lead HTTP requests
type Handler struct {
	service *Service
	history HistoryReader
}

// NewHandler creates lead handler
func NewHandler(service *Service, history HistoryReader) *Handler {
	return &Handler{
		service: service,
		history: history,
	}
}

// SubmitLead handles POST /api/v1/leads (public)
func (h *Handler) SubmitLead(c *gin.Context) {
	var draft Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	err := h.service.Submit(c.Request.Context(), draft)
	outcome := OutcomeFor(err)
	if err != nil {
		WriteSubmitError(c, err, outcome)
		return
	}

	response.Success(c, http.StatusCreated, SubmitLeadResponse{Outcome: outcome})
}

// WriteSubmitError maps a Submit error to the HTTP error envelope.
func WriteSubmitError(c *gin.Context, err error, outcome Outcome) {
	var (
		ve *ValidationError
		se *ServerError
	)
	switch {
	case errors.As(err, &ve):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", outcome.Detail, gin.H{
			"fields":  ve.Fields,
			"outcome": outcome,
		})
	case errors.As(err, &se):
		response.ErrorWithDetails(c, http.StatusBadGateway, "UPSTREAM_ERROR", outcome.Detail, gin.H{
			"outcome": outcome,
		})
	default:
		response.ErrorWithDetails(c, http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE", outcome.Detail, gin.H{
			"outcome": outcome,
		})
	}
}

// ListSubmissions handles GET /api/v1/admin/submissions
func (h *Handler) ListSubmissions(c *gin.Context) {
	var result *SubmissionResult
	if s := c.Query("result"); s != "" {
		r, err := ParseResult(s)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_RESULT", "Unknown submission result")
			return
		}
		result = &r
	}

	limit := 50
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}

	offset := 0
	if o := c.Query("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil && v >= 0 {
			offset = v
		}
	}

	submissions, total, err := h.history.List(c.Request.Context(), result, limit, offset)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list submissions")
		return
	}
	if submissions == nil {
		submissions = []Submission{}
	}

	response.Success(c, http.StatusOK, SubmissionListResponse{
		Submissions: submissions,
		Total:       total,
	})
}

// GetStats handles GET /api/v1/admin/submissions/stats
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.history.CountByResult(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load statistics")
		return
	}

	response.Success(c, http.StatusOK, stats)
}
