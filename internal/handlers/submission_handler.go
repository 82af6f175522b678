package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quadrantlabs/assessment-tracking-service/internal/models"
	"github.com/quadrantlabs/assessment-tracking-service/internal/services"
	"github.com/quadrantlabs/assessment-tracking-service/internal/utils"
)

type SubmissionHandler struct {
	BaseHandler
	submissionService services.SubmissionService
}

func NewSubmissionHandler(
	submissionService services.SubmissionService,
	logger utils.Logger,
) *SubmissionHandler {
	return &SubmissionHandler{
		BaseHandler:       NewBaseHandler(logger),
		submissionService: submissionService,
	}
}

// SubmitAssessment stores a completed assessment submission
// @Summary Submit assessment
// @Description Stores a completed assessment with response timings and cursor telemetry
// @Tags assessments
// @Accept json
// @Produce json
// @Param submission body models.SubmissionRequest true "Submission payload"
// @Success 201 {object} SubmitAssessmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /assessments [post]
func (h *SubmissionHandler) SubmitAssessment(c *gin.Context) {
	var req models.SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Submitting assessment", "user_name", req.UserName)

	record, err := h.submissionService.Submit(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SubmitAssessmentResponse{
		Message:     "Assessment submitted successfully with tracking data",
		UserID:      record.UserID,
		SubmittedAt: record.SubmittedAt,
		Summary:     services.SummarizeRecord(record),
	})
}

// ListAssessments lists all stored submissions
// @Summary List assessments
// @Description Lists summaries of all stored submissions, newest first
// @Tags assessments
// @Accept json
// @Produce json
// @Success 200 {object} ListAssessmentsResponse
// @Failure 503 {object} ErrorResponse
// @Router /assessments [get]
func (h *SubmissionHandler) ListAssessments(c *gin.Context) {
	h.LogRequest(c, "Listing assessments")

	summaries, err := h.submissionService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListAssessmentsResponse{
		Count:       len(summaries),
		Assessments: summaries,
	})
}

// GetLatestAssessment retrieves a user's most recent submission
// @Summary Get latest assessment
// @Description Retrieves the most recent stored submission for a user
// @Tags assessments
// @Accept json
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} models.AssessmentRecord
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /assessments/{user_id} [get]
func (h *SubmissionHandler) GetLatestAssessment(c *gin.Context) {
	userID := ParseUserIDParam(c)
	if userID == "" {
		return
	}

	h.LogRequest(c, "Getting latest assessment", "user_id", userID)

	record, err := h.submissionService.GetLatest(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// GetUserAnalytics retrieves the analytics drill-down for a user
// @Summary Get user analytics
// @Description Retrieves completion, timing and cursor analytics for a user's latest submission
// @Tags assessments
// @Accept json
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} models.UserAnalyticsDetail
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /assessments/{user_id}/analytics [get]
func (h *SubmissionHandler) GetUserAnalytics(c *gin.Context) {
	userID := ParseUserIDParam(c)
	if userID == "" {
		return
	}

	h.LogRequest(c, "Getting user analytics", "user_id", userID)

	detail, err := h.submissionService.UserAnalytics(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}
