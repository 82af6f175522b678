package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quadrantlabs/assessment-tracking-service/internal/analytics"
	"github.com/quadrantlabs/assessment-tracking-service/internal/models"
	"github.com/quadrantlabs/assessment-tracking-service/internal/repositories"
	"github.com/quadrantlabs/assessment-tracking-service/internal/services"
	"github.com/quadrantlabs/assessment-tracking-service/internal/utils"
)

// ===== TEST DOUBLES =====

type stubSubmissionService struct {
	record    *models.AssessmentRecord
	summaries []models.AssessmentSummary
	detail    *models.UserAnalyticsDetail
	err       error

	lastSubmitted *models.SubmissionRequest
}

func (s *stubSubmissionService) Submit(_ context.Context, req *models.SubmissionRequest) (*models.AssessmentRecord, error) {
	s.lastSubmitted = req
	if s.err != nil {
		return nil, s.err
	}
	return s.record, nil
}

func (s *stubSubmissionService) List(_ context.Context) ([]models.AssessmentSummary, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.summaries, nil
}

func (s *stubSubmissionService) GetLatest(_ context.Context, _ string) (*models.AssessmentRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.record, nil
}

func (s *stubSubmissionService) UserAnalytics(_ context.Context, _ string) (*models.UserAnalyticsDetail, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.detail, nil
}

type stubReportService struct {
	times     *analytics.TimeReport
	movements *analytics.MovementReport
	patterns  *analytics.UserPatternReport
	overview  *services.AnalysisOverview
	err       error
}

func (s *stubReportService) TimeReport(_ context.Context) (*analytics.TimeReport, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.times, nil
}

func (s *stubReportService) MovementReport(_ context.Context) (*analytics.MovementReport, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.movements, nil
}

func (s *stubReportService) PatternReport(_ context.Context) (*analytics.UserPatternReport, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.patterns, nil
}

func (s *stubReportService) Overview(_ context.Context) (*services.AnalysisOverview, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.overview, nil
}

type stubExportService struct {
	workbook []byte
	csv      []byte
	err      error
}

func (s *stubExportService) ExportWorkbook(_ context.Context) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.workbook, nil
}

func (s *stubExportService) ExportSummariesCSV(_ context.Context) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.csv, nil
}

type stubRepository struct {
	count int64
	err   error
}

func (r *stubRepository) Create(_ context.Context, _ *models.AssessmentRecord) error {
	return nil
}

func (r *stubRepository) List(_ context.Context) ([]*models.AssessmentRecord, error) {
	return nil, nil
}

func (r *stubRepository) GetLatestByUser(_ context.Context, _ string) (*models.AssessmentRecord, error) {
	return nil, nil
}

func (r *stubRepository) Count(_ context.Context) (int64, error) {
	return r.count, r.err
}

// ===== FIXTURES =====

func newTestRouter(
	submissions services.SubmissionService,
	reports services.ReportService,
	exports services.ExportService,
	repo repositories.AssessmentRepository,
) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	router := gin.New()
	manager := NewHandlerManager(submissions, reports, exports, repo, "memory", logger)
	manager.SetupRoutes(router)
	return router
}

func sampleRecord() *models.AssessmentRecord {
	return &models.AssessmentRecord{
		UserID:      "ana_lima_0912345678",
		UserName:    "Ana Lima",
		EmailID:     "ana@example.com",
		PhoneNumber: "0912345678",
		SubmittedAt: time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC),
		Responses:   map[string]string{"q1": "option_a", "q2": "option_c"},
		ResponseTimings: map[string]models.ResponseTiming{
			"q1": {ResponseTimeMs: 4000, ResponseTimeSeconds: 4, SelectedOption: "option_a"},
			"q2": {ResponseTimeMs: 2000, ResponseTimeSeconds: 2, SelectedOption: "option_c"},
		},
		TotalQuestions:    4,
		AnsweredQuestions: 2,
		Analytics: models.SubmissionAnalytics{
			TotalTimeMs:               6000,
			TotalTimeSeconds:          6,
			TotalTimeMinutes:          0.1,
			AverageTimePerQuestionSec: 3,
			TotalCursorMovements:      7,
		},
		CursorStatistics: models.CursorStatistics{
			TotalQuestionsTracked:      2,
			TotalMovementsAllQuestions: 7,
		},
	}
}

func submitPayload() map[string]interface{} {
	return map[string]interface{}{
		"user_name": "Ana Lima",
		"email":     "ana@example.com",
		"phone":     "0912345678",
		"responses": map[string]string{"q1": "option_a", "q2": "option_c"},
		"response_timings": map[string]interface{}{
			"q1": map[string]interface{}{"response_time_ms": 4000, "response_time_seconds": 4, "selected_option": "option_a"},
			"q2": map[string]interface{}{"response_time_ms": 2000, "response_time_seconds": 2, "selected_option": "option_c"},
		},
		"total_questions": 4,
	}
}

func performJSON(router *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ===== SUBMISSION TESTS =====

func TestSubmitAssessment(t *testing.T) {
	svc := &stubSubmissionService{record: sampleRecord()}
	router := newTestRouter(svc, nil, nil, nil)

	w := performJSON(router, http.MethodPost, "/api/v1/assessments", submitPayload())

	require.Equal(t, http.StatusCreated, w.Code)

	var resp SubmitAssessmentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "Assessment submitted successfully with tracking data", resp.Message)
	assert.Equal(t, "ana_lima_0912345678", resp.UserID)
	assert.Equal(t, time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC), resp.SubmittedAt)
	assert.Equal(t, "Ana Lima", resp.Summary.UserName)
	assert.Equal(t, 2, resp.Summary.AnsweredQuestions)
	assert.Equal(t, 7, resp.Summary.TotalCursorMovements)

	require.NotNil(t, svc.lastSubmitted)
	assert.Equal(t, "Ana Lima", svc.lastSubmitted.UserName)
	assert.Equal(t, 4, svc.lastSubmitted.TotalQuestions)
}

func TestSubmitAssessment_MalformedJSON(t *testing.T) {
	router := newTestRouter(&stubSubmissionService{}, nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments", bytes.NewReader([]byte(`{"user_name":`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid request payload", resp.Message)
	assert.NotEmpty(t, resp.Details)
}

func TestSubmitAssessment_ValidationFailure(t *testing.T) {
	svc := &stubSubmissionService{
		err: services.ValidationErrors{
			{Field: "email", Message: "invalid email format", Value: "not-an-email"},
		},
	}
	router := newTestRouter(svc, nil, nil, nil)

	w := performJSON(router, http.MethodPost, "/api/v1/assessments", submitPayload())

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Message string                   `json:"message"`
		Details []map[string]interface{} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Validation failed", resp.Message)
	require.Len(t, resp.Details, 1)
	assert.Equal(t, "email", resp.Details[0]["field"])
}

func TestSubmitAssessment_StorageFailure(t *testing.T) {
	svc := &stubSubmissionService{
		err: fmt.Errorf("%w: disk full", services.ErrStorageUnavailable),
	}
	router := newTestRouter(svc, nil, nil, nil)

	w := performJSON(router, http.MethodPost, "/api/v1/assessments", submitPayload())

	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Assessment storage unavailable", resp.Message)
}

func TestListAssessments(t *testing.T) {
	svc := &stubSubmissionService{
		summaries: []models.AssessmentSummary{
			{UserID: "bo_chen_0911111111", UserName: "Bo Chen", SubmittedAt: time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)},
			{UserID: "ana_lima_0912345678", UserName: "Ana Lima", SubmittedAt: time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)},
		},
	}
	router := newTestRouter(svc, nil, nil, nil)

	w := performJSON(router, http.MethodGet, "/api/v1/assessments", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp ListAssessmentsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Assessments, 2)
	assert.Equal(t, "bo_chen_0911111111", resp.Assessments[0].UserID)
}

func TestListAssessments_EmptyCorpus(t *testing.T) {
	svc := &stubSubmissionService{summaries: []models.AssessmentSummary{}}
	router := newTestRouter(svc, nil, nil, nil)

	w := performJSON(router, http.MethodGet, "/api/v1/assessments", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp ListAssessmentsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Count)
	assert.Empty(t, resp.Assessments)
}

func TestGetLatestAssessment(t *testing.T) {
	svc := &stubSubmissionService{record: sampleRecord()}
	router := newTestRouter(svc, nil, nil, nil)

	w := performJSON(router, http.MethodGet, "/api/v1/assessments/ana_lima_0912345678", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var record models.AssessmentRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.Equal(t, "ana_lima_0912345678", record.UserID)
	assert.Equal(t, 2, record.AnsweredQuestions)
	assert.Equal(t, int64(6000), record.Analytics.TotalTimeMs)
}

func TestGetLatestAssessment_NotFound(t *testing.T) {
	svc := &stubSubmissionService{err: services.ErrSubmissionNotFound}
	router := newTestRouter(svc, nil, nil, nil)

	w := performJSON(router, http.MethodGet, "/api/v1/assessments/nobody_000", nil)

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Assessment not found", resp.Message)
}

func TestGetLatestAssessment_BlankUserID(t *testing.T) {
	svc := &stubSubmissionService{record: sampleRecord()}
	router := newTestRouter(svc, nil, nil, nil)

	w := performJSON(router, http.MethodGet, "/api/v1/assessments/%20", nil)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid user_id", resp.Message)
}

func TestGetUserAnalytics(t *testing.T) {
	svc := &stubSubmissionService{
		detail: &models.UserAnalyticsDetail{
			UserInfo: models.UserInfo{
				UserID:   "ana_lima_0912345678",
				UserName: "Ana Lima",
			},
			Completion: models.CompletionStats{
				TotalQuestions:    4,
				AnsweredQuestions: 2,
				CompletionRate:    "50.0%",
			},
		},
	}
	router := newTestRouter(svc, nil, nil, nil)

	w := performJSON(router, http.MethodGet, "/api/v1/assessments/ana_lima_0912345678/analytics", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var detail models.UserAnalyticsDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "Ana Lima", detail.UserInfo.UserName)
	assert.Equal(t, "50.0%", detail.Completion.CompletionRate)
}

func TestGetUserAnalytics_NotFound(t *testing.T) {
	svc := &stubSubmissionService{err: services.ErrSubmissionNotFound}
	router := newTestRouter(svc, nil, nil, nil)

	w := performJSON(router, http.MethodGet, "/api/v1/assessments/nobody_000/analytics", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
}
