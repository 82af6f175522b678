package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quadrantlabs/assessment-tracking-service/internal/analytics"
	"github.com/quadrantlabs/assessment-tracking-service/internal/services"
)

func TestGetTimeReport(t *testing.T) {
	svc := &stubReportService{
		times: &analytics.TimeReport{
			Overall: analytics.OverallTimeStats{
				TotalResponses: 3,
				AverageTime:    4.67,
				MedianTime:     4,
			},
			ByQuestion: map[string]analytics.QuestionTimeStats{
				"q1": {SampleSize: 2, AverageTime: 5},
			},
			GeneratedAt: time.Date(2025, 3, 12, 8, 0, 0, 0, time.UTC),
		},
	}
	router := newTestRouter(nil, svc, nil, nil)

	w := performJSON(router, http.MethodGet, "/api/v1/reports/times", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var report analytics.TimeReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 3, report.Overall.TotalResponses)
	assert.InDelta(t, 4.67, report.Overall.AverageTime, 0.001)
	require.Contains(t, report.ByQuestion, "q1")
}

func TestGetTimeReport_EmptyCorpus(t *testing.T) {
	svc := &stubReportService{err: services.ErrNoAssessmentData}
	router := newTestRouter(nil, svc, nil, nil)

	w := performJSON(router, http.MethodGet, "/api/v1/reports/times", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "No assessment data available for analysis", resp.Message)
}

func TestGetTimeReport_StorageFailure(t *testing.T) {
	svc := &stubReportService{
		err: fmt.Errorf("%w: connection refused", services.ErrStorageUnavailable),
	}
	router := newTestRouter(nil, svc, nil, nil)

	w := performJSON(router, http.MethodGet, "/api/v1/reports/times", nil)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Assessment storage unavailable", resp.Message)
}

func TestGetMovementReport(t *testing.T) {
	svc := &stubReportService{
		movements: &analytics.MovementReport{
			Overall: analytics.OverallMovementStats{
				TotalTracked:     2,
				AverageMovements: 7,
			},
		},
	}
	router := newTestRouter(nil, svc, nil, nil)

	w := performJSON(router, http.MethodGet, "/api/v1/reports/movements", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var report analytics.MovementReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 2, report.Overall.TotalTracked)
}

func TestGetPatternReport(t *testing.T) {
	svc := &stubReportService{
		patterns: &analytics.UserPatternReport{
			TotalUsers: 2,
			Categories: map[string]analytics.PatternCategory{
				"fast_decisive": {Count: 1, ExampleNames: []string{"Ana Lima"}},
			},
		},
	}
	router := newTestRouter(nil, svc, nil, nil)

	w := performJSON(router, http.MethodGet, "/api/v1/reports/patterns", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var report analytics.UserPatternReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 2, report.TotalUsers)
	require.Contains(t, report.Categories, "fast_decisive")
	assert.Equal(t, []string{"Ana Lima"}, report.Categories["fast_decisive"].ExampleNames)
}

func TestGetPatternReport_EmptyCorpus(t *testing.T) {
	svc := &stubReportService{err: services.ErrNoAssessmentData}
	router := newTestRouter(nil, svc, nil, nil)

	w := performJSON(router, http.MethodGet, "/api/v1/reports/patterns", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No assessment data available for analysis")
}

func TestExportReports_Workbook(t *testing.T) {
	svc := &stubExportService{workbook: []byte("workbook-bytes")}
	router := newTestRouter(nil, nil, svc, nil)

	w := performJSON(router, http.MethodGet, "/api/v1/reports/export", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, contentTypeXLSX, w.Header().Get("Content-Type"))

	disposition := w.Header().Get("Content-Disposition")
	assert.Contains(t, disposition, "attachment; filename=assessment_reports_")
	assert.Contains(t, disposition, ".xlsx")
	assert.Equal(t, "workbook-bytes", w.Body.String())
}

func TestExportReports_CSV(t *testing.T) {
	svc := &stubExportService{csv: []byte("User ID,User Name\n")}
	router := newTestRouter(nil, nil, svc, nil)

	w := performJSON(router, http.MethodGet, "/api/v1/reports/export?format=csv", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, contentTypeCSV, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	assert.Equal(t, "User ID,User Name\n", w.Body.String())
}

func TestExportReports_FormatIsCaseInsensitive(t *testing.T) {
	svc := &stubExportService{csv: []byte("User ID\n")}
	router := newTestRouter(nil, nil, svc, nil)

	w := performJSON(router, http.MethodGet, "/api/v1/reports/export?format=CSV", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, contentTypeCSV, w.Header().Get("Content-Type"))
}

func TestExportReports_UnsupportedFormat(t *testing.T) {
	svc := &stubExportService{workbook: []byte("unused")}
	router := newTestRouter(nil, nil, svc, nil)

	w := performJSON(router, http.MethodGet, "/api/v1/reports/export?format=pdf", nil)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Unsupported export format", resp.Message)
	assert.Contains(t, resp.Details.(string), "pdf")
}

func TestExportReports_ExportFailure(t *testing.T) {
	svc := &stubExportService{
		err: fmt.Errorf("%w: connection refused", services.ErrStorageUnavailable),
	}
	router := newTestRouter(nil, nil, svc, nil)

	w := performJSON(router, http.MethodGet, "/api/v1/reports/export", nil)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}
