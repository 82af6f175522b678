package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/quadrantlabs/assessment-tracking-service/internal/analytics"
	"github.com/quadrantlabs/assessment-tracking-service/internal/models"
	"github.com/xuri/excelize/v2"
)

// Workbook sheet names.
const (
	sheetSubmissions     = "Submissions"
	sheetResponseTimes   = "Response Times"
	sheetCursorMovements = "Cursor Movements"
	sheetUserPatterns    = "User Patterns"
)

// ExportService renders the analysis corpus into downloadable files. An empty
// corpus exports headers-only sheets, still a valid file.
type ExportService interface {
	ExportWorkbook(ctx context.Context) ([]byte, error)
	ExportSummariesCSV(ctx context.Context) ([]byte, error)
}

type exportService struct {
	submissions SubmissionService
	reports     ReportService
	logger      *slog.Logger
}

func NewExportService(submissions SubmissionService, reports ReportService, logger *slog.Logger) ExportService {
	return &exportService{
		submissions: submissions,
		reports:     reports,
		logger:      logger,
	}
}

// ===== WORKBOOK EXPORT =====

func (s *exportService) ExportWorkbook(ctx context.Context) ([]byte, error) {
	s.logger.Info("Exporting analysis workbook")

	overview, err := s.reports.Overview(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()

	if err := s.writeSubmissionsSheet(f, overview.Summaries); err != nil {
		return nil, err
	}
	if err := s.writeTimesSheet(f, overview.Times); err != nil {
		return nil, err
	}
	if err := s.writeMovementsSheet(f, overview.Movements); err != nil {
		return nil, err
	}
	if err := s.writePatternsSheet(f, overview.Patterns); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.Info("Analysis workbook exported", "total_submissions", overview.TotalSubmissions)

	return buf.Bytes(), nil
}

func (s *exportService) writeSubmissionsSheet(f *excelize.File, summaries []models.AssessmentSummary) error {
	index, err := f.NewSheet(sheetSubmissions)
	if err != nil {
		return fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []string{
		"User ID", "User Name", "Email", "Submitted At", "Answered Questions",
		"Total Questions", "Total Time (minutes)", "Avg Time per Question (s)", "Total Cursor Movements",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetSubmissions, cell, header)
	}

	for rowIndex, summary := range summaries {
		row := []interface{}{
			summary.UserID,
			summary.UserName,
			summary.EmailID,
			summary.SubmittedAt.Format("2006-01-02 15:04:05"),
			summary.AnsweredQuestions,
			summary.TotalQuestions,
			summary.TotalTimeMinutes,
			summary.AverageTimePerQuestion,
			summary.TotalCursorMovements,
		}
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetSubmissions, cell, value)
		}
	}

	return nil
}

func (s *exportService) writeTimesSheet(f *excelize.File, report *analytics.TimeReport) error {
	if _, err := f.NewSheet(sheetResponseTimes); err != nil {
		return fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	headers := []string{
		"Question ID", "Average Time (s)", "Median Time (s)", "Std Dev",
		"Min Time (s)", "Max Time (s)", "Sample Size",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetResponseTimes, cell, header)
	}

	if report == nil {
		return nil
	}

	questionIDs := make([]string, 0, len(report.ByQuestion))
	for qID := range report.ByQuestion {
		questionIDs = append(questionIDs, qID)
	}
	sort.Strings(questionIDs)

	for rowIndex, questionID := range questionIDs {
		stats := report.ByQuestion[questionID]
		row := []interface{}{
			questionID,
			stats.AverageTime,
			stats.MedianTime,
			stats.StdDev,
			stats.MinTime,
			stats.MaxTime,
			stats.SampleSize,
		}
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetResponseTimes, cell, value)
		}
	}

	return nil
}

func (s *exportService) writeMovementsSheet(f *excelize.File, report *analytics.MovementReport) error {
	if _, err := f.NewSheet(sheetCursorMovements); err != nil {
		return fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	headers := []string{
		"Question ID", "Average Movements", "Median Movements", "Std Dev", "Sample Size",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetCursorMovements, cell, header)
	}

	if report == nil {
		return nil
	}

	questionIDs := make([]string, 0, len(report.ByQuestion))
	for qID := range report.ByQuestion {
		questionIDs = append(questionIDs, qID)
	}
	sort.Strings(questionIDs)

	for rowIndex, questionID := range questionIDs {
		stats := report.ByQuestion[questionID]
		row := []interface{}{
			questionID,
			stats.AverageMovements,
			stats.MedianMovements,
			stats.StdDev,
			stats.SampleSize,
		}
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetCursorMovements, cell, value)
		}
	}

	return nil
}

func (s *exportService) writePatternsSheet(f *excelize.File, report *analytics.UserPatternReport) error {
	if _, err := f.NewSheet(sheetUserPatterns); err != nil {
		return fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	headers := []string{"Category", "Count", "Description", "Example Names"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetUserPatterns, cell, header)
	}

	if report == nil {
		return nil
	}

	for rowIndex, key := range analytics.CategoryKeys() {
		category := report.Categories[key]
		row := []interface{}{
			key,
			category.Count,
			category.Description,
			strings.Join(category.ExampleNames, ", "),
		}
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetUserPatterns, cell, value)
		}
	}

	return nil
}

// ===== CSV EXPORT =====

func (s *exportService) ExportSummariesCSV(ctx context.Context) ([]byte, error) {
	s.logger.Info("Exporting submission summaries CSV")

	summaries, err := s.submissions.List(ctx)
	if err != nil {
		return nil, err
	}

	var buf strings.Builder
	writer := csv.NewWriter(&buf)

	headers := []string{
		"User ID", "User Name", "Email", "Submitted At", "Answered Questions",
		"Total Questions", "Total Time (minutes)", "Avg Time per Question (s)", "Total Cursor Movements",
	}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, summary := range summaries {
		row := []string{
			summary.UserID,
			summary.UserName,
			summary.EmailID,
			summary.SubmittedAt.Format(time.RFC3339),
			strconv.Itoa(summary.AnsweredQuestions),
			strconv.Itoa(summary.TotalQuestions),
			strconv.FormatFloat(summary.TotalTimeMinutes, 'f', -1, 64),
			strconv.FormatFloat(summary.AverageTimePerQuestion, 'f', -1, 64),
			strconv.Itoa(summary.TotalCursorMovements),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return []byte(buf.String()), nil
}
