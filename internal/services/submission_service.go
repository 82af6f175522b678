package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/quadrantlabs/assessment-tracking-service/internal/analytics"
	"github.com/quadrantlabs/assessment-tracking-service/internal/cache"
	"github.com/quadrantlabs/assessment-tracking-service/internal/events"
	"github.com/quadrantlabs/assessment-tracking-service/internal/models"
	"github.com/quadrantlabs/assessment-tracking-service/internal/repositories"
	"github.com/quadrantlabs/assessment-tracking-service/internal/validator"
)

// SubmissionService ingests completed assessment runs and serves the stored
// corpus back out: listings, per-user lookups and the per-user drill-down.
type SubmissionService interface {
	Submit(ctx context.Context, req *models.SubmissionRequest) (*models.AssessmentRecord, error)
	List(ctx context.Context) ([]models.AssessmentSummary, error)
	GetLatest(ctx context.Context, userID string) (*models.AssessmentRecord, error)
	UserAnalytics(ctx context.Context, userID string) (*models.UserAnalyticsDetail, error)
}

type submissionService struct {
	repo            repositories.AssessmentRepository
	cache           cache.CacheService
	eventPublisher  events.Publisher
	logger          *slog.Logger
	validator       *validator.Validator
	submissionTopic string
}

func NewSubmissionService(
	repo repositories.AssessmentRepository,
	cache cache.CacheService,
	eventPublisher events.Publisher,
	logger *slog.Logger,
	validator *validator.Validator,
	submissionTopic string,
) SubmissionService {
	return &submissionService{
		repo:            repo,
		cache:           cache,
		eventPublisher:  eventPublisher,
		logger:          logger,
		validator:       validator,
		submissionTopic: submissionTopic,
	}
}

// ===== INGESTION =====

func (s *submissionService) Submit(ctx context.Context, req *models.SubmissionRequest) (*models.AssessmentRecord, error) {
	s.logger.Info("Processing assessment submission", "user_name", req.UserName, "total_questions", req.TotalQuestions)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	record := buildRecord(req, time.Now().UTC())

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	s.logger.Info("Assessment submission stored",
		"user_id", record.UserID,
		"answered_questions", record.AnsweredQuestions,
		"total_time_minutes", record.Analytics.TotalTimeMinutes,
		"total_cursor_movements", record.CursorStatistics.TotalMovementsAllQuestions)

	// The corpus changed; cached reports are stale from here on.
	s.invalidateReports(ctx)
	s.publishSubmittedEvent(ctx, record)

	return record, nil
}

// invalidateReports drops every cached report. Failures degrade to a
// recompute on the next report request, so they are logged and swallowed.
func (s *submissionService) invalidateReports(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, reportCachePattern); err != nil {
		s.logger.Warn("Failed to invalidate report cache", "error", err)
	}
}

// publishSubmittedEvent is fire-and-forget: a broker outage must not fail
// the submission that is already stored.
func (s *submissionService) publishSubmittedEvent(ctx context.Context, record *models.AssessmentRecord) {
	event := events.NewAssessmentSubmittedEvent(record)
	if err := s.eventPublisher.Publish(ctx, s.submissionTopic, event); err != nil {
		s.logger.Warn("Failed to publish submission event", "user_id", record.UserID, "error", err)
	}
}

// ===== CORPUS QUERIES =====

func (s *submissionService) List(ctx context.Context) ([]models.AssessmentSummary, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return summarizeRecords(records), nil
}

// SummarizeRecord condenses one stored record into its listing row.
func SummarizeRecord(record *models.AssessmentRecord) models.AssessmentSummary {
	return models.AssessmentSummary{
		UserID:                 record.UserID,
		UserName:               record.UserName,
		EmailID:                record.EmailID,
		SubmittedAt:            record.SubmittedAt,
		AnsweredQuestions:      record.AnsweredQuestions,
		TotalQuestions:         record.TotalQuestions,
		TotalTimeMinutes:       record.Analytics.TotalTimeMinutes,
		AverageTimePerQuestion: record.Analytics.AverageTimePerQuestionSec,
		TotalCursorMovements:   record.CursorStatistics.TotalMovementsAllQuestions,
	}
}

// summarizeRecords condenses stored records into listing rows, newest first.
func summarizeRecords(records []*models.AssessmentRecord) []models.AssessmentSummary {
	summaries := make([]models.AssessmentSummary, 0, len(records))
	for _, record := range records {
		summaries = append(summaries, SummarizeRecord(record))
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].SubmittedAt.After(summaries[j].SubmittedAt)
	})

	return summaries
}

func (s *submissionService) GetLatest(ctx context.Context, userID string) (*models.AssessmentRecord, error) {
	record, err := s.repo.GetLatestByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if record == nil {
		return nil, ErrSubmissionNotFound
	}
	return record, nil
}

func (s *submissionService) UserAnalytics(ctx context.Context, userID string) (*models.UserAnalyticsDetail, error) {
	s.logger.Info("Building user analytics", "user_id", userID)

	record, err := s.GetLatest(ctx, userID)
	if err != nil {
		return nil, err
	}

	rate := analytics.CompletionRate(record.AnsweredQuestions, record.TotalQuestions)

	return &models.UserAnalyticsDetail{
		UserInfo: models.UserInfo{
			UserID:      record.UserID,
			UserName:    record.UserName,
			EmailID:     record.EmailID,
			SubmittedAt: record.SubmittedAt,
		},
		Completion: models.CompletionStats{
			TotalQuestions:    record.TotalQuestions,
			AnsweredQuestions: record.AnsweredQuestions,
			CompletionRate:    fmt.Sprintf("%.1f%%", rate*100),
		},
		Timing:          record.Analytics,
		CursorTracking:  record.CursorStatistics,
		QuestionDetails: buildQuestionDetails(record),
	}, nil
}

// buildQuestionDetails produces one row per answered question in question-id
// order. Timing and cursor rows are attached only when the client reported them.
func buildQuestionDetails(record *models.AssessmentRecord) []models.QuestionDetail {
	questionIDs := make([]string, 0, len(record.Responses))
	for questionID := range record.Responses {
		questionIDs = append(questionIDs, questionID)
	}
	sort.Strings(questionIDs)

	details := make([]models.QuestionDetail, 0, len(questionIDs))
	for _, questionID := range questionIDs {
		detail := models.QuestionDetail{
			QuestionID:     questionID,
			SelectedOption: record.Responses[questionID],
		}
		if timing, ok := record.ResponseTimings[questionID]; ok {
			t := timing
			detail.Timing = &t
		}
		if track, ok := record.CursorMovements[questionID]; ok {
			detail.CursorActivity = &models.CursorActivity{
				TotalMovements:  track.TotalMovements,
				HasMovementData: len(track.Movements) > 0,
			}
		}
		details = append(details, detail)
	}

	return details
}

// ===== RECORD CONSTRUCTION =====

// DeriveUserID builds the stable identity key used for storage and lookups:
// the lowercased user name with spaces replaced by underscores, joined to the
// phone number.
func DeriveUserID(userName, phone string) string {
	return strings.ReplaceAll(strings.ToLower(userName), " ", "_") + "_" + phone
}

func buildRecord(req *models.SubmissionRequest, submittedAt time.Time) *models.AssessmentRecord {
	return &models.AssessmentRecord{
		UserID:            DeriveUserID(req.UserName, req.Phone),
		UserName:          req.UserName,
		EmailID:           req.Email,
		PhoneNumber:       req.Phone,
		SubmittedAt:       submittedAt,
		Responses:         req.Responses,
		ResponseTimings:   req.ResponseTimings,
		CursorMovements:   req.CursorMovements,
		TotalQuestions:    req.TotalQuestions,
		AnsweredQuestions: len(req.Responses),
		Analytics:         buildSubmissionAnalytics(req),
		CursorStatistics:  analytics.ComputeCursorStatistics(req.CursorMovements),
	}
}

// buildSubmissionAnalytics derives the timing summary from the reported
// per-question timings. The per-question average is taken over answered
// questions and stays 0 when nothing was answered.
func buildSubmissionAnalytics(req *models.SubmissionRequest) models.SubmissionAnalytics {
	var totalMs int64
	for _, timing := range req.ResponseTimings {
		totalMs += timing.ResponseTimeMs
	}
	totalSeconds := float64(totalMs) / 1000

	summary := models.SubmissionAnalytics{
		TotalTimeMs:      totalMs,
		TotalTimeSeconds: analytics.Round2(totalSeconds),
		TotalTimeMinutes: analytics.Round2(totalSeconds / 60),
	}
	if answered := len(req.Responses); answered > 0 {
		summary.AverageTimePerQuestionSec = analytics.Round2(totalSeconds / float64(answered))
	}
	for _, track := range req.CursorMovements {
		summary.TotalCursorMovements += track.TotalMovements
	}

	return summary
}
