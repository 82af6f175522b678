package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/quadrantlabs/assessment-tracking-service/internal/analytics"
	"github.com/quadrantlabs/assessment-tracking-service/internal/cache"
	"github.com/quadrantlabs/assessment-tracking-service/internal/events"
	"github.com/quadrantlabs/assessment-tracking-service/internal/models"
	"github.com/quadrantlabs/assessment-tracking-service/internal/repositories"
)

// Cache keys for rendered corpus reports. Submissions invalidate the whole
// prefix at once.
const (
	reportCacheKeyTimes     = "report:times"
	reportCacheKeyMovements = "report:movements"
	reportCacheKeyPatterns  = "report:patterns"
	reportCachePattern      = "report:*"
)

// Report type labels carried in report.generated events.
const (
	ReportTypeTimes     = "response_times"
	ReportTypeMovements = "cursor_movements"
	ReportTypePatterns  = "user_patterns"
)

// AnalysisOverview bundles all corpus reports with the submission listing in
// one snapshot, for the console report and the workbook export. Report fields
// are nil when the corpus holds no usable samples for them.
type AnalysisOverview struct {
	TotalSubmissions int                          `json:"total_submissions"`
	Summaries        []models.AssessmentSummary   `json:"summaries"`
	Times            *analytics.TimeReport        `json:"times,omitempty"`
	Movements        *analytics.MovementReport    `json:"movements,omitempty"`
	Patterns         *analytics.UserPatternReport `json:"patterns,omitempty"`
	GeneratedAt      time.Time                    `json:"generated_at"`
}

// ReportService computes corpus-wide analyses over the stored submissions.
// Individual reports are cached; a report over an empty corpus surfaces
// ErrNoAssessmentData.
type ReportService interface {
	TimeReport(ctx context.Context) (*analytics.TimeReport, error)
	MovementReport(ctx context.Context) (*analytics.MovementReport, error)
	PatternReport(ctx context.Context) (*analytics.UserPatternReport, error)
	Overview(ctx context.Context) (*AnalysisOverview, error)
}

type reportService struct {
	repo             repositories.AssessmentRepository
	cache            cache.CacheService
	eventPublisher   events.Publisher
	logger           *slog.Logger
	cacheTTL         time.Duration
	recountMovements bool
	reportTopic      string
}

func NewReportService(
	repo repositories.AssessmentRepository,
	cache cache.CacheService,
	eventPublisher events.Publisher,
	logger *slog.Logger,
	cacheTTL time.Duration,
	recountMovements bool,
	reportTopic string,
) ReportService {
	return &reportService{
		repo:             repo,
		cache:            cache,
		eventPublisher:   eventPublisher,
		logger:           logger,
		cacheTTL:         cacheTTL,
		recountMovements: recountMovements,
		reportTopic:      reportTopic,
	}
}

// ===== CORPUS REPORTS =====

func (s *reportService) TimeReport(ctx context.Context) (*analytics.TimeReport, error) {
	var cached analytics.TimeReport
	if s.fromCache(ctx, reportCacheKeyTimes, &cached) {
		return &cached, nil
	}

	s.logger.Info("Generating response time report")

	records, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	report := analytics.BuildTimeReport(records)
	if report == nil {
		return nil, ErrNoAssessmentData
	}
	report.GeneratedAt = time.Now().UTC()

	s.store(ctx, reportCacheKeyTimes, report)
	s.publishGeneratedEvent(ctx, ReportTypeTimes, len(records), report.GeneratedAt)

	return report, nil
}

func (s *reportService) MovementReport(ctx context.Context) (*analytics.MovementReport, error) {
	var cached analytics.MovementReport
	if s.fromCache(ctx, reportCacheKeyMovements, &cached) {
		return &cached, nil
	}

	s.logger.Info("Generating cursor movement report", "recount_movements", s.recountMovements)

	records, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	report := analytics.BuildMovementReport(records, s.recountMovements)
	if report == nil {
		return nil, ErrNoAssessmentData
	}
	report.GeneratedAt = time.Now().UTC()

	s.store(ctx, reportCacheKeyMovements, report)
	s.publishGeneratedEvent(ctx, ReportTypeMovements, len(records), report.GeneratedAt)

	return report, nil
}

func (s *reportService) PatternReport(ctx context.Context) (*analytics.UserPatternReport, error) {
	var cached analytics.UserPatternReport
	if s.fromCache(ctx, reportCacheKeyPatterns, &cached) {
		return &cached, nil
	}

	s.logger.Info("Generating user pattern report")

	records, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	report := analytics.BuildPatternReport(records)
	if report == nil {
		return nil, ErrNoAssessmentData
	}
	report.GeneratedAt = time.Now().UTC()

	s.store(ctx, reportCacheKeyPatterns, report)
	s.publishGeneratedEvent(ctx, ReportTypePatterns, len(records), report.GeneratedAt)

	return report, nil
}

// ===== OVERVIEW =====

// Overview builds every report from a single corpus read. Unlike the
// per-report methods it never fails on an empty corpus: the export and the
// console report render their own no-data shapes from nil fields.
func (s *reportService) Overview(ctx context.Context) (*AnalysisOverview, error) {
	s.logger.Info("Building analysis overview")

	records, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	overview := &AnalysisOverview{
		TotalSubmissions: len(records),
		Summaries:        summarizeRecords(records),
		Times:            analytics.BuildTimeReport(records),
		Movements:        analytics.BuildMovementReport(records, s.recountMovements),
		Patterns:         analytics.BuildPatternReport(records),
		GeneratedAt:      now,
	}
	if overview.Times != nil {
		overview.Times.GeneratedAt = now
	}
	if overview.Movements != nil {
		overview.Movements.GeneratedAt = now
	}
	if overview.Patterns != nil {
		overview.Patterns.GeneratedAt = now
	}

	return overview, nil
}

// ===== CACHE AND EVENTS =====

func (s *reportService) snapshot(ctx context.Context) ([]*models.AssessmentRecord, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return records, nil
}

// fromCache loads a cached report into out. Failures other than a miss are
// logged and treated as a miss so reporting survives a cache outage.
func (s *reportService) fromCache(ctx context.Context, key string, out interface{}) bool {
	err := s.cache.Get(ctx, key, out)
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Report cache read failed", "key", key, "error", err)
	}
	return false
}

func (s *reportService) store(ctx context.Context, key string, report interface{}) {
	if err := s.cache.Set(ctx, key, report, s.cacheTTL); err != nil {
		s.logger.Warn("Report cache write failed", "key", key, "error", err)
	}
}

func (s *reportService) publishGeneratedEvent(ctx context.Context, reportType string, totalUsers int, generatedAt time.Time) {
	event := events.NewReportGeneratedEvent(reportType, totalUsers, generatedAt)
	if err := s.eventPublisher.Publish(ctx, s.reportTopic, event); err != nil {
		s.logger.Warn("Failed to publish report event", "report_type", reportType, "error", err)
	}
}
