package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/quadrantlabs/assessment-tracking-service/internal/cache"
	"github.com/quadrantlabs/assessment-tracking-service/internal/config"
	"github.com/quadrantlabs/assessment-tracking-service/internal/events"
	"github.com/quadrantlabs/assessment-tracking-service/internal/repositories"
	"github.com/quadrantlabs/assessment-tracking-service/internal/repositories/filestore"
	"github.com/quadrantlabs/assessment-tracking-service/internal/repositories/memory"
	"github.com/quadrantlabs/assessment-tracking-service/internal/repositories/mongostore"
	"github.com/quadrantlabs/assessment-tracking-service/internal/repositories/postgres"
	"github.com/quadrantlabs/assessment-tracking-service/internal/services"
	"github.com/quadrantlabs/assessment-tracking-service/internal/validator"
	"github.com/quadrantlabs/assessment-tracking-service/pkg"
)

// application bundles the wired dependencies shared by the subcommands.
type application struct {
	cfg    *config.Config
	logger *slog.Logger

	repo      repositories.AssessmentRepository
	cache     cache.CacheService
	publisher events.Publisher

	submissions services.SubmissionService
	reports     services.ReportService
	exports     services.ExportService

	cleanups []func()
}

// newApplication opens the configured storage backend, cache, and event
// publisher, then builds the service layer on top of them.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{cfg: cfg, logger: logger}

	repo, err := app.openRepository()
	if err != nil {
		return nil, fmt.Errorf("open storage backend: %w", err)
	}
	app.repo = repo

	cacheService, err := app.openCache()
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("open cache: %w", err)
	}
	app.cache = cacheService

	publisher, err := cfg.Events.CreateEventPublisher(logger)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("create event publisher: %w", err)
	}
	app.publisher = publisher
	app.cleanups = append(app.cleanups, func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close event publisher", "error", err)
		}
	})

	app.submissions = services.NewSubmissionService(
		repo,
		cacheService,
		publisher,
		logger,
		validator.New(),
		cfg.Events.SubmissionTopic,
	)
	app.reports = services.NewReportService(
		repo,
		cacheService,
		publisher,
		logger,
		cfg.CacheTTL,
		cfg.RecountMovements,
		cfg.Events.ReportTopic,
	)
	app.exports = services.NewExportService(app.submissions, app.reports, logger)

	return app, nil
}

func (a *application) openRepository() (repositories.AssessmentRepository, error) {
	switch a.cfg.StorageBackend {
	case config.BackendFile:
		return filestore.NewAssessmentFileStore(a.cfg.DataDir, a.logger)
	case config.BackendPostgres:
		db, err := pkg.InitDatabase(a.cfg)
		if err != nil {
			return nil, err
		}
		return postgres.NewAssessmentPostgreSQL(db), nil
	case config.BackendMongo:
		db, disconnect, err := pkg.NewMongoDatabase(a.cfg)
		if err != nil {
			return nil, err
		}
		a.cleanups = append(a.cleanups, disconnect)
		return mongostore.NewAssessmentMongo(db), nil
	case config.BackendMemory:
		return memory.NewAssessmentMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", a.cfg.StorageBackend)
	}
}

func (a *application) openCache() (cache.CacheService, error) {
	if !a.cfg.CacheEnabled {
		return cache.NewNoopCache(), nil
	}

	client, err := pkg.NewRedisClient(a.cfg)
	if err != nil {
		return nil, err
	}
	a.cleanups = append(a.cleanups, func() {
		if err := client.Close(); err != nil {
			a.logger.Error("Failed to close redis client", "error", err)
		}
	})
	return cache.NewRedisCache(client, a.logger), nil
}

// Close releases held connections in reverse acquisition order.
func (a *application) Close() {
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		a.cleanups[i]()
	}
	a.cleanups = nil
}

// cliLogger keeps diagnostics on stderr so report output owns stdout.
func cliLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}
