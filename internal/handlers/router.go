package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/quadrantlabs/assessment-tracking-service/internal/repositories"
	"github.com/quadrantlabs/assessment-tracking-service/internal/services"
	"github.com/quadrantlabs/assessment-tracking-service/internal/utils"
)

type HandlerManager struct {
	submissionHandler *SubmissionHandler
	reportHandler     *ReportHandler
	healthHandler     *HealthHandler
}

func NewHandlerManager(
	submissionService services.SubmissionService,
	reportService services.ReportService,
	exportService services.ExportService,
	repo repositories.AssessmentRepository,
	storageBackend string,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		submissionHandler: NewSubmissionHandler(submissionService, logger),
		reportHandler:     NewReportHandler(reportService, exportService, logger),
		healthHandler:     NewHealthHandler(repo, storageBackend, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", hm.healthHandler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Assessment submission routes
		assessments := v1.Group("/assessments")
		{
			assessments.POST("", hm.submissionHandler.SubmitAssessment)
			assessments.GET("", hm.submissionHandler.ListAssessments)
			assessments.GET("/:user_id", hm.submissionHandler.GetLatestAssessment)
			assessments.GET("/:user_id/analytics", hm.submissionHandler.GetUserAnalytics)
		}

		// Corpus analysis routes
		reports := v1.Group("/reports")
		{
			reports.GET("/times", hm.reportHandler.GetTimeReport)
			reports.GET("/movements", hm.reportHandler.GetMovementReport)
			reports.GET("/patterns", hm.reportHandler.GetPatternReport)
			reports.GET("/export", hm.reportHandler.ExportReports)
		}
	}
}
