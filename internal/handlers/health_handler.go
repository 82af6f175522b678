package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quadrantlabs/assessment-tracking-service/internal/repositories"
	"github.com/quadrantlabs/assessment-tracking-service/internal/utils"
)

const serviceName = "assessment-tracking-service"

// HealthResponse reports service liveness and storage reachability
type HealthResponse struct {
	Status           string    `json:"status"`
	Service          string    `json:"service"`
	StorageBackend   string    `json:"storage_backend"`
	TotalAssessments int64     `json:"total_assessments"`
	Features         []string  `json:"features,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

type HealthHandler struct {
	BaseHandler
	repo           repositories.AssessmentRepository
	storageBackend string
}

func NewHealthHandler(
	repo repositories.AssessmentRepository,
	storageBackend string,
	logger utils.Logger,
) *HealthHandler {
	return &HealthHandler{
		BaseHandler:    NewBaseHandler(logger),
		repo:           repo,
		storageBackend: storageBackend,
	}
}

// HealthCheck reports service health
// @Summary Health check
// @Description Reports service status, the active storage backend and the stored submission count
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	count, err := h.repo.Count(c.Request.Context())
	if err != nil {
		h.LogWarn(c, "Storage unreachable during health check", "error", err.Error())
		c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status:         "unhealthy",
			Service:        serviceName,
			StorageBackend: h.storageBackend,
			Timestamp:      time.Now().UTC(),
		})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:           "healthy",
		Service:          serviceName,
		StorageBackend:   h.storageBackend,
		TotalAssessments: count,
		Features:         []string{"response_timing", "cursor_tracking", "detailed_analytics"},
		Timestamp:        time.Now().UTC(),
	})
}
