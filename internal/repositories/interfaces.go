package repositories

import (
	"context"

	"github.com/quadrantlabs/assessment-tracking-service/internal/models"
)

// AssessmentRepository is the storage contract shared by all backends.
// List order is deterministic (user_id asc, then submitted_at asc) so that
// corpus-wide analytics produce stable output.
type AssessmentRepository interface {
	// Create persists a new assessment record
	Create(ctx context.Context, record *models.AssessmentRecord) error

	// List returns the full corpus in deterministic order
	List(ctx context.Context) ([]*models.AssessmentRecord, error)

	// GetLatestByUser returns the most recent record for a user, nil when absent
	GetLatestByUser(ctx context.Context, userID string) (*models.AssessmentRecord, error)

	// Count returns the number of stored records
	Count(ctx context.Context) (int64, error)
}
