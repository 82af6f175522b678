package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/quadrantlabs/assessment-tracking-service/internal/models"
	"github.com/quadrantlabs/assessment-tracking-service/internal/repositories"
)

// AssessmentMemory is an in-memory repository used by unit tests and as a
// zero-dependency development backend
type AssessmentMemory struct {
	mu      sync.RWMutex
	records []*models.AssessmentRecord
}

func NewAssessmentMemory() repositories.AssessmentRepository {
	return &AssessmentMemory{}
}

func (a *AssessmentMemory) Create(ctx context.Context, record *models.AssessmentRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.records = append(a.records, record)
	return nil
}

func (a *AssessmentMemory) List(ctx context.Context) ([]*models.AssessmentRecord, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	records := make([]*models.AssessmentRecord, len(a.records))
	copy(records, a.records)

	sort.Slice(records, func(i, j int) bool {
		if records[i].UserID != records[j].UserID {
			return records[i].UserID < records[j].UserID
		}
		return records[i].SubmittedAt.Before(records[j].SubmittedAt)
	})

	return records, nil
}

func (a *AssessmentMemory) GetLatestByUser(ctx context.Context, userID string) (*models.AssessmentRecord, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var latest *models.AssessmentRecord
	for _, record := range a.records {
		if record.UserID != userID {
			continue
		}
		if latest == nil || record.SubmittedAt.After(latest.SubmittedAt) {
			latest = record
		}
	}

	return latest, nil
}

func (a *AssessmentMemory) Count(ctx context.Context) (int64, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return int64(len(a.records)), nil
}
