package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/quadrantlabs/assessment-tracking-service/internal/models"
	"github.com/quadrantlabs/assessment-tracking-service/internal/repositories"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AssessmentPostgreSQL struct {
	db *gorm.DB
}

func NewAssessmentPostgreSQL(db *gorm.DB) repositories.AssessmentRepository {
	return &AssessmentPostgreSQL{db: db}
}

// Create persists the record with its payload maps as jsonb columns
func (a *AssessmentPostgreSQL) Create(ctx context.Context, record *models.AssessmentRecord) error {
	stored, err := toStored(record)
	if err != nil {
		return err
	}

	if err := a.db.WithContext(ctx).Create(stored).Error; err != nil {
		return fmt.Errorf("failed to create assessment record: %w", err)
	}

	return nil
}

func (a *AssessmentPostgreSQL) List(ctx context.Context) ([]*models.AssessmentRecord, error) {
	var stored []models.StoredAssessment
	err := a.db.WithContext(ctx).
		Order("user_id ASC").
		Order("submitted_at ASC").
		Find(&stored).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list assessment records: %w", err)
	}

	records := make([]*models.AssessmentRecord, 0, len(stored))
	for i := range stored {
		record, err := toRecord(&stored[i])
		if err != nil {
			return nil, fmt.Errorf("failed to decode assessment record %d: %w", stored[i].ID, err)
		}
		records = append(records, record)
	}

	return records, nil
}

func (a *AssessmentPostgreSQL) GetLatestByUser(ctx context.Context, userID string) (*models.AssessmentRecord, error) {
	var stored models.StoredAssessment
	err := a.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("submitted_at DESC").
		First(&stored).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest assessment record for %s: %w", userID, err)
	}

	return toRecord(&stored)
}

func (a *AssessmentPostgreSQL) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := a.db.WithContext(ctx).Model(&models.StoredAssessment{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count assessment records: %w", err)
	}
	return count, nil
}

func toStored(record *models.AssessmentRecord) (*models.StoredAssessment, error) {
	responses, err := json.Marshal(record.Responses)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal responses: %w", err)
	}
	timings, err := json.Marshal(record.ResponseTimings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response timings: %w", err)
	}
	movements, err := json.Marshal(record.CursorMovements)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cursor movements: %w", err)
	}
	analytics, err := json.Marshal(record.Analytics)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analytics: %w", err)
	}
	cursorStats, err := json.Marshal(record.CursorStatistics)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cursor statistics: %w", err)
	}

	return &models.StoredAssessment{
		UserID:            record.UserID,
		UserName:          record.UserName,
		EmailID:           record.EmailID,
		PhoneNumber:       record.PhoneNumber,
		SubmittedAt:       record.SubmittedAt,
		TotalQuestions:    record.TotalQuestions,
		AnsweredQuestions: record.AnsweredQuestions,
		Responses:         datatypes.JSON(responses),
		ResponseTimings:   datatypes.JSON(timings),
		CursorMovements:   datatypes.JSON(movements),
		Analytics:         datatypes.JSON(analytics),
		CursorStatistics:  datatypes.JSON(cursorStats),
	}, nil
}

func toRecord(stored *models.StoredAssessment) (*models.AssessmentRecord, error) {
	record := &models.AssessmentRecord{
		UserID:            stored.UserID,
		UserName:          stored.UserName,
		EmailID:           stored.EmailID,
		PhoneNumber:       stored.PhoneNumber,
		SubmittedAt:       stored.SubmittedAt,
		TotalQuestions:    stored.TotalQuestions,
		AnsweredQuestions: stored.AnsweredQuestions,
	}

	if len(stored.Responses) > 0 {
		if err := json.Unmarshal(stored.Responses, &record.Responses); err != nil {
			return nil, fmt.Errorf("failed to unmarshal responses: %w", err)
		}
	}
	if len(stored.ResponseTimings) > 0 {
		if err := json.Unmarshal(stored.ResponseTimings, &record.ResponseTimings); err != nil {
			return nil, fmt.Errorf("failed to unmarshal response timings: %w", err)
		}
	}
	if len(stored.CursorMovements) > 0 {
		if err := json.Unmarshal(stored.CursorMovements, &record.CursorMovements); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cursor movements: %w", err)
		}
	}
	if len(stored.Analytics) > 0 {
		if err := json.Unmarshal(stored.Analytics, &record.Analytics); err != nil {
			return nil, fmt.Errorf("failed to unmarshal analytics: %w", err)
		}
	}
	if len(stored.CursorStatistics) > 0 {
		if err := json.Unmarshal(stored.CursorStatistics, &record.CursorStatistics); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cursor statistics: %w", err)
		}
	}

	return record, nil
}
