package models

import (
	"time"

	"gorm.io/datatypes"
)

// StoredAssessment is the relational projection of an AssessmentRecord used by
// the Postgres backend. The map-shaped payload fields are stored as jsonb so
// the analytics layer reads back the exact structure the client submitted.
type StoredAssessment struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"user_id" gorm:"not null;size:150;index:idx_assessment_records_user_time,priority:1"`
	UserName    string    `json:"user_name" gorm:"not null;size:100"`
	EmailID     string    `json:"email_id" gorm:"not null;size:150"`
	PhoneNumber string    `json:"phone_number" gorm:"not null;size:20"`
	SubmittedAt time.Time `json:"submitted_at" gorm:"not null;index:idx_assessment_records_user_time,priority:2"`

	TotalQuestions    int `json:"total_questions" gorm:"not null"`
	AnsweredQuestions int `json:"answered_questions" gorm:"not null"`

	// Submission payload and enrichment, stored verbatim
	Responses        datatypes.JSON `json:"responses" gorm:"type:jsonb"`
	ResponseTimings  datatypes.JSON `json:"response_timings" gorm:"type:jsonb"`
	CursorMovements  datatypes.JSON `json:"cursor_movements" gorm:"type:jsonb"`
	Analytics        datatypes.JSON `json:"analytics" gorm:"type:jsonb"`
	CursorStatistics datatypes.JSON `json:"cursor_statistics" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
}

func (StoredAssessment) TableName() string {
	return "assessment_records"
}
