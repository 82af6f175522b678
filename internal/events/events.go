package events

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/quadrantlabs/assessment-tracking-service/internal/models"
)

// EventType represents different types of tracking events
type EventType string

const (
	// Submission events
	EventAssessmentSubmitted EventType = "assessment.submitted"

	// Report events
	EventReportGenerated EventType = "report.generated"
)

const (
	eventSource  = "assessment-tracking-service"
	eventVersion = "1.0"
)

// Event is the base envelope for all published events
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Event payloads

type AssessmentSubmittedEvent struct {
	UserID               string    `json:"user_id"`
	UserName             string    `json:"user_name"`
	AnsweredQuestions    int       `json:"answered_questions"`
	TotalQuestions       int       `json:"total_questions"`
	TotalTimeMinutes     float64   `json:"total_time_minutes"`
	TotalCursorMovements int       `json:"total_cursor_movements"`
	SubmittedAt          time.Time `json:"submitted_at"`
}

type ReportGeneratedEvent struct {
	ReportType  string    `json:"report_type"`
	TotalUsers  int       `json:"total_users"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Event factory functions

func NewAssessmentSubmittedEvent(record *models.AssessmentRecord) *Event {
	return &Event{
		ID:        generateEventID(),
		Type:      EventAssessmentSubmitted,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   eventVersion,
		Data: AssessmentSubmittedEvent{
			UserID:               record.UserID,
			UserName:             record.UserName,
			AnsweredQuestions:    record.AnsweredQuestions,
			TotalQuestions:       record.TotalQuestions,
			TotalTimeMinutes:     record.Analytics.TotalTimeMinutes,
			TotalCursorMovements: record.Analytics.TotalCursorMovements,
			SubmittedAt:          record.SubmittedAt,
		},
	}
}

func NewReportGeneratedEvent(reportType string, totalUsers int, generatedAt time.Time) *Event {
	return &Event{
		ID:        generateEventID(),
		Type:      EventReportGenerated,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   eventVersion,
		Data: ReportGeneratedEvent{
			ReportType:  reportType,
			TotalUsers:  totalUsers,
			GeneratedAt: generatedAt,
		},
	}
}

// Helper function to generate unique event IDs
func generateEventID() string {
	return watermill.NewUUID()
}
