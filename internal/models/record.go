package models

import "time"

// SubmissionAnalytics is the per-submission timing summary derived at ingestion
// from the response timings. Values are rounded to 2 decimal places.
type SubmissionAnalytics struct {
	TotalTimeMs               int64   `json:"total_time_ms" bson:"total_time_ms"`
	TotalTimeSeconds          float64 `json:"total_time_seconds" bson:"total_time_seconds"`
	TotalTimeMinutes          float64 `json:"total_time_minutes" bson:"total_time_minutes"`
	AverageTimePerQuestionSec float64 `json:"average_time_per_question_seconds" bson:"average_time_per_question_seconds"`
	TotalCursorMovements      int     `json:"total_cursor_movements" bson:"total_cursor_movements"`
}

// MovementDetail describes the cursor path recorded for a single question.
// Only present for questions with at least two samples.
type MovementDetail struct {
	TotalMovements         int     `json:"total_movements" bson:"total_movements"`
	TotalDistancePixels    float64 `json:"total_distance_pixels" bson:"total_distance_pixels"`
	AverageDistancePerMove float64 `json:"average_distance_per_movement" bson:"average_distance_per_movement"`
}

// CursorStatistics aggregates the cursor telemetry of one submission.
type CursorStatistics struct {
	TotalQuestionsTracked       int                       `json:"total_questions_tracked" bson:"total_questions_tracked"`
	TotalMovementsAllQuestions  int                       `json:"total_movements_all_questions" bson:"total_movements_all_questions"`
	AverageMovementsPerQuestion float64                   `json:"average_movements_per_question" bson:"average_movements_per_question"`
	QuestionsWithMostMovement   string                    `json:"questions_with_most_movement,omitempty" bson:"questions_with_most_movement,omitempty"`
	QuestionsWithLeastMovement  string                    `json:"questions_with_least_movement,omitempty" bson:"questions_with_least_movement,omitempty"`
	MovementDetails             map[string]MovementDetail `json:"movement_details" bson:"movement_details"`
}

// AssessmentRecord is one user's enriched submission as persisted by the
// storage layer. Records are immutable once stored.
type AssessmentRecord struct {
	UserID      string    `json:"user_id" bson:"user_id"`
	UserName    string    `json:"user_name" bson:"user_name"`
	EmailID     string    `json:"email_id" bson:"email_id"`
	PhoneNumber string    `json:"phone_number" bson:"phone_number"`
	SubmittedAt time.Time `json:"timestamp" bson:"timestamp"`

	// Raw submission payload
	Responses       map[string]string         `json:"responses" bson:"responses"`
	ResponseTimings map[string]ResponseTiming `json:"response_timings" bson:"response_timings"`
	CursorMovements map[string]CursorTrack    `json:"cursor_movements" bson:"cursor_movements"`
	TotalQuestions  int                       `json:"total_questions" bson:"total_questions"`

	// Server-side enrichment
	AnsweredQuestions int                 `json:"answered_questions" bson:"answered_questions"`
	Analytics         SubmissionAnalytics `json:"analytics" bson:"analytics"`
	CursorStatistics  CursorStatistics    `json:"cursor_statistics" bson:"cursor_statistics"`
}

// AssessmentSummary is the condensed listing view of a stored record.
type AssessmentSummary struct {
	UserID                 string    `json:"user_id"`
	UserName               string    `json:"user_name"`
	EmailID                string    `json:"email_id"`
	SubmittedAt            time.Time `json:"timestamp"`
	AnsweredQuestions      int       `json:"answered_questions"`
	TotalQuestions         int       `json:"total_questions"`
	TotalTimeMinutes       float64   `json:"total_time_minutes"`
	AverageTimePerQuestion float64   `json:"average_time_per_question"`
	TotalCursorMovements   int       `json:"total_cursor_movements"`
}
