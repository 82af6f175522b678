package models

import "time"

// UserInfo identifies the submission a drill-down belongs to.
type UserInfo struct {
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name"`
	EmailID     string    `json:"email_id"`
	SubmittedAt time.Time `json:"timestamp"`
}

// CompletionStats summarizes how much of the assessment was answered.
// CompletionRate is a display percentage such as "85.0%".
type CompletionStats struct {
	TotalQuestions    int    `json:"total_questions"`
	AnsweredQuestions int    `json:"answered_questions"`
	CompletionRate    string `json:"completion_rate"`
}

// CursorActivity is the per-question movement presence indicator.
type CursorActivity struct {
	TotalMovements  int  `json:"total_movements"`
	HasMovementData bool `json:"has_movement_data"`
}

// QuestionDetail is one row of the per-question drill-down.
type QuestionDetail struct {
	QuestionID     string          `json:"question_id"`
	SelectedOption string          `json:"selected_option"`
	Timing         *ResponseTiming `json:"timing,omitempty"`
	CursorActivity *CursorActivity `json:"cursor_activity,omitempty"`
}

// UserAnalyticsDetail is the full analytics view of a single user's latest
// submission: completion, timing summary, cursor aggregates and a row per
// answered question.
type UserAnalyticsDetail struct {
	UserInfo        UserInfo            `json:"user_info"`
	Completion      CompletionStats     `json:"completion"`
	Timing          SubmissionAnalytics `json:"timing"`
	CursorTracking  CursorStatistics    `json:"cursor_tracking"`
	QuestionDetails []QuestionDetail    `json:"question_details"`
}
