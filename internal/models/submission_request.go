package models

// SubmissionRequest is the client payload for a completed assessment run.
// Analytics are recomputed server side; client-reported cursor totals are
// kept as submitted unless recounting is enabled.
type SubmissionRequest struct {
	UserName        string                    `json:"user_name" validate:"required,min=1,max=100"`
	Email           string                    `json:"email" validate:"required,email"`
	Phone           string                    `json:"phone" validate:"required,min=6,max=20,phone"`
	Responses       map[string]string         `json:"responses"`
	ResponseTimings map[string]ResponseTiming `json:"response_timings"`
	CursorMovements map[string]CursorTrack    `json:"cursor_movements"`
	TotalQuestions  int                       `json:"total_questions" validate:"required,gt=0"`
}
