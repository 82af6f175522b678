package models

// CursorSample is a single pointer position captured by the client-side tracker.
type CursorSample struct {
	X         int   `json:"x" bson:"x"`
	Y         int   `json:"y" bson:"y"`
	Timestamp int64 `json:"timestamp" bson:"timestamp"` // epoch milliseconds, client clock
}

// CursorTrack holds the raw movement trace recorded while one question was displayed.
// TotalMovements is reported by the client and may disagree with len(Movements);
// the analytics layer decides which one to trust.
type CursorTrack struct {
	Movements      []CursorSample `json:"movements" bson:"movements"`
	TotalMovements int            `json:"total_movements" bson:"total_movements"`
	FirstMovement  *CursorSample  `json:"first_movement,omitempty" bson:"first_movement,omitempty"`
	LastMovement   *CursorSample  `json:"last_movement,omitempty" bson:"last_movement,omitempty"`
}

// ResponseTiming captures how long a user spent on one question before selecting.
type ResponseTiming struct {
	ResponseTimeMs      int64   `json:"response_time_ms" bson:"response_time_ms"`
	ResponseTimeSeconds float64 `json:"response_time_seconds" bson:"response_time_seconds"`
	SelectedOption      string  `json:"selected_option" bson:"selected_option"`
	Timestamp           string  `json:"timestamp" bson:"timestamp"` // client clock, informational only
}
