package validator

import (
	"fmt"
	"sort"

	"github.com/quadrantlabs/assessment-tracking-service/internal/errors"
	"github.com/quadrantlabs/assessment-tracking-service/internal/models"
)

// SubmissionValidator handles submission business rules that struct tags
// cannot express
type SubmissionValidator struct{}

// NewSubmissionValidator creates a new submission validator
func NewSubmissionValidator() *SubmissionValidator {
	return &SubmissionValidator{}
}

// Validate checks cross-field coherence of a submission request
func (v *SubmissionValidator) Validate(req *models.SubmissionRequest) ValidationErrors {
	var errs ValidationErrors

	if len(req.Responses) > req.TotalQuestions {
		errs = append(errs, *errors.NewValidationErrorWithRule(
			"responses",
			fmt.Sprintf("answered questions (%d) cannot exceed total questions (%d)", len(req.Responses), req.TotalQuestions),
			"answered_within_total",
			len(req.Responses),
		))
	}

	errs = append(errs, v.validateTimings(req.ResponseTimings)...)
	errs = append(errs, v.validateCursorTracks(req.CursorMovements)...)

	return errs
}

func (v *SubmissionValidator) validateTimings(timings map[string]models.ResponseTiming) ValidationErrors {
	var errs ValidationErrors

	questionIDs := make([]string, 0, len(timings))
	for questionID := range timings {
		questionIDs = append(questionIDs, questionID)
	}
	sort.Strings(questionIDs)

	for _, questionID := range questionIDs {
		timing := timings[questionID]
		if timing.ResponseTimeMs < 0 || timing.ResponseTimeSeconds < 0 {
			errs = append(errs, *errors.NewValidationErrorWithRule(
				"response_timings",
				fmt.Sprintf("question '%s' has a negative response time", questionID),
				"non_negative_timing",
				questionID,
			))
		}
	}

	return errs
}

func (v *SubmissionValidator) validateCursorTracks(tracks map[string]models.CursorTrack) ValidationErrors {
	var errs ValidationErrors

	questionIDs := make([]string, 0, len(tracks))
	for questionID := range tracks {
		questionIDs = append(questionIDs, questionID)
	}
	sort.Strings(questionIDs)

	for _, questionID := range questionIDs {
		if tracks[questionID].TotalMovements < 0 {
			errs = append(errs, *errors.NewValidationErrorWithRule(
				"cursor_movements",
				fmt.Sprintf("question '%s' reports a negative movement count", questionID),
				"non_negative_movements",
				questionID,
			))
		}
	}

	return errs
}
