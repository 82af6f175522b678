package services

import (
	"errors"

	apperrors "github.com/quadrantlabs/assessment-tracking-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrBadRequest       = errors.New("bad request")

	// Submission specific errors
	ErrSubmissionNotFound = errors.New("no assessment submission found for user")

	// Analysis specific errors
	ErrNoAssessmentData = errors.New("no assessment data available for analysis")

	// Storage errors
	ErrStorageUnavailable = errors.New("assessment storage unavailable")

	// Export errors
	ErrUnsupportedExportFormat = errors.New("unsupported export format")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrSubmissionNotFound)
}

// IsNoData checks if error represents an empty analysis corpus
func IsNoData(err error) bool {
	return errors.Is(err, ErrNoAssessmentData)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsStorageUnavailable checks if error represents a storage failure
func IsStorageUnavailable(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}
