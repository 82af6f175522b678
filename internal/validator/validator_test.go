package validator

import (
	"testing"

	"github.com/quadrantlabs/assessment-tracking-service/internal/errors"
	"github.com/quadrantlabs/assessment-tracking-service/internal/models"
)

func validRequest() *models.SubmissionRequest {
	return &models.SubmissionRequest{
		UserName: "Ana Lima",
		Email:    "ana@example.com",
		Phone:    "+55 11 98765-4321",
		Responses: map[string]string{
			"q1": "option_a",
		},
		ResponseTimings: map[string]models.ResponseTiming{
			"q1": {ResponseTimeMs: 1500, ResponseTimeSeconds: 1.5, SelectedOption: "option_a"},
		},
		CursorMovements: map[string]models.CursorTrack{
			"q1": {TotalMovements: 3, Movements: []models.CursorSample{{X: 0, Y: 0, Timestamp: 1}}},
		},
		TotalQuestions: 5,
	}
}

func TestValidateAcceptsCompleteRequest(t *testing.T) {
	v := New()

	if err := v.Validate(validRequest()); err != nil {
		t.Errorf("Expected valid request to pass, got: %v", err)
	}
}

func TestValidateStructReportsJSONFieldNames(t *testing.T) {
	v := New()

	req := validRequest()
	req.Email = "not-an-email"

	err := v.ValidateStruct(req)
	if err == nil {
		t.Fatal("Expected struct validation to fail")
	}

	errs := errors.ToValidationErrors(err)
	if len(errs) != 1 {
		t.Fatalf("Expected 1 validation error, got %d", len(errs))
	}
	if errs[0].Field != "email" {
		t.Errorf("Expected json field name 'email', got '%s'", errs[0].Field)
	}
	if errs[0].Rule != "email" {
		t.Errorf("Expected rule 'email', got '%s'", errs[0].Rule)
	}
}

func TestValidatePhoneShape(t *testing.T) {
	v := New()

	cases := []struct {
		phone string
		valid bool
	}{
		{"+55 11 98765-4321", true},
		{"0912345678", true},
		{"123-456", true},
		{"12ab3456", false},
		{"(12) 345678", false},
		{"++--  ", false},
	}

	for _, tc := range cases {
		req := validRequest()
		req.Phone = tc.phone

		err := v.ValidateStruct(req)
		if tc.valid && err != nil {
			t.Errorf("Expected phone '%s' to be valid, got: %v", tc.phone, err)
		}
		if !tc.valid && err == nil {
			t.Errorf("Expected phone '%s' to be rejected", tc.phone)
		}
	}
}

func TestValidateRejectsAnsweredOverTotal(t *testing.T) {
	v := New()

	req := validRequest()
	req.Responses = map[string]string{"q1": "a", "q2": "b", "q3": "c"}
	req.TotalQuestions = 2

	err := v.Validate(req)
	if err == nil {
		t.Fatal("Expected validation to fail")
	}

	errs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("Expected ValidationErrors, got %T", err)
	}
	if errs[0].Rule != "answered_within_total" {
		t.Errorf("Expected rule 'answered_within_total', got '%s'", errs[0].Rule)
	}
}

func TestValidateRejectsNegativeTimings(t *testing.T) {
	v := New()

	req := validRequest()
	req.ResponseTimings["q2"] = models.ResponseTiming{ResponseTimeMs: -10, ResponseTimeSeconds: -0.01}

	err := v.Validate(req)
	if err == nil {
		t.Fatal("Expected validation to fail")
	}

	errs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("Expected ValidationErrors, got %T", err)
	}
	if len(errs) != 1 {
		t.Fatalf("Expected 1 validation error, got %d", len(errs))
	}
	if errs[0].Rule != "non_negative_timing" {
		t.Errorf("Expected rule 'non_negative_timing', got '%s'", errs[0].Rule)
	}
	if errs[0].Value != "q2" {
		t.Errorf("Expected offending question 'q2', got '%v'", errs[0].Value)
	}
}

func TestValidateRejectsNegativeMovementCount(t *testing.T) {
	v := New()

	req := validRequest()
	req.CursorMovements["q3"] = models.CursorTrack{TotalMovements: -1}

	err := v.Validate(req)
	if err == nil {
		t.Fatal("Expected validation to fail")
	}

	errs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("Expected ValidationErrors, got %T", err)
	}
	if errs[0].Rule != "non_negative_movements" {
		t.Errorf("Expected rule 'non_negative_movements', got '%s'", errs[0].Rule)
	}
}

func TestSubmissionValidatorOrdersErrorsByQuestionID(t *testing.T) {
	sv := NewSubmissionValidator()

	req := validRequest()
	req.ResponseTimings = map[string]models.ResponseTiming{
		"q9": {ResponseTimeMs: -1},
		"q2": {ResponseTimeMs: -1},
		"q5": {ResponseTimeMs: -1},
	}

	errs := sv.Validate(req)
	if len(errs) != 3 {
		t.Fatalf("Expected 3 validation errors, got %d", len(errs))
	}

	want := []string{"q2", "q5", "q9"}
	for i, id := range want {
		if errs[i].Value != id {
			t.Errorf("Expected error %d to reference '%s', got '%v'", i, id, errs[i].Value)
		}
	}
}
