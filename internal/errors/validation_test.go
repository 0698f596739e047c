package errors

import (
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("subject", "is required", "")

	if err.Field != "subject" {
		t.Errorf("Expected field to be 'subject', got '%s'", err.Field)
	}

	if err.Message != "is required" {
		t.Errorf("Expected message to be 'is required', got '%s'", err.Message)
	}

	expected := "validation error on field 'subject': is required"
	if err.Error() != expected {
		t.Errorf("Expected error message to be '%s', got '%s'", expected, err.Error())
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	if errs.Error() != "validation failed" {
		t.Errorf("Expected 'validation failed' for empty errors, got '%s'", errs.Error())
	}

	errs = append(errs, *NewValidationError("title", "is required", nil))
	expected := "validation failed: title is required"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for single error, got '%s'", expected, errs.Error())
	}

	errs = append(errs, *NewValidationError("questions", "at least one question is required", nil))
	expected = "validation failed: 2 field errors"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for multiple errors, got '%s'", expected, errs.Error())
	}
}

func TestNewValidationErrorWithRule(t *testing.T) {
	err := NewValidationErrorWithRule("university_source.name", "must be between 3 and 100 characters", "university_name", "AB")

	if err.Rule != "university_name" {
		t.Errorf("Expected rule to be 'university_name', got '%s'", err.Rule)
	}

	if err.Field != "university_source.name" {
		t.Errorf("Expected field to be 'university_source.name', got '%s'", err.Field)
	}
}
