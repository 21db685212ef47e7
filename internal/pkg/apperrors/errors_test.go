package apperrors

import (
	"errors"
	"testing"
)

func TestAppErrorError(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name: "With Code",
			appError: &AppError{
				Code:    "TEST_CODE",
				Message: "This is a test error",
			},
			expected: "[TEST_CODE] This is a test error",
		},
		{
			name: "Without Code",
			appError: &AppError{
				Message: "This is a test error without code",
			},
			expected: "This is a test error without code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.appError.Error()
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestValidationErrorError(t *testing.T) {
	tests := []struct {
		name            string
		validationError *ValidationError
		expected        string
	}{
		{
			name: "With Field",
			validationError: &ValidationError{
				Field:   "state",
				Message: "must be a 2-letter code",
			},
			expected: "validation failed for field 'state': must be a 2-letter code",
		},
		{
			name: "Without Field",
			validationError: &ValidationError{
				Message: "record is malformed",
			},
			expected: "validation failed: record is malformed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.validationError.Error()
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("zip_code", "must be 5 digits or ZIP+4")

	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected error to wrap ErrValidation, got %v", err)
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected error chain to contain *ValidationError, got %v", err)
	}
	if ve.Field != "zip_code" {
		t.Errorf("expected field %q, got %q", "zip_code", ve.Field)
	}
}

func TestWrapDatabaseError(t *testing.T) {
	cause := errors.New("disk I/O error")
	err := WrapDatabaseError(cause, "failed to insert customer")

	if !errors.Is(err, ErrDatabase) {
		t.Errorf("expected error to wrap ErrDatabase, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected error to wrap the underlying cause, got %v", err)
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected error chain to contain *AppError, got %v", err)
	}
	if appErr.Code != "DB_ERROR" {
		t.Errorf("expected code %q, got %q", "DB_ERROR", appErr.Code)
	}
}
