package errors

import (
	"fmt"
	"testing"
)

func TestValidationErrorFormatting(t *testing.T) {
	err := NewValidationError("thought cannot be empty", ErrEmptyInput).WithField("thought")

	want := "validation error [field=thought]: thought cannot be empty: input is empty"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestValidationErrorUnwrapsSentinel(t *testing.T) {
	err := NewValidationError("empty claim", ErrEmptyInput)

	if !Is(err, ErrEmptyInput) {
		t.Error("expected errors.Is to match ErrEmptyInput")
	}

	var ve *ValidationError
	if !As(err, &ve) {
		t.Error("expected errors.As to match *ValidationError")
	}
}

func TestUsageErrorFormatting(t *testing.T) {
	err := NewUsageError("no refinement pending", ErrNoPendingResult).
		WithAction("select-focus").
		WithPhase("guided:awaiting-input")

	want := "usage error [action=select-focus, phase=guided:awaiting-input]: no refinement pending: no pending refinement to confirm"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !Is(err, ErrNoPendingResult) {
		t.Error("expected errors.Is to match ErrNoPendingResult")
	}
}

func TestServiceErrorContext(t *testing.T) {
	err := NewServiceError("request failed", ErrServiceUnavailable).
		WithEndpoint("/chat/completions").
		WithStatusCode(503)

	if err.StatusCode != 503 {
		t.Errorf("StatusCode = %d, want 503", err.StatusCode)
	}
	if !Is(err, ErrServiceUnavailable) {
		t.Error("expected errors.Is to match ErrServiceUnavailable")
	}

	want := "service error [endpoint=/chat/completions, status=503]: request failed: generation service unavailable"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestPersistenceErrorSeverity(t *testing.T) {
	err := NewPersistenceError("library unreadable", ErrSessionNotFound).
		WithPath("/tmp/sessions.json").
		WithSeverity(SeverityWarning)

	if got := GetSeverity(err); got != SeverityWarning {
		t.Errorf("GetSeverity() = %v, want %v", got, SeverityWarning)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"validation", NewValidationError("empty", ErrEmptyInput), true},
		{"usage", NewUsageError("wrong phase", ErrWrongPhase), true},
		{"service", NewServiceError("down", ErrServiceUnavailable), true},
		{"persistence", NewPersistenceError("io", nil), true},
		{"plain", New("internal detail"), false},
		{"wrapped typed", fmt.Errorf("outer: %w", NewUsageError("wrong phase", ErrWrongPhase)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsValidation(t *testing.T) {
	if !IsValidation(NewValidationError("empty", ErrEmptyInput)) {
		t.Error("expected validation error to classify as validation")
	}
	if !IsValidation(NewUsageError("wrong phase", ErrWrongPhase)) {
		t.Error("expected usage error to classify as validation")
	}
	if IsValidation(NewServiceError("down", nil)) {
		t.Error("service error should not classify as validation")
	}
}

func TestGetSeverityDefaults(t *testing.T) {
	if got := GetSeverity(nil); got != SeverityInfo {
		t.Errorf("GetSeverity(nil) = %v, want %v", got, SeverityInfo)
	}
	if got := GetSeverity(New("plain")); got != SeverityError {
		t.Errorf("GetSeverity(plain) = %v, want %v", got, SeverityError)
	}
}

func TestSeverityString(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.severity.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.severity, got, tt.want)
		}
	}
}

func TestWrap(t *testing.T) {
	base := New("boom")
	wrapped := Wrap(base, "loading library")
	if wrapped.Error() != "loading library: boom" {
		t.Errorf("Wrap() = %q", wrapped.Error())
	}
	if !Is(wrapped, base) {
		t.Error("expected wrapped error to match base")
	}
	if Wrap(nil, "ignored") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}
