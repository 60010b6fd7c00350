package errs

import (
	"fmt"
	"net/http"
	"testing"
)

func TestNewErrorUsesTemplate(t *testing.T) {
	err := NewError(ErrSlotConflict)

	if err.Code != ErrSlotConflict {
		t.Fatalf("code = %d, want %d", err.Code, ErrSlotConflict)
	}
	if err.Status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", err.Status)
	}
	if err.Message != "This time slot is already booked. Please select another time." {
		t.Fatalf("unexpected message %q", err.Message)
	}
}

func TestNewErrorFormatsDetails(t *testing.T) {
	err := NewError(ErrInvalidTransition, "completed", "pending")

	want := "Cannot change an appointment from completed to pending."
	if err.Message != want {
		t.Fatalf("message = %q, want %q", err.Message, want)
	}
}

func TestNewErrorDoesNotMutateTemplate(t *testing.T) {
	_ = NewError(ErrMissingField, "Phone")
	err := NewError(ErrMissingField, "Email")

	if err.Message != "Email is required." {
		t.Fatalf("message = %q", err.Message)
	}
	if errorMap[ErrMissingField].Message != "%s is required." {
		t.Fatal("template was modified")
	}
}

func TestNewErrorUnknownCode(t *testing.T) {
	err := NewError(424242)

	if err.Code != ErrUnknown || err.Status != http.StatusInternalServerError {
		t.Fatalf("got %+v, want ErrUnknown/500", err)
	}
}

func TestIs(t *testing.T) {
	wrapped := fmt.Errorf("booking: %w", NewError(ErrSlotConflict))

	if !Is(wrapped, ErrSlotConflict) {
		t.Fatal("expected wrapped slot conflict to match")
	}
	if Is(wrapped, ErrAccessDenied) {
		t.Fatal("unexpected match on different code")
	}
	if Is(fmt.Errorf("plain"), ErrSlotConflict) {
		t.Fatal("plain error must not match")
	}
}

func TestEveryCodeHasHTTPStatus(t *testing.T) {
	for code, tmpl := range errorMap {
		if tmpl.Code != code {
			t.Errorf("code %d maps to template with code %d", code, tmpl.Code)
		}
		if tmpl.Status < 400 {
			t.Errorf("code %d has non-error status %d", code, tmpl.Status)
		}
	}
}
