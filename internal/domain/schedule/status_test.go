package schedule

import (
	"testing"
	"time"

	"github.com/bookflow-labs/bookflow-server/internal/httperr"
	"github.com/bookflow-labs/bookflow-server/internal/models"
)

func TestCancel_FromConfirmed(t *testing.T) {
	now := time.Now()
	ap := &models.Appointment{Status: string(StatusConfirmed)}

	if err := Cancel(ap, now); err != nil {
		t.Fatalf("cancel from confirmed: %v", err)
	}
	if ap.Status != string(StatusCancelled) {
		t.Fatalf("status = %q, want cancelled", ap.Status)
	}
	if ap.CancelledAt == nil || !ap.CancelledAt.Equal(now) {
		t.Fatalf("cancelled_at not stamped")
	}
}

func TestCancel_FromCompleted(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusCompleted)}

	err := Cancel(ap, time.Now())
	if !httperr.IsBusiness(err, httperr.CodeInvalidState) {
		t.Fatalf("expected invalid_state, got %v", err)
	}
	if ap.Status != string(StatusCompleted) {
		t.Fatalf("a rejected transition must not mutate the appointment")
	}
}

func TestComplete_FromConfirmed(t *testing.T) {
	now := time.Now()
	ap := &models.Appointment{Status: string(StatusConfirmed)}

	if err := Complete(ap, now); err != nil {
		t.Fatalf("complete from confirmed: %v", err)
	}
	if ap.Status != string(StatusCompleted) || ap.CompletedAt == nil {
		t.Fatalf("completion not recorded")
	}
}

func TestMarkNoShow_Transitions(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusConfirmed)}
	if err := MarkNoShow(ap); err != nil {
		t.Fatalf("no-show from confirmed: %v", err)
	}
	if ap.Status != string(StatusNoShow) {
		t.Fatalf("status = %q, want no_show", ap.Status)
	}

	// already terminal
	if err := MarkNoShow(ap); !httperr.IsBusiness(err, httperr.CodeInvalidState) {
		t.Fatalf("expected invalid_state, got %v", err)
	}
}

func TestConstrainsAvailability(t *testing.T) {
	if !ConstrainsAvailability(StatusConfirmed) {
		t.Fatalf("confirmed must block its time range")
	}
	if !ConstrainsAvailability(StatusCompleted) {
		t.Fatalf("completed must block its time range")
	}
	if ConstrainsAvailability(StatusCancelled) {
		t.Fatalf("cancelled must release its time range")
	}
	if ConstrainsAvailability(StatusNoShow) {
		t.Fatalf("no_show must release its time range")
	}
}
