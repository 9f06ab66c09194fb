package schedule

import (
	"context"
	"testing"

	domain "github.com/bookflow-labs/bookflow-server/internal/domain/schedule"
	"github.com/bookflow-labs/bookflow-server/internal/httperr"
)

func TestCancelAppointment_RestoresSlot(t *testing.T) {
	repo := newBookingFixture()
	booker := newBooker(repo)

	ap, err := booker.Execute(context.Background(), BookSlotInput{
		TenantID:    1,
		ServiceName: "Haircut",
		ClientName:  "Dana",
		StartTime:   "2026-01-26T10:00:00",
	})
	if err != nil {
		t.Fatalf("book slot: %v", err)
	}

	uc := NewCancelAppointment(repo, nil)
	cancelled, err := uc.Execute(context.Background(), 1, 2, ap.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != string(domain.StatusCancelled) {
		t.Fatalf("status = %q, want cancelled", cancelled.Status)
	}

	result := resolve(t, repo, monday, "Haircut")
	if !hasLabel(result, "10:00 AM") {
		t.Fatalf("cancelling must restore the slot")
	}
}

func TestCancelAppointment_NotFound(t *testing.T) {
	repo := newBookingFixture()
	uc := NewCancelAppointment(repo, nil)

	_, err := uc.Execute(context.Background(), 1, 2, 404)
	if !httperr.IsBusiness(err, httperr.CodeAppointmentNotFound) {
		t.Fatalf("expected appointment_not_found, got %v", err)
	}
}

func TestCompleteAppointment_ThenCancelRejected(t *testing.T) {
	repo := newBookingFixture()
	booker := newBooker(repo)

	ap, err := booker.Execute(context.Background(), BookSlotInput{
		TenantID:    1,
		ServiceName: "Haircut",
		ClientName:  "Dana",
		StartTime:   "2026-01-26T10:00:00",
	})
	if err != nil {
		t.Fatalf("book slot: %v", err)
	}

	complete := NewCompleteAppointment(repo, nil)
	if _, err := complete.Execute(context.Background(), 1, 2, ap.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	cancel := NewCancelAppointment(repo, nil)
	_, err = cancel.Execute(context.Background(), 1, 2, ap.ID)
	if !httperr.IsBusiness(err, httperr.CodeInvalidState) {
		t.Fatalf("expected invalid_state, got %v", err)
	}
}
