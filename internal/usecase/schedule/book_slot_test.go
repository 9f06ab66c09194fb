package schedule

import (
	"context"
	"testing"
	"time"

	domain "github.com/bookflow-labs/bookflow-server/internal/domain/schedule"
	"github.com/bookflow-labs/bookflow-server/internal/httperr"
	"github.com/bookflow-labs/bookflow-server/internal/models"
)

func newBooker(repo *fakeRepo) *BookSlot {
	return NewBookSlot(repo, NewResolveAvailability(repo), nil)
}

func TestBookSlot_Success(t *testing.T) {
	repo := newBookingFixture()
	uc := newBooker(repo)

	ap, err := uc.Execute(context.Background(), BookSlotInput{
		TenantID:    1,
		ServiceName: "Haircut",
		ClientName:  "Dana",
		ClientPhone: "555-0101",
		StartTime:   "2026-01-26T10:00:00",
		BookedVia:   "ai_chat",
	})
	if err != nil {
		t.Fatalf("book slot: %v", err)
	}

	if ap.ID == 0 {
		t.Fatalf("appointment was not persisted")
	}
	if ap.StaffID != 7 {
		t.Fatalf("staff = %d, want 7", ap.StaffID)
	}
	if ap.Status != string(domain.StatusConfirmed) {
		t.Fatalf("status = %q, want confirmed", ap.Status)
	}
	if ap.BookedVia != "ai_chat" {
		t.Fatalf("booked_via = %q, want ai_chat", ap.BookedVia)
	}

	want := time.Date(2026, 1, 26, 10, 0, 0, 0, time.UTC)
	if !ap.StartTime.Equal(want) {
		t.Fatalf("start = %s, want %s", ap.StartTime, want)
	}
	if !ap.EndTime.Equal(want.Add(30 * time.Minute)) {
		t.Fatalf("end = %s, want %s", ap.EndTime, want.Add(30*time.Minute))
	}
}

func TestBookSlot_RemovesSlotFromAvailability(t *testing.T) {
	repo := newBookingFixture()
	uc := newBooker(repo)

	if _, err := uc.Execute(context.Background(), BookSlotInput{
		TenantID:    1,
		ServiceName: "Haircut",
		ClientName:  "Dana",
		StartTime:   "2026-01-26T10:00:00",
	}); err != nil {
		t.Fatalf("book slot: %v", err)
	}

	result := resolve(t, repo, monday, "Haircut")
	if hasLabel(result, "10:00 AM") {
		t.Fatalf("a booked slot must disappear from availability")
	}
	if !hasLabel(result, "10:30 AM") {
		t.Fatalf("neighbouring slots must survive the booking")
	}
}

func TestBookSlot_OccupiedSlot(t *testing.T) {
	repo := newBookingFixture()
	uc := newBooker(repo)

	if _, err := uc.Execute(context.Background(), BookSlotInput{
		TenantID:    1,
		ServiceName: "Haircut",
		ClientName:  "Dana",
		StartTime:   "2026-01-26T10:00:00",
	}); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err := uc.Execute(context.Background(), BookSlotInput{
		TenantID:    1,
		ServiceName: "Haircut",
		ClientName:  "Eli",
		StartTime:   "2026-01-26T10:00:00",
	})
	if !httperr.IsBusiness(err, httperr.CodeSlotUnavailable) {
		t.Fatalf("expected slot_unavailable, got %v", err)
	}
	if len(repo.appointments) != 1 {
		t.Fatalf("a failed booking must not persist anything")
	}
}

func TestBookSlot_OutsideWorkingHours(t *testing.T) {
	repo := newBookingFixture()
	uc := newBooker(repo)

	_, err := uc.Execute(context.Background(), BookSlotInput{
		TenantID:    1,
		ServiceName: "Haircut",
		ClientName:  "Dana",
		StartTime:   "2026-01-26T20:00:00",
	})
	if !httperr.IsBusiness(err, httperr.CodeSlotUnavailable) {
		t.Fatalf("expected slot_unavailable, got %v", err)
	}
}

func TestBookSlot_RetriesOnceAfterConflict(t *testing.T) {
	repo := newBookingFixture()
	repo.failCreates = 1
	uc := newBooker(repo)

	ap, err := uc.Execute(context.Background(), BookSlotInput{
		TenantID:    1,
		ServiceName: "Haircut",
		ClientName:  "Dana",
		StartTime:   "2026-01-26T10:00:00",
	})
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if ap.ID == 0 {
		t.Fatalf("retried booking was not persisted")
	}
}

func TestBookSlot_GivesUpAfterSecondConflict(t *testing.T) {
	repo := newBookingFixture()
	repo.failCreates = 2
	uc := newBooker(repo)

	_, err := uc.Execute(context.Background(), BookSlotInput{
		TenantID:    1,
		ServiceName: "Haircut",
		ClientName:  "Dana",
		StartTime:   "2026-01-26T10:00:00",
	})
	if !httperr.IsBusiness(err, httperr.CodeSlotUnavailable) {
		t.Fatalf("expected slot_unavailable after repeated conflicts, got %v", err)
	}
}

func TestBookSlot_UnknownService(t *testing.T) {
	repo := newBookingFixture()
	uc := newBooker(repo)

	_, err := uc.Execute(context.Background(), BookSlotInput{
		TenantID:    1,
		ServiceName: "Tattoo",
		ClientName:  "Dana",
		StartTime:   "2026-01-26T10:00:00",
	})
	if !httperr.IsBusiness(err, httperr.CodeServiceNotFound) {
		t.Fatalf("expected service_not_found, got %v", err)
	}
}

func TestBookSlot_InvalidStartTime(t *testing.T) {
	repo := newBookingFixture()
	uc := newBooker(repo)

	_, err := uc.Execute(context.Background(), BookSlotInput{
		TenantID:    1,
		ServiceName: "Haircut",
		ClientName:  "Dana",
		StartTime:   "tomorrow at ten",
	})
	if !httperr.IsBusiness(err, "invalid_start_time") {
		t.Fatalf("expected invalid_start_time, got %v", err)
	}
}

func TestBookSlot_PicksLeastLoadedStaff(t *testing.T) {
	repo := newBookingFixture()
	repo.schedules = append(repo.schedules, models.StaffSchedule{
		TenantID: 1, StaffID: 8, Weekday: 1,
		StartTime: "09:00", EndTime: "17:00", Working: true,
	})

	// staff 7 already has an afternoon appointment
	day := time.Date(2026, 1, 26, 0, 0, 0, 0, time.UTC)
	repo.appointments = append(repo.appointments, models.Appointment{
		ID: 99, TenantID: 1, StaffID: 7,
		StartTime: day.Add(14 * time.Hour),
		EndTime:   day.Add(14*time.Hour + 30*time.Minute),
		Status:    string(domain.StatusConfirmed),
	})
	repo.nextID = 99

	uc := newBooker(repo)

	ap, err := uc.Execute(context.Background(), BookSlotInput{
		TenantID:    1,
		ServiceName: "Haircut",
		ClientName:  "Dana",
		StartTime:   "2026-01-26T10:00:00",
	})
	if err != nil {
		t.Fatalf("book slot: %v", err)
	}
	if ap.StaffID != 8 {
		t.Fatalf("staff = %d, want the less loaded 8", ap.StaffID)
	}
}

func TestBookSlot_RFC3339StartTime(t *testing.T) {
	repo := newBookingFixture()
	uc := newBooker(repo)

	ap, err := uc.Execute(context.Background(), BookSlotInput{
		TenantID:    1,
		ServiceName: "Haircut",
		ClientName:  "Dana",
		StartTime:   "2026-01-26T10:00:00Z",
	})
	if err != nil {
		t.Fatalf("book slot: %v", err)
	}
	want := time.Date(2026, 1, 26, 10, 0, 0, 0, time.UTC)
	if !ap.StartTime.Equal(want) {
		t.Fatalf("start = %s, want %s", ap.StartTime, want)
	}
}
