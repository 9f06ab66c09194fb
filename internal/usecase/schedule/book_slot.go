package schedule

import (
	"context"
	"time"

	"github.com/bookflow-labs/bookflow-server/internal/audit"
	domain "github.com/bookflow-labs/bookflow-server/internal/domain/schedule"
	"github.com/bookflow-labs/bookflow-server/internal/httperr"
	"github.com/bookflow-labs/bookflow-server/internal/models"
	"github.com/bookflow-labs/bookflow-server/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type BookSlotInput struct {
	TenantID uint

	ServiceName string

	ClientName  string
	ClientPhone string
	ClientEmail string

	// ISO 8601; naive timestamps are interpreted in the tenant timezone.
	StartTime string

	BookedVia string
	Notes     string
}

// ======================================================
// USE CASE
// ======================================================

type BookSlot struct {
	repo     domain.Repository
	resolver *ResolveAvailability
	audit    *audit.Dispatcher
}

func NewBookSlot(
	repo domain.Repository,
	resolver *ResolveAvailability,
	auditDisp *audit.Dispatcher,
) *BookSlot {
	return &BookSlot{
		repo:     repo,
		resolver: resolver,
		audit:    auditDisp,
	}
}

// Execute books a slot. The requested instant is never trusted blindly:
// it must render to a label present in a fresh availability resolution.
// A conflicting concurrent insert is retried once against re-resolved
// state before failing with slot_unavailable.
func (uc *BookSlot) Execute(
	ctx context.Context,
	in BookSlotInput,
) (*models.Appointment, error) {

	tenant, err := uc.repo.GetTenantByID(ctx, in.TenantID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(tenant.Timezone)

	start, err := parseStartTime(in.StartTime, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_start_time")
	}
	start = start.In(loc)

	dateStr := start.Format("2006-01-02")
	label := domain.Label(start)

	availability, err := uc.resolver.Execute(ctx, domain.AvailabilityInput{
		TenantID:    in.TenantID,
		Date:        dateStr,
		ServiceName: in.ServiceName,
	})
	if err != nil {
		return nil, err
	}

	svc, err := uc.repo.GetService(ctx, in.TenantID, availability.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
	}

	end := start.Add(time.Duration(svc.DurationMin) * time.Minute)

	for attempt := 0; attempt < 2; attempt++ {
		slot := availability.SlotByLabel(label)
		if slot == nil {
			return nil, httperr.ErrBusiness(httperr.CodeSlotUnavailable)
		}

		staffID, err := uc.pickLeastLoaded(ctx, in.TenantID, slot.StaffIDs, start)
		if err != nil {
			return nil, err
		}

		ap := &models.Appointment{
			TenantID:    in.TenantID,
			StaffID:     staffID,
			ServiceID:   svc.ID,
			ClientName:  in.ClientName,
			ClientPhone: in.ClientPhone,
			ClientEmail: in.ClientEmail,
			StartTime:   start,
			EndTime:     end,
			Status:      string(domain.InitialStatus()),
			BookedVia:   in.BookedVia,
			Notes:       in.Notes,
		}

		err = uc.repo.CreateAppointmentChecked(ctx, ap)
		if err == nil {
			uc.audit.Dispatch(audit.Event{
				TenantID: in.TenantID,
				Action:   "appointment_created",
				Entity:   "appointment",
				EntityID: &ap.ID,
				Metadata: map[string]any{"booked_via": in.BookedVia},
			})
			return ap, nil
		}

		if !httperr.IsBusiness(err, httperr.CodeTimeConflict) {
			return nil, err
		}

		// lost the race: re-resolve and try the slot one more time
		availability, err = uc.resolver.Execute(ctx, domain.AvailabilityInput{
			TenantID:    in.TenantID,
			Date:        dateStr,
			ServiceName: in.ServiceName,
		})
		if err != nil {
			return nil, err
		}
	}

	return nil, httperr.ErrBusiness(httperr.CodeSlotUnavailable)
}

// pickLeastLoaded chooses the candidate with the fewest busy intervals on
// the slot's day; ties fall back to schedule order.
func (uc *BookSlot) pickLeastLoaded(
	ctx context.Context,
	tenantID uint,
	candidates []uint,
	start time.Time,
) (uint, error) {

	if len(candidates) == 1 {
		return candidates[0], nil
	}

	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	appointments, err := uc.repo.ListBusyAppointments(ctx, tenantID, dayStart, dayEnd)
	if err != nil {
		return 0, err
	}

	load := map[uint]int{}
	for _, ap := range appointments {
		load[ap.StaffID]++
	}

	best := candidates[0]
	for _, id := range candidates[1:] {
		if load[id] < load[best] {
			best = id
		}
	}
	return best, nil
}

func parseStartTime(raw string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, httperr.ErrBusiness("invalid_start_time")
}
