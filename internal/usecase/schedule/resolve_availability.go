package schedule

import (
	"context"
	"time"

	domain "github.com/bookflow-labs/bookflow-server/internal/domain/schedule"
	"github.com/bookflow-labs/bookflow-server/internal/httperr"
	"github.com/bookflow-labs/bookflow-server/internal/timezone"
)

type ResolveAvailability struct {
	repo domain.Repository
}

func NewResolveAvailability(repo domain.Repository) *ResolveAvailability {
	return &ResolveAvailability{repo: repo}
}

// Execute computes the bookable slots for a service on a date. Read-only:
// calling it twice with unchanged stores yields the identical list.
func (uc *ResolveAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (*domain.AvailabilityResult, error) {

	tenant, err := uc.repo.GetTenantByID(ctx, in.TenantID)
	if err != nil {
		return nil, err
	}

	svc, err := uc.repo.FindActiveServiceByName(ctx, in.TenantID, in.ServiceName)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
	}

	loc := timezone.Location(tenant.Timezone)

	day, err := time.ParseInLocation("2006-01-02", in.Date, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	result := &domain.AvailabilityResult{
		ServiceID: svc.ID,
		Date:      in.Date,
	}

	weekday := int(day.Weekday())

	schedules, err := uc.repo.ListWorkingSchedules(ctx, in.TenantID, weekday)
	if err != nil {
		return nil, err
	}
	if len(schedules) == 0 {
		// no staff working: empty slot list, not an error
		return result, nil
	}

	dayStart := day
	dayEnd := day.AddDate(0, 0, 1)

	appointments, err := uc.repo.ListBusyAppointments(ctx, in.TenantID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	busy := map[uint][]domain.Interval{}
	for _, ap := range appointments {
		busy[ap.StaffID] = append(busy[ap.StaffID], domain.Interval{
			Start: ap.StartTime,
			End:   ap.EndTime,
		})
	}

	// Outer bound of the day: earliest open to latest close across staff.
	var dayOpen, dayClose time.Time
	windows := make([]domain.Interval, len(schedules))
	for i, s := range schedules {
		w := domain.Interval{
			Start: domain.ParseHM(day, s.StartTime),
			End:   domain.ParseHM(day, s.EndTime),
		}
		windows[i] = w
		if dayOpen.IsZero() || w.Start.Before(dayOpen) {
			dayOpen = w.Start
		}
		if w.End.After(dayClose) {
			dayClose = w.End
		}
	}
	if !dayOpen.Before(dayClose) {
		return result, nil
	}
	if dayClose.After(dayEnd) {
		dayClose = dayEnd
	}

	duration := time.Duration(svc.DurationMin) * time.Minute
	step := domain.SlotStepMinutes * time.Minute

	for t := dayOpen; t.Before(dayClose); t = t.Add(step) {
		slotEnd := t.Add(duration)

		var free []uint
		for i, s := range schedules {
			w := windows[i]
			if t.Before(w.Start) || slotEnd.After(w.End) {
				continue
			}
			if domain.OverlapsAny(t, slotEnd, busy[s.StaffID]) {
				continue
			}
			free = append(free, s.StaffID)
		}

		if len(free) > 0 {
			result.Slots = append(result.Slots, domain.Slot{
				Label:    domain.Label(t),
				Start:    t,
				StaffIDs: free,
			})
		}
	}

	return result, nil
}
