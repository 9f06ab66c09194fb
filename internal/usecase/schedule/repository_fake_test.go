package schedule

import (
	"context"
	"strings"
	"time"

	domain "github.com/bookflow-labs/bookflow-server/internal/domain/schedule"
	"github.com/bookflow-labs/bookflow-server/internal/httperr"
	"github.com/bookflow-labs/bookflow-server/internal/models"
)

// fakeRepo is an in-memory domain.Repository for use-case tests.
type fakeRepo struct {
	tenant       models.Tenant
	services     []models.Service
	schedules    []models.StaffSchedule
	appointments []models.Appointment

	nextID uint

	// forces the next N CreateAppointmentChecked calls to report a
	// conflict without writing, simulating a lost race
	failCreates int
}

var _ domain.Repository = (*fakeRepo)(nil)

func (r *fakeRepo) GetTenantByID(_ context.Context, id uint) (*models.Tenant, error) {
	if r.tenant.ID != id {
		return nil, httperr.ErrBusiness("tenant_not_found")
	}
	t := r.tenant
	return &t, nil
}

func (r *fakeRepo) FindActiveServiceByName(_ context.Context, tenantID uint, name string) (*models.Service, error) {
	needle := strings.ToLower(name)
	for i := range r.services {
		s := r.services[i]
		if s.TenantID == tenantID && s.Active &&
			strings.Contains(strings.ToLower(s.Name), needle) {
			return &s, nil
		}
	}
	return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
}

func (r *fakeRepo) GetService(_ context.Context, tenantID, serviceID uint) (*models.Service, error) {
	for i := range r.services {
		if r.services[i].TenantID == tenantID && r.services[i].ID == serviceID {
			s := r.services[i]
			return &s, nil
		}
	}
	return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
}

func (r *fakeRepo) ListWorkingSchedules(_ context.Context, tenantID uint, weekday int) ([]models.StaffSchedule, error) {
	var out []models.StaffSchedule
	for _, s := range r.schedules {
		if s.TenantID == tenantID && s.Weekday == weekday && s.Working {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListBusyAppointments(_ context.Context, tenantID uint, dayStart, dayEnd time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.TenantID != tenantID {
			continue
		}
		if !domain.ConstrainsAvailability(domain.Status(ap.Status)) {
			continue
		}
		if ap.StartTime.Before(dayEnd) && dayStart.Before(ap.EndTime) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetAppointmentForTenant(_ context.Context, appointmentID, tenantID uint) (*models.Appointment, error) {
	for i := range r.appointments {
		if r.appointments[i].ID == appointmentID && r.appointments[i].TenantID == tenantID {
			ap := r.appointments[i]
			return &ap, nil
		}
	}
	return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
}

func (r *fakeRepo) ListAppointmentsForPeriod(_ context.Context, tenantID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.TenantID != tenantID {
			continue
		}
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) CreateAppointmentChecked(_ context.Context, ap *models.Appointment) error {
	if r.failCreates > 0 {
		r.failCreates--
		return httperr.ErrBusiness(httperr.CodeTimeConflict)
	}

	for _, existing := range r.appointments {
		if existing.StaffID != ap.StaffID {
			continue
		}
		if !domain.ConstrainsAvailability(domain.Status(existing.Status)) {
			continue
		}
		if domain.Overlaps(ap.StartTime, ap.EndTime, existing.StartTime, existing.EndTime) {
			return httperr.ErrBusiness(httperr.CodeTimeConflict)
		}
	}

	r.nextID++
	ap.ID = r.nextID
	r.appointments = append(r.appointments, *ap)
	return nil
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	for i := range r.appointments {
		if r.appointments[i].ID == ap.ID {
			r.appointments[i] = *ap
			return nil
		}
	}
	return httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
}

// newBookingFixture is a tenant with one staff member working Monday
// 09:00-17:00 and a 30-minute haircut service.
func newBookingFixture() *fakeRepo {
	return &fakeRepo{
		tenant: models.Tenant{ID: 1, Name: "Glow Studio", Timezone: "UTC"},
		services: []models.Service{
			{ID: 10, TenantID: 1, Name: "Haircut", DurationMin: 30, Price: 25, Active: true},
		},
		schedules: []models.StaffSchedule{
			{TenantID: 1, StaffID: 7, Weekday: 1, StartTime: "09:00", EndTime: "17:00", Working: true},
		},
	}
}
