package schedule

import (
	"context"
	"time"

	"github.com/bookflow-labs/bookflow-server/internal/models"
)

type Repository interface {
	// -------- Tenant --------
	GetTenantByID(
		ctx context.Context,
		id uint,
	) (*models.Tenant, error)

	// -------- Service --------
	FindActiveServiceByName(
		ctx context.Context,
		tenantID uint,
		name string,
	) (*models.Service, error)

	GetService(
		ctx context.Context,
		tenantID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Schedules --------
	ListWorkingSchedules(
		ctx context.Context,
		tenantID uint,
		weekday int,
	) ([]models.StaffSchedule, error)

	// -------- Appointments (read) --------
	ListBusyAppointments(
		ctx context.Context,
		tenantID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]models.Appointment, error)

	GetAppointmentForTenant(
		ctx context.Context,
		appointmentID uint,
		tenantID uint,
	) (*models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		tenantID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Appointments (write) --------

	// CreateAppointmentChecked inserts the appointment inside a
	// transaction that first locks and re-counts overlapping confirmed
	// rows for the same staff member. A detected overlap fails with the
	// time_conflict business code and leaves nothing written.
	CreateAppointmentChecked(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error
}
