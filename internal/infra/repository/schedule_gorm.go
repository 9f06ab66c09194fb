package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/bookflow-labs/bookflow-server/internal/domain/schedule"
	"github.com/bookflow-labs/bookflow-server/internal/httperr"
	"github.com/bookflow-labs/bookflow-server/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Tenant
// --------------------------------------------------

func (r *ScheduleGormRepository) GetTenantByID(
	ctx context.Context,
	id uint,
) (*models.Tenant, error) {

	var tenant models.Tenant
	if err := r.db.WithContext(ctx).First(&tenant, id).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *ScheduleGormRepository) FindActiveServiceByName(
	ctx context.Context,
	tenantID uint,
	name string,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND active = true AND name ILIKE ?", tenantID, "%"+name+"%").
		Order("id ASC").
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *ScheduleGormRepository) GetService(
	ctx context.Context,
	tenantID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", serviceID, tenantID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Schedules
// --------------------------------------------------

func (r *ScheduleGormRepository) ListWorkingSchedules(
	ctx context.Context,
	tenantID uint,
	weekday int,
) ([]models.StaffSchedule, error) {

	var schedules []models.StaffSchedule
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND weekday = ? AND working = true", tenantID, weekday).
		Order("staff_id ASC").
		Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

// --------------------------------------------------
// Appointments (read)
// --------------------------------------------------

func (r *ScheduleGormRepository) ListBusyAppointments(
	ctx context.Context,
	tenantID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("staff_id", "start_time", "end_time").
		Where(
			"tenant_id = ? AND status NOT IN ('cancelled', 'no_show') AND start_time >= ? AND start_time < ?",
			tenantID, dayStart, dayEnd,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *ScheduleGormRepository) GetAppointmentForTenant(
	ctx context.Context,
	appointmentID uint,
	tenantID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", appointmentID, tenantID).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *ScheduleGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	tenantID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Staff").
		Where(
			"tenant_id = ? AND start_time >= ? AND start_time < ?",
			tenantID, start, end,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Appointments (write)
// --------------------------------------------------

// CreateAppointmentChecked serializes the overlap re-check and the insert
// in one transaction so two conversations cannot claim the same
// staff/time combination.
func (r *ScheduleGormRepository) CreateAppointmentChecked(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.
			Model(&models.Appointment{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"staff_id = ? AND status NOT IN ('cancelled', 'no_show') AND start_time < ? AND end_time > ?",
				ap.StaffID,
				ap.EndTime,
				ap.StartTime,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness(httperr.CodeTimeConflict)
		}

		return tx.Create(ap).Error
	})
}

func (r *ScheduleGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
