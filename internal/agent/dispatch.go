package agent

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	domain "github.com/bookflow-labs/bookflow-server/internal/domain/schedule"
	"github.com/bookflow-labs/bookflow-server/internal/httperr"
	"github.com/bookflow-labs/bookflow-server/internal/models"
	"github.com/bookflow-labs/bookflow-server/internal/timezone"
	ucschedule "github.com/bookflow-labs/bookflow-server/internal/usecase/schedule"
)

const defaultStaffPassword = "ChangeMe123!"

// ToolDispatcher resolves one tool call against the platform
// collaborators and returns a compact structured payload. Failures are
// serialized into the payload, never raised: the model phrases the
// user-facing explanation.
type ToolDispatcher interface {
	Dispatch(ctx context.Context, tenantID uint, authorized bool, call ToolCall) map[string]any
}

type Dispatcher struct {
	db       *gorm.DB
	resolver *ucschedule.ResolveAvailability
	booker   *ucschedule.BookSlot
}

func NewDispatcher(
	db *gorm.DB,
	resolver *ucschedule.ResolveAvailability,
	booker *ucschedule.BookSlot,
) *Dispatcher {
	return &Dispatcher{
		db:       db,
		resolver: resolver,
		booker:   booker,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, tenantID uint, authorized bool, call ToolCall) map[string]any {
	if IsPrivileged(call.Name) && !authorized {
		// defense in depth: the schema should not have offered this
		return errPayload(httperr.CodeAuthorizationDenied)
	}

	switch call.Name {
	case ToolGetServices:
		return d.getServices(ctx, tenantID)
	case ToolCheckAvailability:
		return d.checkAvailability(ctx, tenantID, call.Args)
	case ToolBookAppointment:
		return d.bookAppointment(ctx, tenantID, call.Args)
	case ToolListStaff:
		return d.listStaff(ctx, tenantID)
	case ToolCreateStaff:
		return d.createStaff(ctx, tenantID, call.Args)
	case ToolDeleteStaff:
		return d.deleteStaff(ctx, tenantID, call.Args)
	case ToolSetStaffSchedule:
		return d.setStaffSchedule(ctx, tenantID, call.Args)
	case ToolCreateService:
		return d.createService(ctx, tenantID, call.Args)
	case ToolUpdateService:
		return d.updateService(ctx, tenantID, call.Args)
	case ToolDeleteService:
		return d.deleteService(ctx, tenantID, call.Args)
	}

	return errPayload("unknown_tool")
}

// --------------------------------------------------
// Booking tools
// --------------------------------------------------

func (d *Dispatcher) getServices(ctx context.Context, tenantID uint) map[string]any {
	var services []models.Service
	if err := d.db.WithContext(ctx).
		Where("tenant_id = ? AND active = true", tenantID).
		Order("id ASC").
		Find(&services).Error; err != nil {
		return errPayload("persistence_error")
	}

	list := make([]map[string]any, 0, len(services))
	for _, s := range services {
		list = append(list, map[string]any{
			"id":       s.ID,
			"name":     s.Name,
			"price":    s.Price,
			"duration": strconv.Itoa(s.DurationMin) + " min",
		})
	}
	return map[string]any{"services": list}
}

func (d *Dispatcher) checkAvailability(ctx context.Context, tenantID uint, args map[string]any) map[string]any {
	date := argString(args, "date")
	if date == "" {
		var tenant models.Tenant
		if err := d.db.WithContext(ctx).First(&tenant, tenantID).Error; err != nil {
			return errPayload("persistence_error")
		}
		date = timezone.NowIn(tenant.Timezone).Format("2006-01-02")
	}

	result, err := d.resolver.Execute(ctx, domain.AvailabilityInput{
		TenantID:    tenantID,
		Date:        date,
		ServiceName: argString(args, "service_name"),
	})
	if err != nil {
		return errorFrom(err)
	}

	labels := make([]string, 0, len(result.Slots))
	for _, s := range result.Slots {
		labels = append(labels, s.Label)
	}
	return map[string]any{
		"available_slots": labels,
		"date":            result.Date,
		"service_id":      result.ServiceID,
	}
}

func (d *Dispatcher) bookAppointment(ctx context.Context, tenantID uint, args map[string]any) map[string]any {
	ap, err := d.booker.Execute(ctx, ucschedule.BookSlotInput{
		TenantID:    tenantID,
		ServiceName: argString(args, "service_name"),
		ClientName:  argString(args, "client_name"),
		ClientPhone: argString(args, "client_phone"),
		StartTime:   argString(args, "start_time"),
		BookedVia:   "ai_chat",
		Notes:       "Booked via AI chat",
	})
	if err != nil {
		return errorFrom(err)
	}

	return map[string]any{
		"success":    true,
		"booking_id": ap.ID,
		"staff_id":   ap.StaffID,
		"start_time": ap.StartTime.Format(time.RFC3339),
	}
}

// --------------------------------------------------
// Privileged tools
// --------------------------------------------------

func (d *Dispatcher) listStaff(ctx context.Context, tenantID uint) map[string]any {
	var staff []models.User
	if err := d.db.WithContext(ctx).
		Where("tenant_id = ? AND active = true", tenantID).
		Order("id ASC").
		Find(&staff).Error; err != nil {
		return errPayload("persistence_error")
	}

	list := make([]map[string]any, 0, len(staff))
	for _, s := range staff {
		list = append(list, map[string]any{
			"id":    s.ID,
			"name":  s.FullName,
			"email": s.Email,
			"role":  s.Role,
		})
	}
	return map[string]any{"staff": list}
}

func (d *Dispatcher) createStaff(ctx context.Context, tenantID uint, args map[string]any) map[string]any {
	role := argString(args, "role")
	if role != "admin" && role != "staff" {
		return errPayload("invalid_role")
	}

	password := argString(args, "password")
	if password == "" {
		password = defaultStaffPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errPayload("password_hash_failed")
	}

	user := models.User{
		TenantID:     tenantID,
		FullName:     argString(args, "full_name"),
		Email:        argString(args, "email"),
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	}

	err = d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		// new staff start with a Mon-Fri 09:00-17:00 week
		var defaults []models.StaffSchedule
		for day := 1; day <= 5; day++ {
			defaults = append(defaults, models.StaffSchedule{
				TenantID:  tenantID,
				StaffID:   user.ID,
				Weekday:   day,
				StartTime: "09:00",
				EndTime:   "17:00",
				Working:   true,
			})
		}
		return tx.Create(&defaults).Error
	})
	if err != nil {
		return errPayload("staff_create_failed")
	}

	return map[string]any{"success": true, "staff_id": user.ID}
}

func (d *Dispatcher) deleteStaff(ctx context.Context, tenantID uint, args map[string]any) map[string]any {
	staffID := argUint(args, "staff_id")
	if staffID == 0 {
		return errPayload("invalid_staff_id")
	}

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("staff_id = ? AND tenant_id = ?", staffID, tenantID).
			Delete(&models.StaffSchedule{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ? AND tenant_id = ?", staffID, tenantID).
			Delete(&models.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err == gorm.ErrRecordNotFound {
		return errPayload("staff_not_found")
	}
	if err != nil {
		return errPayload("staff_delete_failed")
	}

	return map[string]any{"success": true}
}

func (d *Dispatcher) setStaffSchedule(ctx context.Context, tenantID uint, args map[string]any) map[string]any {
	staffID := argUint(args, "staff_id")
	if staffID == 0 {
		return errPayload("invalid_staff_id")
	}

	rawDays, _ := args["schedule"].([]any)
	var toCreate []models.StaffSchedule
	for _, raw := range rawDays {
		day, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		working := argBool(day, "is_working")
		start := argString(day, "start_time")
		end := argString(day, "end_time")
		if !working || start == "" || end == "" {
			continue
		}
		toCreate = append(toCreate, models.StaffSchedule{
			TenantID:  tenantID,
			StaffID:   staffID,
			Weekday:   argInt(day, "day_of_week"),
			StartTime: start,
			EndTime:   end,
			Working:   true,
		})
	}

	// replaced wholesale, never patched
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("staff_id = ? AND tenant_id = ?", staffID, tenantID).
			Delete(&models.StaffSchedule{}).Error; err != nil {
			return err
		}
		if len(toCreate) == 0 {
			return nil
		}
		return tx.Create(&toCreate).Error
	})
	if err != nil {
		return errPayload("schedule_save_failed")
	}

	return map[string]any{"success": true, "days_set": len(toCreate)}
}

func (d *Dispatcher) createService(ctx context.Context, tenantID uint, args map[string]any) map[string]any {
	duration := argInt(args, "duration_minutes")
	if duration <= 0 {
		return errPayload("invalid_duration")
	}

	color := argString(args, "color")
	if color == "" {
		color = "#6366f1"
	}

	svc := models.Service{
		TenantID:    tenantID,
		Name:        argString(args, "name"),
		Description: argString(args, "description"),
		DurationMin: duration,
		Price:       argFloat(args, "price"),
		BufferMin:   argInt(args, "buffer_minutes"),
		Color:       color,
		Active:      true,
	}
	if err := d.db.WithContext(ctx).Create(&svc).Error; err != nil {
		return errPayload("service_create_failed")
	}

	return map[string]any{"success": true, "service_id": svc.ID}
}

func (d *Dispatcher) updateService(ctx context.Context, tenantID uint, args map[string]any) map[string]any {
	serviceID := argUint(args, "service_id")
	if serviceID == 0 {
		return errPayload("invalid_service_id")
	}

	var svc models.Service
	if err := d.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", serviceID, tenantID).
		First(&svc).Error; err != nil {
		return errPayload(httperr.CodeServiceNotFound)
	}

	if v := argString(args, "name"); v != "" {
		svc.Name = v
	}
	if v := argString(args, "description"); v != "" {
		svc.Description = v
	}
	if v := argInt(args, "duration_minutes"); v > 0 {
		svc.DurationMin = v
	}
	if _, ok := args["price"]; ok {
		svc.Price = argFloat(args, "price")
	}
	if _, ok := args["buffer_minutes"]; ok {
		svc.BufferMin = argInt(args, "buffer_minutes")
	}
	if v := argString(args, "color"); v != "" {
		svc.Color = v
	}

	if err := d.db.WithContext(ctx).Save(&svc).Error; err != nil {
		return errPayload("service_update_failed")
	}

	return map[string]any{"success": true, "service_id": svc.ID}
}

func (d *Dispatcher) deleteService(ctx context.Context, tenantID uint, args map[string]any) map[string]any {
	serviceID := argUint(args, "service_id")
	if serviceID == 0 {
		return errPayload("invalid_service_id")
	}

	res := d.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", serviceID, tenantID).
		Delete(&models.Service{})
	if res.Error != nil {
		return errPayload("service_delete_failed")
	}
	if res.RowsAffected == 0 {
		return errPayload(httperr.CodeServiceNotFound)
	}

	return map[string]any{"success": true}
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func errPayload(code string) map[string]any {
	return map[string]any{"error": code}
}

func errorFrom(err error) map[string]any {
	if code := httperr.BusinessCode(err); code != "" {
		return errPayload(code)
	}
	return errPayload("persistence_error")
}

func argString(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func argInt(args map[string]any, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		n, _ := strconv.Atoi(v)
		return n
	}
	return 0
}

func argUint(args map[string]any, key string) uint {
	n := argInt(args, key)
	if n < 0 {
		return 0
	}
	return uint(n)
}

func argFloat(args map[string]any, key string) float64 {
	switch v := args[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	}
	return 0
}

func argBool(args map[string]any, key string) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return false
}
