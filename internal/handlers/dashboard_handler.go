package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bookflow-labs/bookflow-server/internal/httperr"
	"github.com/bookflow-labs/bookflow-server/internal/middleware"
	"github.com/bookflow-labs/bookflow-server/internal/models"
	"github.com/bookflow-labs/bookflow-server/internal/timezone"
)

type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// Stats summarizes the tenant's activity for the admin dashboard. All
// day boundaries use the tenant timezone.
func (h *DashboardHandler) Stats(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var tenant models.Tenant
	if err := h.db.First(&tenant, tenantID).Error; err != nil {
		httperr.Internal(c, "tenant_not_found", "Tenant not found.")
		return
	}

	now := timezone.NowIn(tenant.Timezone)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	weekEnd := dayStart.AddDate(0, 0, 7)

	var todayCount int64
	h.db.Model(&models.Appointment{}).
		Where(
			"tenant_id = ? AND start_time >= ? AND start_time < ? AND status NOT IN ('cancelled', 'no_show')",
			tenantID, dayStart, dayEnd,
		).
		Count(&todayCount)

	var weekCount int64
	h.db.Model(&models.Appointment{}).
		Where(
			"tenant_id = ? AND start_time >= ? AND start_time < ? AND status NOT IN ('cancelled', 'no_show')",
			tenantID, dayStart, weekEnd,
		).
		Count(&weekCount)

	var aiBookings int64
	h.db.Model(&models.Appointment{}).
		Where("tenant_id = ? AND booked_via = ?", tenantID, "ai_chat").
		Count(&aiBookings)

	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var byStatus []statusCount
	h.db.Model(&models.Appointment{}).
		Select("status, COUNT(*) as count").
		Where("tenant_id = ?", tenantID).
		Group("status").
		Scan(&byStatus)

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var monthRevenue float64
	h.db.Model(&models.Appointment{}).
		Select("COALESCE(SUM(services.price), 0)").
		Joins("JOIN services ON services.id = appointments.service_id").
		Where(
			"appointments.tenant_id = ? AND appointments.status = 'completed' AND appointments.start_time >= ?",
			tenantID, monthStart,
		).
		Scan(&monthRevenue)

	var staffCount int64
	h.db.Model(&models.User{}).
		Where("tenant_id = ? AND active = true", tenantID).
		Count(&staffCount)

	var serviceCount int64
	h.db.Model(&models.Service{}).
		Where("tenant_id = ? AND active = true", tenantID).
		Count(&serviceCount)

	c.JSON(http.StatusOK, gin.H{
		"appointments_today":     todayCount,
		"appointments_this_week": weekCount,
		"ai_bookings_total":      aiBookings,
		"appointments_by_status": byStatus,
		"revenue_this_month":     monthRevenue,
		"active_staff":           staffCount,
		"active_services":        serviceCount,
	})
}
