package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bookflow-labs/bookflow-server/internal/middleware"
	"github.com/bookflow-labs/bookflow-server/internal/models"
)

type ScheduleHandler struct {
	db *gorm.DB
}

func NewScheduleHandler(db *gorm.DB) *ScheduleHandler {
	return &ScheduleHandler{db: db}
}

type ScheduleDayConfig struct {
	Weekday   int    `json:"day_of_week" binding:"min=0,max=6"`
	Working   bool   `json:"is_working"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type ScheduleUpdateRequest struct {
	Days []ScheduleDayConfig `json:"days" binding:"required"`
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	staffID := c.Param("id")

	var schedules []models.StaffSchedule
	if err := h.db.
		Where("staff_id = ? AND tenant_id = ?", staffID, tenantID).
		Order("weekday ASC").
		Find(&schedules).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_schedule"})
		return
	}

	c.JSON(http.StatusOK, schedules)
}

// Update replaces the staff member's weekly schedule wholesale. Only
// working days with both times set are persisted.
func (h *ScheduleHandler) Update(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	staffID := c.Param("id")

	var staff models.User
	if err := h.db.
		Where("id = ? AND tenant_id = ?", staffID, tenantID).
		First(&staff).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "staff_not_found"})
		return
	}

	var req ScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("staff_id = ? AND tenant_id = ?", staff.ID, tenantID).
			Delete(&models.StaffSchedule{}).Error; err != nil {
			return err
		}

		var toCreate []models.StaffSchedule
		for _, d := range req.Days {
			if !d.Working || d.StartTime == "" || d.EndTime == "" {
				continue
			}
			toCreate = append(toCreate, models.StaffSchedule{
				TenantID:  tenantID,
				StaffID:   staff.ID,
				Weekday:   d.Weekday,
				StartTime: d.StartTime,
				EndTime:   d.EndTime,
				Working:   true,
			})
		}

		if len(toCreate) > 0 {
			return tx.Create(&toCreate).Error
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_schedule"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
