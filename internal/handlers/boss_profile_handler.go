package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bookflow-labs/bookflow-server/internal/audit"
	"github.com/bookflow-labs/bookflow-server/internal/authz"
	"github.com/bookflow-labs/bookflow-server/internal/httpresp"
	"github.com/bookflow-labs/bookflow-server/internal/middleware"
	"github.com/bookflow-labs/bookflow-server/internal/models"
)

type BossProfileHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewBossProfileHandler(db *gorm.DB, auditDisp *audit.Dispatcher) *BossProfileHandler {
	return &BossProfileHandler{db: db, audit: auditDisp}
}

type CreateBossProfileRequest struct {
	BossName string `json:"boss_name" binding:"required"`
	UserID   uint   `json:"user_id"`
}

func (h *BossProfileHandler) List(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var profiles []models.BossProfile
	if err := h.db.
		Where("tenant_id = ?", tenantID).
		Order("id ASC").
		Find(&profiles).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_boss_profiles"})
		return
	}

	httpresp.List(c, profiles)
}

// Create mints a new authorization code. The code is returned once here
// and shown in the admin UI; it is never embedded in model prompts.
func (h *BossProfileHandler) Create(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBossProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	holderID := req.UserID
	if holderID == 0 {
		holderID = userID
	}

	var code string
	for attempt := 0; attempt < 5; attempt++ {
		code = authz.GenerateCode(req.BossName)

		var count int64
		h.db.Model(&models.BossProfile{}).
			Where("boss_code = ?", code).
			Count(&count)
		if count == 0 {
			break
		}
		code = ""
	}
	if code == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_code"})
		return
	}

	profile := models.BossProfile{
		TenantID: tenantID,
		UserID:   holderID,
		BossName: req.BossName,
		BossCode: code,
		Active:   true,
	}

	if err := h.db.Create(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_boss_profile"})
		return
	}

	h.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   &userID,
		Action:   "boss_profile_created",
		Entity:   "boss_profile",
		EntityID: &profile.ID,
	})

	c.JSON(http.StatusCreated, profile)
}

func (h *BossProfileHandler) Deactivate(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	res := h.db.
		Model(&models.BossProfile{}).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Update("active", false)

	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_deactivate_boss_profile"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "boss_profile_not_found"})
		return
	}

	h.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   &userID,
		Action:   "boss_profile_deactivated",
		Entity:   "boss_profile",
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *BossProfileHandler) Delete(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	res := h.db.
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Delete(&models.BossProfile{})

	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_boss_profile"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "boss_profile_not_found"})
		return
	}

	h.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   &userID,
		Action:   "boss_profile_deleted",
		Entity:   "boss_profile",
	})

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
