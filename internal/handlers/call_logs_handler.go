package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bookflow-labs/bookflow-server/internal/httperr"
	"github.com/bookflow-labs/bookflow-server/internal/middleware"
	"github.com/bookflow-labs/bookflow-server/internal/models"
)

type CallLogsHandler struct {
	db *gorm.DB
}

func NewCallLogsHandler(db *gorm.DB) *CallLogsHandler {
	return &CallLogsHandler{db: db}
}

func (h *CallLogsHandler) List(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	sessionID := c.Query("session_id")

	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "50")

	page, _ := strconv.Atoi(pageStr)
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	q := h.db.
		Model(&models.CallLog{}).
		Where("tenant_id = ?", tenantID)

	if sessionID != "" {
		q = q.Where("session_id = ?", sessionID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "call_logs_count_failed", "Could not count call logs.")
		return
	}

	var logs []models.CallLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "call_logs_list_failed", "Could not list call logs.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
