package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bookflow-labs/bookflow-server/internal/httperr"
	"github.com/bookflow-labs/bookflow-server/internal/middleware"
	"github.com/bookflow-labs/bookflow-server/internal/models"
	"github.com/bookflow-labs/bookflow-server/internal/timezone"
	ucschedule "github.com/bookflow-labs/bookflow-server/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db       *gorm.DB
	booker   *ucschedule.BookSlot
	cancel   *ucschedule.CancelAppointment
	complete *ucschedule.CompleteAppointment
	noShow   *ucschedule.MarkNoShow
	list     *ucschedule.ListAppointmentsByDate
}

func NewAppointmentHandler(
	db *gorm.DB,
	booker *ucschedule.BookSlot,
	cancel *ucschedule.CancelAppointment,
	complete *ucschedule.CompleteAppointment,
	noShow *ucschedule.MarkNoShow,
	list *ucschedule.ListAppointmentsByDate,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:       db,
		booker:   booker,
		cancel:   cancel,
		complete: complete,
		noShow:   noShow,
		list:     list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`
	ServiceName string `json:"service_name" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	Notes       string `json:"notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid appointment payload.")
		return
	}

	ap, err := h.booker.Execute(c.Request.Context(), ucschedule.BookSlotInput{
		TenantID:    tenantID,
		ServiceName: req.ServiceName,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		StartTime:   req.StartTime,
		BookedVia:   "web",
		Notes:       req.Notes,
	})
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

func mapBookingError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, httperr.CodeServiceNotFound):
		httperr.NotFound(c, httperr.CodeServiceNotFound, "Service not found.")
	case httperr.IsBusiness(err, httperr.CodeSlotUnavailable):
		httperr.Conflict(c, httperr.CodeSlotUnavailable, "The requested time is no longer available.")
	case httperr.IsBusiness(err, httperr.CodeTimeConflict):
		httperr.Conflict(c, httperr.CodeTimeConflict, "The requested time conflicts with another appointment.")
	case httperr.IsBusiness(err, "invalid_start_time"):
		httperr.BadRequest(c, "invalid_start_time", "Invalid start time.")
	case httperr.IsBusiness(err, "invalid_date"):
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
	default:
		httperr.Internal(c, "failed_to_create_appointment", "Could not create the appointment.")
	}
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "A date is required.")
		return
	}

	aps, err := h.list.Execute(c.Request.Context(), tenantID, dateStr)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_date") {
			httperr.BadRequest(c, "invalid_date", "Invalid date.")
			return
		}
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	c.JSON(http.StatusOK, aps)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Year and month are required.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Invalid year.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Invalid month.")
		return
	}

	var tenant models.Tenant
	if err := h.db.First(&tenant, tenantID).Error; err != nil {
		httperr.Internal(c, "tenant_not_found", "Tenant not found.")
		return
	}

	loc := timezone.Location(tenant.Timezone)
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	var appointments []models.Appointment
	h.db.
		Preload("Service").
		Preload("Staff").
		Where(
			"tenant_id = ? AND start_time >= ? AND start_time < ?",
			tenantID, start, end,
		).
		Order("start_time ASC").
		Find(&appointments)

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": appointments,
	})
}

// ======================================================
// STATE TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, func(tenantID, userID, apID uint) (*models.Appointment, error) {
		return h.cancel.Execute(c.Request.Context(), tenantID, userID, apID)
	})
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, func(tenantID, userID, apID uint) (*models.Appointment, error) {
		return h.complete.Execute(c.Request.Context(), tenantID, userID, apID)
	})
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	h.transition(c, func(tenantID, userID, apID uint) (*models.Appointment, error) {
		return h.noShow.Execute(c.Request.Context(), tenantID, &userID, apID)
	})
}

func (h *AppointmentHandler) transition(
	c *gin.Context,
	run func(tenantID, userID, apID uint) (*models.Appointment, error),
) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := run(tenantID, userID, uint(id))
	if err != nil {
		switch {
		case httperr.IsBusiness(err, httperr.CodeAppointmentNotFound):
			httperr.NotFound(c, httperr.CodeAppointmentNotFound, "Appointment not found.")
		case httperr.IsBusiness(err, httperr.CodeInvalidState):
			httperr.BadRequest(c, httperr.CodeInvalidState, "The appointment is not in a state that allows this change.")
		default:
			httperr.Internal(c, "failed_to_update_appointment", "Could not update the appointment.")
		}
		return
	}

	c.JSON(http.StatusOK, ap)
}
