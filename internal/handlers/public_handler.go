package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/bookflow-labs/bookflow-server/internal/domain/schedule"
	"github.com/bookflow-labs/bookflow-server/internal/httperr"
	"github.com/bookflow-labs/bookflow-server/internal/httpresp"
	"github.com/bookflow-labs/bookflow-server/internal/models"
	ucschedule "github.com/bookflow-labs/bookflow-server/internal/usecase/schedule"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db       *gorm.DB
	resolver *ucschedule.ResolveAvailability
	booker   *ucschedule.BookSlot
}

func NewPublicHandler(
	db *gorm.DB,
	resolver *ucschedule.ResolveAvailability,
	booker *ucschedule.BookSlot,
) *PublicHandler {
	return &PublicHandler{
		db:       db,
		resolver: resolver,
		booker:   booker,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`
	ServiceName string `json:"service_name" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	Notes       string `json:"notes"`
}

func (h *PublicHandler) findTenant(c *gin.Context) *models.Tenant {
	slug := c.Param("slug")

	var tenant models.Tenant
	if err := h.db.
		Where("slug = ? AND active = true", slug).
		First(&tenant).Error; err != nil {

		httperr.NotFound(c, "tenant_not_found", "Business not found.")
		return nil
	}
	return &tenant
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	tenant := h.findTenant(c)
	if tenant == nil {
		return
	}

	var services []models.Service
	if err := h.db.
		Where("tenant_id = ? AND active = true", tenant.ID).
		Order("id ASC").
		Find(&services).Error; err != nil {

		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"business": gin.H{
			"name":     tenant.Name,
			"slug":     tenant.Slug,
			"timezone": tenant.Timezone,
		},
		"services": services,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	tenant := h.findTenant(c)
	if tenant == nil {
		return
	}

	dateStr := c.Query("date")
	serviceName := c.Query("service")
	if dateStr == "" || serviceName == "" {
		httperr.BadRequest(c, "missing_params", "Date and service are required.")
		return
	}

	result, err := h.resolver.Execute(c.Request.Context(), domain.AvailabilityInput{
		TenantID:    tenant.ID,
		Date:        dateStr,
		ServiceName: serviceName,
	})
	if err != nil {
		mapAvailabilityError(c, err)
		return
	}

	httpresp.OK(c, result)
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	tenant := h.findTenant(c)
	if tenant == nil {
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid appointment payload.")
		return
	}

	ap, err := h.booker.Execute(c.Request.Context(), ucschedule.BookSlotInput{
		TenantID:    tenant.ID,
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
