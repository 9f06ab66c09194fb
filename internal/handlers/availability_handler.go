package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/bookflow-labs/bookflow-server/internal/domain/schedule"
	"github.com/bookflow-labs/bookflow-server/internal/httperr"
	"github.com/bookflow-labs/bookflow-server/internal/httpresp"
	"github.com/bookflow-labs/bookflow-server/internal/middleware"
	ucschedule "github.com/bookflow-labs/bookflow-server/internal/usecase/schedule"
)

type AvailabilityHandler struct {
	resolver *ucschedule.ResolveAvailability
}

func NewAvailabilityHandler(resolver *ucschedule.ResolveAvailability) *AvailabilityHandler {
	return &AvailabilityHandler{resolver: resolver}
}

func (h *AvailabilityHandler) Get(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	dateStr := c.Query("date")
	serviceName := c.Query("service")
	if dateStr == "" || serviceName == "" {
		httperr.BadRequest(c, "missing_params", "Date and service are required.")
		return
	}

	result, err := h.resolver.Execute(c.Request.Context(), domain.AvailabilityInput{
		TenantID:    tenantID,
		Date:        dateStr,
		ServiceName: serviceName,
	})
	if err != nil {
		mapAvailabilityError(c, err)
		return
	}

	httpresp.OK(c, result)
}

func mapAvailabilityError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, httperr.CodeServiceNotFound):
		httperr.NotFound(c, httperr.CodeServiceNotFound, "Service not found.")
	case httperr.IsBusiness(err, "invalid_date"):
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
	default:
		httperr.Internal(c, "availability_failed", "Could not resolve availability.")
	}
}
