package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookflow-labs/bookflow-server/internal/agent"
	"github.com/bookflow-labs/bookflow-server/internal/httperr"
	"github.com/bookflow-labs/bookflow-server/internal/models"
)

type ChatHandler struct {
	db    *gorm.DB
	agent *agent.Agent
}

func NewChatHandler(db *gorm.DB, ag *agent.Agent) *ChatHandler {
	return &ChatHandler{db: db, agent: ag}
}

type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
}

// Chat runs one conversational turn for the tenant identified by slug.
// A missing session id starts a fresh session.
func (h *ChatHandler) Chat(c *gin.Context) {
	slug := c.Param("slug")

	var tenant models.Tenant
	if err := h.db.
		Where("slug = ? AND active = true", slug).
		First(&tenant).Error; err != nil {

		httperr.NotFound(c, "tenant_not_found", "Business not found.")
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "A message is required.")
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	reply, err := h.agent.HandleTurn(c.Request.Context(), tenant.ID, sessionID, req.Message)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, httperr.CodeUpstreamTimeout) ||
			err == context.DeadlineExceeded:
			httperr.Write(c, http.StatusGatewayTimeout, httperr.CodeUpstreamTimeout,
				"The assistant took too long to respond.")
		case httperr.IsBusiness(err, httperr.CodeUpstreamError):
			httperr.Write(c, http.StatusBadGateway, httperr.CodeUpstreamError,
				"The assistant is unavailable right now.")
		default:
			httperr.Internal(c, "chat_failed", "Could not process the message.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"reply":      reply,
	})
}
