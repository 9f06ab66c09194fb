package agent

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bookflow-labs/bookflow-server/internal/authz"
	"github.com/bookflow-labs/bookflow-server/internal/httperr"
	"github.com/bookflow-labs/bookflow-server/internal/logger"
	"github.com/bookflow-labs/bookflow-server/internal/models"
	"github.com/bookflow-labs/bookflow-server/internal/timezone"
)

// SessionRepo abstracts the session store for the loop.
type SessionRepo interface {
	Get(ctx context.Context, tenantID uint, id string) (*Session, error)
	Save(ctx context.Context, sess *Session) error
}

// Agent drives the tool-orchestrated conversation loop. One turn:
// authorize from the caller's own words, complete, dispatch any
// requested tool calls in order, complete again for a natural-language
// reply.
type Agent struct {
	completion  CompletionClient
	dispatcher  ToolDispatcher
	sessions    SessionRepo
	directory   TenantDirectory
	turnTimeout time.Duration
}

func NewAgent(
	completion CompletionClient,
	dispatcher ToolDispatcher,
	sessions SessionRepo,
	directory TenantDirectory,
	turnTimeout time.Duration,
) *Agent {
	return &Agent{
		completion:  completion,
		dispatcher:  dispatcher,
		sessions:    sessions,
		directory:   directory,
		turnTimeout: turnTimeout,
	}
}

// HandleTurn processes one user utterance and returns the model's final
// reply. Upstream completion failures end the turn without mutating the
// session.
func (a *Agent) HandleTurn(ctx context.Context, tenantID uint, sessionID, userText string) (string, error) {
	if a.turnTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.turnTimeout)
		defer cancel()
	}

	tenant, err := a.directory.GetTenant(ctx, tenantID)
	if err != nil {
		return "", err
	}

	sess, err := a.sessions.Get(ctx, tenantID, sessionID)
	if err != nil {
		return "", err
	}

	profiles, err := a.directory.ActiveBossProfiles(ctx, tenantID)
	if err != nil {
		return "", err
	}

	// The gate elevates the session from message content alone, never
	// from model self-report.
	if !sess.Authorized {
		if match := authz.FindCodeIn(userText, profiles); match != nil {
			sess.Authorized = true
			sess.BossName = match.BossName
		}
	}

	services, err := a.directory.ListActiveServices(ctx, tenantID)
	if err != nil {
		return "", err
	}

	system := buildSystemPrompt(
		tenant,
		services,
		timezone.NowIn(tenant.Timezone),
		len(profiles) > 0,
		sess.BossName,
	)

	messages := append(append([]Message{}, sess.Messages...), Message{
		Role:    RoleUser,
		Content: userText,
	})

	first, err := a.completion.Complete(ctx, CompletionRequest{
		System:   system,
		Messages: messages,
		Tools:    ToolsFor(sess.Authorized),
	})
	if err != nil {
		return "", upstreamError(err)
	}

	reply := first.Text
	var toolsUsed []string

	if len(first.ToolCalls) > 0 {
		messages = append(messages, Message{
			Role:      RoleAssistant,
			ToolCalls: first.ToolCalls,
		})

		// every requested call runs, in the order requested
		for _, call := range first.ToolCalls {
			result := a.dispatcher.Dispatch(ctx, tenantID, sess.Authorized, call)
			toolsUsed = append(toolsUsed, call.Name)
			messages = append(messages, Message{
				Role:     RoleTool,
				ToolName: call.Name,
				ToolData: result,
			})
		}

		final, err := a.completion.Complete(ctx, CompletionRequest{
			System:    system,
			Messages:  messages,
			ForceText: true,
		})
		if err != nil {
			return "", upstreamError(err)
		}
		reply = final.Text
	}

	sess.Messages = append(messages, Message{
		Role:    RoleAssistant,
		Content: reply,
	})
	if err := a.sessions.Save(ctx, sess); err != nil {
		logger.Get().Warn("failed to save agent session",
			zap.String("session_id", sessionID), zap.Error(err))
	}

	if err := a.directory.LogTurn(ctx, &models.CallLog{
		TenantID:  tenantID,
		SessionID: sessionID,
		UserText:  userText,
		Reply:     reply,
		ToolsUsed: strings.Join(toolsUsed, ","),
		Status:    "completed",
	}); err != nil {
		logger.Get().Warn("failed to log agent turn", zap.Error(err))
	}

	return reply, nil
}

func upstreamError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return httperr.ErrBusiness(httperr.CodeUpstreamTimeout)
	}
	return httperr.ErrBusiness(httperr.CodeUpstreamError)
}
