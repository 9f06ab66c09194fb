package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bookflow-labs/bookflow-server/internal/httperr"
	"github.com/bookflow-labs/bookflow-server/internal/models"
)

// --------- fakes ---------

type fakeCompletion struct {
	requests  []CompletionRequest
	responses []*CompletionResponse
	err       error
}

func (f *fakeCompletion) Complete(_ context.Context, req CompletionRequest) (*CompletionResponse, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.responses) == 0 {
		return &CompletionResponse{Text: "ok"}, nil
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

type dispatched struct {
	call       ToolCall
	authorized bool
}

type fakeDispatcher struct {
	seen []dispatched
}

func (f *fakeDispatcher) Dispatch(_ context.Context, _ uint, authorized bool, call ToolCall) map[string]any {
	f.seen = append(f.seen, dispatched{call: call, authorized: authorized})
	return map[string]any{"ok": true, "tool": call.Name}
}

type fakeSessions struct {
	stored map[string]*Session
	saves  int
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{stored: map[string]*Session{}}
}

func (f *fakeSessions) Get(_ context.Context, tenantID uint, id string) (*Session, error) {
	if s, ok := f.stored[id]; ok {
		return s, nil
	}
	return &Session{ID: id, TenantID: tenantID}, nil
}

func (f *fakeSessions) Save(_ context.Context, sess *Session) error {
	f.saves++
	f.stored[sess.ID] = sess
	return nil
}

type fakeDirectory struct {
	tenant   models.Tenant
	services []models.Service
	profiles []models.BossProfile
	logged   []*models.CallLog
}

func (f *fakeDirectory) GetTenant(_ context.Context, _ uint) (*models.Tenant, error) {
	t := f.tenant
	return &t, nil
}

func (f *fakeDirectory) ListActiveServices(_ context.Context, _ uint) ([]models.Service, error) {
	return f.services, nil
}

func (f *fakeDirectory) ActiveBossProfiles(_ context.Context, _ uint) ([]models.BossProfile, error) {
	return f.profiles, nil
}

func (f *fakeDirectory) LogTurn(_ context.Context, entry *models.CallLog) error {
	f.logged = append(f.logged, entry)
	return nil
}

func newTestAgent(completion *fakeCompletion, dir *fakeDirectory, sessions *fakeSessions) (*Agent, *fakeDispatcher) {
	disp := &fakeDispatcher{}
	return NewAgent(completion, disp, sessions, dir, 0), disp
}

func baseDirectory() *fakeDirectory {
	return &fakeDirectory{
		tenant: models.Tenant{ID: 1, Name: "Glow Studio", Timezone: "UTC"},
		services: []models.Service{
			{ID: 10, TenantID: 1, Name: "Haircut", DurationMin: 30, Price: 25, Active: true},
		},
	}
}

// --------- tests ---------

func TestHandleTurn_PlainReply(t *testing.T) {
	completion := &fakeCompletion{
		responses: []*CompletionResponse{{Text: "We offer haircuts!"}},
	}
	dir := baseDirectory()
	sessions := newFakeSessions()
	ag, disp := newTestAgent(completion, dir, sessions)

	reply, err := ag.HandleTurn(context.Background(), 1, "s1", "what do you offer?")
	if err != nil {
		t.Fatalf("handle turn: %v", err)
	}
	if reply != "We offer haircuts!" {
		t.Fatalf("reply = %q", reply)
	}
	if len(disp.seen) != 0 {
		t.Fatalf("no tools should run on a text-only turn")
	}
	if sessions.saves != 1 {
		t.Fatalf("session should be saved once, got %d", sessions.saves)
	}

	sess := sessions.stored["s1"]
	if len(sess.Messages) != 2 {
		t.Fatalf("expected user+assistant messages, got %d", len(sess.Messages))
	}
	if len(dir.logged) != 1 || dir.logged[0].ToolsUsed != "" {
		t.Fatalf("turn log missing or wrong: %+v", dir.logged)
	}
}

func TestHandleTurn_DispatchesAllToolCallsInOrder(t *testing.T) {
	completion := &fakeCompletion{
		responses: []*CompletionResponse{
			{ToolCalls: []ToolCall{
				{Name: ToolGetServices},
				{Name: ToolCheckAvailability, Args: map[string]any{"service_name": "Haircut"}},
			}},
			{Text: "We have 9:00 AM free."},
		},
	}
	dir := baseDirectory()
	sessions := newFakeSessions()
	ag, disp := newTestAgent(completion, dir, sessions)

	reply, err := ag.HandleTurn(context.Background(), 1, "s1", "anything tomorrow?")
	if err != nil {
		t.Fatalf("handle turn: %v", err)
	}
	if reply != "We have 9:00 AM free." {
		t.Fatalf("reply = %q", reply)
	}

	if len(disp.seen) != 2 {
		t.Fatalf("expected 2 dispatched calls, got %d", len(disp.seen))
	}
	if disp.seen[0].call.Name != ToolGetServices || disp.seen[1].call.Name != ToolCheckAvailability {
		t.Fatalf("calls dispatched out of order: %+v", disp.seen)
	}

	if len(completion.requests) != 2 {
		t.Fatalf("expected 2 completions, got %d", len(completion.requests))
	}
	if !completion.requests[1].ForceText {
		t.Fatalf("second completion must force a text reply")
	}
	if dir.logged[0].ToolsUsed != "get_services,check_availability" {
		t.Fatalf("tools_used = %q", dir.logged[0].ToolsUsed)
	}

	// history: user, assistant(tool calls), 2x tool, assistant(text)
	sess := sessions.stored["s1"]
	if len(sess.Messages) != 5 {
		t.Fatalf("expected 5 session messages, got %d", len(sess.Messages))
	}
	if sess.Messages[2].Role != RoleTool || sess.Messages[2].ToolName != ToolGetServices {
		t.Fatalf("tool result message malformed: %+v", sess.Messages[2])
	}
}

func TestHandleTurn_PrivilegedSchemaHiddenByDefault(t *testing.T) {
	completion := &fakeCompletion{
		responses: []*CompletionResponse{{Text: "hi"}},
	}
	dir := baseDirectory()
	dir.profiles = []models.BossProfile{
		{ID: 1, TenantID: 1, BossName: "John Doe", BossCode: "JOHN-DOE-1234", Active: true},
	}
	sessions := newFakeSessions()
	ag, _ := newTestAgent(completion, dir, sessions)

	if _, err := ag.HandleTurn(context.Background(), 1, "s1", "hello"); err != nil {
		t.Fatalf("handle turn: %v", err)
	}

	tools := completion.requests[0].Tools
	if len(tools) != len(BaseTools()) {
		t.Fatalf("unauthorized session got %d tools, want %d", len(tools), len(BaseTools()))
	}
	for _, tool := range tools {
		if IsPrivileged(tool.Name) {
			t.Fatalf("privileged tool %q offered to unauthorized session", tool.Name)
		}
	}
	if sessions.stored["s1"].Authorized {
		t.Fatalf("session must not be elevated without a code")
	}
}

func TestHandleTurn_CodeInMessageElevatesSession(t *testing.T) {
	completion := &fakeCompletion{
		responses: []*CompletionResponse{
			{Text: "Welcome back, John."},
			{Text: "Staff listed."},
		},
	}
	dir := baseDirectory()
	dir.profiles = []models.BossProfile{
		{ID: 1, TenantID: 1, BossName: "John Doe", BossCode: "JOHN-DOE-1234", Active: true},
	}
	sessions := newFakeSessions()
	ag, disp := newTestAgent(completion, dir, sessions)

	if _, err := ag.HandleTurn(context.Background(), 1, "s1", "john-doe-1234 here"); err != nil {
		t.Fatalf("first turn: %v", err)
	}

	if len(completion.requests[0].Tools) != len(BaseTools())+len(AdminTools()) {
		t.Fatalf("elevated session should see the full schema")
	}

	sess := sessions.stored["s1"]
	if !sess.Authorized || sess.BossName != "John Doe" {
		t.Fatalf("session not elevated: %+v", sess)
	}

	// elevation persists on the next turn without restating the code
	completion.responses = []*CompletionResponse{
		{ToolCalls: []ToolCall{{Name: ToolListStaff}}},
		{Text: "done"},
	}
	if _, err := ag.HandleTurn(context.Background(), 1, "s1", "list the staff"); err != nil {
		t.Fatalf("second turn: %v", err)
	}
	if len(disp.seen) != 1 || !disp.seen[0].authorized {
		t.Fatalf("dispatcher should run privileged call as authorized: %+v", disp.seen)
	}
}

func TestHandleTurn_BossCodeNeverInPrompt(t *testing.T) {
	completion := &fakeCompletion{
		responses: []*CompletionResponse{{Text: "hi"}},
	}
	dir := baseDirectory()
	dir.profiles = []models.BossProfile{
		{ID: 1, TenantID: 1, BossName: "John Doe", BossCode: "JOHN-DOE-1234", Active: true},
	}
	sessions := newFakeSessions()
	ag, _ := newTestAgent(completion, dir, sessions)

	if _, err := ag.HandleTurn(context.Background(), 1, "s1", "hello"); err != nil {
		t.Fatalf("handle turn: %v", err)
	}

	system := completion.requests[0].System
	if strings.Contains(strings.ToUpper(system), "JOHN-DOE-1234") {
		t.Fatalf("authorization code leaked into the system prompt")
	}
}

func TestHandleTurn_UpstreamFailureLeavesSessionUntouched(t *testing.T) {
	completion := &fakeCompletion{err: errors.New("rate limited")}
	dir := baseDirectory()
	sessions := newFakeSessions()
	ag, _ := newTestAgent(completion, dir, sessions)

	_, err := ag.HandleTurn(context.Background(), 1, "s1", "hello")
	if !httperr.IsBusiness(err, httperr.CodeUpstreamError) {
		t.Fatalf("expected upstream_error, got %v", err)
	}
	if sessions.saves != 0 {
		t.Fatalf("a failed turn must not mutate the session")
	}
	if len(dir.logged) != 0 {
		t.Fatalf("a failed turn must not be logged as completed")
	}
}

func TestHandleTurn_TimeoutMapsToUpstreamTimeout(t *testing.T) {
	completion := &fakeCompletion{err: context.DeadlineExceeded}
	dir := baseDirectory()
	sessions := newFakeSessions()
	ag, _ := newTestAgent(completion, dir, sessions)

	_, err := ag.HandleTurn(context.Background(), 1, "s1", "hello")
	if !httperr.IsBusiness(err, httperr.CodeUpstreamTimeout) {
		t.Fatalf("expected upstream_timeout, got %v", err)
	}
}
