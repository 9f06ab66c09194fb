package agent

import (
	"context"
	"testing"

	"github.com/bookflow-labs/bookflow-server/internal/httperr"
)

func TestDispatch_RejectsPrivilegedWhenUnauthorized(t *testing.T) {
	d := &Dispatcher{}

	for _, name := range []string{
		ToolListStaff, ToolCreateStaff, ToolDeleteStaff,
		ToolSetStaffSchedule, ToolCreateService, ToolUpdateService, ToolDeleteService,
	} {
		result := d.Dispatch(context.Background(), 1, false, ToolCall{Name: name})
		if result["error"] != httperr.CodeAuthorizationDenied {
			t.Fatalf("%s without authorization: got %v, want %s",
				name, result["error"], httperr.CodeAuthorizationDenied)
		}
	}
}

func TestDispatch_UnknownTool(t *testing.T) {
	d := &Dispatcher{}

	result := d.Dispatch(context.Background(), 1, true, ToolCall{Name: "reboot_server"})
	if result["error"] != "unknown_tool" {
		t.Fatalf("unknown tool: got %v", result["error"])
	}
}
