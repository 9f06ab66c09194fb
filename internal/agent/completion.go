package agent

import "context"

// Role of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one entry of a conversation history. Assistant messages may
// carry tool-call requests instead of text; tool messages carry the
// structured result of one dispatched call.
type Message struct {
	Role      Role           `json:"role"`
	Content   string         `json:"content,omitempty"`
	ToolCalls []ToolCall     `json:"tool_calls,omitempty"`
	ToolName  string         `json:"tool_name,omitempty"`
	ToolData  map[string]any `json:"tool_data,omitempty"`
}

// ToolCall is a structured request from the model naming an operation
// and arguments to execute on its behalf.
type ToolCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

// Param describes one tool parameter for the model's schema.
type Param struct {
	Type        string           // "string", "integer", "number", "boolean", "array", "object"
	Description string
	Enum        []string
	Items       *Param           // for arrays
	Properties  map[string]Param // for objects
	Required    []string         // for objects
}

// ToolDecl is one function declaration offered to the model.
type ToolDecl struct {
	Name        string
	Description string
	Params      map[string]Param
	Required    []string
}

// CompletionRequest is a full prompt: system instructions, history and
// the gated tool schema.
type CompletionRequest struct {
	System   string
	Messages []Message
	Tools    []ToolDecl

	// ForceText disables function calling so the model must produce a
	// natural-language reply.
	ForceText bool
}

// CompletionResponse is either text or one or more tool-call requests.
type CompletionResponse struct {
	Text      string
	ToolCalls []ToolCall
}

// CompletionClient abstracts the hosted model completion service.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}
