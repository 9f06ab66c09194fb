package agent

import (
	"context"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

func (g *GeminiClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	model := g.client.GenerativeModel(g.model)

	if req.System != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.System)},
		}
	}

	if len(req.Tools) > 0 {
		model.Tools = []*genai.Tool{{
			FunctionDeclarations: toFunctionDeclarations(req.Tools),
		}}
	}
	if req.ForceText {
		model.ToolConfig = &genai.ToolConfig{
			FunctionCallingConfig: &genai.FunctionCallingConfig{
				Mode: genai.FunctionCallingNone,
			},
		}
	}

	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("empty message history")
	}

	session := model.StartChat()
	for _, m := range req.Messages[:len(req.Messages)-1] {
		session.History = append(session.History, toContent(m))
	}

	last := toContent(req.Messages[len(req.Messages)-1])
	resp, err := session.SendMessage(ctx, last.Parts...)
	if err != nil {
		return nil, fmt.Errorf("gemini completion: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return &CompletionResponse{}, nil
	}

	out := &CompletionResponse{}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			sb.WriteString(string(p))
		case genai.FunctionCall:
			out.ToolCalls = append(out.ToolCalls, ToolCall{
				Name: p.Name,
				Args: p.Args,
			})
		}
	}
	out.Text = sb.String()
	return out, nil
}

func toContent(m Message) *genai.Content {
	switch m.Role {
	case RoleAssistant:
		c := &genai.Content{Role: "model"}
		if m.Content != "" {
			c.Parts = append(c.Parts, genai.Text(m.Content))
		}
		for _, tc := range m.ToolCalls {
			c.Parts = append(c.Parts, genai.FunctionCall{
				Name: tc.Name,
				Args: tc.Args,
			})
		}
		return c
	case RoleTool:
		return &genai.Content{
			Role: "function",
			Parts: []genai.Part{genai.FunctionResponse{
				Name:     m.ToolName,
				Response: m.ToolData,
			}},
		}
	default:
		return &genai.Content{
			Role:  "user",
			Parts: []genai.Part{genai.Text(m.Content)},
		}
	}
}

func toFunctionDeclarations(tools []ToolDecl) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, t := range tools {
		fd := &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
		}
		if len(t.Params) > 0 {
			fd.Parameters = &genai.Schema{
				Type:       genai.TypeObject,
				Properties: toSchemaMap(t.Params),
				Required:   t.Required,
			}
		}
		decls = append(decls, fd)
	}
	return decls
}

func toSchemaMap(params map[string]Param) map[string]*genai.Schema {
	out := make(map[string]*genai.Schema, len(params))
	for name, p := range params {
		out[name] = toSchema(p)
	}
	return out
}

func toSchema(p Param) *genai.Schema {
	s := &genai.Schema{
		Description: p.Description,
		Enum:        p.Enum,
	}
	switch p.Type {
	case "string":
		s.Type = genai.TypeString
	case "integer":
		s.Type = genai.TypeInteger
	case "number":
		s.Type = genai.TypeNumber
	case "boolean":
		s.Type = genai.TypeBoolean
	case "array":
		s.Type = genai.TypeArray
		if p.Items != nil {
			s.Items = toSchema(*p.Items)
		}
	case "object":
		s.Type = genai.TypeObject
		s.Properties = toSchemaMap(p.Properties)
		s.Required = p.Required
	default:
		s.Type = genai.TypeString
	}
	return s
}
