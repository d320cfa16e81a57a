// Package mcp exposes the chatbot as MCP tools over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sandevgo/folio/internal/core"
	"github.com/sandevgo/folio/internal/service/conversation"
	"github.com/sandevgo/folio/pkg/log"
)

const (
	ToolAsk      = "folio_ask"
	ToolClassify = "folio_classify"
)

// ToolResult is the transport-neutral outcome of a tool call.
type ToolResult struct {
	Content string
	IsError bool
}

type ToolInfo struct {
	Name        string
	Description string
}

type Server struct {
	chat      core.Chatbot
	mcpServer *server.MCPServer
}

type askResult struct {
	ConversationID string            `json:"conversationId"`
	Reply          core.ChatbotReply `json:"reply"`
}

func NewServer(chat core.Chatbot) *Server {
	s := &Server{chat: chat}

	s.mcpServer = server.NewMCPServer(
		strings.ToLower(core.FolioName),
		core.FolioVersion,
		server.WithToolCapabilities(true),
	)
	s.registerTools()

	return s
}

// Run serves MCP over stdin/stdout until the input stream closes.
func (s *Server) Run(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("mcp server listening on stdio")
	return server.ServeStdio(s.mcpServer)
}

// HandleMessage processes one raw JSON-RPC message.
func (s *Server) HandleMessage(ctx context.Context, message json.RawMessage) mcp.JSONRPCMessage {
	return s.mcpServer.HandleMessage(ctx, message)
}

func (s *Server) ListTools() []ToolInfo {
	return []ToolInfo{
		{Name: ToolAsk, Description: "Ask the portfolio assistant a question within a conversation"},
		{Name: ToolClassify, Description: "Classify a message into a portfolio intent without keeping state"},
	}
}

// CallTool runs a tool by name without the JSON-RPC layer.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]any) (*ToolResult, error) {
	switch name {
	case ToolAsk:
		return s.handleAsk(ctx, args)
	case ToolClassify:
		return s.handleClassify(ctx, args)
	default:
		return &ToolResult{Content: fmt.Sprintf("unknown tool: %s", name), IsError: true}, nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool(ToolAsk,
		mcp.WithDescription("Ask the portfolio assistant a question. Pass the returned conversationId back to keep follow-up questions in context."),
		mcp.WithString("message",
			mcp.Description("The visitor's question"),
			mcp.Required(),
		),
		mcp.WithString("conversationId",
			mcp.Description("Conversation to continue (default: a new one)"),
		),
	), s.mcpHandleAsk)

	s.mcpServer.AddTool(mcp.NewTool(ToolClassify,
		mcp.WithDescription("Classify a message into a portfolio intent and return the scoring breakdown. Keeps no conversation state."),
		mcp.WithString("message",
			mcp.Description("The message to classify"),
			mcp.Required(),
		),
	), s.mcpHandleClassify)
}

func (s *Server) mcpHandleAsk(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.handleAsk(ctx, req.GetArguments())
	if err != nil {
		return nil, err
	}
	return toMCPResult(result), nil
}

func (s *Server) mcpHandleClassify(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.handleClassify(ctx, req.GetArguments())
	if err != nil {
		return nil, err
	}
	return toMCPResult(result), nil
}

func toMCPResult(r *ToolResult) *mcp.CallToolResult {
	result := &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: r.Content,
			},
		},
	}
	if r.IsError {
		result.IsError = true
	}
	return result
}

func (s *Server) handleAsk(ctx context.Context, args map[string]any) (*ToolResult, error) {
	message, ok := args["message"].(string)
	if !ok || strings.TrimSpace(message) == "" {
		return &ToolResult{Content: "message is required", IsError: true}, nil
	}

	id, _ := args["conversationId"].(string)
	id = strings.TrimSpace(id)
	if id == "" {
		id = conversation.NewID()
	}

	reply := s.chat.Ask(ctx, id, message)
	log.FromCtx(ctx).Debug().
		Str("conversation", id).
		Str("intent", reply.Intent).
		Str("source", reply.Source).
		Msg("mcp ask")

	return jsonResult(askResult{ConversationID: id, Reply: reply})
}

func (s *Server) handleClassify(_ context.Context, args map[string]any) (*ToolResult, error) {
	message, ok := args["message"].(string)
	if !ok {
		return &ToolResult{Content: "message is required", IsError: true}, nil
	}

	return jsonResult(s.chat.Classify(message))
}

func jsonResult(v any) (*ToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return &ToolResult{Content: string(b)}, nil
}
