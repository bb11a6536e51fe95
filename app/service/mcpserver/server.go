package mcpserver

import (
	"context"
	"fmt"
	"intentbot/app/client/downstream"
	"intentbot/app/service/calc"
	"intentbot/app/service/catalog"
	"log/slog"
	"os"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/samber/do"
	"github.com/tmc/langchaingo/tools"
)

const (
	serverName    = "intentbot"
	serverVersion = "1.0.0"
)

// Server exposes the arithmetic and catalog tools over MCP.
type Server struct {
	mcpServer *server.MCPServer

	// catalog handlers share one product index that is not safe for concurrent use
	mu sync.Mutex
}

func New(_ *do.Injector) (*Server, error) {
	// stdout carries JSON-RPC, simulated REST requests go to stderr
	printer := downstream.NewPrinter(os.Stderr)

	return NewServer(calc.Tools(), catalog.NewHandlers(catalog.NewProductIndex(), printer)), nil
}

func NewServer(calcTools []tools.Tool, handlers []catalog.Handler) *Server {
	s := &Server{
		mcpServer: server.NewMCPServer(serverName, serverVersion),
	}

	for _, tool := range calcTools {
		s.mcpServer.AddTool(mcp.NewTool(tool.Name(),
			mcp.WithDescription(tool.Description()),
			mcp.WithString("text", mcp.Required(), mcp.Description("Free text containing the numbers")),
		), s.calcHandler(tool))
	}

	for _, h := range handlers {
		opts := []mcp.ToolOption{mcp.WithDescription(h.Description())}
		for _, field := range h.Fields() {
			opts = append(opts, mcp.WithString(field.Key, mcp.Description(field.Label)))
		}

		s.mcpServer.AddTool(mcp.NewTool(h.Name(), opts...), s.catalogHandler(h))
	}

	return s
}

func (s *Server) ServeStdio() error {
	slog.Info("Starting MCP server (stdio)")

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve MCP: %w", err)
	}

	return nil
}

func (s *Server) calcHandler(tool tools.Tool) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		output, err := tool.Call(ctx, request.GetString("text", ""))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", tool.Name(), err)), nil
		}

		return mcp.NewToolResultText(output), nil
	}
}

func (s *Server) catalogHandler(h catalog.Handler) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		action := catalog.Action{Type: h.Type()}
		for _, field := range h.Fields() {
			action.Set(field.Key, request.GetString(field.Key, ""))
		}

		s.mu.Lock()
		result, err := h.Handle(ctx, action)
		s.mu.Unlock()

		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", h.Name(), err)), nil
		}

		if !result.Done() {
			return mcp.NewToolResultError(result.Sentinel()), nil
		}

		return mcp.NewToolResultText(result.Value()), nil
	}
}
