// Package mcp implements the Model Context Protocol (MCP) server for
// automcp using the mcp-go library.
//
// The server exposes a single tool, get_experts, which lists the experts
// available in a VerifAI Assistant data directory. Communication uses
// stdin/stdout with JSON-RPC 2.0 as specified by the MCP standard, so all
// logging stays on stderr.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"automcp/internal/config"
	"automcp/internal/experts"
	"automcp/internal/logging"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const serverName = "automcp"

// Version is set at build time via ldflags.
var Version = "dev"

// Server represents an MCP server instance using mcp-go. The get_experts
// handler is a method with all dependencies injected here; there is no
// package-level state.
type Server struct {
	config    *config.Config
	logger    *logging.AppLogger
	lister    *experts.Lister
	mcpServer *server.MCPServer
}

// NewServer creates a fully wired MCP server. It validates the configured
// match rule but not the assistant path: the path may legitimately be
// absent at startup and supplied per call.
func NewServer(cfg *config.Config, logger *logging.AppLogger) (*Server, error) {
	rule, err := experts.ParseMatchRule(cfg.MatchRule)
	if err != nil {
		return nil, fmt.Errorf("invalid match rule: %w", err)
	}

	s := &Server{
		config: cfg,
		logger: logger,
		lister: experts.NewLister(rule),
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)
	s.mcpServer.AddTool(getExpertsTool(), s.handleGetExperts)

	return s, nil
}

// Serve runs the server on stdio until the client disconnects.
func (s *Server) Serve() error {
	s.logger.Info("Starting MCP server on stdio",
		"path", s.config.VerifAIPath,
		"rule", s.lister.Rule().String(),
	)

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}

func serverInstructions() string {
	return "Exposes the experts configured in a local VerifAI Assistant. " +
		"Call get_experts to list them; the server is read-only and " +
		"re-reads the assistant directory on every call."
}

func getExpertsTool() mcp.Tool {
	return mcp.NewTool("get_experts",
		mcp.WithDescription("List the experts available in the VerifAI Assistant directory."),
		mcp.WithString("verifai_path",
			mcp.Description("VerifAI Assistant directory to scan. Defaults to the path the server was started with (--path or VERIFAI_ASSISTANT_DIR)."),
		),
		mcp.WithBoolean("detailed",
			mcp.Description("Return full expert objects (id, type, state, description) instead of names only."),
		),
	)
}

// handleGetExperts serves one get_experts call. Listing failures become
// tool errors of the form "<kind>: <detail>: <path>", never partial
// results.
func (s *Server) handleGetExperts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("verifai_path", s.config.VerifAIPath)
	if strings.TrimSpace(path) == "" {
		return mcp.NewToolResultError(
			"invalid_argument: no VerifAI Assistant path: pass verifai_path or start the server with --path or VERIFAI_ASSISTANT_DIR",
		), nil
	}
	detailed := req.GetBool("detailed", false)

	s.logger.Debug("get_experts call", "path", path, "detailed", detailed)

	var (
		list []experts.Expert
		err  error
	)
	if detailed {
		list, err = s.lister.ListDetailed(path)
	} else {
		list, err = s.lister.List(path)
	}
	if err != nil {
		s.logger.Warn("get_experts failed", "path", path, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	var payload any
	if detailed {
		payload = list
	} else {
		payload = experts.Names(list)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("get_experts encode failed", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("internal: encoding result: %v", err)), nil
	}

	s.logger.Debug("get_experts ok", "path", path, "count", len(list))
	return mcp.NewToolResultText(string(data)), nil
}

// RunLocal performs one detailed get_experts call in-process and returns
// the result text. Backs the --test flag.
func (s *Server) RunLocal(ctx context.Context) (string, error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = "get_experts"
	req.Params.Arguments = map[string]any{"detailed": true}

	res, err := s.handleGetExperts(ctx, req)
	if err != nil {
		return "", err
	}

	text := resultText(res)
	if res.IsError {
		return "", fmt.Errorf("get_experts: %s", text)
	}
	return text, nil
}

// resultText extracts the first text content of a tool result.
func resultText(res *mcp.CallToolResult) string {
	for _, content := range res.Content {
		if tc, ok := content.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}
