package mcp

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// Probe spawns serverCmd as an MCP server over stdio, verifies that it
// advertises get_experts, calls it once, and writes the outcome to out.
// It exists so a deployment can be smoke-tested end to end through the
// real transport instead of in-process.
func Probe(ctx context.Context, out io.Writer, serverCmd string, serverArgs []string) error {
	c, err := client.NewStdioMCPClient(serverCmd, os.Environ(), serverArgs...)
	if err != nil {
		return fmt.Errorf("failed to spawn server %q: %w", serverCmd, err)
	}
	defer c.Close()

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    serverName + "-probe",
		Version: Version,
	}
	if _, err := c.Initialize(ctx, initReq); err != nil {
		return fmt.Errorf("initialize failed: %w", err)
	}

	tools, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return fmt.Errorf("tools/list failed: %w", err)
	}

	names := make([]string, 0, len(tools.Tools))
	found := false
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
		if tool.Name == "get_experts" {
			found = true
		}
	}
	fmt.Fprintln(out, "tools:", strings.Join(names, " "))

	if !found {
		return fmt.Errorf("get_experts not advertised by server (tools: %s)", strings.Join(names, ", "))
	}

	call := mcp.CallToolRequest{}
	call.Params.Name = "get_experts"
	res, err := c.CallTool(ctx, call)
	if err != nil {
		return fmt.Errorf("tools/call failed: %w", err)
	}

	text := resultText(res)
	if res.IsError {
		return fmt.Errorf("get_experts returned an error: %s", text)
	}

	fmt.Fprintln(out, "result:", text)
	return nil
}
