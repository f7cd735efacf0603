// Package mcpclient connects the CLI to a Trench MCP server over the official
// SDK transports: a spawned server binary on stdio, or a streamable HTTP
// endpoint.
package mcpclient

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mwiater/trench/internal/logging"
)

// Options selects how the client reaches the server.
type Options struct {
	// BinaryPath is the server binary spawned for stdio transport.
	BinaryPath string

	// ConfigPath, when non-empty, is forwarded to the spawned binary via
	// --config.
	ConfigPath string

	// HTTPEndpoint, when set, connects over streamable HTTP instead of
	// spawning a process.
	HTTPEndpoint string
}

// Client wraps one live MCP session.
type Client struct {
	session *mcp.ClientSession
}

// Connect establishes a session per opts and performs the initialize
// handshake.
func Connect(ctx context.Context, opts Options) (*Client, error) {
	var transport mcp.Transport

	if opts.HTTPEndpoint != "" {
		transport = &mcp.StreamableClientTransport{Endpoint: opts.HTTPEndpoint}
	} else {
		binary := opts.BinaryPath
		if _, err := os.Stat(binary); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				logging.LogEvent("MCP server start aborted: binary %q missing", binary)
				return nil, fmt.Errorf("mcp server binary not found at %q", binary)
			}
			logging.LogEvent("MCP server start aborted: binary %q not accessible (%v)", binary, err)
			return nil, fmt.Errorf("mcp server binary %q not accessible: %w", binary, err)
		}

		var args []string
		if opts.ConfigPath != "" {
			args = append(args, "--config", opts.ConfigPath)
		}
		cmd := exec.CommandContext(ctx, binary, args...)
		cmd.Env = os.Environ()
		cmd.Stderr = os.Stderr
		transport = &mcp.CommandTransport{Command: cmd}
	}

	return connect(ctx, transport)
}

// connect wires a session over any SDK transport.
func connect(ctx context.Context, transport mcp.Transport) (*Client, error) {
	client := mcp.NewClient(&mcp.Implementation{Name: "trench-cli", Version: "dev"}, nil)
	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mcp server: %w", err)
	}
	return &Client{session: session}, nil
}

// Tools lists the server's tool catalogue using the discovery iterator.
func (c *Client) Tools(ctx context.Context) ([]mcp.Tool, error) {
	var out []mcp.Tool
	for tool, err := range c.session.Tools(ctx, nil) {
		if err != nil {
			return nil, fmt.Errorf("failed to list tools: %w", err)
		}
		out = append(out, *tool)
	}
	return out, nil
}

// Result is the flattened outcome of one tool call.
type Result struct {
	Text    string
	IsError bool
}

// CallToolRaw invokes one tool and returns the SDK result unmodified.
func (c *Client) CallToolRaw(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	res, err := c.session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		return nil, fmt.Errorf("call to tool %q failed: %w", name, err)
	}
	return res, nil
}

// CallTool invokes one tool and concatenates its text content.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (Result, error) {
	res, err := c.CallToolRaw(ctx, name, args)
	if err != nil {
		return Result{}, err
	}

	var sb strings.Builder
	for _, content := range res.Content {
		if tc, ok := content.(*mcp.TextContent); ok {
			if sb.Len() > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(tc.Text)
		}
	}
	return Result{Text: sb.String(), IsError: res.IsError}, nil
}

// Close terminates the session and any spawned server process.
func (c *Client) Close() error {
	return c.session.Close()
}
