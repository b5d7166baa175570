// Package mcp exposes the journal over the Model Context Protocol so
// agent hosts (Claude Desktop, Cursor, and friends) can jot and recall
// through tools. Three tools cover the conversational round trip, the
// read-only query side, and recent entries; resources surface recent
// entries and store statistics.
//
// Handlers report user-input problems as tool errors, never as Go
// errors: a malformed call is the caller's mistake, not a server fault.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hurttlocker/jot/internal/journal"
	"github.com/hurttlocker/jot/internal/store"
)

// ServerConfig holds configuration for the MCP server.
type ServerConfig struct {
	Engine  *journal.Engine
	Version string // version string for MCP server info
}

// NewServer creates a configured MCP server with all journal tools and
// resources. The engine's store serializes appends internally, so
// concurrently dispatched tool calls keep the insertion-order
// guarantees.
func NewServer(cfg ServerConfig) *server.MCPServer {
	ver := cfg.Version
	if ver == "" {
		ver = "dev"
	}

	s := server.NewMCPServer(
		"jot",
		ver,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(true, false),
	)

	registerMessageTool(s, cfg.Engine)
	registerQueryTool(s, cfg.Engine)
	registerRecentTool(s, cfg.Engine)

	registerRecentResource(s, cfg.Engine)
	registerStatsResource(s, cfg.Engine)

	return s
}

// ServeStdio runs the server on the given streams until the context is
// canceled or stdin closes. Stdout carries the protocol, so transport
// errors are logged to stderr only.
func ServeStdio(ctx context.Context, s *server.MCPServer, stdin io.Reader, stdout io.Writer) error {
	stdio := server.NewStdioServer(s)
	stdio.SetErrorLogger(log.New(os.Stderr, "", log.LstdFlags))
	return stdio.Listen(ctx, stdin, stdout)
}

// --- Tools ---

func registerMessageTool(s *server.MCPServer, engine *journal.Engine) {
	tool := mcp.NewTool("journal_message",
		mcp.WithDescription("Send a free-text message to the journal. The message is classified (add item, query list, plain note), items are extracted where relevant, and the stored entry or matching results are returned."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("The user message, e.g. 'Add eggs and milk to my shopping list'"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		message, err := req.RequireString("message")
		if err != nil {
			return mcp.NewToolResultError("message is required"), nil
		}
		if strings.TrimSpace(message) == "" {
			return mcp.NewToolResultError("message cannot be empty"), nil
		}

		reply := engine.HandleMessage(ctx, message)

		data, _ := json.MarshalIndent(reply, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerQueryTool(s *server.MCPServer, engine *journal.Engine) {
	tool := mcp.NewTool("journal_query",
		mcp.WithDescription("Search journal entries without storing anything. Returns matching entries (newest first) and the de-duplicated item list derived from them."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search query, e.g. 'what's on my shopping list' or 'milk'"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of entries to return (default: all, max: 50)"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := req.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError("query is required"), nil
		}

		entries := engine.Search().Query(query)
		items := engine.Search().ItemsFor(entries)

		if limitVal, err := req.RequireFloat("limit"); err == nil {
			limit := int(limitVal)
			if limit > 50 {
				limit = 50
			}
			if limit > 0 && limit < len(entries) {
				entries = entries[:limit]
			}
		}

		result := map[string]interface{}{
			"query":   query,
			"count":   len(entries),
			"entries": entries,
			"items":   items,
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerRecentTool(s *server.MCPServer, engine *journal.Engine) {
	tool := mcp.NewTool("journal_recent",
		mcp.WithDescription("List the most recently stored journal entries, newest first."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of entries to return (default: 10, max: 50)"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := 10
		if limitVal, err := req.RequireFloat("limit"); err == nil && limitVal > 0 {
			limit = int(limitVal)
			if limit > 50 {
				limit = 50
			}
		}

		entries := engine.Store().Recent(limit)
		if len(entries) == 0 {
			return mcp.NewToolResultText("The journal is empty."), nil
		}

		data, _ := json.MarshalIndent(compactEntries(entries), "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

// --- Helpers ---

// compactEntry is the trimmed entry shape returned by the recent tool
// and resource: content plus derived data, without the tag plumbing.
type compactEntry struct {
	ID        string   `json:"id"`
	Content   string   `json:"content"`
	Items     []string `json:"items,omitempty"`
	Keywords  []string `json:"keywords,omitempty"`
	CreatedAt string   `json:"created_at"`
}

func compactEntries(entries []*store.Entry) []compactEntry {
	out := make([]compactEntry, 0, len(entries))
	for _, e := range entries {
		content := e.Content
		if len(content) > 200 {
			content = content[:200] + "..."
		}
		out = append(out, compactEntry{
			ID:        e.ID,
			Content:   content,
			Items:     e.Items,
			Keywords:  e.Keywords,
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}

func resultJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling resource payload: %w", err)
	}
	return string(data), nil
}
