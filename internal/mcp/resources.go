package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hurttlocker/jot/internal/journal"
)

// recentResourceLimit is how many entries journal://recent exposes.
const recentResourceLimit = 20

func registerRecentResource(s *server.MCPServer, engine *journal.Engine) {
	resource := mcp.NewResource(
		"journal://recent",
		"Recent Entries",
		mcp.WithResourceDescription("The most recently stored journal entries, newest first."),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(resource, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		entries := engine.Store().Recent(recentResourceLimit)

		text, err := resultJSON(map[string]interface{}{
			"entries": compactEntries(entries),
			"count":   len(entries),
		})
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: req.Params.URI, MIMEType: "application/json", Text: text},
		}, nil
	})
}

func registerStatsResource(s *server.MCPServer, engine *journal.Engine) {
	resource := mcp.NewResource(
		"journal://stats",
		"Journal Stats",
		mcp.WithResourceDescription("Entry, item, and keyword counts for the running journal."),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(resource, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		text, err := resultJSON(engine.Store().Snapshot())
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: req.Params.URI, MIMEType: "application/json", Text: text},
		}, nil
	})
}
