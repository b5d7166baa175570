package mcp

import (
	"context"
	"encoding/json"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hurttlocker/jot/internal/journal"
	"github.com/hurttlocker/jot/internal/store"
)

// helper: engine over a fresh in-memory store
func newTestEngine(t *testing.T) *journal.Engine {
	t.Helper()
	return journal.New(store.New())
}

func TestNewServer(t *testing.T) {
	srv := NewServer(ServerConfig{Engine: newTestEngine(t), Version: "test"})
	if srv == nil {
		t.Fatal("NewServer returned nil")
	}
}

// callTool is a helper that invokes an MCP tool through the server's
// JSON-RPC message handler, the way a connected client would.
func callTool(t *testing.T, srv *server.MCPServer, name string, args map[string]interface{}) *mcplib.CallToolResult {
	t.Helper()

	result := srv.HandleMessage(context.Background(), mustMarshal(t, map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "tools/call",
		"params": map[string]interface{}{
			"name":      name,
			"arguments": args,
		},
	}))

	respBytes, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}

	var resp struct {
		Result struct {
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
			IsError bool `json:"isError"`
		} `json:"result"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		t.Fatalf("unmarshal response: %v\nraw: %s", err, string(respBytes))
	}

	if resp.Error != nil {
		t.Fatalf("JSON-RPC error: %d %s", resp.Error.Code, resp.Error.Message)
	}

	callResult := &mcplib.CallToolResult{
		IsError: resp.Result.IsError,
	}
	for _, c := range resp.Result.Content {
		if c.Type == "text" {
			callResult.Content = append(callResult.Content, mcplib.NewTextContent(c.Text))
		}
	}

	return callResult
}

// readResource reads an MCP resource through the same JSON-RPC path and
// returns the text of its first contents block.
func readResource(t *testing.T, srv *server.MCPServer, uri string) string {
	t.Helper()

	result := srv.HandleMessage(context.Background(), mustMarshal(t, map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "resources/read",
		"params": map[string]interface{}{
			"uri": uri,
		},
	}))

	respBytes, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}

	var resp struct {
		Result struct {
			Contents []struct {
				URI      string `json:"uri"`
				MIMEType string `json:"mimeType"`
				Text     string `json:"text"`
			} `json:"contents"`
		} `json:"result"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		t.Fatalf("unmarshal response: %v\nraw: %s", err, string(respBytes))
	}

	if resp.Error != nil {
		t.Fatalf("JSON-RPC error: %d %s", resp.Error.Code, resp.Error.Message)
	}
	if len(resp.Result.Contents) == 0 {
		t.Fatalf("no contents for resource %s", uri)
	}
	return resp.Result.Contents[0].Text
}

func mustMarshal(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

func getTextContent(t *testing.T, result *mcplib.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("no content in result")
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcplib.TextContent); ok {
			return tc.Text
		}
	}
	t.Fatal("no text content found")
	return ""
}

func TestMessageToolAdd(t *testing.T) {
	engine := newTestEngine(t)
	srv := NewServer(ServerConfig{Engine: engine, Version: "test"})

	result := callTool(t, srv, "journal_message", map[string]interface{}{
		"message": "Add eggs and milk to my shopping list",
	})
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", getTextContent(t, result))
	}

	var reply journal.Reply
	if err := json.Unmarshal([]byte(getTextContent(t, result)), &reply); err != nil {
		t.Fatalf("parsing reply: %v", err)
	}

	if reply.Intent != "add" {
		t.Errorf("intent = %q, want %q", reply.Intent, "add")
	}
	if len(reply.Items) != 2 || reply.Items[0] != "egg" || reply.Items[1] != "milk" {
		t.Errorf("items = %v, want [egg milk]", reply.Items)
	}
	if reply.Extractor != journal.ExtractorRules {
		t.Errorf("extractor = %q, want %q", reply.Extractor, journal.ExtractorRules)
	}
	if reply.Entry == nil || reply.Entry.ID == "" {
		t.Error("expected stored entry with an ID")
	}
	if engine.Store().Len() != 1 {
		t.Errorf("store has %d entries, want 1", engine.Store().Len())
	}
}

func TestMessageToolNote(t *testing.T) {
	srv := NewServer(ServerConfig{Engine: newTestEngine(t), Version: "test"})

	result := callTool(t, srv, "journal_message", map[string]interface{}{
		"message": "Met Sarah for coffee this morning",
	})

	var reply journal.Reply
	if err := json.Unmarshal([]byte(getTextContent(t, result)), &reply); err != nil {
		t.Fatalf("parsing reply: %v", err)
	}

	if reply.Intent != "note" {
		t.Errorf("intent = %q, want %q", reply.Intent, "note")
	}
	if reply.Entry == nil {
		t.Fatal("expected stored note entry")
	}
	if len(reply.Entry.Items) != 0 {
		t.Errorf("note entry items = %v, want none", reply.Entry.Items)
	}
}

func TestMessageToolQueryRoundTrip(t *testing.T) {
	srv := NewServer(ServerConfig{Engine: newTestEngine(t), Version: "test"})

	callTool(t, srv, "journal_message", map[string]interface{}{
		"message": "Add eggs and milk to my shopping list",
	})

	result := callTool(t, srv, "journal_message", map[string]interface{}{
		"message": "What's on my shopping list?",
	})

	var reply journal.Reply
	if err := json.Unmarshal([]byte(getTextContent(t, result)), &reply); err != nil {
		t.Fatalf("parsing reply: %v", err)
	}

	if reply.Intent != "query" {
		t.Errorf("intent = %q, want %q", reply.Intent, "query")
	}
	if len(reply.Entries) != 1 {
		t.Fatalf("got %d matching entries, want 1", len(reply.Entries))
	}
	if len(reply.Items) != 2 {
		t.Errorf("items = %v, want [egg milk]", reply.Items)
	}
}

func TestMessageToolMissingMessage(t *testing.T) {
	srv := NewServer(ServerConfig{Engine: newTestEngine(t), Version: "test"})

	result := callTool(t, srv, "journal_message", map[string]interface{}{})
	if !result.IsError {
		t.Error("expected error for missing message")
	}
}

func TestMessageToolBlankMessage(t *testing.T) {
	engine := newTestEngine(t)
	srv := NewServer(ServerConfig{Engine: engine, Version: "test"})

	result := callTool(t, srv, "journal_message", map[string]interface{}{
		"message": "   ",
	})
	if !result.IsError {
		t.Error("expected error for blank message")
	}
	if engine.Store().Len() != 0 {
		t.Errorf("blank message stored %d entries, want 0", engine.Store().Len())
	}
}

func TestQueryTool(t *testing.T) {
	srv := NewServer(ServerConfig{Engine: newTestEngine(t), Version: "test"})

	callTool(t, srv, "journal_message", map[string]interface{}{
		"message": "Add eggs and milk to my shopping list",
	})
	callTool(t, srv, "journal_message", map[string]interface{}{
		"message": "Met Sarah for coffee this morning",
	})

	// A targeted token query matches only the entry mentioning milk,
	// not the coffee note.
	result := callTool(t, srv, "journal_query", map[string]interface{}{
		"query": "milk",
	})
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", getTextContent(t, result))
	}

	var resp struct {
		Query   string         `json:"query"`
		Count   int            `json:"count"`
		Entries []*store.Entry `json:"entries"`
		Items   []string       `json:"items"`
	}
	if err := json.Unmarshal([]byte(getTextContent(t, result)), &resp); err != nil {
		t.Fatalf("parsing query result: %v", err)
	}

	if resp.Query != "milk" {
		t.Errorf("query = %q, want %q", resp.Query, "milk")
	}
	if resp.Count != 1 || len(resp.Entries) != 1 {
		t.Fatalf("count = %d, entries = %d, want 1 match", resp.Count, len(resp.Entries))
	}
	if len(resp.Items) != 2 {
		t.Errorf("items = %v, want [egg milk]", resp.Items)
	}
}

func TestQueryToolMissingQuery(t *testing.T) {
	srv := NewServer(ServerConfig{Engine: newTestEngine(t), Version: "test"})

	result := callTool(t, srv, "journal_query", map[string]interface{}{})
	if !result.IsError {
		t.Error("expected error for missing query")
	}
}

func TestQueryToolLimit(t *testing.T) {
	srv := NewServer(ServerConfig{Engine: newTestEngine(t), Version: "test"})

	for _, msg := range []string{
		"Add eggs to my shopping list",
		"Add milk to my shopping list",
		"Add bread to my shopping list",
	} {
		callTool(t, srv, "journal_message", map[string]interface{}{"message": msg})
	}

	result := callTool(t, srv, "journal_query", map[string]interface{}{
		"query": "shopping",
		"limit": float64(1),
	})

	var resp struct {
		Count   int            `json:"count"`
		Entries []*store.Entry `json:"entries"`
		Items   []string       `json:"items"`
	}
	if err := json.Unmarshal([]byte(getTextContent(t, result)), &resp); err != nil {
		t.Fatalf("parsing query result: %v", err)
	}

	if len(resp.Entries) != 1 {
		t.Fatalf("got %d entries, want 1 after limit", len(resp.Entries))
	}
	// Items aggregate over all matches, not just the returned page.
	if len(resp.Items) != 3 {
		t.Errorf("items = %v, want all 3", resp.Items)
	}
	// Newest first: the bread entry was appended last.
	if resp.Entries[0].Items[0] != "bread" {
		t.Errorf("first entry items = %v, want newest (bread)", resp.Entries[0].Items)
	}
}

func TestRecentToolEmpty(t *testing.T) {
	srv := NewServer(ServerConfig{Engine: newTestEngine(t), Version: "test"})

	result := callTool(t, srv, "journal_recent", map[string]interface{}{})
	text := getTextContent(t, result)
	if text != "The journal is empty." {
		t.Errorf("empty journal response = %q", text)
	}
}

func TestRecentTool(t *testing.T) {
	srv := NewServer(ServerConfig{Engine: newTestEngine(t), Version: "test"})

	callTool(t, srv, "journal_message", map[string]interface{}{
		"message": "Met Sarah for coffee this morning",
	})
	callTool(t, srv, "journal_message", map[string]interface{}{
		"message": "Add eggs and milk to my shopping list",
	})

	result := callTool(t, srv, "journal_recent", map[string]interface{}{})

	var entries []compactEntry
	if err := json.Unmarshal([]byte(getTextContent(t, result)), &entries); err != nil {
		t.Fatalf("parsing recent entries: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Content != "Add eggs and milk to my shopping list" {
		t.Errorf("first entry = %q, want the newest message", entries[0].Content)
	}
	if entries[0].ID == "" || entries[0].CreatedAt == "" {
		t.Error("expected id and created_at on compact entries")
	}
	if len(entries[0].Items) != 2 {
		t.Errorf("newest entry items = %v, want [egg milk]", entries[0].Items)
	}
}

func TestRecentToolLimit(t *testing.T) {
	srv := NewServer(ServerConfig{Engine: newTestEngine(t), Version: "test"})

	for _, msg := range []string{"first note", "second note", "third note"} {
		callTool(t, srv, "journal_message", map[string]interface{}{"message": msg})
	}

	result := callTool(t, srv, "journal_recent", map[string]interface{}{
		"limit": float64(1),
	})

	var entries []compactEntry
	if err := json.Unmarshal([]byte(getTextContent(t, result)), &entries); err != nil {
		t.Fatalf("parsing recent entries: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Content != "third note" {
		t.Errorf("entry = %q, want the newest note", entries[0].Content)
	}
}

func TestRecentResource(t *testing.T) {
	engine := newTestEngine(t)
	srv := NewServer(ServerConfig{Engine: engine, Version: "test"})

	engine.HandleMessage(context.Background(), "Add eggs to my shopping list")

	text := readResource(t, srv, "journal://recent")

	var payload struct {
		Entries []compactEntry `json:"entries"`
		Count   int            `json:"count"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		t.Fatalf("parsing recent resource: %v", err)
	}

	if payload.Count != 1 || len(payload.Entries) != 1 {
		t.Fatalf("count = %d, entries = %d, want 1", payload.Count, len(payload.Entries))
	}
	if payload.Entries[0].Content != "Add eggs to my shopping list" {
		t.Errorf("entry content = %q", payload.Entries[0].Content)
	}
}

func TestStatsResource(t *testing.T) {
	engine := newTestEngine(t)
	srv := NewServer(ServerConfig{Engine: engine, Version: "test"})

	engine.HandleMessage(context.Background(), "Add eggs and milk to my shopping list")
	engine.HandleMessage(context.Background(), "Met Sarah for coffee this morning")

	text := readResource(t, srv, "journal://stats")

	var stats store.Stats
	if err := json.Unmarshal([]byte(text), &stats); err != nil {
		t.Fatalf("parsing stats resource: %v", err)
	}

	if stats.Entries != 2 {
		t.Errorf("entries = %d, want 2", stats.Entries)
	}
	if stats.EntriesWithItems != 1 {
		t.Errorf("entries_with_items = %d, want 1", stats.EntriesWithItems)
	}
	if stats.DistinctItems != 2 {
		t.Errorf("distinct_items = %d, want 2", stats.DistinctItems)
	}
}
