package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hurttlocker/jot/internal/journal"
	"github.com/hurttlocker/jot/internal/store"
)

func newTestServer() (*Server, *store.Store) {
	st := store.New()
	return New(journal.New(st), WithVersion("test")), st
}

func postMessage(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/message", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHandleMessage_AddRoundTrip(t *testing.T) {
	srv, st := newTestServer()

	rec := postMessage(t, srv, `{"message": "Add eggs and milk to my shopping list"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}

	var reply struct {
		Intent string   `json:"intent"`
		Text   string   `json:"text"`
		Items  []string `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &reply); err != nil {
		t.Fatalf("decoding reply: %v", err)
	}
	if reply.Intent != "add" {
		t.Errorf("intent = %q, want add", reply.Intent)
	}
	if len(reply.Items) != 2 {
		t.Errorf("items = %v, want [egg milk]", reply.Items)
	}
	if reply.Text == "" {
		t.Error("expected a reply text")
	}
	if st.Len() != 1 {
		t.Errorf("store has %d entries, want 1", st.Len())
	}
}

func TestHandleMessage_BadRequests(t *testing.T) {
	srv, st := newTestServer()

	tests := []struct {
		name string
		body string
	}{
		{"not json", "add milk"},
		{"empty object", `{}`},
		{"blank message", `{"message": "   "}`},
	}
	for _, tt := range tests {
		rec := postMessage(t, srv, tt.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tt.name, rec.Code)
		}
		var resp map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Errorf("%s: error body is not JSON: %v", tt.name, err)
		} else if resp["error"] == "" {
			t.Errorf("%s: expected an error message", tt.name)
		}
	}
	if st.Len() != 0 {
		t.Errorf("bad requests stored %d entries", st.Len())
	}
}

func TestHandleQuery(t *testing.T) {
	srv, _ := newTestServer()
	postMessage(t, srv, `{"message": "Add eggs to my shopping list"}`)

	req := httptest.NewRequest("GET", "/api/query?q=what%27s+on+my+list", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	var resp queryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Count != 1 || len(resp.Entries) != 1 {
		t.Errorf("count = %d, entries = %d, want 1", resp.Count, len(resp.Entries))
	}
	if len(resp.Items) != 1 || resp.Items[0] != "egg" {
		t.Errorf("items = %v, want [egg]", resp.Items)
	}
}

func TestHandleQuery_MissingParam(t *testing.T) {
	srv, _ := newTestServer()

	req := httptest.NewRequest("GET", "/api/query", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleEntries_NewestFirstAndLimit(t *testing.T) {
	srv, _ := newTestServer()
	postMessage(t, srv, `{"message": "first note about tea"}`)
	postMessage(t, srv, `{"message": "second note about coffee"}`)

	req := httptest.NewRequest("GET", "/api/entries", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var resp entriesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("count = %d, want 2", resp.Count)
	}
	if !strings.Contains(resp.Entries[0].Content, "second") {
		t.Errorf("entries not newest-first: %q first", resp.Entries[0].Content)
	}

	req = httptest.NewRequest("GET", "/api/entries?limit=1", nil)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding limited response: %v", err)
	}
	if resp.Count != 1 {
		t.Errorf("limited count = %d, want 1", resp.Count)
	}

	req = httptest.NewRequest("GET", "/api/entries?limit=-3", nil)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("negative limit status = %d, want 400", rec.Code)
	}
}

func TestHandleStats(t *testing.T) {
	srv, _ := newTestServer()
	postMessage(t, srv, `{"message": "Add eggs to my shopping list"}`)
	postMessage(t, srv, `{"message": "slept badly"}`)

	req := httptest.NewRequest("GET", "/api/stats", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var resp statsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding stats: %v", err)
	}
	if resp.Entries != 2 {
		t.Errorf("entries = %d, want 2", resp.Entries)
	}
	if resp.EntriesWithItems != 1 {
		t.Errorf("entries with items = %d, want 1", resp.EntriesWithItems)
	}
	if resp.Version != "test" {
		t.Errorf("version = %q, want test", resp.Version)
	}
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer()

	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("body = %q, want ok", rec.Body.String())
	}
}

func TestIndexPage(t *testing.T) {
	srv, _ := newTestServer()

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q, want text/html", ct)
	}
	if !strings.Contains(rec.Body.String(), "/api/message") {
		t.Error("chat page should call the message endpoint")
	}
}
