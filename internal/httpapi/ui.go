package httpapi

import (
	_ "embed"
	"net/http"
)

// The chat page is a single embedded file; it renders whatever the
// message endpoint returns and holds no state of its own.
//
//go:embed static/index.html
var indexHTML []byte

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(indexHTML) //nolint:errcheck // header already committed
}
