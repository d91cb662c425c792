// Package feedserver serves a feed document over HTTP for development and
// testing: point a feed.type="http" client at it and it behaves like the
// production updates endpoint, including the server-side version
// short-circuit.
package feedserver

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"

	"cudays/internal/schedule"
)

// Server serves the document at Path. The file is re-read on every request
// so it can be edited between syncs without restarting.
type Server struct {
	Path   string
	Logger schedule.Logger
}

// NewServer creates a feed server for the given document path.
func NewServer(path string, logger schedule.Logger) *Server {
	return &Server{Path: path, Logger: logger}
}

// Router returns the HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/updates", s.getUpdates).Methods(http.MethodGet)
	r.HandleFunc("/health", s.getHealth).Methods(http.MethodGet)
	return r
}

// getUpdates serves the document, trimmed to an empty delta when the
// client's version is already current.
func (s *Server) getUpdates(w http.ResponseWriter, r *http.Request) {
	since := int64(0)
	if v := r.URL.Query().Get("version"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid version: " + v})
			return
		}
		since = parsed
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		s.Logger.Error("feed document unreadable", "path", s.Path, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "feed document unreadable"})
		return
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		s.Logger.Error("feed document malformed", "path", s.Path, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "feed document malformed"})
		return
	}

	var version int64
	if raw, ok := doc["version"]; ok {
		if err := json.Unmarshal(raw, &version); err != nil {
			s.Logger.Error("feed document missing version", "path", s.Path, "err", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "feed document malformed"})
			return
		}
	}

	if version <= since {
		writeJSON(w, http.StatusOK, map[string]any{
			"version":    version,
			"categories": map[string]any{"changed": []any{}, "deleted": []any{}},
			"events":     map[string]any{"changed": []any{}, "deleted": []any{}},
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
