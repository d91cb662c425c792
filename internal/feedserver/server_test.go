package feedserver_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"cudays/internal/feedserver"
	"cudays/internal/schedule"
)

const document = `{"version": 5, "events": {"changed": [], "deleted": [7]}, "categories": {"changed": [], "deleted": []}}`

func newTestServer(t *testing.T, doc string) *httptest.Server {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feed.json")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("writing feed document: %v", err)
	}
	srv := httptest.NewServer(feedserver.NewServer(path, schedule.NewNopLogger()).Router())
	t.Cleanup(srv.Close)
	return srv
}

func getUpdates(t *testing.T, srv *httptest.Server, query string) (int, map[string]json.RawMessage) {
	t.Helper()
	resp, err := http.Get(srv.URL + "/api/updates" + query)
	if err != nil {
		t.Fatalf("GET /api/updates error = %v", err)
	}
	defer resp.Body.Close()

	var body map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return resp.StatusCode, body
}

func TestServer_Updates(t *testing.T) {
	t.Run("serves the document to an out-of-date client", func(t *testing.T) {
		srv := newTestServer(t, document)

		status, body := getUpdates(t, srv, "?version=2")
		if status != http.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		var deleted struct {
			Deleted []int `json:"deleted"`
		}
		json.Unmarshal(body["events"], &deleted)
		if len(deleted.Deleted) != 1 || deleted.Deleted[0] != 7 {
			t.Errorf("events.deleted = %v, want [7]", deleted.Deleted)
		}
	})

	t.Run("current client gets an empty delta at the same version", func(t *testing.T) {
		srv := newTestServer(t, document)

		status, body := getUpdates(t, srv, "?version=5")
		if status != http.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		var version int64
		json.Unmarshal(body["version"], &version)
		if version != 5 {
			t.Errorf("version = %d, want 5", version)
		}
		var events struct {
			Changed []any `json:"changed"`
			Deleted []any `json:"deleted"`
		}
		json.Unmarshal(body["events"], &events)
		if len(events.Changed) != 0 || len(events.Deleted) != 0 {
			t.Errorf("events = %+v, want empty delta", events)
		}
	})

	t.Run("missing version means everything", func(t *testing.T) {
		srv := newTestServer(t, document)

		status, _ := getUpdates(t, srv, "")
		if status != http.StatusOK {
			t.Errorf("status = %d, want 200", status)
		}
	})

	t.Run("invalid version is a client error", func(t *testing.T) {
		srv := newTestServer(t, document)

		status, _ := getUpdates(t, srv, "?version=latest")
		if status != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", status)
		}
	})

	t.Run("malformed document is a server error", func(t *testing.T) {
		srv := newTestServer(t, "{not json")

		status, _ := getUpdates(t, srv, "?version=0")
		if status != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", status)
		}
	})
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(t, document)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
