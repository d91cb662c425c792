package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"cudays/internal/schedule"
)

// HTTPFeed fetches deltas from an updates endpoint:
// GET {base}/api/updates?version=N. The server computes the delta.
type HTTPFeed struct {
	base   string
	client *http.Client
}

var _ schedule.Feed = (*HTTPFeed)(nil)

// NewHTTPFeed creates an HTTP feed against the given base URL.
func NewHTTPFeed(base string, timeout time.Duration) *HTTPFeed {
	return &HTTPFeed{
		base:   base,
		client: &http.Client{Timeout: timeout},
	}
}

// Updates fetches everything changed since sinceVersion.
func (f *HTTPFeed) Updates(ctx context.Context, sinceVersion int64) (*schedule.Delta, error) {
	u, err := url.Parse(f.base)
	if err != nil {
		return nil, fmt.Errorf("bad feed URL %q: %w", f.base, err)
	}
	u = u.JoinPath("api", "updates")
	q := u.Query()
	q.Set("version", strconv.FormatInt(sinceVersion, 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building updates request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching updates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("updates endpoint returned %s", resp.Status)
	}

	return DecodeDelta(resp.Body)
}
