package trends

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"
)

// diskCache is an http.RoundTripper that persists successful responses on
// disk for the rest of the calendar day. Repeated runs over the same range
// replay cached windows instead of re-fetching them, which keeps iterating
// on export options from burning through the provider's rate limit. Keys
// roll over at midnight UTC so stale prices never outlive a day.
type diskCache struct {
	dir  string
	next http.RoundTripper
	now  func() time.Time
}

// NewDiskCache wraps next with a day-scoped response cache rooted at dir.
// A nil next uses http.DefaultTransport.
func NewDiskCache(dir string, next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &diskCache{dir: dir, next: next, now: time.Now}
}

// key derives the cache file name from the request URL and the current day.
func (c *diskCache) key(req *http.Request) string {
	h := sha1.New()
	fmt.Fprintf(h, "%s %s", c.now().UTC().Format("2006-01-02"), req.URL.String())
	return fmt.Sprintf("%x", h.Sum(nil))
}

// RoundTrip serves from the cache when a same-day entry exists, otherwise
// forwards the request and stores any successful response. Only GET
// responses below status 300 are cached.
func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet {
		return c.next.RoundTrip(req)
	}

	file := filepath.Join(c.dir, c.key(req))
	if content, err := os.ReadFile(file); err == nil {
		return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
	}

	resp, err := c.next.RoundTrip(req)
	if err != nil {
		return resp, err
	}
	if resp.StatusCode >= 300 {
		return resp, nil
	}

	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return resp, err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return resp, fmt.Errorf("creating cache dir: %w", err)
	}
	if err := os.WriteFile(file, content, 0o644); err != nil {
		return resp, fmt.Errorf("caching response: %w", err)
	}

	// DumpResponse drained the body, so hand back the cached copy.
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
}
