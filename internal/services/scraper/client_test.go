package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutle/internal/config"
	"github.com/scoutle/internal/storage"
)

// fakeSite serves fixed pages by path and counts requests.
type fakeSite struct {
	mu     sync.Mutex
	pages  map[string]string
	hits   map[string]int
	agents []string
}

func newFakeSite(pages map[string]string) *fakeSite {
	return &fakeSite{pages: pages, hits: make(map[string]int)}
}

func (f *fakeSite) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits[r.URL.Path]++
	f.agents = append(f.agents, r.Header.Get("User-Agent"))
	f.mu.Unlock()

	body, ok := f.pages[r.URL.Path]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(body))
}

func (f *fakeSite) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestScraper(t *testing.T, site http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(site)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		CacheTTL:          time.Minute,
		OPGGBaseURLs:      []string{srv.URL},
		LolalyticsBaseURL: srv.URL,
		UserAgent:         "scoutle-test",
		DDragonBaseURL:    "https://ddragon.example",
		DDragonVersion:    "14.23.1",
	}
	c := NewClient(cfg, storage.NewMemoryClient(), zerolog.Nop())
	c.now = func() time.Time { return fixedNow }
	return c
}

func TestFetchSendsUserAgent(t *testing.T) {
	site := newFakeSite(map[string]string{"/a": "<html></html>"})
	c := newTestScraper(t, site)

	_, err := c.fetch(context.Background(), c.lolalyticsBase+"/a")
	require.NoError(t, err)
	assert.Equal(t, []string{"scoutle-test"}, site.agents)
}

func TestFetchStatusError(t *testing.T) {
	c := newTestScraper(t, newFakeSite(nil))

	_, err := c.fetch(context.Background(), c.lolalyticsBase+"/missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestStatusErrorIs(t *testing.T) {
	assert.ErrorIs(t, &StatusError{StatusCode: 404}, ErrNotFound)
	assert.NotErrorIs(t, &StatusError{StatusCode: 403}, ErrNotFound)
	assert.NotErrorIs(t, &StatusError{StatusCode: 500}, ErrNotFound)
}

func TestFetchFirst(t *testing.T) {
	site := newFakeSite(map[string]string{"/second": "ok"})
	c := newTestScraper(t, site)
	base := c.lolalyticsBase

	body, url, err := c.fetchFirst(context.Background(), []string{base + "/first", base + "/second", base + "/third"})
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, base+"/second", url)
	assert.Equal(t, 0, site.count("/third"))

	_, _, err = c.fetchFirst(context.Background(), []string{base + "/x", base + "/y"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchFirstStopsOnCancel(t *testing.T) {
	c := newTestScraper(t, newFakeSite(nil))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := c.fetchFirst(ctx, []string{c.lolalyticsBase + "/x"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPageText(t *testing.T) {
	p, err := parsePage([]byte(`<html><head><title>Zeri</title><style>.x{}</style></head>
<body><div>Ranked<b>Solo</b></div><script>var hidden = 1;</script><p>Diamond 4</p></body></html>`))
	require.NoError(t, err)

	assert.Equal(t, "Zeri Ranked Solo Diamond 4", p.text)
}

func TestPageDataUnescapesScripts(t *testing.T) {
	p, err := parsePage([]byte(`<script>push("{\"level\":42}")</script>`))
	require.NoError(t, err)
	assert.Contains(t, p.data, `{"level":42}`)
}

func TestCached(t *testing.T) {
	c := newTestScraper(t, newFakeSite(nil))
	ctx := context.Background()
	calls := 0
	compute := func(context.Context) (*struct{ N int }, error) {
		calls++
		return &struct{ N int }{N: 7}, nil
	}

	for range 3 {
		v, err := cached(ctx, c, "k", compute)
		require.NoError(t, err)
		assert.Equal(t, 7, v.N)
	}
	assert.Equal(t, 1, calls)

	failing := func(context.Context) (int, error) {
		calls++
		return 0, errors.New("boom")
	}
	for range 2 {
		_, err := cached(ctx, c, "bad", failing)
		require.Error(t, err)
	}
	assert.Equal(t, 3, calls)
}
