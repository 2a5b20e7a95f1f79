// Package scraper extracts player and champion statistics from op.gg and
// lolalytics HTML pages.
package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/scoutle/internal/config"
	"github.com/scoutle/internal/storage"
)

// Client is the scraper client.
type Client struct {
	httpClient *http.Client
	cache      *storage.RedisClient
	cacheTTL   time.Duration
	limiter    *rate.Limiter
	log        zerolog.Logger
	now        func() time.Time

	userAgent      string
	opggBases      []string
	lolalyticsBase string
	ddragonBase    string
	ddragonVersion string
}

// NewClient creates a new scraper client. Batch scrapes wait
// cfg.ScrapeDelay between page requests.
func NewClient(cfg *config.Config, cache *storage.RedisClient, log zerolog.Logger) *Client {
	limit := rate.Inf
	if cfg.ScrapeDelay > 0 {
		limit = rate.Every(cfg.ScrapeDelay)
	}
	if cache == nil {
		cache = storage.NewMemoryClient()
	}

	return &Client{
		httpClient:     &http.Client{Timeout: 15 * time.Second},
		cache:          cache,
		cacheTTL:       cfg.CacheTTL,
		limiter:        rate.NewLimiter(limit, 1),
		log:            log.With().Str("component", "scraper").Logger(),
		now:            time.Now,
		userAgent:      cfg.UserAgent,
		opggBases:      cfg.OPGGBaseURLs,
		lolalyticsBase: cfg.LolalyticsBaseURL,
		ddragonBase:    cfg.DDragonBaseURL,
		ddragonVersion: cfg.DDragonVersion,
	}
}

// fetch GETs a page with browser-like headers.
func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: url}
	}

	return io.ReadAll(resp.Body)
}

// fetchFirst tries each URL in order and returns the first page served.
// Every failure moves on to the next candidate.
func (c *Client) fetchFirst(ctx context.Context, urls []string) ([]byte, string, error) {
	for _, url := range urls {
		body, err := c.fetch(ctx, url)
		if err == nil {
			c.log.Debug().Str("url", url).Msg("page fetched")
			return body, url, nil
		}
		if ctx.Err() != nil {
			return nil, "", ctx.Err()
		}
		c.log.Debug().Err(err).Str("url", url).Msg("candidate failed")
	}
	return nil, "", ErrNotFound
}

// page is a fetched document. data is the raw HTML with embedded script
// JSON unescaped; text is the visible text.
type page struct {
	doc  *goquery.Document
	data string
	text string
}

func parsePage(body []byte) (*page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	return &page{doc: doc, data: unescapeScripts(string(body)), text: pageText(doc)}, nil
}

// pageText joins the document's text nodes with spaces, skipping scripts,
// so adjacent elements do not run together.
func pageText(doc *goquery.Document) string {
	var b strings.Builder
	var walk func(*goquery.Selection)
	walk = func(s *goquery.Selection) {
		s.Contents().Each(func(_ int, n *goquery.Selection) {
			switch goquery.NodeName(n) {
			case "#text":
				if t := strings.TrimSpace(n.Text()); t != "" {
					b.WriteString(t)
					b.WriteByte(' ')
				}
			case "script", "style", "noscript", "#comment":
			default:
				walk(n)
			}
		})
	}
	walk(doc.Selection)
	return strings.TrimSpace(b.String())
}

func unescapeScripts(html string) string {
	return strings.ReplaceAll(html, `\"`, `"`)
}

// cached returns the value stored under key, or computes and stores it.
func cached[T any](ctx context.Context, c *Client, key string, compute func(context.Context) (T, error)) (T, error) {
	if val, err := c.cache.Get(key); err == nil && val != "" {
		var out T
		if err := json.Unmarshal([]byte(val), &out); err == nil {
			c.log.Debug().Str("key", key).Msg("cache hit")
			return out, nil
		}
	}

	out, err := compute(ctx)
	if err != nil {
		return out, err
	}

	if data, err := json.Marshal(out); err == nil {
		if err := c.cache.SetWithTTL(key, string(data), c.cacheTTL); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("failed to cache result")
		}
	}
	return out, nil
}
