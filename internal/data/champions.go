// Package data provides game data loaders for scoutle.
package data

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ChampionData represents the structure of Data Dragon's champion.json.
type ChampionData struct {
	Type    string                  `json:"type"`
	Version string                  `json:"version"`
	Data    map[string]ChampionInfo `json:"data"`
}

// ChampionInfo represents a single champion entry.
type ChampionInfo struct {
	ID   string   `json:"id"`  // "MonkeyKing"
	Key  string   `json:"key"` // "62"
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

// ChampionCatalog resolves numeric champion keys and Data Dragon ids to
// display names. It loads from a local champion.json when present and from
// Data Dragon otherwise. A failed load is retried on the next lookup.
type ChampionCatalog struct {
	path       string
	url        string
	httpClient *http.Client

	mu     sync.Mutex
	loaded bool
	byKey  map[int]string
	byID   map[string]string
}

// NewChampionCatalog creates a catalog reading path first, then url.
// Either may be empty.
func NewChampionCatalog(path, url string) *ChampionCatalog {
	return &ChampionCatalog{
		path:       path,
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewStaticCatalog returns a catalog over fixed champion entries.
func NewStaticCatalog(champions ...ChampionInfo) *ChampionCatalog {
	c := &ChampionCatalog{loaded: true}
	c.index(champions)
	return c
}

// Load reads the champion data unless an earlier call succeeded.
func (c *ChampionCatalog) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return nil
	}

	raw, err := c.read(ctx)
	if err != nil {
		return err
	}
	var data ChampionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("failed to parse champion data: %w", err)
	}

	champions := make([]ChampionInfo, 0, len(data.Data))
	for id, info := range data.Data {
		if info.ID == "" {
			info.ID = id
		}
		champions = append(champions, info)
	}
	c.index(champions)
	c.loaded = true
	return nil
}

func (c *ChampionCatalog) index(champions []ChampionInfo) {
	c.byKey = make(map[int]string, len(champions))
	c.byID = make(map[string]string, len(champions))
	for _, info := range champions {
		if key, err := strconv.Atoi(info.Key); err == nil {
			c.byKey[key] = info.Name
		}
		if info.ID != "" {
			c.byID[strings.ToLower(info.ID)] = info.Name
		}
	}
}

func (c *ChampionCatalog) read(ctx context.Context) ([]byte, error) {
	if c.path != "" {
		if raw, err := os.ReadFile(c.path); err == nil {
			return raw, nil
		}
	}
	if c.url == "" {
		return nil, fmt.Errorf("no champion data source available")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("champion data request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("champion data status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// NameByKey returns the display name for a numeric champion key.
func (c *ChampionCatalog) NameByKey(ctx context.Context, key int) (string, bool) {
	if err := c.Load(ctx); err != nil {
		return "", false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	name, ok := c.byKey[key]
	return name, ok
}

// NameByID returns the display name for a Data Dragon id such as "MonkeyKing".
func (c *ChampionCatalog) NameByID(ctx context.Context, id string) (string, bool) {
	if err := c.Load(ctx); err != nil {
		return "", false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	name, ok := c.byID[strings.ToLower(id)]
	return name, ok
}
