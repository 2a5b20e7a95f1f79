package riot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/scoutle/internal/config"
	"github.com/scoutle/internal/data"
	"github.com/scoutle/internal/storage"
)

var (
	ErrNoAPIKey      = errors.New("riot api key not configured")
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrRateLimited   = errors.New("rate limited")
	ErrUnknownRegion = errors.New("unknown region")
)

// APIError is a non-200 response from the Riot API.
type APIError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Body)
}

// Is lets errors.Is match an APIError against the status sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	}
	return false
}

// Client is a client for Riot Games API.
type Client struct {
	apiKey       string
	hostTemplate string
	region       string
	httpClient   *http.Client
	limiter      *rate.Limiter
	cache        *storage.RedisClient
	cacheTTL     time.Duration
	champions    *data.ChampionCatalog
	log          zerolog.Logger

	matchCount  int
	maxAnalyze  int
	concurrency int
}

// NewClient creates a new Riot API client. Every uncached request waits on
// a limiter that admits one request per cfg.RateLimitDelay.
func NewClient(cfg *config.Config, cache *storage.RedisClient, champions *data.ChampionCatalog, log zerolog.Logger) *Client {
	// Reuse connections for efficiency
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
	}

	limit := rate.Inf
	if cfg.RateLimitDelay > 0 {
		limit = rate.Every(cfg.RateLimitDelay)
	}

	if cache == nil {
		cache = storage.NewMemoryClient()
	}

	concurrency := cfg.MaxConcurrentRequests
	if concurrency < 1 {
		concurrency = 1
	}

	return &Client{
		apiKey:       cfg.RiotAPIKey,
		hostTemplate: cfg.RiotHostTemplate,
		region:       cfg.Region,
		httpClient: &http.Client{
			Timeout:   15 * time.Second,
			Transport: transport,
		},
		limiter:     rate.NewLimiter(limit, 1),
		cache:       cache,
		cacheTTL:    cfg.CacheTTL,
		champions:   champions,
		log:         log.With().Str("component", "riot").Logger(),
		matchCount:  cfg.DefaultMatchCount,
		maxAnalyze:  cfg.MaxMatchesAnalyze,
		concurrency: concurrency,
	}
}

// HasAPIKey reports whether requests can be authenticated.
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// host returns the API base URL for a region, on its routing cluster
// (account, match) or its platform (summoner, league, mastery).
func (c *Client) host(region string, routing bool) (string, error) {
	if region == "" {
		region = c.region
	}
	r, ok := config.LookupRegion(region)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownRegion, region)
	}
	if routing {
		return fmt.Sprintf(c.hostTemplate, r.Routing), nil
	}
	return fmt.Sprintf(c.hostTemplate, r.Platform), nil
}

// doRequest makes a cached, rate limited GET request to Riot API.
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	cacheKey := "riot:" + reqURL
	if cached, err := c.cache.Get(cacheKey); err == nil && cached != "" {
		c.log.Debug().Str("url", reqURL).Msg("cache hit")
		return []byte(cached), nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Riot-Token", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &APIError{StatusCode: resp.StatusCode, URL: reqURL, Body: string(body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if err := c.cache.SetWithTTL(cacheKey, string(body), c.cacheTTL); err != nil {
		c.log.Warn().Err(err).Msg("failed to cache response")
	}

	return body, nil
}

func getJSON[T any](ctx context.Context, c *Client, reqURL string) (T, error) {
	var out T
	body, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("failed to parse response: %w", err)
	}
	return out, nil
}

// GetAccountByRiotID looks up an account by Riot ID (Name#Tag).
func (c *Client) GetAccountByRiotID(ctx context.Context, region, gameName, tagLine string) (*AccountResponse, error) {
	base, err := c.host(region, true)
	if err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		base,
		url.PathEscape(gameName),
		url.PathEscape(tagLine),
	)

	resp, err := getJSON[AccountResponse](ctx, c, reqURL)
	if err != nil {
		return nil, fmt.Errorf("account %s#%s: %w", gameName, tagLine, err)
	}
	return &resp, nil
}

// GetSummonerByPUUID returns the summoner record (level, icon, ids).
func (c *Client) GetSummonerByPUUID(ctx context.Context, region, puuid string) (*SummonerDTO, error) {
	base, err := c.host(region, false)
	if err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/lol/summoner/v4/summoners/by-puuid/%s", base, url.PathEscape(puuid))
	resp, err := getJSON[SummonerDTO](ctx, c, reqURL)
	if err != nil {
		return nil, fmt.Errorf("summoner: %w", err)
	}
	return &resp, nil
}

// GetLeagueEntries returns the player's ranked entries, one per queue.
func (c *Client) GetLeagueEntries(ctx context.Context, region, puuid string) ([]LeagueEntryDTO, error) {
	base, err := c.host(region, false)
	if err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/lol/league/v4/entries/by-puuid/%s", base, url.PathEscape(puuid))
	entries, err := getJSON[[]LeagueEntryDTO](ctx, c, reqURL)
	if err != nil {
		return nil, fmt.Errorf("league entries: %w", err)
	}
	return entries, nil
}

// GetChampionMasteries returns the player's highest mastery champions.
func (c *Client) GetChampionMasteries(ctx context.Context, region, puuid string, top int) ([]ChampionMasteryDTO, error) {
	base, err := c.host(region, false)
	if err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/lol/champion-mastery/v4/champion-masteries/by-puuid/%s/top?count=%d",
		base, url.PathEscape(puuid), top)
	masteries, err := getJSON[[]ChampionMasteryDTO](ctx, c, reqURL)
	if err != nil {
		return nil, fmt.Errorf("champion masteries: %w", err)
	}
	return masteries, nil
}

// MatchQuery filters match history. Zero values are omitted from the request.
type MatchQuery struct {
	Start int
	Count int
	Queue *int   // queue id, e.g. 420 for ranked solo
	Type  string // ranked, normal, tourney, tutorial
}

// GetMatchIDs gets list of recent match IDs, newest first.
func (c *Client) GetMatchIDs(ctx context.Context, region, puuid string, q MatchQuery) ([]string, error) {
	base, err := c.host(region, true)
	if err != nil {
		return nil, err
	}

	count := q.Count
	if count <= 0 {
		count = c.matchCount
	}

	params := url.Values{}
	params.Set("start", strconv.Itoa(q.Start))
	params.Set("count", strconv.Itoa(count))
	if q.Queue != nil {
		params.Set("queue", strconv.Itoa(*q.Queue))
	}
	if q.Type != "" {
		params.Set("type", q.Type)
	}

	reqURL := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids?%s", base, url.PathEscape(puuid), params.Encode())
	ids, err := getJSON[[]string](ctx, c, reqURL)
	if err != nil {
		return nil, fmt.Errorf("match ids: %w", err)
	}
	return ids, nil
}

// GetMatchDetails gets full details of a match.
func (c *Client) GetMatchDetails(ctx context.Context, region, matchID string) (*MatchResponse, error) {
	base, err := c.host(region, true)
	if err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/lol/match/v5/matches/%s", base, url.PathEscape(matchID))
	resp, err := getJSON[MatchResponse](ctx, c, reqURL)
	if err != nil {
		return nil, fmt.Errorf("match %s: %w", matchID, err)
	}
	return &resp, nil
}

// GetMatches fetches match details concurrently, keeping the order of ids.
// Matches that fail to load are logged and left out; only cancellation of
// ctx is returned as an error.
func (c *Client) GetMatches(ctx context.Context, region string, ids []string) ([]*MatchResponse, error) {
	results := make([]*MatchResponse, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, id := range ids {
		g.Go(func() error {
			match, err := c.GetMatchDetails(gctx, region, id)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				c.log.Warn().Err(err).Str("match_id", id).Msg("skipping match")
				return nil
			}
			results[i] = match
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	matches := make([]*MatchResponse, 0, len(results))
	for _, m := range results {
		if m != nil {
			matches = append(matches, m)
		}
	}
	return matches, nil
}

// championName resolves a participant's champion to its display name. The
// payload's championName is a Data Dragon id ("Kaisa", "MonkeyKing"), so the
// numeric key is tried first, then the id, then the raw payload value.
func (c *Client) championName(ctx context.Context, p Participant) string {
	if c.champions != nil {
		if p.ChampionID > 0 {
			if name, ok := c.champions.NameByKey(ctx, p.ChampionID); ok {
				return name
			}
		}
		if p.ChampionName != "" {
			if name, ok := c.champions.NameByID(ctx, p.ChampionName); ok {
				return name
			}
		}
	}
	if p.ChampionName != "" {
		return p.ChampionName
	}
	return fmt.Sprintf("Champion_%d", p.ChampionID)
}

// resolveChampionNames replaces every participant's championName with its
// display name, in place.
func (c *Client) resolveChampionNames(ctx context.Context, matches []*MatchResponse) {
	for _, m := range matches {
		for i := range m.Info.Participants {
			p := &m.Info.Participants[i]
			p.ChampionName = c.championName(ctx, *p)
		}
	}
}
