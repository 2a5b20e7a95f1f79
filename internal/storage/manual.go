package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/scoutle/internal/models"
)

var (
	ErrDuplicateMatch = errors.New("match id already exists")
	ErrMatchNotFound  = errors.New("match not found")
	ErrInvalidMatch   = errors.New("invalid match")
)

// ManualMatchStore manages manually entered matches persisted as a JSON array.
type ManualMatchStore struct {
	path    string
	matches []models.ManualMatch
	mu      sync.RWMutex
	log     zerolog.Logger
	now     func() time.Time
}

// NewManualMatchStore opens the store at path, loading existing matches.
// A missing file yields an empty store.
func NewManualMatchStore(path string, log zerolog.Logger) (*ManualMatchStore, error) {
	s := &ManualMatchStore{
		path: path,
		log:  log,
		now:  time.Now,
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the in-memory matches with the file contents.
func (s *ManualMatchStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.matches = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read manual matches: %w", err)
	}

	var matches []models.ManualMatch
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := json.Unmarshal(data, &matches); err != nil {
			return fmt.Errorf("failed to parse manual matches %s: %w", s.path, err)
		}
	}

	s.matches = matches
	s.log.Debug().Int("count", len(matches)).Str("path", s.path).Msg("loaded manual matches")
	return nil
}

// Save writes all matches to disk.
func (s *ManualMatchStore) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveLocked()
}

func (s *ManualMatchStore) saveLocked() error {
	matches := s.matches
	if matches == nil {
		matches = []models.ManualMatch{}
	}

	data, err := json.MarshalIndent(matches, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal matches: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manual matches: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace manual matches: %w", err)
	}
	return nil
}

// Add stores a new match. An empty MatchID is generated and an empty Date
// is set to the current time. The stored match is returned.
func (s *ManualMatchStore) Add(m models.ManualMatch) (models.ManualMatch, error) {
	if err := m.Validate(); err != nil {
		return models.ManualMatch{}, fmt.Errorf("%w: %v", ErrInvalidMatch, err)
	}
	m.Result = strings.ToUpper(m.Result)
	if m.MatchID == "" {
		m.MatchID = "MANUAL_" + strings.ToUpper(uuid.NewString()[:8])
	}
	if m.Date == "" {
		m.Date = s.now().Format(models.ManualDateLayout)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.matches {
		if existing.MatchID == m.MatchID {
			return models.ManualMatch{}, fmt.Errorf("%w: %s", ErrDuplicateMatch, m.MatchID)
		}
	}

	s.matches = append(s.matches, m)
	if err := s.saveLocked(); err != nil {
		s.matches = s.matches[:len(s.matches)-1]
		return models.ManualMatch{}, err
	}

	s.log.Info().Str("match_id", m.MatchID).Str("champion", m.ChampionName).Str("result", m.Result).Msg("added manual match")
	return m, nil
}

// Remove deletes a match by id.
func (s *ManualMatchStore) Remove(matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, m := range s.matches {
		if m.MatchID == matchID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
	}

	previous := s.matches
	next := make([]models.ManualMatch, 0, len(previous)-1)
	next = append(next, previous[:idx]...)
	next = append(next, previous[idx+1:]...)
	s.matches = next
	if err := s.saveLocked(); err != nil {
		s.matches = previous
		return err
	}

	s.log.Info().Str("match_id", matchID).Msg("removed manual match")
	return nil
}

// Get returns a match by id.
func (s *ManualMatchStore) Get(matchID string) (models.ManualMatch, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.matches {
		if m.MatchID == matchID {
			return m, true
		}
	}
	return models.ManualMatch{}, false
}

// All returns a copy of every stored match.
func (s *ManualMatchStore) All() []models.ManualMatch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ManualMatch, len(s.matches))
	copy(out, s.matches)
	return out
}

// Count returns the number of stored matches.
func (s *ManualMatchStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matches)
}

// MatchesForSummoner returns a summoner's matches, matching names case-insensitively.
func (s *ManualMatchStore) MatchesForSummoner(summoner string) []models.ManualMatch {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.ManualMatch
	for _, m := range s.matches {
		if strings.EqualFold(m.SummonerName, summoner) {
			out = append(out, m)
		}
	}
	return out
}

// ChampionStats aggregates a summoner's games on one champion. It returns
// nil when there are none.
func (s *ManualMatchStore) ChampionStats(summoner, champion string) *models.ChampionPerformance {
	var games []models.ManualMatch
	for _, m := range s.MatchesForSummoner(summoner) {
		if strings.EqualFold(m.ChampionName, champion) {
			games = append(games, m)
		}
	}
	if len(games) == 0 {
		return nil
	}
	stats := aggregateManual(games[0].ChampionName, games)
	return &stats
}

// AllChampionStats aggregates every champion a summoner played, most games first.
func (s *ManualMatchStore) AllChampionStats(summoner string) []models.ChampionPerformance {
	byChampion := make(map[string][]models.ManualMatch)
	var order []string
	for _, m := range s.MatchesForSummoner(summoner) {
		key := strings.ToLower(m.ChampionName)
		if _, ok := byChampion[key]; !ok {
			order = append(order, key)
		}
		byChampion[key] = append(byChampion[key], m)
	}

	out := make([]models.ChampionPerformance, 0, len(order))
	for _, key := range order {
		games := byChampion[key]
		out = append(out, aggregateManual(games[0].ChampionName, games))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].GamesPlayed > out[j].GamesPlayed
	})
	return out
}

// Clear removes every match.
func (s *ManualMatchStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.matches
	s.matches = nil
	if err := s.saveLocked(); err != nil {
		s.matches = previous
		return err
	}
	s.log.Info().Int("count", len(previous)).Msg("cleared manual matches")
	return nil
}

// aggregateManual averages K/D/A per game, takes KDA from the totals and
// CS/min from total CS over total minutes.
func aggregateManual(champion string, games []models.ManualMatch) models.ChampionPerformance {
	var wins int
	var kills, deaths, assists, cs float64
	var minutes int
	for _, g := range games {
		if g.Won() {
			wins++
		}
		kills += g.Kills
		deaths += g.Deaths
		assists += g.Assists
		cs += g.CS
		minutes += g.GameDuration
	}

	n := len(games)
	perf := models.ChampionPerformance{
		ChampionName: champion,
		GamesPlayed:  n,
		Wins:         wins,
		Losses:       n - wins,
		WinRate:      models.WinRate(wins, n),
		Kills:        kills / float64(n),
		Deaths:       deaths / float64(n),
		Assists:      assists / float64(n),
		KDA:          models.KDARatio(kills, deaths, assists),
		QueueType:    models.SourceManual,
		Source:       models.SourceManual,
	}
	if minutes > 0 {
		perf.CSPerMin = cs / float64(minutes)
	}
	return perf
}
