// Package models holds the plain records passed between scoutle's
// scrapers, clients and presentation layers.
package models

import (
	"sort"
	"strings"
	"time"
	"unicode"
)

// Data sources.
const (
	SourceOPGG     = "opgg"
	SourceRiot     = "riot"
	SourceCombined = "combined"
	SourceManual   = "manual"
)

// Unranked is the rank string used when no ranked entry exists.
const Unranked = "Unranked"

// PlayerAccount is a player's summary as seen by one source (or the merge of several).
type PlayerAccount struct {
	SummonerName         string                `json:"summoner_name"`
	Region               string                `json:"region"`
	Level                int                   `json:"level"`
	SoloQRank            string                `json:"soloq_rank"`
	FlexRank             string                `json:"flex_rank"`
	SoloQLP              int                   `json:"soloq_lp"`
	FlexLP               int                   `json:"flex_lp"`
	ChampionPerformances []ChampionPerformance `json:"champion_performances"`
	LastUpdated          time.Time             `json:"last_updated"`

	PUUID      string `json:"puuid,omitempty"`
	SummonerID string `json:"summoner_id,omitempty"`
	Source     string `json:"source"`
}

// ChampionPerformance is one champion's record for a player.
// Invariant: GamesPlayed == Wins + Losses.
type ChampionPerformance struct {
	ChampionName string  `json:"champion_name"`
	GamesPlayed  int     `json:"games_played"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	WinRate      float64 `json:"win_rate"`
	Kills        float64 `json:"kills"`
	Deaths       float64 `json:"deaths"`
	Assists      float64 `json:"assists"`
	KDA          float64 `json:"kda"`
	CSPerMin     float64 `json:"cs_per_min"`
	QueueType    string  `json:"queue_type"`
	Source       string  `json:"source,omitempty"`
}

// Performance returns the named champion's record, if present.
func (a *PlayerAccount) Performance(champion string) (ChampionPerformance, bool) {
	for _, p := range a.ChampionPerformances {
		if p.ChampionName == champion {
			return p, true
		}
	}
	return ChampionPerformance{}, false
}

// ChampionKey folds a champion name for matching across sources, so
// "Kai'Sa", "Kaisa" and "KAISA" share a key.
func ChampionKey(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// TotalGames sums games across all champion records.
func (a *PlayerAccount) TotalGames() int {
	total := 0
	for _, p := range a.ChampionPerformances {
		total += p.GamesPlayed
	}
	return total
}

// WinRate returns wins / games * 100, or 0 when no games were played.
func WinRate(wins, games int) float64 {
	if games <= 0 {
		return 0
	}
	return float64(wins) / float64(games) * 100
}

// KDARatio returns (kills + assists) / deaths, or kills + assists when deaths is zero.
func KDARatio(kills, deaths, assists float64) float64 {
	if deaths == 0 {
		return kills + assists
	}
	return (kills + assists) / deaths
}

// SortByGames orders performances by games played, most first. Ties keep
// their input order.
func SortByGames(perfs []ChampionPerformance) {
	sort.SliceStable(perfs, func(i, j int) bool {
		return perfs[i].GamesPlayed > perfs[j].GamesPlayed
	})
}

// AggregateChampionPerformances merges duplicate champion records into a
// single season total per champion. Counts and K/D/A add up, win rate and
// KDA are recomputed, and CS/min is averaged pairwise as records arrive.
func AggregateChampionPerformances(raw []ChampionPerformance) []ChampionPerformance {
	index := make(map[string]int, len(raw))
	var out []ChampionPerformance

	for _, p := range raw {
		i, ok := index[p.ChampionName]
		if !ok {
			index[p.ChampionName] = len(out)
			out = append(out, p)
			continue
		}

		existing := &out[i]
		existing.GamesPlayed += p.GamesPlayed
		existing.Wins += p.Wins
		existing.Losses += p.Losses
		existing.Kills += p.Kills
		existing.Deaths += p.Deaths
		existing.Assists += p.Assists

		if existing.GamesPlayed > 0 {
			existing.WinRate = WinRate(existing.Wins, existing.GamesPlayed)
		}
		existing.KDA = KDARatio(existing.Kills, existing.Deaths, existing.Assists)
		existing.CSPerMin = (existing.CSPerMin + p.CSPerMin) / 2
	}

	SortByGames(out)
	return out
}
