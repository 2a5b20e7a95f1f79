package models

import (
	"sort"
	"time"
)

// RankedStats is one ranked queue entry.
type RankedStats struct {
	QueueType string  `json:"queue_type"`
	Tier      string  `json:"tier"`
	Rank      string  `json:"rank"`
	LP        int     `json:"lp"`
	Wins      int     `json:"wins"`
	Losses    int     `json:"losses"`
	WinRate   float64 `json:"win_rate"`
}

// TotalGames returns wins + losses.
func (r RankedStats) TotalGames() int {
	return r.Wins + r.Losses
}

// MatchPerformance is the player's line in a single match.
type MatchPerformance struct {
	MatchID      string `json:"match_id"`
	Champion     string `json:"champion"`
	Role         string `json:"role"`
	Kills        int    `json:"kills"`
	Deaths       int    `json:"deaths"`
	Assists      int    `json:"assists"`
	Win          bool   `json:"win"`
	GameDuration int    `json:"game_duration"` // seconds
	GameMode     string `json:"game_mode"`
}

// KDA returns the match's kill/death/assist ratio.
func (m MatchPerformance) KDA() float64 {
	return KDARatio(float64(m.Kills), float64(m.Deaths), float64(m.Assists))
}

// PlayerProfile is a full player overview built from the Riot API.
type PlayerProfile struct {
	RiotID        string             `json:"riot_id"`
	PUUID         string             `json:"puuid"`
	SummonerID    string             `json:"summoner_id"`
	SummonerLevel int                `json:"summoner_level"`
	Region        string             `json:"region"`
	RankedStats   []RankedStats      `json:"ranked_stats"`
	RecentMatches []MatchPerformance `json:"recent_matches"`

	ChampionPool      map[string]int     `json:"champion_pool"`
	RolePreference    map[string]float64 `json:"role_preference"` // percent of recent games
	PerformanceTrends map[string]float64 `json:"performance_trends"`
	TopMasteries      []ChampionMastery  `json:"top_masteries"`

	LastUpdate time.Time `json:"last_update"`
}

// NoData is returned by profile summaries with nothing to summarise.
const NoData = "No Data"

// MostPlayedChampion returns the champion with the most recent games.
func (p *PlayerProfile) MostPlayedChampion() string {
	return maxKey(p.ChampionPool)
}

// PreferredRole returns the role with the highest share of recent games.
func (p *PlayerProfile) PreferredRole() string {
	return maxKey(p.RolePreference)
}

// RecentWinRate returns the win percentage over RecentMatches.
func (p *PlayerProfile) RecentWinRate() float64 {
	wins := 0
	for _, m := range p.RecentMatches {
		if m.Win {
			wins++
		}
	}
	return WinRate(wins, len(p.RecentMatches))
}

// AverageKDA returns the mean per-match KDA over RecentMatches.
func (p *PlayerProfile) AverageKDA() float64 {
	if len(p.RecentMatches) == 0 {
		return 0
	}
	var total float64
	for _, m := range p.RecentMatches {
		total += m.KDA()
	}
	return total / float64(len(p.RecentMatches))
}

func maxKey[V int | float64](m map[string]V) string {
	if len(m) == 0 {
		return NoData
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best := keys[0]
	for _, k := range keys[1:] {
		if m[k] > m[best] {
			best = k
		}
	}
	return best
}

// ChampionMastery is a player's mastery on one champion.
type ChampionMastery struct {
	ChampionName  string `json:"champion_name"`
	ChampionLevel int    `json:"champion_level"`
	Points        int    `json:"champion_points"`
}
