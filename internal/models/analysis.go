package models

// Performance trends.
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// ChampionAnalysis is the per-champion aggregate of a player's Riot match history.
type ChampionAnalysis struct {
	ChampionName    string  `json:"champion_name"`
	GamesPlayed     int     `json:"games_played"`
	Wins            int     `json:"wins"`
	Losses          int     `json:"losses"`
	WinRate         float64 `json:"win_rate"`
	AvgKDA          float64 `json:"avg_kda"`
	AvgKills        float64 `json:"avg_kills"`
	AvgDeaths       float64 `json:"avg_deaths"`
	AvgAssists      float64 `json:"avg_assists"`
	AvgCSPerMin     float64 `json:"avg_cs_per_min"`
	AvgGoldPerMin   float64 `json:"avg_gold_per_min"`
	AvgDamagePerMin float64 `json:"avg_damage_per_min"`
	MostCommonRole  string  `json:"most_common_role"`
	RecentTrend     string  `json:"recent_trend"`
}
