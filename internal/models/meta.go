package models

// ChampionMetaData is a champion's global statistics on the current patch.
type ChampionMetaData struct {
	ChampionName string  `json:"champion_name"`
	WinRate      float64 `json:"win_rate"`
	PickRate     float64 `json:"pick_rate"`
	BanRate      float64 `json:"ban_rate"`
	Tier         string  `json:"tier"`
	Role         string  `json:"role"`
	Patch        string  `json:"patch"`
}

// Matchup is a lane opponent with the win rate from the champion's point of view.
// WinRate is 0 when the page did not publish a figure.
type Matchup struct {
	OpponentName string  `json:"opponent_name"`
	WinRate      float64 `json:"win_rate"`
	Games        int     `json:"games"`
}

// DetailedChampionStats is a champion build page: rates, items, runes and matchups.
type DetailedChampionStats struct {
	ChampionName        string    `json:"champion_name"`
	WinRate             float64   `json:"win_rate"`
	PickRate            float64   `json:"pick_rate"`
	BanRate             float64   `json:"ban_rate"`
	Tier                string    `json:"tier"`
	Role                string    `json:"role"`
	PopularItems        []string  `json:"popular_items"`
	HighestWinRateItems []string  `json:"highest_winrate_items"`
	BestMatchups        []Matchup `json:"best_matchups"`
	WorstMatchups       []Matchup `json:"worst_matchups"`
	PrimaryRune         string    `json:"primary_rune"`
	PrimaryTree         string    `json:"primary_tree"`
	SecondaryTree       string    `json:"secondary_tree"`
	Patch               string    `json:"patch"`
	ImageURL            string    `json:"image_url"`
}

// ChampionComparison is the head-to-head view of two champions in a role.
type ChampionComparison struct {
	Champion1      *DetailedChampionStats `json:"champion1"`
	Champion2      *DetailedChampionStats `json:"champion2"`
	MatchupWinRate float64                `json:"matchup_winrate"`
	LaneDifficulty string                 `json:"lane_difficulty"`
	Role           string                 `json:"role"`
}
