package models

import "sort"

// Tournament game types.
const (
	GameTypeCustom     = "CUSTOM"
	GameTypeTournament = "TOURNAMENT"
	GameTypeOfficial   = "OFFICIAL"
)

// UnknownChampion marks games whose champion could not be determined.
const UnknownChampion = "Unknown"

// TournamentGame is a custom, tournament-code or official game.
type TournamentGame struct {
	GameID           string   `json:"game_id"`
	GameType         string   `json:"game_type"`
	TournamentCode   string   `json:"tournament_code"`
	Date             string   `json:"date"`
	Duration         int      `json:"duration"` // seconds
	Result           string   `json:"result"`
	Champion         string   `json:"champion"`
	Role             string   `json:"role"`
	Kills            int      `json:"kills"`
	Deaths           int      `json:"deaths"`
	Assists          int      `json:"assists"`
	KDA              float64  `json:"kda"`
	CS               int      `json:"cs"`
	Gold             int      `json:"gold"`
	Damage           int      `json:"damage"`
	VisionScore      int      `json:"vision_score"`
	TeamComposition  []string `json:"team_composition"`
	EnemyComposition []string `json:"enemy_composition"`
}

// TournamentStats aggregates a player's tournament games.
type TournamentStats struct {
	TotalGames             int              `json:"total_tournament_games"`
	Wins                   int              `json:"tournament_wins"`
	Losses                 int              `json:"tournament_losses"`
	WinRate                float64          `json:"tournament_win_rate"`
	MostPlayedChampion     string           `json:"most_played_champion"`
	BestPerformingChampion string           `json:"best_performing_champion"`
	AverageKDA             float64          `json:"average_kda"`
	AverageCS              float64          `json:"average_cs"`
	AverageDamage          float64          `json:"average_damage"`
	TournamentCodes        []string         `json:"tournament_codes"`
	RecentTournaments      []TournamentGame `json:"recent_tournaments"`
}

const recentTournamentLimit = 10

// NewTournamentStats summarises games. Averages divide the sum of positive
// values by the total game count, so placeholder games with no stats pull
// the averages down.
func NewTournamentStats(games []TournamentGame, codes []string) TournamentStats {
	if codes == nil {
		codes = []string{}
	}
	if len(games) == 0 {
		return TournamentStats{
			MostPlayedChampion:     "None",
			BestPerformingChampion: "None",
			TournamentCodes:        codes,
			RecentTournaments:      []TournamentGame{},
		}
	}

	stats := TournamentStats{TotalGames: len(games), TournamentCodes: codes}

	type champTotals struct {
		games int
		kda   float64
		order int
	}
	champs := make(map[string]*champTotals)

	var totalKDA, totalCS, totalDamage float64
	for _, g := range games {
		switch g.Result {
		case ResultWin:
			stats.Wins++
		case ResultLoss:
			stats.Losses++
		}
		if g.KDA > 0 {
			totalKDA += g.KDA
		}
		if g.CS > 0 {
			totalCS += float64(g.CS)
		}
		if g.Damage > 0 {
			totalDamage += float64(g.Damage)
		}

		if g.Champion == UnknownChampion || g.Champion == "" {
			continue
		}
		ct, ok := champs[g.Champion]
		if !ok {
			ct = &champTotals{order: len(champs)}
			champs[g.Champion] = ct
		}
		ct.games++
		ct.kda += g.KDA
	}

	total := float64(stats.TotalGames)
	stats.WinRate = WinRate(stats.Wins, stats.TotalGames)
	stats.AverageKDA = totalKDA / total
	stats.AverageCS = totalCS / total
	stats.AverageDamage = totalDamage / total

	stats.MostPlayedChampion = UnknownChampion
	stats.BestPerformingChampion = UnknownChampion
	var mostGames, bestOrder, mostOrder int
	var bestKDA float64
	for name, ct := range champs {
		// first-seen champion wins ties so results do not depend on map order
		if stats.MostPlayedChampion == UnknownChampion || ct.games > mostGames ||
			(ct.games == mostGames && ct.order < mostOrder) {
			stats.MostPlayedChampion, mostGames, mostOrder = name, ct.games, ct.order
		}
		if stats.BestPerformingChampion == UnknownChampion || ct.kda > bestKDA ||
			(ct.kda == bestKDA && ct.order < bestOrder) {
			stats.BestPerformingChampion, bestKDA, bestOrder = name, ct.kda, ct.order
		}
	}

	recent := make([]TournamentGame, len(games))
	copy(recent, games)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Date > recent[j].Date
	})
	if len(recent) > recentTournamentLimit {
		recent = recent[:recentTournamentLimit]
	}
	stats.RecentTournaments = recent

	return stats
}
