package riot

import (
	"sort"

	"github.com/scoutle/internal/models"
)

// trend needs at least this many games to say anything
const minTrendGames = 4

type championGame struct {
	created    int64
	win        bool
	kills      int
	deaths     int
	assists    int
	kda        float64
	csPerMin   float64
	goldPerMin float64
	dmgPerMin  float64
	role       string
}

// AnalyzeMatches groups the player's games by champion and aggregates them.
// Matches the player did not take part in are ignored.
func AnalyzeMatches(matches []*MatchResponse, puuid string) map[string]models.ChampionAnalysis {
	games := make(map[string][]championGame)

	for _, m := range matches {
		if m == nil {
			continue
		}
		p, ok := m.Participant(puuid)
		if !ok {
			continue
		}

		g := championGame{
			created: m.Info.GameCreation,
			win:     p.Win,
			kills:   p.Kills,
			deaths:  p.Deaths,
			assists: p.Assists,
			kda:     models.KDARatio(float64(p.Kills), float64(p.Deaths), float64(p.Assists)),
			role:    p.TeamPosition,
		}
		if minutes := float64(m.Info.DurationSeconds()) / 60; minutes > 0 {
			g.csPerMin = float64(p.CS()) / minutes
			g.goldPerMin = float64(p.GoldEarned) / minutes
			g.dmgPerMin = float64(p.TotalDamageDealtToChampions) / minutes
		}

		name := p.ChampionName
		if name == "" {
			name = models.UnknownChampion
		}
		games[name] = append(games[name], g)
	}

	out := make(map[string]models.ChampionAnalysis, len(games))
	for name, gs := range games {
		out[name] = summarize(name, gs)
	}
	return out
}

func summarize(name string, gs []championGame) models.ChampionAnalysis {
	// oldest first, so the second half of the trend is the recent one
	sort.SliceStable(gs, func(i, j int) bool { return gs[i].created < gs[j].created })

	a := models.ChampionAnalysis{ChampionName: name, GamesPlayed: len(gs)}
	roles := make(map[string]int)
	kdas := make([]float64, 0, len(gs))

	var kda, kills, deaths, assists, cs, gold, dmg float64
	for _, g := range gs {
		if g.win {
			a.Wins++
		} else {
			a.Losses++
		}
		kda += g.kda
		kills += float64(g.kills)
		deaths += float64(g.deaths)
		assists += float64(g.assists)
		cs += g.csPerMin
		gold += g.goldPerMin
		dmg += g.dmgPerMin
		kdas = append(kdas, g.kda)

		if g.role != "" && g.role != "Unknown" {
			roles[g.role]++
		}
	}

	n := float64(len(gs))
	a.WinRate = models.WinRate(a.Wins, a.GamesPlayed)
	a.AvgKDA = kda / n
	a.AvgKills = kills / n
	a.AvgDeaths = deaths / n
	a.AvgAssists = assists / n
	a.AvgCSPerMin = cs / n
	a.AvgGoldPerMin = gold / n
	a.AvgDamagePerMin = dmg / n
	a.MostCommonRole = mostCommon(roles)
	a.RecentTrend = Trend(kdas)

	return a
}

func mostCommon(counts map[string]int) string {
	best, bestN := "Unknown", 0
	for role, n := range counts {
		if n > bestN || (n == bestN && role < best) {
			best, bestN = role, n
		}
	}
	return best
}

// Trend compares the mean KDA of the later half of games against the
// earlier half: more than 10% higher is improving, more than 10% lower is
// declining. Fewer than four games is always stable.
func Trend(kdas []float64) string {
	if len(kdas) < minTrendGames {
		return models.TrendStable
	}

	mid := len(kdas) / 2
	first := mean(kdas[:mid])
	second := mean(kdas[mid:])

	switch {
	case second > first*1.1:
		return models.TrendImproving
	case second < first*0.9:
		return models.TrendDeclining
	default:
		return models.TrendStable
	}
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// TopChampions returns the most played champions, at most limit of them.
func TopChampions(stats map[string]models.ChampionAnalysis, limit int) []models.ChampionAnalysis {
	out := sortedAnalyses(stats, func(a, b models.ChampionAnalysis) bool {
		return a.GamesPlayed > b.GamesPlayed
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// BestPerformingChampions returns champions with at least minGames games,
// highest win rate first.
func BestPerformingChampions(stats map[string]models.ChampionAnalysis, minGames int) []models.ChampionAnalysis {
	filtered := make(map[string]models.ChampionAnalysis)
	for name, a := range stats {
		if a.GamesPlayed >= minGames {
			filtered[name] = a
		}
	}
	return sortedAnalyses(filtered, func(a, b models.ChampionAnalysis) bool {
		return a.WinRate > b.WinRate
	})
}

func sortedAnalyses(stats map[string]models.ChampionAnalysis, less func(a, b models.ChampionAnalysis) bool) []models.ChampionAnalysis {
	out := make([]models.ChampionAnalysis, 0, len(stats))
	for _, a := range stats {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if less(out[i], out[j]) {
			return true
		}
		if less(out[j], out[i]) {
			return false
		}
		return out[i].ChampionName < out[j].ChampionName
	})
	return out
}
