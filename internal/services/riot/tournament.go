package riot

import (
	"context"
	"time"

	"github.com/scoutle/internal/config"
	"github.com/scoutle/internal/models"
)

const gameTypeCustom = "CUSTOM_GAME"

// IsTournamentMatch reports whether a match was a custom or tournament-code game.
func IsTournamentMatch(info MatchInfo) bool {
	return info.QueueID == QueueIDCustom || info.GameType == gameTypeCustom || info.TournamentCode != ""
}

// DetectTournamentGames converts the player's custom and tournament-code
// matches into tournament games. Other matches are ignored.
func DetectTournamentGames(matches []*MatchResponse, puuid string) []models.TournamentGame {
	var games []models.TournamentGame
	for _, m := range matches {
		if m == nil || !IsTournamentMatch(m.Info) {
			continue
		}
		p, ok := m.Participant(puuid)
		if !ok {
			continue
		}

		game := models.TournamentGame{
			GameID:           m.Metadata.MatchID,
			GameType:         models.GameTypeCustom,
			TournamentCode:   m.Info.TournamentCode,
			Date:             time.UnixMilli(m.Info.GameCreation).UTC().Format("2006-01-02"),
			Duration:         int(m.Info.DurationSeconds()),
			Result:           models.ResultLoss,
			Champion:         p.ChampionName,
			Role:             config.RoleName(p.TeamPosition),
			Kills:            p.Kills,
			Deaths:           p.Deaths,
			Assists:          p.Assists,
			KDA:              models.KDARatio(float64(p.Kills), float64(p.Deaths), float64(p.Assists)),
			CS:               p.CS(),
			Gold:             p.GoldEarned,
			Damage:           p.TotalDamageDealtToChampions,
			VisionScore:      p.VisionScore,
			TeamComposition:  []string{},
			EnemyComposition: []string{},
		}
		if m.Info.TournamentCode != "" {
			game.GameType = models.GameTypeTournament
		}
		if p.Win {
			game.Result = models.ResultWin
		}
		if game.Champion == "" {
			game.Champion = models.UnknownChampion
		}

		for _, other := range m.Info.Participants {
			if other.TeamID == p.TeamID {
				game.TeamComposition = append(game.TeamComposition, other.ChampionName)
			} else {
				game.EnemyComposition = append(game.EnemyComposition, other.ChampionName)
			}
		}
		games = append(games, game)
	}
	return games
}

// tournamentMatchIDs merges the tournament-code history with the custom
// queue history. The type filter alone never returns plain custom games.
func (c *Client) tournamentMatchIDs(ctx context.Context, region, puuid string) ([]string, error) {
	custom := QueueIDCustom
	queries := []MatchQuery{
		{Count: c.matchCount, Type: "tourney"},
		{Count: c.matchCount, Queue: &custom},
	}

	var ids []string
	seen := make(map[string]bool)
	for _, q := range queries {
		batch, err := c.GetMatchIDs(ctx, region, puuid, q)
		if err != nil {
			return nil, err
		}
		for _, id := range batch {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

// GetTournamentStats scans the player's tournament and custom match history.
func (c *Client) GetTournamentStats(ctx context.Context, riotID, region string) (*models.TournamentStats, error) {
	p, err := c.resolvePlayer(ctx, riotID, region)
	if err != nil {
		return nil, err
	}

	ids, err := c.tournamentMatchIDs(ctx, p.region, p.account.PUUID)
	if err != nil {
		return nil, err
	}
	matches, err := c.GetMatches(ctx, p.region, ids)
	if err != nil {
		return nil, err
	}
	c.resolveChampionNames(ctx, matches)

	games := DetectTournamentGames(matches, p.account.PUUID)

	seen := make(map[string]bool)
	codes := []string{}
	for _, g := range games {
		if g.TournamentCode != "" && !seen[g.TournamentCode] {
			seen[g.TournamentCode] = true
			codes = append(codes, g.TournamentCode)
		}
	}

	c.log.Info().Str("riot_id", p.id.String()).Int("games", len(games)).Msg("tournament scan complete")
	stats := models.NewTournamentStats(games, codes)
	return &stats, nil
}
