package scraper

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/scoutle/internal/models"
)

var (
	customGameRe = regexp.MustCompile(`(?i)CUSTOM.*?(\d{4}-\d{2}-\d{2})`)

	tournamentCodeRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)TOURNAMENT[_-]?([A-Z0-9]{6,})`),
		regexp.MustCompile(`(?i)CUSTOM[_-]?([A-Z0-9]{6,})`),
		regexp.MustCompile(`(?i)OFFICIAL[_-]?([A-Z0-9]{6,})`),
		regexp.MustCompile(`(?i)([A-Z]{2,}\d{4,})`),
	}
)

var officialIndicators = []string{
	"OFFICIAL", "TOURNAMENT", "COMPETITIVE", "PRO", "LCS",
	"LEC", "LCK", "LPL", "WORLDS", "MSI",
}

// ScrapeTournamentGames scans a player's op.gg match history for custom
// games, tournament codes and official competition markers. The matches
// page is looked up across the same bases and layouts as the profile.
func (c *Client) ScrapeTournamentGames(ctx context.Context, riotID, region string) (*models.TournamentStats, error) {
	candidates := c.opggCandidates(riotID, region)
	for i, u := range candidates {
		candidates[i] = u + "/matches"
	}

	body, _, err := c.fetchFirst(ctx, candidates)
	if err != nil {
		return nil, fmt.Errorf("op.gg matches %s: %w", riotID, err)
	}
	p, err := parsePage(body)
	if err != nil {
		return nil, err
	}

	games, codes := c.parseTournamentPage(p.text)
	c.log.Info().
		Str("summoner", riotID).
		Int("games", len(games)).
		Int("codes", len(codes)).
		Msg("scraped tournament games")

	stats := models.NewTournamentStats(games, codes)
	return &stats, nil
}

func (c *Client) parseTournamentPage(text string) ([]models.TournamentGame, []string) {
	var games []models.TournamentGame
	seen := make(map[string]bool)
	add := func(g models.TournamentGame) {
		if !seen[g.GameID] {
			seen[g.GameID] = true
			games = append(games, g)
		}
	}

	for i, m := range customGameRe.FindAllStringSubmatch(text, -1) {
		date := m[1]
		g := placeholderGame(fmt.Sprintf("custom_%d_%s", i, date), models.GameTypeCustom, date)
		g.TournamentCode = "CUSTOM_" + date
		add(g)
	}

	today := c.now().Format("2006-01-02")
	for _, indicator := range officialIndicators {
		re := regexp.MustCompile(`(?i)\b` + indicator + `\b`)
		if re.MatchString(text) {
			g := placeholderGame("official_"+strings.ToLower(indicator), models.GameTypeOfficial, today)
			g.TournamentCode = indicator
			add(g)
		}
	}

	return games, findTournamentCodes(text)
}

// findTournamentCodes returns every distinct code-like token, in the order
// first seen.
func findTournamentCodes(text string) []string {
	codes := []string{}
	seen := make(map[string]bool)
	for _, re := range tournamentCodeRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if !seen[m[1]] {
				seen[m[1]] = true
				codes = append(codes, m[1])
			}
		}
	}
	return codes
}

// placeholderGame is a detected game whose per-player stats are not on the page.
func placeholderGame(id, gameType, date string) models.TournamentGame {
	return models.TournamentGame{
		GameID:           id,
		GameType:         gameType,
		Date:             date,
		Result:           models.ResultUnknown,
		Champion:         models.UnknownChampion,
		Role:             "Unknown",
		TeamComposition:  []string{},
		EnemyComposition: []string{},
	}
}
