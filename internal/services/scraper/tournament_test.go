package scraper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutle/internal/models"
)

const matchesPage = `<html><body>
<div class="game"><span>CUSTOM GAME</span><span>2024-03-01</span><span>Victory</span></div>
<div class="game"><span>Custom</span><span>2024-02-20</span></div>
<div class="note">Tournament code TOURNAMENT_ABC123XYZ</div>
<div class="note">LEC watch party</div>
<div class="note">Proview replay</div>
</body></html>`

func TestScrapeTournamentGames(t *testing.T) {
	site := newFakeSite(map[string]string{"/lol/summoners/euw/Faker-KR1/matches": matchesPage})
	c := newTestScraper(t, site)

	stats, err := c.ScrapeTournamentGames(context.Background(), "Faker#KR1", "EUW")
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalGames)
	assert.Zero(t, stats.Wins)
	assert.Zero(t, stats.Losses)
	assert.Equal(t, models.UnknownChampion, stats.MostPlayedChampion)
	assert.Equal(t, []string{"ABC123XYZ"}, stats.TournamentCodes)

	ids := make([]string, 0, len(stats.RecentTournaments))
	for _, g := range stats.RecentTournaments {
		ids = append(ids, g.GameID)
	}
	assert.Equal(t, []string{
		"official_tournament", "official_lec", "custom_0_2024-03-01", "custom_1_2024-02-20",
	}, ids)

	custom := stats.RecentTournaments[2]
	assert.Equal(t, models.GameTypeCustom, custom.GameType)
	assert.Equal(t, "CUSTOM_2024-03-01", custom.TournamentCode)
	assert.Equal(t, models.ResultUnknown, custom.Result)
	assert.NotNil(t, custom.TeamComposition)

	official := stats.RecentTournaments[0]
	assert.Equal(t, models.GameTypeOfficial, official.GameType)
	assert.Equal(t, "TOURNAMENT", official.TournamentCode)
	assert.Equal(t, "2024-06-01", official.Date)
}

func TestScrapeTournamentGamesLegacyURL(t *testing.T) {
	site := newFakeSite(map[string]string{"/summoners/euw/Faker-KR1/matches": matchesPage})
	c := newTestScraper(t, site)

	stats, err := c.ScrapeTournamentGames(context.Background(), "Faker#KR1", "euw")
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalGames)
	assert.Equal(t, 1, site.count("/lol/summoners/euw/Faker-KR1/matches"))
	assert.Equal(t, 1, site.count("/summoners/euw/Faker-KR1/matches"))
}

func TestScrapeTournamentGamesNotFound(t *testing.T) {
	c := newTestScraper(t, newFakeSite(nil))

	_, err := c.ScrapeTournamentGames(context.Background(), "Nobody#0000", "euw")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestScrapeTournamentGamesEmpty(t *testing.T) {
	site := newFakeSite(map[string]string{"/lol/summoners/euw/Quiet-EUW/matches": `<html><body>Ranked Solo</body></html>`})
	c := newTestScraper(t, site)

	stats, err := c.ScrapeTournamentGames(context.Background(), "Quiet#EUW", "euw")
	require.NoError(t, err)
	assert.Zero(t, stats.TotalGames)
	assert.Equal(t, "None", stats.MostPlayedChampion)
	assert.Empty(t, stats.TournamentCodes)
	assert.Empty(t, stats.RecentTournaments)
}

func TestFindTournamentCodes(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"prefixed", "code TOURNAMENT-XYZ12345 used", []string{"XYZ12345"}},
		{"official", "OFFICIAL_MATCH99 played", []string{"MATCH99"}},
		{"bare token", "lobby EUW20240301 open", []string{"EUW20240301"}},
		{"deduplicated", "TOURNAMENT_QQQ111 and TOURNAMENT_QQQ111", []string{"QQQ111"}},
		{"none", "nothing to report", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, findTournamentCodes(tt.text))
		})
	}
}
