package scraper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutle/internal/models"
)

const profilePage = `<html><head><title>Faker#KR1 - Summoner Stats</title></head><body>
<div class="header"><span>Faker</span><span>#KR1</span><span>Level 512</span></div>
<div class="queue"><h2>Ranked Solo/Duo</h2><div>Diamond 4</div><div>75 LP</div><div>55W 42L</div></div>
<div class="queue"><h2>Ranked Flex</h2><div>Platinum 2</div><div>12 LP</div></div>
<script>self.__next_f.push([1,"{\"summoner\":{\"level\":568},\"rows\":[\"tr\",\"Jinx\",{\"className\":\"text-xs\",\"children\":[\"3W\",\"1L\"]}]}"])</script>
</body></html>`

// Ahri's match-up list names Zed and Lux before Lux's own record.
const championsPage = `<html><body><script>self.__next_f.push([1,"[` +
	`{\"name\":\"Ahri\",\"play\":20,\"win\":12,\"lose\":8,\"win_rate\":60,\"kda\":3.5,\"kill\":7,\"death\":4,\"assist\":7,\"cs_per_min\":8.1,` +
	`\"match_up_stats\":[{\"name\":\"Zed\",\"play\":3},{\"name\":\"Lux\",\"play\":2}]},` +
	`{\"name\":\"Lux\",\"play\":25,\"win\":10,\"lose\":15,\"win_rate\":40,\"kda\":2.1,\"kill\":4,\"death\":5,\"assist\":6.5}` +
	`]"])</script></body></html>`

func TestScrapePlayerAccount(t *testing.T) {
	site := newFakeSite(map[string]string{
		"/lol/summoners/euw/Faker-KR1":           profilePage,
		"/lol/summoners/euw/Faker-KR1/champions": championsPage,
	})
	c := newTestScraper(t, site)

	acc, err := c.ScrapePlayerAccount(context.Background(), "Faker#KR1", "euw")
	require.NoError(t, err)

	assert.Equal(t, "Faker#KR1", acc.SummonerName)
	assert.Equal(t, "euw", acc.Region)
	assert.Equal(t, 568, acc.Level)
	assert.Equal(t, "Diamond 4", acc.SoloQRank)
	assert.Equal(t, 75, acc.SoloQLP)
	assert.Equal(t, "Platinum 2", acc.FlexRank)
	assert.Equal(t, 12, acc.FlexLP)
	assert.Equal(t, models.SourceOPGG, acc.Source)
	assert.Equal(t, fixedNow, acc.LastUpdated)

	require.Len(t, acc.ChampionPerformances, 2)
	lux, ahri := acc.ChampionPerformances[0], acc.ChampionPerformances[1]

	assert.Equal(t, "Lux", lux.ChampionName)
	assert.Equal(t, 25, lux.GamesPlayed)
	assert.InDelta(t, 6.5, lux.Assists, 1e-9)
	assert.Zero(t, lux.CSPerMin)

	assert.Equal(t, "Ahri", ahri.ChampionName)
	assert.Equal(t, 20, ahri.GamesPlayed)
	assert.Equal(t, 12, ahri.Wins)
	assert.Equal(t, 8, ahri.Losses)
	assert.InDelta(t, 60, ahri.WinRate, 1e-9)
	assert.InDelta(t, 3.5, ahri.KDA, 1e-9)
	assert.InDelta(t, 8.1, ahri.CSPerMin, 1e-9)
	assert.Equal(t, "soloq", ahri.QueueType)
	assert.Equal(t, models.SourceOPGG, ahri.Source)
}

func TestScrapePlayerAccountCaches(t *testing.T) {
	site := newFakeSite(map[string]string{"/lol/summoners/euw/Faker-KR1": profilePage})
	c := newTestScraper(t, site)
	ctx := context.Background()

	for range 2 {
		_, err := c.ScrapePlayerAccount(ctx, "Faker#KR1", "EUW")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, site.count("/lol/summoners/euw/Faker-KR1"))
}

func TestScrapePlayerAccountRecentFallback(t *testing.T) {
	site := newFakeSite(map[string]string{"/lol/summoners/euw/Faker-KR1": profilePage})
	c := newTestScraper(t, site)

	acc, err := c.ScrapePlayerAccount(context.Background(), "Faker#KR1", "euw")
	require.NoError(t, err)

	require.Len(t, acc.ChampionPerformances, 1)
	jinx := acc.ChampionPerformances[0]
	assert.Equal(t, "Jinx", jinx.ChampionName)
	assert.Equal(t, 4, jinx.GamesPlayed)
	assert.Equal(t, 3, jinx.Wins)
	assert.Equal(t, 1, jinx.Losses)
	assert.InDelta(t, 75, jinx.WinRate, 1e-9)
	assert.Equal(t, 1, site.count("/lol/summoners/euw/Faker-KR1/champions"))
}

func TestScrapePlayerAccountLegacyURL(t *testing.T) {
	site := newFakeSite(map[string]string{
		"/summoners/kr/Hide on bush-KR1": `<html><body><div>Ranked Solo/Duo</div><div>Unranked</div></body></html>`,
	})
	c := newTestScraper(t, site)

	acc, err := c.ScrapePlayerAccount(context.Background(), "Hide on bush#KR1", "kr")
	require.NoError(t, err)

	assert.Equal(t, 1, site.count("/lol/summoners/kr/Hide on bush-KR1"))
	assert.Equal(t, models.Unranked, acc.SoloQRank)
	assert.Equal(t, models.Unranked, acc.FlexRank)
	assert.NotNil(t, acc.ChampionPerformances)
	assert.Empty(t, acc.ChampionPerformances)
}

func TestScrapePlayerAccountNotFound(t *testing.T) {
	c := newTestScraper(t, newFakeSite(nil))

	_, err := c.ScrapePlayerAccount(context.Background(), "Nobody#0000", "euw")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExtractLevel(t *testing.T) {
	tests := []struct {
		name string
		html string
		want int
	}{
		{"embedded json", `<script>x("{\"level\":301}")</script><div>Level 12</div>`, 301},
		{"visible text", `<div>Level 212</div>`, 212},
		{"number before region", `<div><span>87</span><span>EUW</span></div>`, 87},
		{"none", `<div>nothing here</div>`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := parsePage([]byte(tt.html))
			require.NoError(t, err)
			assert.Equal(t, tt.want, extractLevel(p, "euw"))
		})
	}
}

func TestExtractRank(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		label string
		rank  string
		lp    int
	}{
		{"solo", "Ranked Solo/Duo Gold 2 45 LP Ranked Flex Silver 1 10 LP", soloQueueLabel, "Gold 2", 45},
		{"flex", "Ranked Solo/Duo Gold 2 45 LP Ranked Flex Silver 1 10 LP", flexQueueLabel, "Silver 1", 10},
		{"roman division", "Ranked Solo/Duo Emerald IV 3 LP", soloQueueLabel, "Emerald IV", 3},
		{"apex tier", "Ranked Solo/Duo Challenger 1,204 LP", soloQueueLabel, "Challenger", 1204},
		{"unranked", "Ranked Solo/Duo Unranked Ranked Flex Gold 1 20 LP", soloQueueLabel, models.Unranked, 0},
		{"flex after unranked solo", "Ranked Solo/Duo Unranked Ranked Flex Gold 1 20 LP", flexQueueLabel, "Gold 1", 20},
		{"label missing", "Level 30", soloQueueLabel, models.Unranked, 0},
		{"no tier", "Ranked Flex nothing to see", flexQueueLabel, models.Unranked, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rank, lp := extractRank(tt.text, tt.label)
			assert.Equal(t, tt.rank, rank)
			assert.Equal(t, tt.lp, lp)
		})
	}
}

func TestParseChampionsPageSkipsIncompleteRecords(t *testing.T) {
	perfs := parseChampionsPage(`{\"name\":\"Yasuo\",\"play\":4,\"win\":1}` +
		`{\"name\":\"Yone\",\"play\":6,\"win\":3,\"lose\":3,\"win_rate\":50,\"kda\":2,\"kill\":5,\"death\":5,\"assist\":5}`)

	require.Len(t, perfs, 1)
	assert.Equal(t, "Yone", perfs[0].ChampionName)
	assert.Equal(t, 6, perfs[0].GamesPlayed)
}
