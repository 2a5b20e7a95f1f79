package scraper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutle/internal/models"
)

const zeriBuildPage = `<html><head><title>Zeri Build, Runes &amp; Counters for bottom Zeri</title></head><body>
<p>Zeri bottom has a 51.83% win rate in Diamond+ on Patch 14.23 and is graded A+ Tier.</p>
<div>3.45% Pick Rate</div><div>0.32% Ban Rate</div>
<p>Zeri is a strong counter to Jinx, Ashe &amp; Sivir while Zeri is countered most by Caitlyn, Draven &amp; Varus.</p>
<div class="matchup">Caitlyn 46.2%</div>
<div class="runes">
<img src="https://cdn5.lolalytics.com/rune68/8010.webp" alt="Conqueror" class="grayscale">
<img src="https://cdn5.lolalytics.com/rune68/8008.webp" alt="Lethal Tempo" class="">
<img src="https://cdn5.lolalytics.com/rune68/8009.webp" alt="Presence of Mind">
<img src="https://cdn5.lolalytics.com/rune68/8275.webp" alt="Nimbus Cloak">
</div>
<div class="items">
<img src="https://cdn5.lolalytics.com/item64/1055.webp" alt="Doran's Blade">
<img src="https://cdn5.lolalytics.com/item64/3031.webp" alt="Infinity Edge">
<img src="https://cdn5.lolalytics.com/item64/3006.webp" alt="Berserker's Greaves">
<img src="https://cdn5.lolalytics.com/item64/3085.webp" alt="Runaan's Hurricane">
<img src="https://cdn5.lolalytics.com/item64/3031.webp" alt="Infinity Edge">
<img src="https://cdn5.lolalytics.com/item64/2003.webp" alt="Health Potion">
<img src="https://cdn5.lolalytics.com/item64/3046.webp" alt="Phantom Dancer">
<img src="https://cdn5.lolalytics.com/item64/3072.webp" alt="Bloodthirster">
<img src="https://cdn5.lolalytics.com/item64/3036.webp" alt="Lord Dominik's Regards">
<img src="https://cdn5.lolalytics.com/item64/3026.webp" alt="Guardian Angel">
</div>
</body></html>`

const caitlynBuildPage = `<html><body>
<p>Caitlyn has a 50.10% win rate on Patch 14.23.</p>
<div>9.10% Pick Rate</div>
<p>Caitlyn is a strong counter to Zeri, Ezreal &amp; Kog'Maw while Caitlyn is countered most by Draven, Samira &amp; Nilah.</p>
</body></html>`

func TestGetChampionStats(t *testing.T) {
	site := newFakeSite(map[string]string{"/lol/zeri/build/": zeriBuildPage})
	c := newTestScraper(t, site)

	stats, err := c.GetChampionStats(context.Background(), "Zeri", "adc")
	require.NoError(t, err)

	assert.Equal(t, "Zeri", stats.ChampionName)
	assert.InDelta(t, 51.83, stats.WinRate, 1e-9)
	assert.InDelta(t, 3.45, stats.PickRate, 1e-9)
	assert.InDelta(t, 0.32, stats.BanRate, 1e-9)
	assert.Equal(t, "A+", stats.Tier)
	assert.Equal(t, RoleADC, stats.Role)
	assert.Equal(t, "14.23", stats.Patch)

	assert.Equal(t, []string{"Infinity Edge", "Berserker's Greaves", "Runaan's Hurricane"}, stats.HighestWinRateItems)
	assert.Equal(t, []string{"Phantom Dancer", "Bloodthirster", "Lord Dominik's Regards"}, stats.PopularItems)

	assert.Equal(t, []models.Matchup{
		{OpponentName: "Jinx"}, {OpponentName: "Ashe"}, {OpponentName: "Sivir"},
	}, stats.BestMatchups)
	assert.Equal(t, []models.Matchup{
		{OpponentName: "Caitlyn", WinRate: 46.2}, {OpponentName: "Draven"}, {OpponentName: "Varus"},
	}, stats.WorstMatchups)

	assert.Equal(t, "Lethal Tempo", stats.PrimaryRune)
	assert.Equal(t, "Precision", stats.PrimaryTree)
	assert.Equal(t, "Sorcery", stats.SecondaryTree)

	assert.Equal(t, "https://ddragon.example/cdn/14.23.1/img/champion/Zeri.png", stats.ImageURL)
}

func TestGetChampionStatsDefaults(t *testing.T) {
	site := newFakeSite(map[string]string{
		"/lol/yuumi/build/": `<html><body><p>Yuumi has a 47.5% win rate.</p></body></html>`,
	})
	c := newTestScraper(t, site)

	stats, err := c.GetChampionStats(context.Background(), "Yuumi", "")
	require.NoError(t, err)

	assert.InDelta(t, 47.5, stats.WinRate, 1e-9)
	assert.Zero(t, stats.PickRate)
	assert.Equal(t, "C", stats.Tier)
	assert.Equal(t, RoleMid, stats.Role)
	assert.Equal(t, patchUnknown, stats.Patch)
	assert.Empty(t, stats.HighestWinRateItems)
	assert.NotNil(t, stats.PopularItems)
	assert.Empty(t, stats.BestMatchups)
	assert.Equal(t, "Unknown", stats.PrimaryRune)
	assert.Equal(t, "Unknown", stats.PrimaryTree)
	assert.Equal(t, "Unknown", stats.SecondaryTree)
}

func TestGetChampionStatsErrors(t *testing.T) {
	c := newTestScraper(t, newFakeSite(nil))

	_, err := c.GetChampionStats(context.Background(), "Nobody", "mid")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.GetChampionStats(context.Background(), "  ", "mid")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetChampionStatsCaches(t *testing.T) {
	site := newFakeSite(map[string]string{"/lol/zeri/build/": zeriBuildPage})
	c := newTestScraper(t, site)
	ctx := context.Background()

	for range 2 {
		_, err := c.GetChampionStats(ctx, "Zeri", "bottom")
		require.NoError(t, err)
	}
	_, err := c.GetChampionStats(ctx, "Zeri", "top")
	require.NoError(t, err)

	assert.Equal(t, 2, site.count("/lol/zeri/build/"))
}

func TestCompareChampions(t *testing.T) {
	site := newFakeSite(map[string]string{
		"/lol/zeri/build/":    zeriBuildPage,
		"/lol/caitlyn/build/": caitlynBuildPage,
	})
	c := newTestScraper(t, site)

	cmp, err := c.CompareChampions(context.Background(), "Zeri", "Caitlyn", "adc")
	require.NoError(t, err)

	assert.Equal(t, "Zeri", cmp.Champion1.ChampionName)
	assert.Equal(t, "Caitlyn", cmp.Champion2.ChampionName)
	assert.InDelta(t, 46.2, cmp.MatchupWinRate, 1e-9)
	assert.Equal(t, DifficultyHard, cmp.LaneDifficulty)
	assert.Equal(t, RoleADC, cmp.Role)

	_, err = c.CompareChampions(context.Background(), "Zeri", "Nobody", "adc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMatchupWinRate(t *testing.T) {
	zeri := &models.DetailedChampionStats{
		ChampionName:  "Zeri",
		WorstMatchups: []models.Matchup{{OpponentName: "Caitlyn", WinRate: 46.2}, {OpponentName: "Varus"}},
	}
	kaisa := &models.DetailedChampionStats{
		ChampionName: "Kai'Sa",
		BestMatchups: []models.Matchup{{OpponentName: "Zeri", WinRate: 54}},
	}
	varus := &models.DetailedChampionStats{ChampionName: "Varus"}
	caitlyn := &models.DetailedChampionStats{ChampionName: "Caitlyn"}

	assert.InDelta(t, 46.2, MatchupWinRate(zeri, caitlyn), 1e-9)
	assert.InDelta(t, 46, MatchupWinRate(zeri, kaisa), 1e-9)
	assert.InDelta(t, 54, MatchupWinRate(kaisa, zeri), 1e-9)
	assert.InDelta(t, 50, MatchupWinRate(zeri, varus), 1e-9, "unpublished figures are ignored")
}

func TestLaneDifficulty(t *testing.T) {
	tests := []struct {
		wr   float64
		want string
	}{
		{60, DifficultyEasy},
		{55, DifficultyEasy},
		{54.9, DifficultySkill},
		{50, DifficultySkill},
		{47, DifficultyHard},
		{45, DifficultyHard},
		{44.9, DifficultyVeryHard},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LaneDifficulty(tt.wr), "%v", tt.wr)
	}
}

func TestCalculateTier(t *testing.T) {
	tests := []struct {
		wr, pr float64
		want   string
	}{
		{53.5, 6, "S"},
		{53.5, 2, "A"},
		{52, 1, "A"},
		{50, 10, "B"},
		{49, 0, "B"},
		{48, 0, "C"},
		{46.9, 20, "D"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CalculateTier(tt.wr, tt.pr), "wr=%v pr=%v", tt.wr, tt.pr)
	}
}

func TestScrapeChampionMeta(t *testing.T) {
	site := newFakeSite(map[string]string{
		"/lol/ahri/": `<html><body>
<div class="win-rate">Win Rate 52.3%</div>
<div data-stat="pickrate">8.1 %</div>
<span class="tier">S+</span>
</body></html>`,
	})
	c := newTestScraper(t, site)

	meta, err := c.ScrapeChampionMeta(context.Background(), "Ahri", "mid")
	require.NoError(t, err)

	assert.Equal(t, 2, site.count("/lol/ahri/build/"), "lane page and build page both tried")
	assert.Equal(t, "Ahri", meta.ChampionName)
	assert.InDelta(t, 52.3, meta.WinRate, 1e-9)
	assert.InDelta(t, 8.1, meta.PickRate, 1e-9)
	assert.Zero(t, meta.BanRate)
	assert.Equal(t, "S+", meta.Tier)
	assert.Equal(t, RoleMid, meta.Role)
	assert.Equal(t, patchUnknown, meta.Patch)
}

func TestScrapeChampionMetaUnknownRole(t *testing.T) {
	site := newFakeSite(map[string]string{"/champions/ahri/": `<html><body></body></html>`})
	c := newTestScraper(t, site)

	meta, err := c.ScrapeChampionMeta(context.Background(), "Ahri", "all")
	require.NoError(t, err)

	assert.Equal(t, "Unknown", meta.Tier)
	assert.Equal(t, "Unknown", meta.Role)
	assert.Zero(t, meta.WinRate)
}

func TestScrapeMultipleChampions(t *testing.T) {
	site := newFakeSite(map[string]string{
		"/lol/ahri/build/": `<html><body><div class="wr">51%</div></body></html>`,
		"/lol/zed/build/":  `<html><body><div class="wr">49.5%</div></body></html>`,
	})
	c := newTestScraper(t, site)

	got, err := c.ScrapeMultipleChampions(context.Background(), []string{"Ahri", "Nobody", "Zed"})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.InDelta(t, 51, got["Ahri"].WinRate, 1e-9)
	assert.InDelta(t, 49.5, got["Zed"].WinRate, 1e-9)
	assert.NotContains(t, got, "Nobody")
}
