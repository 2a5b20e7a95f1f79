package scraper

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/scoutle/internal/data"
	"github.com/scoutle/internal/models"
)

var (
	numberRe = regexp.MustCompile(`\d+\.?\d*`)

	winRateDiamondRe = regexp.MustCompile(`has a (\d+(?:\.\d+)?)% win rate in Diamond\+`)
	winRateRe        = regexp.MustCompile(`has a (\d+(?:\.\d+)?)% win rate`)
	pickRateRe       = regexp.MustCompile(`(\d+(?:\.\d+)?)%\s*Pick Rate`)
	banRateRe        = regexp.MustCompile(`(\d+(?:\.\d+)?)%\s*Ban Rate`)
	gradedTierRe     = regexp.MustCompile(`graded ([SABCD][+-]?) Tier`)
	patchRe          = regexp.MustCompile(`Patch (\d+\.\d+)`)
	matchupsRe       = regexp.MustCompile(`strong counter to ([^<]+?) while .+ countered most by ([^<]+?)\.`)
	matchupSplitRe   = regexp.MustCompile(`,\s*|\s*&\s*`)
	runeImageRe      = regexp.MustCompile(`(?i)rune\d+/`)
	runeIDRe         = regexp.MustCompile(`/rune\d+/(\d{4})`)
)

var (
	winRateSelectors  = []string{".winrate", ".win-rate", ".wr", `[data-stat="winrate"]`}
	pickRateSelectors = []string{".pickrate", ".pick-rate", ".pr", `[data-stat="pickrate"]`}
	banRateSelectors  = []string{".banrate", ".ban-rate", ".br", `[data-stat="banrate"]`}
	tierSelectors     = []string{".tier", ".rating", ".grade", `[data-stat="tier"]`}
	roleSelectors     = []string{".role", ".lane", ".position", `[data-stat="role"]`}
)

// consumables and starters never count as build items
var skippedItems = []string{
	"Doran", "Health Potion", "Mana Potion", "Refillable", "Stealth Ward",
	"Oracle", "Control Ward", "Farsight", "Boots of Speed",
}

const (
	buildSize      = 3
	maxMatchups    = 3
	maxRuneImages  = 25
	keystoneWindow = 15
)

// ScrapeChampionMeta scrapes a champion's patch-wide rates from
// lolalytics. An empty or "all" role covers every lane.
func (c *Client) ScrapeChampionMeta(ctx context.Context, champion, role string) (*models.ChampionMetaData, error) {
	slug := normalizeChampionName(champion)
	lane := normalizeLane(role)
	key := fmt.Sprintf("lolalytics:meta:v1:%s:%s", slug, lane)

	return cached(ctx, c, key, func(ctx context.Context) (*models.ChampionMetaData, error) {
		var urls []string
		if lane != "" {
			urls = append(urls, fmt.Sprintf("%s/lol/%s/build/?lane=%s", c.lolalyticsBase, slug, lane))
		}
		urls = append(urls,
			fmt.Sprintf("%s/lol/%s/build/", c.lolalyticsBase, slug),
			fmt.Sprintf("%s/lol/%s/", c.lolalyticsBase, slug),
			fmt.Sprintf("%s/champions/%s/", c.lolalyticsBase, slug),
		)

		body, _, err := c.fetchFirst(ctx, urls)
		if err != nil {
			return nil, fmt.Errorf("lolalytics %s: %w", champion, err)
		}
		p, err := parsePage(body)
		if err != nil {
			return nil, err
		}
		return parseChampionMeta(p, champion, lane), nil
	})
}

func parseChampionMeta(p *page, champion, lane string) *models.ChampionMetaData {
	meta := &models.ChampionMetaData{
		ChampionName: champion,
		WinRate:      selectNumber(p.doc, winRateSelectors),
		PickRate:     selectNumber(p.doc, pickRateSelectors),
		BanRate:      selectNumber(p.doc, banRateSelectors),
		Tier:         selectText(p.doc, tierSelectors),
		Role:         selectText(p.doc, roleSelectors),
		Patch:        patchUnknown,
	}
	if meta.Tier == "" {
		meta.Tier = "Unknown"
	}
	if meta.Role == "" {
		meta.Role = "Unknown"
		if lane != "" {
			meta.Role = roleDisplayName(lane)
		}
	}
	return meta
}

// selectNumber returns the first number inside the first selector that
// has one.
func selectNumber(doc *goquery.Document, selectors []string) float64 {
	for _, sel := range selectors {
		text := doc.Find(sel).First().Text()
		if m := numberRe.FindString(text); m != "" {
			if v, err := strconv.ParseFloat(m, 64); err == nil {
				return v
			}
		}
	}
	return 0
}

func selectText(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		if text := strings.TrimSpace(doc.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// ScrapeMultipleChampions scrapes champions one at a time, waiting the
// configured scrape delay between requests. Champions that fail are left
// out of the result.
func (c *Client) ScrapeMultipleChampions(ctx context.Context, champions []string) (map[string]*models.ChampionMetaData, error) {
	results := make(map[string]*models.ChampionMetaData, len(champions))
	for _, name := range champions {
		if err := c.limiter.Wait(ctx); err != nil {
			return results, fmt.Errorf("rate limiter error: %w", err)
		}

		meta, err := c.ScrapeChampionMeta(ctx, name, "")
		if err != nil {
			c.log.Warn().Err(err).Str("champion", name).Msg("failed to scrape champion meta")
			continue
		}
		results[name] = meta
	}
	return results, nil
}

// GetChampionStats scrapes a champion's Diamond+ build page: rates, tier,
// role, item builds, matchups and runes.
func (c *Client) GetChampionStats(ctx context.Context, champion, role string) (*models.DetailedChampionStats, error) {
	slug := normalizeChampionName(champion)
	if slug == "" {
		return nil, fmt.Errorf("%w: empty champion name", ErrNotFound)
	}
	lane := normalizeLane(role)
	key := fmt.Sprintf("lolalytics:stats:v1:%s:%s", slug, lane)

	return cached(ctx, c, key, func(ctx context.Context) (*models.DetailedChampionStats, error) {
		url := fmt.Sprintf("%s/lol/%s/build/?tier=diamond_plus", c.lolalyticsBase, slug)
		if lane != "" {
			url += "&lane=" + lane
		}

		body, err := c.fetch(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("lolalytics %s: %w", champion, err)
		}
		p, err := parsePage(body)
		if err != nil {
			return nil, err
		}

		stats := parseChampionStats(p, champion, lane)
		stats.ImageURL = data.ChampionIconURL(c.ddragonBase, c.ddragonVersion, champion)

		c.log.Info().
			Str("champion", champion).
			Float64("win_rate", stats.WinRate).
			Str("tier", stats.Tier).
			Int("items", len(stats.HighestWinRateItems)+len(stats.PopularItems)).
			Msg("scraped champion stats")
		return stats, nil
	})
}

func parseChampionStats(p *page, champion, lane string) *models.DetailedChampionStats {
	stats := &models.DetailedChampionStats{
		ChampionName: champion,
		Patch:        patchUnknown,
	}

	if v, ok := findFloat(winRateDiamondRe, p.text); ok {
		stats.WinRate = v
	} else if v, ok := findFloat(winRateRe, p.text); ok {
		stats.WinRate = v
	}
	stats.PickRate, _ = findFloat(pickRateRe, p.text)
	stats.BanRate, _ = findFloat(banRateRe, p.text)

	if m := gradedTierRe.FindStringSubmatch(p.text); m != nil {
		stats.Tier = m[1]
	} else {
		stats.Tier = CalculateTier(stats.WinRate, stats.PickRate)
	}

	stats.Role = detectRole(p.text, champion, lane)
	if m := patchRe.FindStringSubmatch(p.text); m != nil {
		stats.Patch = m[1]
	}

	stats.HighestWinRateItems, stats.PopularItems = extractItems(p.doc)
	stats.BestMatchups, stats.WorstMatchups = extractMatchups(p.text)
	stats.PrimaryRune, stats.PrimaryTree, stats.SecondaryTree = extractRunes(p.doc)

	return stats
}

func findFloat(re *regexp.Regexp, text string) (float64, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	return v, err == nil
}

// detectRole reads the role from "... for bottom zeri", falling back to
// the requested lane and then to Mid.
func detectRole(text, champion, lane string) string {
	re, err := regexp.Compile(`(?i)for (top|jungle|middle|bottom|support) ` + regexp.QuoteMeta(strings.ToLower(champion)))
	if err == nil {
		if m := re.FindStringSubmatch(text); m != nil {
			return roleDisplayName(m[1])
		}
	}
	if lane != "" {
		return roleDisplayName(lane)
	}
	return RoleMid
}

// extractItems returns the first three distinct build items as the highest
// win rate build and the next three as the most popular one.
func extractItems(doc *goquery.Document) (highestWinRate, popular []string) {
	seen := make(map[string]bool)
	var items []string

	doc.Find("img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		src := img.AttrOr("src", "")
		if !strings.Contains(src, "/item64/") && !strings.Contains(src, "/item32/") {
			return true
		}
		alt := strings.TrimSpace(img.AttrOr("alt", ""))
		if len(alt) <= 2 || seen[alt] || isSkippedItem(alt) {
			return true
		}
		seen[alt] = true
		items = append(items, alt)
		return len(items) < 2*buildSize
	})

	highestWinRate = []string{}
	popular = []string{}
	for i, item := range items {
		if i < buildSize {
			highestWinRate = append(highestWinRate, item)
		} else {
			popular = append(popular, item)
		}
	}
	return highestWinRate, popular
}

func isSkippedItem(name string) bool {
	for _, s := range skippedItems {
		if strings.Contains(name, s) {
			return true
		}
	}
	return false
}

// extractMatchups reads "strong counter to A, B & C while ... countered
// most by D, E & F." A matchup's win rate is filled from a "Name 47.5%"
// figure when the page shows one.
func extractMatchups(text string) (best, worst []models.Matchup) {
	best = []models.Matchup{}
	worst = []models.Matchup{}

	m := matchupsRe.FindStringSubmatch(text)
	if m == nil {
		return best, worst
	}
	return parseMatchupList(m[1], text), parseMatchupList(m[2], text)
}

func parseMatchupList(list, text string) []models.Matchup {
	out := []models.Matchup{}
	for _, name := range matchupSplitRe.Split(list, -1) {
		name = strings.TrimSpace(name)
		if len(name) <= 1 {
			continue
		}
		out = append(out, models.Matchup{OpponentName: name, WinRate: matchupWinRate(text, name)})
		if len(out) == maxMatchups {
			break
		}
	}
	return out
}

func matchupWinRate(text, name string) float64 {
	re, err := regexp.Compile(regexp.QuoteMeta(name) + `\s+(\d+(?:\.\d+)?)%`)
	if err != nil {
		return 0
	}
	v, _ := findFloat(re, text)
	return v
}

// extractRunes finds the selected keystone (the first one not greyed out)
// and the secondary tree from the perk ids of the rune images after it.
func extractRunes(doc *goquery.Document) (keystone, primaryTree, secondaryTree string) {
	keystone, primaryTree, secondaryTree = "Unknown", "Unknown", "Unknown"

	var runes []*goquery.Selection
	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		if len(runes) < maxRuneImages && runeImageRe.MatchString(img.AttrOr("src", "")) {
			runes = append(runes, img)
		}
	})

	start := 0
	for i, img := range runes {
		if i >= keystoneWindow {
			break
		}
		alt := img.AttrOr("alt", "")
		if data.IsKeystone(alt) && !strings.Contains(img.AttrOr("class", ""), "grayscale") {
			keystone = alt
			primaryTree = data.KeystoneTree(alt)
			start = i + 1
			break
		}
	}

	for _, img := range runes[start:] {
		m := runeIDRe.FindStringSubmatch(img.AttrOr("src", ""))
		if m == nil {
			continue
		}
		id, _ := strconv.Atoi(m[1])
		if tree, ok := data.PerkTree(id); ok && tree != primaryTree {
			secondaryTree = tree
			break
		}
	}
	return keystone, primaryTree, secondaryTree
}

// CompareChampions scrapes both champions and estimates the lane matchup
// from a's point of view.
func (c *Client) CompareChampions(ctx context.Context, a, b, role string) (*models.ChampionComparison, error) {
	var statsA, statsB *models.DetailedChampionStats

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		statsA, err = c.GetChampionStats(gctx, a, role)
		return err
	})
	g.Go(func() error {
		var err error
		statsB, err = c.GetChampionStats(gctx, b, role)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	wr := MatchupWinRate(statsA, statsB)
	return &models.ChampionComparison{
		Champion1:      statsA,
		Champion2:      statsB,
		MatchupWinRate: wr,
		LaneDifficulty: LaneDifficulty(wr),
		Role:           statsA.Role,
	}, nil
}

// MatchupWinRate returns a's win rate against b: a's published figure for
// b, else 100 minus b's figure for a, else 50.
func MatchupWinRate(a, b *models.DetailedChampionStats) float64 {
	if wr, ok := findMatchup(a, b.ChampionName); ok {
		return wr
	}
	if wr, ok := findMatchup(b, a.ChampionName); ok {
		return 100 - wr
	}
	return defaultMatchupRate
}

func findMatchup(stats *models.DetailedChampionStats, opponent string) (float64, bool) {
	want := normalizeChampionName(opponent)
	if want == "" {
		return 0, false
	}
	for _, list := range [][]models.Matchup{stats.BestMatchups, stats.WorstMatchups} {
		for _, m := range list {
			if m.WinRate > 0 && strings.Contains(normalizeChampionName(m.OpponentName), want) {
				return m.WinRate, true
			}
		}
	}
	return 0, false
}

// LaneDifficulty labels a matchup win rate.
func LaneDifficulty(winRate float64) string {
	switch {
	case winRate >= 55:
		return DifficultyEasy
	case winRate >= 50:
		return DifficultySkill
	case winRate >= 45:
		return DifficultyHard
	default:
		return DifficultyVeryHard
	}
}

// CalculateTier grades a champion from its win and pick rates.
func CalculateTier(winRate, pickRate float64) string {
	switch {
	case winRate >= 53 && pickRate >= 5:
		return "S"
	case winRate >= 52:
		return "A"
	case winRate >= 49:
		return "B"
	case winRate >= 47:
		return "C"
	default:
		return "D"
	}
}
