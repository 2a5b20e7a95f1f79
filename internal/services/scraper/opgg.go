package scraper

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/scoutle/internal/models"
)

var (
	levelJSONRe = regexp.MustCompile(`"level":(\d+)`)
	levelTextRe = regexp.MustCompile(`(?i)\bLevel\s*(\d+)`)

	rankRe = regexp.MustCompile(`(?i)\b(iron|bronze|silver|gold|platinum|emerald|diamond|grandmaster|master|challenger)\b(?:\s*([1-4]|iv|iii|ii|i)\b)?`)
	lpRe   = regexp.MustCompile(`(?i)(\d[\d,]*)\s*LP`)

	championNameRe   = regexp.MustCompile(`"name":"([A-Za-z][A-Za-z' .&]{1,30})"`)
	recentChampionRe = regexp.MustCompile(`"tr","([^"]+)",\{"className":"text-xs"`)
)

const (
	soloQueueLabel = "Ranked Solo/Duo"
	flexQueueLabel = "Ranked Flex"
)

// how far past a queue label its tier and LP are looked for
const rankWindow = 400

// opggCandidates lists the profile URLs to try, newest layout first.
func (c *Client) opggCandidates(riotID, region string) []string {
	slug := url.PathEscape(riotIDSlug(riotID))
	region = strings.ToLower(region)

	urls := make([]string, 0, 2*len(c.opggBases))
	for _, base := range c.opggBases {
		urls = append(urls, fmt.Sprintf("%s/lol/summoners/%s/%s", base, region, slug))
	}
	for _, base := range c.opggBases {
		urls = append(urls, fmt.Sprintf("%s/summoners/%s/%s", base, region, slug))
	}
	return urls
}

// ScrapePlayerAccount scrapes a player's op.gg profile. riotID may be
// "Name#Tag" or a bare summoner name.
func (c *Client) ScrapePlayerAccount(ctx context.Context, riotID, region string) (*models.PlayerAccount, error) {
	key := fmt.Sprintf("opgg:v1:%s:%s", strings.ToLower(region), strings.ToLower(riotIDSlug(riotID)))
	return cached(ctx, c, key, func(ctx context.Context) (*models.PlayerAccount, error) {
		return c.scrapePlayerAccount(ctx, riotID, region)
	})
}

func (c *Client) scrapePlayerAccount(ctx context.Context, riotID, region string) (*models.PlayerAccount, error) {
	body, pageURL, err := c.fetchFirst(ctx, c.opggCandidates(riotID, region))
	if err != nil {
		return nil, fmt.Errorf("op.gg profile %s: %w", riotID, err)
	}

	p, err := parsePage(body)
	if err != nil {
		return nil, err
	}

	account := &models.PlayerAccount{
		SummonerName: riotID,
		Region:       region,
		Level:        extractLevel(p, region),
		Source:       models.SourceOPGG,
		LastUpdated:  c.now(),
	}
	account.SoloQRank, account.SoloQLP = extractRank(p.text, soloQueueLabel)
	account.FlexRank, account.FlexLP = extractRank(p.text, flexQueueLabel)

	perfs := c.championsPagePerformances(ctx, pageURL)
	if len(perfs) == 0 {
		perfs = recentPerformances(p.data)
		c.log.Debug().Int("champions", len(perfs)).Msg("using past 7 days champion rows")
	}
	account.ChampionPerformances = models.AggregateChampionPerformances(perfs)
	if account.ChampionPerformances == nil {
		account.ChampionPerformances = []models.ChampionPerformance{}
	}

	c.log.Info().
		Str("summoner", riotID).
		Int("level", account.Level).
		Str("soloq", account.SoloQRank).
		Int("champions", len(account.ChampionPerformances)).
		Msg("scraped op.gg profile")

	return account, nil
}

// extractLevel reads the summoner level from embedded page data, then
// from visible text, then from the numbers preceding the region tag.
func extractLevel(p *page, region string) int {
	if m := levelJSONRe.FindStringSubmatch(p.data); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	if m := levelTextRe.FindStringSubmatch(p.text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}

	tag := strings.ToUpper(strings.TrimSpace(region))
	if tag == "" {
		return 0
	}
	re, err := regexp.Compile(`(\d+).*?` + regexp.QuoteMeta(tag))
	if err != nil {
		return 0
	}
	level := 0
	for _, m := range re.FindAllStringSubmatch(p.text, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil && n > level {
			level = n
		}
	}
	return level
}

// extractRank reads the tier, division and LP shown after a queue label.
func extractRank(text, label string) (string, int) {
	idx := strings.Index(text, label)
	if idx < 0 {
		return models.Unranked, 0
	}
	section := text[idx+len(label):]
	if len(section) > rankWindow {
		section = section[:rankWindow]
	}
	// stop at the other queue's block
	for _, other := range []string{soloQueueLabel, flexQueueLabel} {
		if i := strings.Index(section, other); i >= 0 {
			section = section[:i]
		}
	}
	if strings.Contains(strings.ToLower(section), "unranked") {
		return models.Unranked, 0
	}

	m := rankRe.FindStringSubmatchIndex(section)
	if m == nil {
		return models.Unranked, 0
	}
	tier := section[m[2]:m[3]]
	division := ""
	if m[4] >= 0 {
		division = section[m[4]:m[5]]
	}
	rank := models.FormatRank(tier, division)

	// from the tier on, since a lone apex LP figure reads like a division
	lp := 0
	if lm := lpRe.FindStringSubmatch(section[m[3]:]); lm != nil {
		lp, _ = strconv.Atoi(strings.ReplaceAll(lm[1], ",", ""))
	}
	return rank, lp
}

// championsPagePerformances reads season champion records from the
// profile's champions page. Any failure yields no records.
func (c *Client) championsPagePerformances(ctx context.Context, profileURL string) []models.ChampionPerformance {
	body, err := c.fetch(ctx, strings.TrimRight(profileURL, "/")+"/champions")
	if err != nil {
		c.log.Debug().Err(err).Msg("champions page unavailable")
		return nil
	}
	return parseChampionsPage(string(body))
}

// parseChampionsPage extracts one record per champion from the page's
// embedded JSON. A record ends at its match_up_stats or at the next name.
// Records missing a required field are skipped.
func parseChampionsPage(html string) []models.ChampionPerformance {
	script := unescapeScripts(html)
	names := championNameRe.FindAllStringSubmatchIndex(script, -1)

	var perfs []models.ChampionPerformance
	seen := make(map[string]bool)
	for i, m := range names {
		name := script[m[2]:m[3]]
		if len(name) <= 2 || seen[name] {
			continue
		}

		end := len(script)
		if i+1 < len(names) {
			end = names[i+1][0]
		}
		section := script[m[1]:end]
		if j := strings.Index(section, "match_up_stats"); j >= 0 {
			section = section[:j]
		}

		if perf, ok := parseChampionSection(name, section); ok {
			seen[name] = true
			perfs = append(perfs, perf)
		}
	}
	return perfs
}

var sectionFields = map[string]*regexp.Regexp{
	"play":       regexp.MustCompile(`"play":(\d+)`),
	"win":        regexp.MustCompile(`"win":(\d+)`),
	"lose":       regexp.MustCompile(`"lose":(\d+)`),
	"win_rate":   regexp.MustCompile(`"win_rate":(\d+(?:\.\d+)?)`),
	"kda":        regexp.MustCompile(`"kda":(\d+(?:\.\d+)?)`),
	"kill":       regexp.MustCompile(`"kill":(\d+(?:\.\d+)?)`),
	"death":      regexp.MustCompile(`"death":(\d+(?:\.\d+)?)`),
	"assist":     regexp.MustCompile(`"assist":(\d+(?:\.\d+)?)`),
	"cs_per_min": regexp.MustCompile(`"cs_per_min":(\d+(?:\.\d+)?)`),
}

var requiredFields = []string{"play", "win", "lose", "win_rate", "kda", "kill", "death", "assist"}

func parseChampionSection(name, section string) (models.ChampionPerformance, bool) {
	values := make(map[string]float64, len(sectionFields))
	for field, re := range sectionFields {
		m := re.FindStringSubmatch(section)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		values[field] = v
	}
	for _, field := range requiredFields {
		if _, ok := values[field]; !ok {
			return models.ChampionPerformance{}, false
		}
	}

	return models.ChampionPerformance{
		ChampionName: name,
		GamesPlayed:  int(values["play"]),
		Wins:         int(values["win"]),
		Losses:       int(values["lose"]),
		WinRate:      values["win_rate"],
		Kills:        values["kill"],
		Deaths:       values["death"],
		Assists:      values["assist"],
		KDA:          values["kda"],
		CSPerMin:     values["cs_per_min"],
		QueueType:    "soloq",
		Source:       models.SourceOPGG,
	}, true
}

// recentPerformances reads the "ranked win rate in past 7 days" rows of the
// unescaped profile page. Only games, wins, losses and win rate are available.
func recentPerformances(data string) []models.ChampionPerformance {
	var perfs []models.ChampionPerformance
	seen := make(map[string]bool)
	for _, m := range recentChampionRe.FindAllStringSubmatch(data, -1) {
		name := m[1]
		if seen[name] {
			continue
		}
		seen[name] = true

		re := regexp.MustCompile(`"` + regexp.QuoteMeta(name) + `".*?(\d+)W.*?(\d+)L`)
		rm := re.FindStringSubmatch(data)
		if rm == nil {
			continue
		}
		wins, _ := strconv.Atoi(rm[1])
		losses, _ := strconv.Atoi(rm[2])
		games := wins + losses
		if games == 0 {
			continue
		}

		perfs = append(perfs, models.ChampionPerformance{
			ChampionName: name,
			GamesPlayed:  games,
			Wins:         wins,
			Losses:       losses,
			WinRate:      models.WinRate(wins, games),
			QueueType:    "soloq",
			Source:       models.SourceOPGG,
		})
	}
	return perfs
}
