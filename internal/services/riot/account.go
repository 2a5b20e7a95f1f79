package riot

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/scoutle/internal/config"
	"github.com/scoutle/internal/models"
)

// ErrMissingTag is returned when a Riot ID has no tag line.
var ErrMissingTag = errors.New("riot id needs a tag line (Name#Tag)")

// player is the identity every player-level operation starts from.
type player struct {
	id       models.RiotID
	region   string
	account  *AccountResponse
	summoner *SummonerDTO
}

func (c *Client) resolvePlayer(ctx context.Context, riotID, region string) (*player, error) {
	id, err := models.ParseRiotID(riotID)
	if err != nil {
		return nil, err
	}
	if id.TagLine == "" {
		return nil, fmt.Errorf("%w: %q", ErrMissingTag, riotID)
	}
	if region == "" {
		region = c.region
	}

	account, err := c.GetAccountByRiotID(ctx, region, id.GameName, id.TagLine)
	if err != nil {
		return nil, err
	}

	p := &player{id: id, region: region, account: account}
	if account.GameName != "" {
		p.id = models.RiotID{GameName: account.GameName, TagLine: account.TagLine}
	}

	summoner, err := c.GetSummonerByPUUID(ctx, region, account.PUUID)
	if err != nil {
		c.log.Warn().Err(err).Str("riot_id", p.id.String()).Msg("summoner lookup failed")
	} else {
		p.summoner = summoner
	}
	return p, nil
}

func (p *player) level() int {
	if p.summoner == nil {
		return 0
	}
	return int(p.summoner.SummonerLevel)
}

func (p *player) summonerID() string {
	if p.summoner == nil {
		return ""
	}
	return p.summoner.ID
}

// ScrapePlayerAccount builds a player's account summary from ranked
// entries and their recent ranked solo games.
func (c *Client) ScrapePlayerAccount(ctx context.Context, riotID, region string) (*models.PlayerAccount, error) {
	p, err := c.resolvePlayer(ctx, riotID, region)
	if err != nil {
		return nil, err
	}

	account := &models.PlayerAccount{
		SummonerName: p.id.String(),
		Region:       p.region,
		Level:        p.level(),
		SoloQRank:    models.Unranked,
		FlexRank:     models.Unranked,
		PUUID:        p.account.PUUID,
		SummonerID:   p.summonerID(),
		Source:       models.SourceRiot,
		LastUpdated:  time.Now(),
	}

	entries, err := c.GetLeagueEntries(ctx, p.region, p.account.PUUID)
	if err != nil {
		c.log.Warn().Err(err).Msg("ranked lookup failed, reporting unranked")
	}
	for _, e := range entries {
		switch e.QueueType {
		case QueueSolo:
			account.SoloQRank = models.FormatRank(e.Tier, e.Rank)
			account.SoloQLP = e.LeaguePoints
		case QueueFlex:
			account.FlexRank = models.FormatRank(e.Tier, e.Rank)
			account.FlexLP = e.LeaguePoints
		}
	}

	queue := QueueIDRankedSolo
	ids, err := c.GetMatchIDs(ctx, p.region, p.account.PUUID, MatchQuery{Count: c.matchCount, Queue: &queue})
	if err != nil {
		return nil, err
	}

	matches, err := c.GetMatches(ctx, p.region, ids)
	if err != nil {
		return nil, err
	}
	c.resolveChampionNames(ctx, matches)

	account.ChampionPerformances = ChampionPerformances(matches, p.account.PUUID)
	c.log.Info().
		Str("riot_id", account.SummonerName).
		Int("matches", len(matches)).
		Int("champions", len(account.ChampionPerformances)).
		Msg("built account from riot api")

	return account, nil
}

// ChampionPerformances aggregates the player's games per champion. K/D/A
// are per-game averages, KDA is (K+A)/max(D,1) over the totals and CS/min
// is total CS over total game time.
func ChampionPerformances(matches []*MatchResponse, puuid string) []models.ChampionPerformance {
	type totals struct {
		games, wins            int
		kills, deaths, assists int
		cs                     int
		seconds                int64
	}
	byChampion := make(map[string]*totals)
	var order []string

	for _, m := range matches {
		p, ok := m.Participant(puuid)
		if !ok {
			continue
		}
		t, ok := byChampion[p.ChampionName]
		if !ok {
			t = &totals{}
			byChampion[p.ChampionName] = t
			order = append(order, p.ChampionName)
		}
		t.games++
		if p.Win {
			t.wins++
		}
		t.kills += p.Kills
		t.deaths += p.Deaths
		t.assists += p.Assists
		t.cs += p.CS()
		t.seconds += m.Info.DurationSeconds()
	}

	perfs := make([]models.ChampionPerformance, 0, len(order))
	for _, name := range order {
		t := byChampion[name]
		games := float64(t.games)
		perf := models.ChampionPerformance{
			ChampionName: name,
			GamesPlayed:  t.games,
			Wins:         t.wins,
			Losses:       t.games - t.wins,
			WinRate:      models.WinRate(t.wins, t.games),
			Kills:        float64(t.kills) / games,
			Deaths:       float64(t.deaths) / games,
			Assists:      float64(t.assists) / games,
			KDA:          float64(t.kills+t.assists) / float64(max(t.deaths, 1)),
			QueueType:    "soloq",
			Source:       models.SourceRiot,
		}
		if t.seconds > 0 {
			perf.CSPerMin = float64(t.cs) / float64(t.seconds) * 60
		}
		perfs = append(perfs, perf)
	}

	models.SortByGames(perfs)
	return perfs
}

// GetPlayerProfile builds a full profile: ranked queues, recent matches,
// champion pool, role split and mastery.
func (c *Client) GetPlayerProfile(ctx context.Context, riotID, region string) (*models.PlayerProfile, error) {
	p, err := c.resolvePlayer(ctx, riotID, region)
	if err != nil {
		return nil, err
	}
	puuid := p.account.PUUID

	profile := &models.PlayerProfile{
		RiotID:            p.id.String(),
		PUUID:             puuid,
		SummonerID:        p.summonerID(),
		SummonerLevel:     p.level(),
		Region:            p.region,
		ChampionPool:      make(map[string]int),
		RolePreference:    make(map[string]float64),
		PerformanceTrends: make(map[string]float64),
		LastUpdate:        time.Now(),
	}

	entries, err := c.GetLeagueEntries(ctx, p.region, puuid)
	if err != nil {
		c.log.Warn().Err(err).Msg("ranked lookup failed")
	}
	profile.RankedStats = rankedStats(entries)

	ids, err := c.GetMatchIDs(ctx, p.region, puuid, MatchQuery{Count: c.matchCount})
	if err != nil {
		return nil, err
	}
	matches, err := c.GetMatches(ctx, p.region, ids)
	if err != nil {
		return nil, err
	}
	c.resolveChampionNames(ctx, matches)

	roleGames := 0
	for _, m := range matches {
		part, ok := m.Participant(puuid)
		if !ok {
			continue
		}
		profile.RecentMatches = append(profile.RecentMatches, models.MatchPerformance{
			MatchID:      m.Metadata.MatchID,
			Champion:     part.ChampionName,
			Role:         config.RoleName(part.TeamPosition),
			Kills:        part.Kills,
			Deaths:       part.Deaths,
			Assists:      part.Assists,
			Win:          part.Win,
			GameDuration: int(m.Info.DurationSeconds()),
			GameMode:     m.Info.GameMode,
		})
		profile.ChampionPool[part.ChampionName]++
		if part.TeamPosition != "" {
			profile.RolePreference[config.RoleName(part.TeamPosition)]++
			roleGames++
		}
	}
	for role, n := range profile.RolePreference {
		profile.RolePreference[role] = n / float64(roleGames) * 100
	}

	kdas := make([]float64, 0, len(profile.RecentMatches))
	// recent matches arrive newest first
	for i := len(profile.RecentMatches) - 1; i >= 0; i-- {
		kdas = append(kdas, profile.RecentMatches[i].KDA())
	}
	profile.PerformanceTrends["recent_win_rate"] = profile.RecentWinRate()
	profile.PerformanceTrends["average_kda"] = profile.AverageKDA()
	if len(kdas) >= minTrendGames {
		mid := len(kdas) / 2
		profile.PerformanceTrends["kda_first_half"] = mean(kdas[:mid])
		profile.PerformanceTrends["kda_second_half"] = mean(kdas[mid:])
	}

	masteries, err := c.GetChampionMasteries(ctx, p.region, puuid, 5)
	if err != nil {
		c.log.Warn().Err(err).Msg("mastery lookup failed")
	}
	for _, mastery := range masteries {
		profile.TopMasteries = append(profile.TopMasteries, models.ChampionMastery{
			ChampionName:  c.championName(ctx, Participant{ChampionID: mastery.ChampionID}),
			ChampionLevel: mastery.ChampionLevel,
			Points:        mastery.ChampionPoints,
		})
	}

	return profile, nil
}

// rankedStats converts league entries, highest rank first.
func rankedStats(entries []LeagueEntryDTO) []models.RankedStats {
	sorted := make([]LeagueEntryDTO, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if TierOrder[a.Tier] != TierOrder[b.Tier] {
			return TierOrder[a.Tier] > TierOrder[b.Tier]
		}
		if RankOrder[a.Rank] != RankOrder[b.Rank] {
			return RankOrder[a.Rank] > RankOrder[b.Rank]
		}
		return a.LeaguePoints > b.LeaguePoints
	})

	out := make([]models.RankedStats, 0, len(sorted))
	for _, e := range sorted {
		out = append(out, models.RankedStats{
			QueueType: config.QueueName(e.QueueType),
			Tier:      e.Tier,
			Rank:      e.Rank,
			LP:        e.LeaguePoints,
			Wins:      e.Wins,
			Losses:    e.Losses,
			WinRate:   models.WinRate(e.Wins, e.Wins+e.Losses),
		})
	}
	return out
}

// AnalyzePlayerMatches runs the champion analyzer over the player's most recent
// matches, at most MAX_MATCHES_ANALYZE of them unless count says otherwise.
func (c *Client) AnalyzePlayerMatches(ctx context.Context, riotID, region string, count int) (map[string]models.ChampionAnalysis, error) {
	p, err := c.resolvePlayer(ctx, riotID, region)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		count = c.maxAnalyze
	}

	ids, err := c.GetMatchIDs(ctx, p.region, p.account.PUUID, MatchQuery{Count: count})
	if err != nil {
		return nil, err
	}
	matches, err := c.GetMatches(ctx, p.region, ids)
	if err != nil {
		return nil, err
	}
	c.resolveChampionNames(ctx, matches)

	return AnalyzeMatches(matches, p.account.PUUID), nil
}
