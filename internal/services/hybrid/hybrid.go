// Package hybrid merges player records from the Riot API, op.gg and the
// manual match store into one view.
package hybrid

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/scoutle/internal/models"
)

// AccountSource is anything that can build a player account.
type AccountSource interface {
	ScrapePlayerAccount(ctx context.Context, riotID, region string) (*models.PlayerAccount, error)
}

// ComprehensiveData holds each source's account and, when both loaded,
// their combination.
type ComprehensiveData struct {
	OPGG     *models.PlayerAccount `json:"opgg_data"`
	Riot     *models.PlayerAccount `json:"riot_data"`
	Combined *models.PlayerAccount `json:"combined_data"`
}

// Combiner picks between or merges the Riot API and op.gg sources.
type Combiner struct {
	riot AccountSource // nil without a Riot API key
	opgg AccountSource
	log  zerolog.Logger
	now  func() time.Time
}

// New creates a Combiner. Pass a nil riot source when no API key is configured.
func New(riot, opgg AccountSource, log zerolog.Logger) *Combiner {
	return &Combiner{
		riot: riot,
		opgg: opgg,
		log:  log.With().Str("component", "hybrid").Logger(),
		now:  time.Now,
	}
}

// HasRiot reports whether the Riot API source is available.
func (c *Combiner) HasRiot() bool {
	return c.riot != nil
}

// ScrapePlayerAccount uses the Riot API when available and falls back to
// op.gg when it is not or when it fails.
func (c *Combiner) ScrapePlayerAccount(ctx context.Context, riotID, region string) (*models.PlayerAccount, error) {
	if c.riot != nil {
		acc, err := c.riot.ScrapePlayerAccount(ctx, riotID, region)
		if err == nil {
			return acc, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.log.Warn().Err(err).Str("summoner", riotID).Msg("riot api failed, falling back to op.gg")
	}

	acc, err := c.opgg.ScrapePlayerAccount(ctx, riotID, region)
	if err != nil {
		return nil, fmt.Errorf("op.gg: %w", err)
	}
	return acc, nil
}

// GetComprehensiveChampionData loads both sources concurrently. A failing
// source is left nil; an error is returned only when every source failed.
func (c *Combiner) GetComprehensiveChampionData(ctx context.Context, riotID, region string) (*ComprehensiveData, error) {
	var (
		out              ComprehensiveData
		opggErr, riotErr error
	)

	var g errgroup.Group
	g.Go(func() error {
		out.OPGG, opggErr = c.opgg.ScrapePlayerAccount(ctx, riotID, region)
		if opggErr != nil {
			c.log.Warn().Err(opggErr).Str("summoner", riotID).Msg("op.gg data unavailable")
		}
		return nil
	})
	if c.riot != nil {
		g.Go(func() error {
			out.Riot, riotErr = c.riot.ScrapePlayerAccount(ctx, riotID, region)
			if riotErr != nil {
				c.log.Warn().Err(riotErr).Str("summoner", riotID).Msg("riot api data unavailable")
			}
			return nil
		})
	}
	_ = g.Wait()

	if out.OPGG == nil && out.Riot == nil {
		return nil, fmt.Errorf("no data for %s: %w", riotID, errors.Join(opggErr, riotErr))
	}
	if out.OPGG != nil && out.Riot != nil {
		out.Combined = c.Combine(out.OPGG, out.Riot)
	}
	return &out, nil
}

// Combine keeps every op.gg champion and adds the Riot champions op.gg
// lacks, matching names by models.ChampionKey. Account fields come from
// Riot when it reports a higher level or more champions, otherwise from
// op.gg.
func (c *Combiner) Combine(opgg, riot *models.PlayerAccount) *models.PlayerAccount {
	known := make(map[string]bool, len(opgg.ChampionPerformances))
	champions := make([]models.ChampionPerformance, 0, len(opgg.ChampionPerformances)+len(riot.ChampionPerformances))
	for _, p := range opgg.ChampionPerformances {
		known[models.ChampionKey(p.ChampionName)] = true
		champions = append(champions, p)
	}
	for _, p := range riot.ChampionPerformances {
		if !known[models.ChampionKey(p.ChampionName)] {
			c.log.Debug().Str("champion", p.ChampionName).Msg("added champion from riot api")
			champions = append(champions, p)
		}
	}
	models.SortByGames(champions)

	base := *opgg
	if riot.Level > opgg.Level || len(riot.ChampionPerformances) > len(opgg.ChampionPerformances) {
		base = *riot
	}
	base.PUUID = riot.PUUID
	base.SummonerID = riot.SummonerID
	base.ChampionPerformances = champions
	base.Source = models.SourceCombined
	base.LastUpdated = c.now()
	return &base
}

// MergeManual folds manually recorded per-champion stats into an account.
// Matching champions (by models.ChampionKey) get summed counts and
// game-weighted averages; the rest are appended. The input is not modified.
func MergeManual(account *models.PlayerAccount, manual []models.ChampionPerformance) *models.PlayerAccount {
	merged := *account
	merged.ChampionPerformances = append([]models.ChampionPerformance(nil), account.ChampionPerformances...)

	for _, m := range manual {
		if m.GamesPlayed <= 0 {
			continue
		}
		i := indexOf(merged.ChampionPerformances, m.ChampionName)
		if i < 0 {
			m.Source = models.SourceManual
			merged.ChampionPerformances = append(merged.ChampionPerformances, m)
			continue
		}
		merged.ChampionPerformances[i] = mergePerformance(merged.ChampionPerformances[i], m)
	}

	models.SortByGames(merged.ChampionPerformances)
	return &merged
}

func indexOf(perfs []models.ChampionPerformance, champion string) int {
	key := models.ChampionKey(champion)
	for i, p := range perfs {
		if models.ChampionKey(p.ChampionName) == key {
			return i
		}
	}
	return -1
}

func mergePerformance(a, b models.ChampionPerformance) models.ChampionPerformance {
	games := a.GamesPlayed + b.GamesPlayed
	if games == 0 {
		return a
	}
	weighted := func(x, y float64) float64 {
		return (x*float64(a.GamesPlayed) + y*float64(b.GamesPlayed)) / float64(games)
	}

	out := a
	out.GamesPlayed = games
	out.Wins = a.Wins + b.Wins
	out.Losses = a.Losses + b.Losses
	out.WinRate = models.WinRate(out.Wins, games)
	out.Kills = weighted(a.Kills, b.Kills)
	out.Deaths = weighted(a.Deaths, b.Deaths)
	out.Assists = weighted(a.Assists, b.Assists)
	out.CSPerMin = weighted(a.CSPerMin, b.CSPerMin)
	out.KDA = models.KDARatio(out.Kills, out.Deaths, out.Assists)
	return out
}
