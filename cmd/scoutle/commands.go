package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/scoutle/internal/config"
	"github.com/scoutle/internal/models"
	"github.com/scoutle/internal/render"
	"github.com/scoutle/internal/server"
	"github.com/scoutle/internal/services/hybrid"
	"github.com/scoutle/internal/services/riot"
)

const shutdownTimeout = 10 * time.Second

func (a *app) run(ctx context.Context, name string, args []string) error {
	switch name {
	case "account":
		return a.cmdAccount(ctx, args)
	case "comprehensive":
		return a.cmdComprehensive(ctx, args)
	case "champions":
		return a.cmdChampions(ctx, args)
	case "profile":
		return a.cmdProfile(ctx, args)
	case "tournament":
		return a.cmdTournament(ctx, args)
	case "champion":
		return a.cmdChampion(ctx, args)
	case "meta":
		return a.cmdMeta(ctx, args)
	case "compare":
		return a.cmdCompare(ctx, args)
	case "manual":
		return a.cmdManual(args)
	case "serve":
		return a.cmdServe(ctx)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, name)
	}
}

// parseArgs parses flags that may appear before, between or after
// positional arguments.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// playerArgs parses a command taking one Riot ID and a -region flag.
// The returned region is the short key ("euw").
func (a *app) playerArgs(fs *flag.FlagSet, args []string) (string, string, error) {
	region := fs.String("region", a.cfg.Region, "Region key, e.g. euw, na, kr")
	pos, err := parseArgs(fs, args)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", errUsage, err)
	}
	if len(pos) != 1 {
		return "", "", fmt.Errorf("%w: %s takes one Riot ID", errUsage, fs.Name())
	}

	reg, ok := config.LookupRegion(*region)
	if !ok {
		return "", "", fmt.Errorf("%w: %s", riot.ErrUnknownRegion, *region)
	}
	id, err := models.ParseRiotID(pos[0])
	if err != nil {
		return "", "", err
	}
	return id.String(), reg.Key, nil
}

func (a *app) cmdAccount(ctx context.Context, args []string) error {
	fs := newFlagSet("account")
	limit := fs.Int("limit", 10, "Champions to list")
	withManual := fs.Bool("manual", false, "Merge manually recorded matches")
	riotID, region, err := a.playerArgs(fs, args)
	if err != nil {
		return err
	}

	acc, err := a.accounts.ScrapePlayerAccount(ctx, riotID, region)
	if err != nil {
		return err
	}

	if *withManual {
		store, err := a.manualStore()
		if err != nil {
			return err
		}
		manual := store.AllChampionStats(riotID)
		if len(manual) == 0 {
			name, _, _ := strings.Cut(riotID, "#")
			manual = store.AllChampionStats(name)
		}
		acc = hybrid.MergeManual(acc, manual)
	}
	return render.Account(a.out, acc, *limit)
}

func (a *app) cmdComprehensive(ctx context.Context, args []string) error {
	fs := newFlagSet("comprehensive")
	limit := fs.Int("limit", 5, "Champions to list per source")
	riotID, region, err := a.playerArgs(fs, args)
	if err != nil {
		return err
	}

	d, err := a.accounts.GetComprehensiveChampionData(ctx, riotID, region)
	if err != nil {
		return err
	}
	return render.Comprehensive(a.out, d, *limit)
}

func (a *app) cmdChampions(ctx context.Context, args []string) error {
	fs := newFlagSet("champions")
	count := fs.Int("count", a.cfg.DefaultMatchCount, "Ranked games to analyze")
	top := fs.Int("top", 0, "Champions to list, 0 for all")
	best := fs.Int("min-games", 0, "Rank by win rate among champions with at least this many games")
	riotID, region, err := a.playerArgs(fs, args)
	if err != nil {
		return err
	}

	stats, err := a.riot.AnalyzePlayerMatches(ctx, riotID, region, *count)
	if err != nil {
		return err
	}
	if *best > 0 {
		return render.Analyses(a.out, riot.BestPerformingChampions(stats, *best))
	}
	return render.Analyses(a.out, riot.TopChampions(stats, *top))
}

func (a *app) cmdProfile(ctx context.Context, args []string) error {
	riotID, region, err := a.playerArgs(newFlagSet("profile"), args)
	if err != nil {
		return err
	}
	p, err := a.riot.GetPlayerProfile(ctx, riotID, region)
	if err != nil {
		return err
	}
	return render.Profile(a.out, p)
}

func (a *app) cmdTournament(ctx context.Context, args []string) error {
	fs := newFlagSet("tournament")
	source := fs.String("source", "", "Force a source: riot or opgg")
	riotID, region, err := a.playerArgs(fs, args)
	if err != nil {
		return err
	}

	var stats *models.TournamentStats
	switch {
	case *source == "opgg", *source == "" && !a.riot.HasAPIKey():
		stats, err = a.scraper.ScrapeTournamentGames(ctx, riotID, region)
	case *source == "riot", *source == "":
		stats, err = a.riot.GetTournamentStats(ctx, riotID, region)
	default:
		return fmt.Errorf("%w: unknown source %q", errUsage, *source)
	}
	if err != nil {
		return err
	}
	return render.Tournament(a.out, stats)
}

func (a *app) cmdChampion(ctx context.Context, args []string) error {
	fs := newFlagSet("champion")
	role := fs.String("role", "", "Lane: top, jungle, mid, adc, support")
	pos, err := parseArgs(fs, args)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if len(pos) == 0 {
		return fmt.Errorf("%w: champion takes a champion name", errUsage)
	}

	stats, err := a.scraper.GetChampionStats(ctx, strings.Join(pos, " "), *role)
	if err != nil {
		return err
	}
	return render.ChampionStats(a.out, stats)
}

func (a *app) cmdMeta(ctx context.Context, args []string) error {
	fs := newFlagSet("meta")
	role := fs.String("role", "", "Lane for a single champion")
	pos, err := parseArgs(fs, args)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if len(pos) == 0 {
		return fmt.Errorf("%w: meta takes at least one champion", errUsage)
	}

	if len(pos) == 1 {
		meta, err := a.scraper.ScrapeChampionMeta(ctx, pos[0], *role)
		if err != nil {
			return err
		}
		return render.Meta(a.out, map[string]*models.ChampionMetaData{pos[0]: meta})
	}

	metas, err := a.scraper.ScrapeMultipleChampions(ctx, pos)
	if err != nil {
		return err
	}
	return render.Meta(a.out, metas)
}

func (a *app) cmdCompare(ctx context.Context, args []string) error {
	fs := newFlagSet("compare")
	role := fs.String("role", "", "Lane both champions play")
	pos, err := parseArgs(fs, args)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if len(pos) != 2 {
		return fmt.Errorf("%w: compare takes two champions", errUsage)
	}

	c, err := a.scraper.CompareChampions(ctx, pos[0], pos[1], *role)
	if err != nil {
		return err
	}
	return render.Comparison(a.out, c)
}

func (a *app) cmdManual(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: manual needs add, remove, list, stats or clear", errUsage)
	}
	store, err := a.manualStore()
	if err != nil {
		return err
	}

	sub, args := args[0], args[1:]
	switch sub {
	case "add":
		fs := newFlagSet("manual add")
		m := models.ManualMatch{}
		fs.StringVar(&m.MatchID, "id", "", "Match id, generated when empty")
		fs.StringVar(&m.SummonerName, "summoner", "", "Summoner name")
		fs.StringVar(&m.ChampionName, "champion", "", "Champion played")
		fs.StringVar(&m.Result, "result", "", "WIN or LOSS")
		fs.Float64Var(&m.Kills, "kills", 0, "Kills")
		fs.Float64Var(&m.Deaths, "deaths", 0, "Deaths")
		fs.Float64Var(&m.Assists, "assists", 0, "Assists")
		fs.Float64Var(&m.CS, "cs", 0, "Creep score")
		fs.IntVar(&m.GameDuration, "duration", 0, "Game length in minutes")
		fs.StringVar(&m.QueueType, "queue", "custom", "Queue type")
		fs.StringVar(&m.Notes, "notes", "", "Free-form notes")
		if _, err := parseArgs(fs, args); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}

		saved, err := store.Add(m)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Added %s\n", saved.MatchID)
		return nil

	case "remove":
		if len(args) != 1 {
			return fmt.Errorf("%w: manual remove takes a match id", errUsage)
		}
		if err := store.Remove(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Removed %s\n", args[0])
		return nil

	case "list":
		if len(args) == 0 {
			return render.ManualMatches(a.out, store.All())
		}
		return render.ManualMatches(a.out, store.MatchesForSummoner(strings.Join(args, " ")))

	case "stats":
		if len(args) == 0 {
			return fmt.Errorf("%w: manual stats takes a summoner name", errUsage)
		}
		return render.Performances(a.out, store.AllChampionStats(strings.Join(args, " ")))

	case "clear":
		n := store.Count()
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Cleared %d matches\n", n)
		return nil

	default:
		return fmt.Errorf("%w: unknown manual command %q", errUsage, sub)
	}
}

// cmdServe runs the HTTP API until ctx is cancelled.
func (a *app) cmdServe(ctx context.Context) error {
	store, err := a.manualStore()
	if err != nil {
		return err
	}

	srv := server.New(a.cfg.ListenAddr, server.Services{
		Accounts:  a.accounts,
		Riot:      a.riot,
		Champions: a.scraper,
		Manual:    store,
	}, a.log)

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", a.cfg.ListenAddr).Msg("server listening")
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
