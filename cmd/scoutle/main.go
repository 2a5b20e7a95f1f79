// scoutle looks up League of Legends players and champions from the Riot
// API, op.gg and lolalytics.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/scoutle/internal/config"
	"github.com/scoutle/internal/data"
	"github.com/scoutle/internal/logger"
	"github.com/scoutle/internal/services/hybrid"
	"github.com/scoutle/internal/services/riot"
	"github.com/scoutle/internal/services/scraper"
	"github.com/scoutle/internal/storage"
)

const usage = `usage: scoutle [-health] <command> [flags] [args]

commands:
  account <Name#Tag>          player summary (Riot API, falls back to op.gg)
  comprehensive <Name#Tag>    op.gg and Riot API side by side, plus the merge
  champions <Name#Tag>        champion analysis over recent ranked games
  profile <Name#Tag>          Riot API profile: ranks, recent games, masteries
  tournament <Name#Tag>       custom and tournament games
  champion <name>             lolalytics build, runes and matchups
  meta <name>...              lolalytics win, pick and ban rates
  compare <name> <name>       head-to-head champion comparison
  manual add|remove|list|stats|clear
  serve                       run the JSON HTTP API
`

var errUsage = errors.New("invalid usage")

func main() {
	healthFlag := flag.Bool("health", false, "Run health check against a running server")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if *healthFlag {
		if err := runHealthCheck(cfg.ListenAddr); err != nil {
			os.Exit(1)
		}
		os.Exit(0)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config invalid: %v\n", err)
		os.Exit(1)
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.Console(cfg.LogLevel)
	if args[0] == "serve" {
		log = logger.New(cfg.LogLevel)
	}

	a := newApp(cfg, log, os.Stdout)
	defer a.close()

	if err := a.run(ctx, args[0], args[1:]); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "%v\n\n%s", err, usage)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// app wires the clients every command shares.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	out      io.Writer
	cache    *storage.RedisClient
	riot     *riot.Client
	scraper  *scraper.Client
	accounts *hybrid.Combiner
	manual   *storage.ManualMatchStore
}

func newApp(cfg *config.Config, log zerolog.Logger, out io.Writer) *app {
	cache := storage.NewRedisClient(cfg, log)
	champions := data.NewChampionCatalog(cfg.ChampionDataPath(), cfg.ChampionDataURL())

	riotClient := riot.NewClient(cfg, cache, champions, log)
	scraperClient := scraper.NewClient(cfg, cache, log)

	var riotSource hybrid.AccountSource
	if riotClient.HasAPIKey() {
		riotSource = riotClient
	} else {
		log.Info().Msg("no Riot API key configured, using op.gg only")
	}

	return &app{
		cfg:      cfg,
		log:      log,
		out:      out,
		cache:    cache,
		riot:     riotClient,
		scraper:  scraperClient,
		accounts: hybrid.New(riotSource, scraperClient, log),
	}
}

// manualStore opens the manual match file on first use.
func (a *app) manualStore() (*storage.ManualMatchStore, error) {
	if a.manual != nil {
		return a.manual, nil
	}
	store, err := storage.NewManualMatchStore(a.cfg.ManualMatchesFile, a.log)
	if err != nil {
		return nil, err
	}
	a.manual = store
	return store, nil
}

func (a *app) close() {
	if err := a.cache.Close(); err != nil {
		a.log.Warn().Err(err).Msg("failed to close cache")
	}
}

// runHealthCheck probes the local server's /health endpoint.
func runHealthCheck(listenAddr string) error {
	host := listenAddr
	if strings.HasPrefix(host, ":") {
		host = "localhost" + host
	}

	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get("http://" + host + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: %d", resp.StatusCode)
	}
	return nil
}
