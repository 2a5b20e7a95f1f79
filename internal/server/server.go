// Package server exposes scoutle's lookups as a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/scoutle/internal/models"
	"github.com/scoutle/internal/services/hybrid"
)

// AccountService builds player accounts from every available source.
type AccountService interface {
	ScrapePlayerAccount(ctx context.Context, riotID, region string) (*models.PlayerAccount, error)
	GetComprehensiveChampionData(ctx context.Context, riotID, region string) (*hybrid.ComprehensiveData, error)
}

// RiotService is the Riot API backed analysis.
type RiotService interface {
	HasAPIKey() bool
	AnalyzePlayerMatches(ctx context.Context, riotID, region string, count int) (map[string]models.ChampionAnalysis, error)
	GetPlayerProfile(ctx context.Context, riotID, region string) (*models.PlayerProfile, error)
	GetTournamentStats(ctx context.Context, riotID, region string) (*models.TournamentStats, error)
}

// ChampionService is the scraped champion and match history data.
type ChampionService interface {
	GetChampionStats(ctx context.Context, champion, role string) (*models.DetailedChampionStats, error)
	ScrapeChampionMeta(ctx context.Context, champion, role string) (*models.ChampionMetaData, error)
	CompareChampions(ctx context.Context, a, b, role string) (*models.ChampionComparison, error)
	ScrapeTournamentGames(ctx context.Context, riotID, region string) (*models.TournamentStats, error)
}

// ManualStore holds manually entered matches.
type ManualStore interface {
	Add(m models.ManualMatch) (models.ManualMatch, error)
	Remove(matchID string) error
	MatchesForSummoner(summoner string) []models.ManualMatch
	AllChampionStats(summoner string) []models.ChampionPerformance
}

// Services are the backends the API serves from.
type Services struct {
	Accounts  AccountService
	Riot      RiotService
	Champions ChampionService
	Manual    ManualStore
}

// Server is the HTTP API server.
type Server struct {
	server *http.Server
	router chi.Router
	svc    Services
	log    zerolog.Logger
}

// New creates a server listening on addr.
func New(addr string, svc Services, log zerolog.Logger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		svc:    svc,
		log:    log.With().Str("component", "server").Logger(),
	}
	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	// scrapes with fallbacks can take a while
	s.router.Use(middleware.Timeout(80 * time.Second))
	s.router.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}).Handler)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := middleware.GetReqID(r.Context())
		w.Header().Set(middleware.RequestIDHeader, reqID)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("request_id", reqID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Stop is called. It returns nil after a clean shutdown.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("server starting")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
