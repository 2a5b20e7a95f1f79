package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/scoutle/internal/config"
	"github.com/scoutle/internal/models"
	"github.com/scoutle/internal/services/hybrid"
	"github.com/scoutle/internal/services/riot"
	"github.com/scoutle/internal/services/scraper"
	"github.com/scoutle/internal/storage"
)

var errBadRequest = errors.New("bad request")

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, riot.ErrNotFound), errors.Is(err, scraper.ErrNotFound), errors.Is(err, storage.ErrMatchNotFound):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest), errors.Is(err, riot.ErrMissingTag), errors.Is(err, riot.ErrUnknownRegion),
		errors.Is(err, models.ErrInvalidRiotID), errors.Is(err, storage.ErrInvalidMatch):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrDuplicateMatch):
		return http.StatusConflict
	case errors.Is(err, riot.ErrNoAPIKey):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, riot.ErrUnauthorized), errors.Is(err, riot.ErrRateLimited):
		return http.StatusBadGateway
	}

	var apiErr *riot.APIError
	var statusErr *scraper.StatusError
	if errors.As(err, &apiErr) || errors.As(err, &statusErr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	evt := s.log.Warn()
	if status >= http.StatusInternalServerError {
		evt = s.log.Error()
	}
	evt.Err(err).Str("path", r.URL.Path).Int("status", status).Msg("request failed")
	Error(w, status, err)
}

func pathParam(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if unescaped, err := url.PathUnescape(v); err == nil {
		return unescaped
	}
	return v
}

// player reads the region and Riot ID path parameters.
func player(r *http.Request) (riotID, region string, err error) {
	reg, ok := config.LookupRegion(pathParam(r, "region"))
	if !ok {
		return "", "", fmt.Errorf("%w: %s", riot.ErrUnknownRegion, pathParam(r, "region"))
	}
	id, err := models.ParseRiotID(pathParam(r, "riotID"))
	if err != nil {
		return "", "", err
	}
	return id.String(), reg.Key, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", errBadRequest, name)
	}
	return n, nil
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"riot_api": s.svc.Riot != nil && s.svc.Riot.HasAPIKey(),
	})
}

func (s *Server) listRegions(w http.ResponseWriter, r *http.Request) {
	out := make([]config.Region, 0, len(config.RegionKeys()))
	for _, key := range config.RegionKeys() {
		if reg, ok := config.LookupRegion(key); ok {
			out = append(out, reg)
		}
	}
	Success(w, out)
}

// getAccount serves the hybrid account. ?include_manual=true folds in the
// player's manually entered games.
func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	riotID, region, err := player(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	acc, err := s.svc.Accounts.ScrapePlayerAccount(r.Context(), riotID, region)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if include, _ := strconv.ParseBool(r.URL.Query().Get("include_manual")); include && s.svc.Manual != nil {
		manual := s.svc.Manual.AllChampionStats(riotID)
		if len(manual) == 0 {
			name, _, _ := strings.Cut(riotID, "#")
			manual = s.svc.Manual.AllChampionStats(name)
		}
		acc = hybrid.MergeManual(acc, manual)
	}
	Success(w, acc)
}

func (s *Server) getComprehensive(w http.ResponseWriter, r *http.Request) {
	riotID, region, err := player(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	data, err := s.svc.Accounts.GetComprehensiveChampionData(r.Context(), riotID, region)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	Success(w, data)
}

// getChampionAnalysis runs the analyzer over recent ranked games, most
// played champion first. ?count limits the games analyzed.
func (s *Server) getChampionAnalysis(w http.ResponseWriter, r *http.Request) {
	riotID, region, err := player(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	count, err := queryInt(r, "count")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	stats, err := s.svc.Riot.AnalyzePlayerMatches(r.Context(), riotID, region, count)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	Success(w, riot.TopChampions(stats, 0))
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	riotID, region, err := player(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	profile, err := s.svc.Riot.GetPlayerProfile(r.Context(), riotID, region)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	Success(w, profile)
}

// getTournaments reads tournament games from the Riot API when a key is
// configured, otherwise from op.gg. ?source=opgg forces the scraper.
func (s *Server) getTournaments(w http.ResponseWriter, r *http.Request) {
	riotID, region, err := player(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var stats *models.TournamentStats
	if s.svc.Riot.HasAPIKey() && r.URL.Query().Get("source") != models.SourceOPGG {
		stats, err = s.svc.Riot.GetTournamentStats(r.Context(), riotID, region)
	} else {
		stats, err = s.svc.Champions.ScrapeTournamentGames(r.Context(), riotID, region)
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	Success(w, stats)
}

func (s *Server) getChampionStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.Champions.GetChampionStats(r.Context(), pathParam(r, "name"), r.URL.Query().Get("role"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	Success(w, stats)
}

func (s *Server) getChampionMeta(w http.ResponseWriter, r *http.Request) {
	meta, err := s.svc.Champions.ScrapeChampionMeta(r.Context(), pathParam(r, "name"), r.URL.Query().Get("role"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	Success(w, meta)
}

func (s *Server) compareChampions(w http.ResponseWriter, r *http.Request) {
	cmp, err := s.svc.Champions.CompareChampions(r.Context(),
		pathParam(r, "name"), pathParam(r, "opponent"), r.URL.Query().Get("role"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	Success(w, cmp)
}

func (s *Server) addManualMatch(w http.ResponseWriter, r *http.Request) {
	var m models.ManualMatch
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		s.fail(w, r, fmt.Errorf("%w: invalid JSON: %v", errBadRequest, err))
		return
	}

	stored, err := s.svc.Manual.Add(m)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	Created(w, stored)
}

func (s *Server) listManualMatches(w http.ResponseWriter, r *http.Request) {
	matches := s.svc.Manual.MatchesForSummoner(pathParam(r, "id"))
	if matches == nil {
		matches = []models.ManualMatch{}
	}
	Success(w, matches)
}

func (s *Server) getManualStats(w http.ResponseWriter, r *http.Request) {
	Success(w, s.svc.Manual.AllChampionStats(pathParam(r, "id")))
}

func (s *Server) removeManualMatch(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Manual.Remove(pathParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	NoContent(w)
}
