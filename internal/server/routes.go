package server

import (
	"github.com/go-chi/chi/v5"
)

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.healthCheck)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/regions", s.listRegions)

		// riotID is "Name-Tag"
		r.Route("/accounts/{region}/{riotID}", func(r chi.Router) {
			r.Get("/", s.getAccount)
			r.Get("/comprehensive", s.getComprehensive)
			r.Get("/champions", s.getChampionAnalysis)
			r.Get("/profile", s.getProfile)
			r.Get("/tournaments", s.getTournaments)
		})

		r.Route("/champions", func(r chi.Router) {
			r.Get("/{name}", s.getChampionStats)
			r.Get("/{name}/meta", s.getChampionMeta)
			r.Get("/{name}/vs/{opponent}", s.compareChampions)
		})

		// {id} is a summoner name for reads and a match id for deletes
		r.Route("/manual", func(r chi.Router) {
			r.Post("/", s.addManualMatch)
			r.Get("/{id}", s.listManualMatches)
			r.Get("/{id}/stats", s.getManualStats)
			r.Delete("/{id}", s.removeManualMatch)
		})
	})
}
