package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/unrolled/render"

	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/controller"
)

func getRouter(ctrl controller.C, rnd *render.Render, cfg Config) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// The browser UI runs on a different origin and sends the ESPN
	// cookies cross-site, so every origin is reflected back and
	// credentials are allowed.
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			return true
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(interactedMiddleware)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/api/health", healthHandler(rnd))

	r.Route("/api/platforms/espn", func(r chi.Router) {
		r.Get("/leagues", espnLeaguesHandler(ctrl, rnd))
		r.Get("/teams", espnTeamsHandler(ctrl, rnd))
		r.Get("/oppsched", espnOppSchedHandler(ctrl, rnd))
		r.Get("/opponent", espnOpponentHandler(ctrl, rnd))

		r.Route("/league/{leagueID}", func(r chi.Router) {
			r.Get("/teams", espnLeagueTeamsHandler(ctrl, rnd))
			r.Get("/roster-players", espnRosterHandler(ctrl, rnd))
			r.Get("/league-rosters", espnLeagueRostersHandler(ctrl, rnd))
			r.Get("/weekly-points", espnWeeklyPointsHandler(ctrl, rnd))
			r.Get("/players", espnPlayersHandler(ctrl, rnd))
		})
	})

	r.Route("/api/platforms/sleeper", func(r chi.Router) {
		r.Get("/leagues", sleeperLeaguesHandler(ctrl, rnd))
		r.Get("/league/{leagueID}/rosters", sleeperRostersHandler(ctrl, rnd))
		r.Get("/players", sleeperPlayersHandler(ctrl, rnd))
	})

	r.Get("/api/espn/link", espnLinkStatusHandler(ctrl, rnd))
	r.Post("/api/espn/link", espnLinkHandler(ctrl, rnd))

	r.Get("/api/rank-cache", rankCacheHandler(ctrl, rnd, cfg.FantasyProsKey))
	r.Post("/api/rank-cache", rankCacheHandler(ctrl, rnd, cfg.FantasyProsKey))

	r.Route("/api/fp", func(r chi.Router) {
		// Aggregation runs can take a while across many weeks.
		r.Use(middleware.Timeout(2 * time.Minute))

		r.Post("/apply-to-league", applyToLeagueHandler(ctrl, rnd))
		r.Post("/load-week-points", loadWeekPointsHandler(ctrl, rnd, cfg.FantasyProsKey))
		r.Get("/league-points", leaguePointsHandler(ctrl, rnd))
	})

	mountProxies(r, rnd, cfg.Proxies)

	return r
}
