package main

import (
	"net/http"

	"github.com/aferrandez/liga-veteranos/internal/config"
	"github.com/aferrandez/liga-veteranos/internal/middleware"
	"github.com/aferrandez/liga-veteranos/internal/service"
	"github.com/aferrandez/liga-veteranos/internal/store"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/rs/cors"
)

// api bundles the stores and services the handlers need. Everything hangs
// off the one DB handle constructed in main.
type api struct {
	teams     *store.TeamStore
	players   *store.PlayerStore
	fixtures  *store.FixtureStore
	cups      *store.CupStore
	users     *store.UserStore
	ledger    *service.LedgerService
	standings *service.StandingsService
	brackets  *service.BracketService
	fixtureSv *service.FixtureService
	cupSv     *service.CupService
	stats     *service.StatsService
	userSv    *service.UserService
}

func newRouter(dbConn *sqlx.DB, cfg *config.Config) http.Handler {
	teams := store.NewTeamStore(dbConn)
	players := store.NewPlayerStore(dbConn)
	fixtures := store.NewFixtureStore(dbConn)
	cups := store.NewCupStore(dbConn)
	events := store.NewEventStore(dbConn)
	users := store.NewUserStore(dbConn)

	a := &api{
		teams:     teams,
		players:   players,
		fixtures:  fixtures,
		cups:      cups,
		users:     users,
		ledger:    service.NewLedgerService(dbConn, events, players),
		standings: service.NewStandingsService(dbConn, teams, fixtures, cups),
		brackets:  service.NewBracketService(dbConn, cups),
		fixtureSv: service.NewFixtureService(dbConn, fixtures),
		cupSv:     service.NewCupService(dbConn, cups),
		stats:     service.NewStatsService(dbConn, players, teams),
		userSv:    service.NewUserService(dbConn, users, cfg.JWTSecret, cfg.TokenTTL),
	}
	auth := middleware.NewAuth(cfg.JWTSecret, users)

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler)

	r.Route("/api", func(r chi.Router) {
		// Public reads and bootstrap.
		r.Post("/auth/login", a.login)
		r.Post("/init-admin", a.initAdmin(cfg.AdminUsername, cfg.AdminPassword))

		r.Get("/teams", a.listTeams)
		r.Get("/teams/{id}", a.getTeam)
		r.Get("/players", a.listPlayers)
		r.Get("/players/team/{teamID}", a.listTeamPlayers)
		r.Get("/fixtures", a.listFixtures)
		r.Get("/fixtures/division/{division}", a.listDivisionFixtures)
		r.Get("/fixtures/{id}/events", a.matchSheet)
		r.Get("/standings/division/{division}", a.divisionStandings)
		r.Get("/top-scorers", a.topScorers)
		r.Get("/cards-statistics", a.cardStatistics)

		r.Get("/copa/groups", a.listGroups)
		r.Get("/copa/fixtures", a.listGroupFixtures)
		r.Get("/copa/fixtures/{id}/events", a.matchSheet)
		r.Get("/copa/standings/{groupName}", a.groupStandings)
		r.Get("/copa/brackets", a.listBracketMatches)
		r.Get("/copa/brackets/{id}/events", a.matchSheet)

		// Any authenticated user: live match upkeep.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireUser)

			r.Get("/auth/me", a.me)
			r.Put("/fixtures/{id}", a.updateFixture)
			r.Post("/fixtures/{id}/goals", a.addGoal)
			r.Post("/fixtures/{id}/cards", a.addCard)
		})

		// Admin only: roster management, corrections and the cup.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireUser)
			r.Use(auth.RequireAdmin)

			r.Post("/auth/register", a.register)
			r.Get("/users", a.listUsers)

			r.Post("/teams", a.createTeam)
			r.Put("/teams/{id}", a.updateTeam)
			r.Delete("/teams/{id}", a.deleteTeam)

			r.Post("/players", a.createPlayer)
			r.Put("/players/{id}", a.updatePlayer)
			r.Delete("/players/{id}", a.deletePlayer)

			r.Post("/fixtures", a.createFixture)
			r.Post("/fixtures/bulk", a.createFixturesBulk)
			r.Delete("/fixtures/{id}", a.deleteFixture)
			r.Delete("/fixtures/{id}/goals", a.removeGoal)
			r.Delete("/fixtures/{id}/cards", a.removeCard)

			r.Post("/copa/groups", a.createGroup)
			r.Put("/copa/groups/{groupName}", a.updateGroup)
			r.Delete("/copa/groups/{groupName}", a.deleteGroup)

			r.Post("/copa/fixtures", a.createGroupFixture)
			r.Put("/copa/fixtures/{id}", a.updateGroupFixture)
			r.Delete("/copa/fixtures/{id}", a.deleteGroupFixture)
			r.Post("/copa/fixtures/{id}/scorers", a.addGoal)
			r.Delete("/copa/fixtures/{id}/scorers", a.removeGoal)
			r.Post("/copa/fixtures/{id}/cards", a.addCard)
			r.Delete("/copa/fixtures/{id}/cards", a.removeCard)

			r.Post("/copa/brackets", a.createBracketMatch)
			r.Put("/copa/brackets/{id}", a.updateBracketMatch)
			r.Delete("/copa/brackets/{id}", a.deleteBracketMatch)
			r.Post("/copa/brackets/propagate", a.propagateWinner)
			r.Post("/copa/brackets/{id}/scorers", a.addGoal)
			r.Delete("/copa/brackets/{id}/scorers", a.removeGoal)
			r.Post("/copa/brackets/{id}/cards", a.addCard)
			r.Delete("/copa/brackets/{id}/cards", a.removeCard)
		})
	})

	return r
}
