package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/aferrandez/liga-veteranos/internal/httputil"
	"github.com/aferrandez/liga-veteranos/internal/league"
	"github.com/aferrandez/liga-veteranos/internal/middleware"
	"github.com/aferrandez/liga-veteranos/internal/service"
	"github.com/aferrandez/liga-veteranos/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// --- Auth ---

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *league.User `json:"user"`
}

func (a *api) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.BadRequest(w, "Invalid request body", err)
		return
	}

	token, user, err := a.userSv.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		httputil.Unauthorized(w, "Invalid username or password")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer", User: user})
}

type registerRequest struct {
	Username string     `json:"username"`
	Password string     `json:"password"`
	Role     string     `json:"role"`
	TeamID   *uuid.UUID `json:"team_id,omitempty"`
}

func (a *api) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.BadRequest(w, "Invalid request body", err)
		return
	}

	user, err := a.userSv.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Role:     league.Role(req.Role),
		TeamID:   req.TeamID,
	})
	if err != nil {
		httputil.RespondError(w, "Failed to register user", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, user)
}

func (a *api) initAdmin(username, password string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, created, err := a.userSv.EnsureAdminUser(r.Context(), username, password)
		if err != nil {
			httputil.InternalServerError(w, "Failed to seed admin user", err)
			return
		}
		if !created {
			httputil.WriteJSON(w, http.StatusOK, httputil.Message{Message: "Admin already exists"})
			return
		}
		httputil.WriteJSON(w, http.StatusOK, httputil.Message{Message: "Admin user created"})
	}
}

func (a *api) me(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, middleware.GetAuthenticatedUser(r.Context()))
}

func (a *api) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := a.users.GetUsers(r.Context())
	if err != nil {
		httputil.InternalServerError(w, "Failed to list users", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, users)
}

// --- Teams ---

type teamRequest struct {
	Name     string `json:"name"`
	Division int    `json:"division"`
	LogoURL  string `json:"logo_url"`
}

func (a *api) listTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := a.teams.GetTeams(r.Context())
	if err != nil {
		httputil.InternalServerError(w, "Failed to list teams", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, teams)
}

func (a *api) getTeam(w http.ResponseWriter, r *http.Request) {
	team, err := a.teams.GetTeam(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, "Team not found", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, team)
}

func (a *api) createTeam(w http.ResponseWriter, r *http.Request) {
	var req teamRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.BadRequest(w, "Invalid request body", err)
		return
	}

	team := &league.Team{
		ID:        uuid.New(),
		Name:      req.Name,
		Division:  req.Division,
		LogoURL:   utils.StringOrNil(req.LogoURL),
		CreatedAt: time.Now().UTC(),
	}
	if err := a.teams.CreateTeam(r.Context(), team); err != nil {
		httputil.InternalServerError(w, "Failed to create team", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, team)
}

func (a *api) updateTeam(w http.ResponseWriter, r *http.Request) {
	var req teamRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.BadRequest(w, "Invalid request body", err)
		return
	}

	team, err := a.teams.GetTeam(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, "Team not found", err)
		return
	}
	team.Name = req.Name
	team.Division = req.Division
	team.LogoURL = utils.StringOrNil(req.LogoURL)

	if err := a.teams.UpdateTeam(r.Context(), team); err != nil {
		httputil.RespondError(w, "Failed to update team", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, team)
}

func (a *api) deleteTeam(w http.ResponseWriter, r *http.Request) {
	if err := a.teams.DeleteTeam(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.RespondError(w, "Team not found", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Message{Message: "Team deleted successfully"})
}

// --- Players ---

type playerRequest struct {
	Name         string    `json:"name"`
	TeamID       uuid.UUID `json:"team_id"`
	JerseyNumber *int      `json:"jersey_number,omitempty"`
}

func (a *api) listPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := a.players.GetPlayers(r.Context())
	if err != nil {
		httputil.InternalServerError(w, "Failed to list players", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, players)
}

func (a *api) listTeamPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := a.players.GetPlayersByTeam(r.Context(), chi.URLParam(r, "teamID"))
	if err != nil {
		httputil.InternalServerError(w, "Failed to list players", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, players)
}

func (a *api) createPlayer(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.BadRequest(w, "Invalid request body", err)
		return
	}

	player := &league.Player{
		ID:           uuid.New(),
		Name:         req.Name,
		TeamID:       req.TeamID,
		JerseyNumber: req.JerseyNumber,
		CreatedAt:    time.Now().UTC(),
	}
	if err := a.players.CreatePlayer(r.Context(), player); err != nil {
		httputil.InternalServerError(w, "Failed to create player", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, player)
}

func (a *api) updatePlayer(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.BadRequest(w, "Invalid request body", err)
		return
	}

	player, err := a.players.GetPlayer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, "Player not found", err)
		return
	}
	player.Name = req.Name
	player.TeamID = req.TeamID
	player.JerseyNumber = req.JerseyNumber

	if err := a.players.UpdatePlayer(r.Context(), player); err != nil {
		httputil.RespondError(w, "Failed to update player", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, player)
}

func (a *api) deletePlayer(w http.ResponseWriter, r *http.Request) {
	if err := a.players.DeletePlayer(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.RespondError(w, "Player not found", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Message{Message: "Player deleted successfully"})
}

// --- Fixtures ---

type fixtureCreateRequest struct {
	Division   int       `json:"division"`
	WeekNumber int       `json:"week_number"`
	HomeTeamID uuid.UUID `json:"home_team_id"`
	AwayTeamID uuid.UUID `json:"away_team_id"`
	MatchDate  time.Time `json:"match_date"`
}

type fixtureUpdateRequest struct {
	WeekNumber *int                `json:"week_number,omitempty"`
	HomeScore  *int                `json:"home_score,omitempty"`
	AwayScore  *int                `json:"away_score,omitempty"`
	MatchDate  *time.Time          `json:"match_date,omitempty"`
	Status     *league.MatchStatus `json:"status,omitempty"`
}

type fixtureBulkRequest struct {
	Division   int `json:"division"`
	WeekNumber int `json:"week_number"`
	Fixtures   []struct {
		HomeTeamID uuid.UUID `json:"home_team_id"`
		AwayTeamID uuid.UUID `json:"away_team_id"`
		MatchDate  time.Time `json:"match_date"`
	} `json:"fixtures"`
}

func (a *api) listFixtures(w http.ResponseWriter, r *http.Request) {
	fixtures, err := a.fixtures.GetFixtures(r.Context())
	if err != nil {
		httputil.InternalServerError(w, "Failed to list fixtures", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fixtures)
}

func (a *api) listDivisionFixtures(w http.ResponseWriter, r *http.Request) {
	division, err := strconv.Atoi(chi.URLParam(r, "division"))
	if err != nil {
		httputil.BadRequest(w, "Invalid division", err)
		return
	}
	fixtures, err := a.fixtures.GetFixturesByDivision(r.Context(), division)
	if err != nil {
		httputil.InternalServerError(w, "Failed to list fixtures", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fixtures)
}

func (a *api) createFixture(w http.ResponseWriter, r *http.Request) {
	var req fixtureCreateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.BadRequest(w, "Invalid request body", err)
		return
	}

	fixture, err := a.fixtureSv.CreateFixture(r.Context(), service.FixtureInput{
		Division:   req.Division,
		WeekNumber: req.WeekNumber,
		HomeTeamID: req.HomeTeamID,
		AwayTeamID: req.AwayTeamID,
		MatchDate:  req.MatchDate,
	})
	if err != nil {
		httputil.RespondError(w, "Failed to create fixture", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fixture)
}

func (a *api) createFixturesBulk(w http.ResponseWriter, r *http.Request) {
	var req fixtureBulkRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.BadRequest(w, "Invalid request body", err)
		return
	}

	inputs := make([]service.FixtureInput, 0, len(req.Fixtures))
	for _, f := range req.Fixtures {
		inputs = append(inputs, service.FixtureInput{
			Division:   req.Division,
			WeekNumber: req.WeekNumber,
			HomeTeamID: f.HomeTeamID,
			AwayTeamID: f.AwayTeamID,
			MatchDate:  f.MatchDate,
		})
	}

	fixtures, err := a.fixtureSv.CreateFixturesBulk(r.Context(), inputs)
	if err != nil {
		httputil.RespondError(w, "Failed to create fixtures", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fixtures)
}

func (a *api) updateFixture(w http.ResponseWriter, r *http.Request) {
	var req fixtureUpdateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.BadRequest(w, "Invalid request body", err)
		return
	}

	fixture, err := a.fixtureSv.UpdateFixture(r.Context(), chi.URLParam(r, "id"), service.FixtureUpdate{
		WeekNumber: req.WeekNumber,
		HomeScore:  req.HomeScore,
		AwayScore:  req.AwayScore,
		MatchDate:  req.MatchDate,
		Status:     req.Status,
	})
	if err != nil {
		httputil.RespondError(w, "Failed to update fixture", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fixture)
}

func (a *api) deleteFixture(w http.ResponseWriter, r *http.Request) {
	if err := a.fixtures.DeleteFixture(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.RespondError(w, "Fixture not found", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Message{Message: "Fixture deleted successfully"})
}

// --- Ledger ---
//
// The ledger treats league fixtures, cup fixtures and bracket matches the
// same way, so these handlers back every goals/cards route.

type addGoalRequest struct {
	PlayerID string      `json:"player_id"`
	TeamSide league.Side `json:"team_side"`
	Minute   *int        `json:"minute,omitempty"`
}

type removeGoalRequest struct {
	GoalID   string      `json:"goal_id"`
	TeamSide league.Side `json:"team_side"`
}

type addCardRequest struct {
	PlayerID string          `json:"player_id"`
	TeamSide league.Side     `json:"team_side"`
	CardType league.CardKind `json:"card_type"`
	Minute   *int            `json:"minute,omitempty"`
}

type removeCardRequest struct {
	CardID   string      `json:"card_id"`
	TeamSide league.Side `json:"team_side"`
}

type eventCreatedResponse struct {
	EventID uuid.UUID `json:"event_id"`
}

func (a *api) addGoal(w http.ResponseWriter, r *http.Request) {
	var req addGoalRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.BadRequest(w, "Invalid request body", err)
		return
	}

	eventID, err := a.ledger.AddGoal(r.Context(), chi.URLParam(r, "id"), req.TeamSide, req.PlayerID, req.Minute)
	if err != nil {
		httputil.RespondError(w, "Failed to add goal scorer", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, eventCreatedResponse{EventID: eventID})
}

func (a *api) removeGoal(w http.ResponseWriter, r *http.Request) {
	var req removeGoalRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := a.ledger.RemoveGoal(r.Context(), chi.URLParam(r, "id"), req.GoalID, req.TeamSide); err != nil {
		httputil.RespondError(w, "Failed to remove goal scorer", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Message{Message: "Goal scorer removed successfully"})
}

func (a *api) addCard(w http.ResponseWriter, r *http.Request) {
	var req addCardRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.BadRequest(w, "Invalid request body", err)
		return
	}

	eventID, err := a.ledger.AddCard(r.Context(), chi.URLParam(r, "id"), req.TeamSide, req.PlayerID, req.CardType, req.Minute)
	if err != nil {
		httputil.RespondError(w, "Failed to add card", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, eventCreatedResponse{EventID: eventID})
}

func (a *api) removeCard(w http.ResponseWriter, r *http.Request) {
	var req removeCardRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := a.ledger.RemoveCard(r.Context(), chi.URLParam(r, "id"), req.CardID, req.TeamSide); err != nil {
		httputil.RespondError(w, "Failed to remove card", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Message{Message: "Card removed successfully"})
}

type matchSheetResponse struct {
	Goals []league.GoalEvent `json:"goals"`
	Cards []league.CardEvent `json:"cards"`
}

func (a *api) matchSheet(w http.ResponseWriter, r *http.Request) {
	goals, cards, err := a.ledger.MatchSheet(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.InternalServerError(w, "Failed to load match events", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, matchSheetResponse{Goals: goals, Cards: cards})
}

// --- Standings and statistics ---

func (a *api) divisionStandings(w http.ResponseWriter, r *http.Request) {
	division, err := strconv.Atoi(chi.URLParam(r, "division"))
	if err != nil {
		httputil.BadRequest(w, "Invalid division", err)
		return
	}
	rows, err := a.standings.DivisionTable(r.Context(), division)
	if err != nil {
		httputil.InternalServerError(w, "Failed to compute standings", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rows)
}

func (a *api) topScorers(w http.ResponseWriter, r *http.Request) {
	division, err := divisionQuery(r)
	if err != nil {
		httputil.BadRequest(w, "Invalid division", err)
		return
	}
	scorers, err := a.stats.TopScorers(r.Context(), division)
	if err != nil {
		httputil.InternalServerError(w, "Failed to list top scorers", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, scorers)
}

func (a *api) cardStatistics(w http.ResponseWriter, r *http.Request) {
	division, err := divisionQuery(r)
	if err != nil {
		httputil.BadRequest(w, "Invalid division", err)
		return
	}
	cards, err := a.stats.CardStatistics(r.Context(), division)
	if err != nil {
		httputil.InternalServerError(w, "Failed to list card statistics", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, cards)
}

func divisionQuery(r *http.Request) (*int, error) {
	raw := r.URL.Query().Get("division")
	if raw == "" {
		return nil, nil
	}
	division, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &division, nil
}
