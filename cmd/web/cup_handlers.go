package main

import (
	"net/http"
	"time"

	"github.com/aferrandez/liga-veteranos/internal/cup"
	"github.com/aferrandez/liga-veteranos/internal/httputil"
	"github.com/aferrandez/liga-veteranos/internal/league"
	"github.com/aferrandez/liga-veteranos/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// --- Groups ---

type groupRequest struct {
	GroupName string      `json:"group_name"`
	TeamIDs   []uuid.UUID `json:"team_ids"`
}

func (a *api) listGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := a.cups.GetGroups(r.Context())
	if err != nil {
		httputil.InternalServerError(w, "Failed to list groups", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, groups)
}

func (a *api) createGroup(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.BadRequest(w, "Invalid request body", err)
		return
	}

	group, err := a.cupSv.CreateGroup(r.Context(), req.GroupName, req.TeamIDs)
	if err != nil {
		httputil.RespondError(w, "Failed to create group", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, group)
}

func (a *api) updateGroup(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.BadRequest(w, "Invalid request body", err)
		return
	}

	name := chi.URLParam(r, "groupName")
	if err := a.cupSv.UpdateGroupTeams(r.Context(), name, req.TeamIDs); err != nil {
		httputil.RespondError(w, "Failed to update group", err)
		return
	}

	group, err := a.cups.GetGroupByName(r.Context(), name)
	if err != nil {
		httputil.RespondError(w, "Group not found", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, group)
}

func (a *api) deleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := a.cups.DeleteGroup(r.Context(), chi.URLParam(r, "groupName")); err != nil {
		httputil.RespondError(w, "Group not found", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Message{Message: "Group deleted successfully"})
}

func (a *api) groupStandings(w http.ResponseWriter, r *http.Request) {
	rows, err := a.standings.GroupTable(r.Context(), chi.URLParam(r, "groupName"))
	if err != nil {
		httputil.RespondError(w, "Failed to compute group standings", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rows)
}

// --- Group fixtures ---

type groupFixtureCreateRequest struct {
	GroupName  string    `json:"group_name"`
	Jornada    int       `json:"jornada"`
	HomeTeamID uuid.UUID `json:"home_team_id"`
	AwayTeamID uuid.UUID `json:"away_team_id"`
	MatchDate  time.Time `json:"match_date"`
}

type groupFixtureUpdateRequest struct {
	Jornada   *int                `json:"jornada,omitempty"`
	HomeScore *int                `json:"home_score,omitempty"`
	AwayScore *int                `json:"away_score,omitempty"`
	MatchDate *time.Time          `json:"match_date,omitempty"`
	Status    *league.MatchStatus `json:"status,omitempty"`
}

func (a *api) listGroupFixtures(w http.ResponseWriter, r *http.Request) {
	fixtures, err := a.cups.GetGroupFixtures(r.Context())
	if err != nil {
		httputil.InternalServerError(w, "Failed to list group fixtures", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fixtures)
}

func (a *api) createGroupFixture(w http.ResponseWriter, r *http.Request) {
	var req groupFixtureCreateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.BadRequest(w, "Invalid request body", err)
		return
	}

	fixture, err := a.cupSv.CreateGroupFixture(r.Context(), service.GroupFixtureInput{
		GroupName:  req.GroupName,
		Jornada:    req.Jornada,
		HomeTeamID: req.HomeTeamID,
		AwayTeamID: req.AwayTeamID,
		MatchDate:  req.MatchDate,
	})
	if err != nil {
		httputil.RespondError(w, "Failed to create group fixture", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fixture)
}

func (a *api) updateGroupFixture(w http.ResponseWriter, r *http.Request) {
	var req groupFixtureUpdateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.BadRequest(w, "Invalid request body", err)
		return
	}

	fixture, err := a.cupSv.UpdateGroupFixture(r.Context(), chi.URLParam(r, "id"), service.GroupFixtureUpdate{
		Jornada:   req.Jornada,
		HomeScore: req.HomeScore,
		AwayScore: req.AwayScore,
		MatchDate: req.MatchDate,
		Status:    req.Status,
	})
	if err != nil {
		httputil.RespondError(w, "Failed to update group fixture", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fixture)
}

func (a *api) deleteGroupFixture(w http.ResponseWriter, r *http.Request) {
	if err := a.cups.DeleteGroupFixture(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.RespondError(w, "Group fixture not found", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Message{Message: "Group fixture deleted successfully"})
}

// --- Brackets ---

type bracketCreateRequest struct {
	RoundType     cup.RoundType `json:"round_type"`
	MatchPosition int           `json:"match_position"`
	HomeTeamID    *uuid.UUID    `json:"home_team_id,omitempty"`
	AwayTeamID    *uuid.UUID    `json:"away_team_id,omitempty"`
	MatchDate     *time.Time    `json:"match_date,omitempty"`
}

type bracketUpdateRequest struct {
	HomeTeamID   *uuid.UUID          `json:"home_team_id,omitempty"`
	AwayTeamID   *uuid.UUID          `json:"away_team_id,omitempty"`
	HomeScore    *int                `json:"home_score,omitempty"`
	AwayScore    *int                `json:"away_score,omitempty"`
	MatchDate    *time.Time          `json:"match_date,omitempty"`
	Status       *league.MatchStatus `json:"status,omitempty"`
	WinnerTeamID *uuid.UUID          `json:"winner_team_id,omitempty"`
}

type propagateRequest struct {
	RoundType     cup.RoundType `json:"round_type"`
	MatchPosition int           `json:"match_position"`
	WinnerTeamID  uuid.UUID     `json:"winner_team_id"`
}

type propagateResponse struct {
	NextRoundType cup.RoundType `json:"next_round_type"`
	NextPosition  int           `json:"next_position"`
	NextSlot      league.Side   `json:"next_slot"`
}

func (a *api) listBracketMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := a.brackets.GetMatches(r.Context())
	if err != nil {
		httputil.InternalServerError(w, "Failed to list bracket matches", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, matches)
}

func (a *api) createBracketMatch(w http.ResponseWriter, r *http.Request) {
	var req bracketCreateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.BadRequest(w, "Invalid request body", err)
		return
	}

	match, err := a.brackets.CreateMatch(r.Context(), service.BracketMatchInput{
		RoundType:     req.RoundType,
		MatchPosition: req.MatchPosition,
		HomeTeamID:    req.HomeTeamID,
		AwayTeamID:    req.AwayTeamID,
		MatchDate:     req.MatchDate,
	})
	if err != nil {
		httputil.RespondError(w, "Failed to create bracket match", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, match)
}

func (a *api) updateBracketMatch(w http.ResponseWriter, r *http.Request) {
	var req bracketUpdateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.BadRequest(w, "Invalid request body", err)
		return
	}

	match, err := a.brackets.UpdateMatch(r.Context(), chi.URLParam(r, "id"), service.BracketMatchUpdate{
		HomeTeamID:   req.HomeTeamID,
		AwayTeamID:   req.AwayTeamID,
		HomeScore:    req.HomeScore,
		AwayScore:    req.AwayScore,
		MatchDate:    req.MatchDate,
		Status:       req.Status,
		WinnerTeamID: req.WinnerTeamID,
	})
	if err != nil {
		httputil.RespondError(w, "Failed to update bracket match", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, match)
}

func (a *api) deleteBracketMatch(w http.ResponseWriter, r *http.Request) {
	if err := a.brackets.DeleteMatch(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.RespondError(w, "Bracket match not found", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Message{Message: "Bracket match deleted successfully"})
}

func (a *api) propagateWinner(w http.ResponseWriter, r *http.Request) {
	var req propagateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.BadRequest(w, "Invalid request body", err)
		return
	}

	nextRound, nextPosition, side, err := a.brackets.Propagate(r.Context(), req.RoundType, req.MatchPosition, req.WinnerTeamID)
	if err != nil {
		httputil.RespondError(w, "Failed to propagate winner", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, propagateResponse{
		NextRoundType: nextRound,
		NextPosition:  nextPosition,
		NextSlot:      side,
	})
}
