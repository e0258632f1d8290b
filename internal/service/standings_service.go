package service

import (
	"context"

	"github.com/aferrandez/liga-veteranos/internal/cup"
	"github.com/aferrandez/liga-veteranos/internal/league"
	"github.com/aferrandez/liga-veteranos/internal/store"
	"github.com/jmoiron/sqlx"
)

// StandingsService loads a snapshot of teams and completed fixtures and runs
// the pure table computations over it. Nothing here writes.
type StandingsService struct {
	db       *sqlx.DB
	teams    *store.TeamStore
	fixtures *store.FixtureStore
	cups     *store.CupStore
}

func NewStandingsService(db *sqlx.DB, teams *store.TeamStore, fixtures *store.FixtureStore, cups *store.CupStore) *StandingsService {
	return &StandingsService{db: db, teams: teams, fixtures: fixtures, cups: cups}
}

func (s *StandingsService) DivisionTable(ctx context.Context, division int) ([]league.StandingsRow, error) {
	teams, err := s.teams.GetTeamsByDivision(ctx, division)
	if err != nil {
		return nil, err
	}
	fixtures, err := s.fixtures.GetCompletedFixturesByDivision(ctx, division)
	if err != nil {
		return nil, err
	}
	return league.ComputeStandings(teams, fixtures), nil
}

func (s *StandingsService) GroupTable(ctx context.Context, groupName string) ([]league.StandingsRow, error) {
	group, err := s.cups.GetGroupByName(ctx, groupName)
	if err != nil {
		return nil, err
	}
	fixtures, err := s.cups.GetCompletedGroupFixtures(ctx, groupName)
	if err != nil {
		return nil, err
	}
	teams, err := s.teams.GetTeams(ctx)
	if err != nil {
		return nil, err
	}
	return cup.ComputeGroupStandings(group.TeamIDs, teams, fixtures), nil
}
