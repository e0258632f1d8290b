package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aferrandez/liga-veteranos/internal/cup"
	"github.com/aferrandez/liga-veteranos/internal/league"
	"github.com/aferrandez/liga-veteranos/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// CupService covers the group stage: group rosters and group fixtures.
type CupService struct {
	db    *sqlx.DB
	store *store.CupStore
}

func NewCupService(db *sqlx.DB, store *store.CupStore) *CupService {
	return &CupService{db: db, store: store}
}

func (s *CupService) CreateGroup(ctx context.Context, name string, teamIDs []uuid.UUID) (*cup.Group, error) {
	group := &cup.Group{
		ID:        uuid.New(),
		GroupName: name,
		TeamIDs:   teamIDs,
		CreatedAt: time.Now().UTC(),
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := s.store.CreateGroup(ctx, tx, group); err != nil {
		return nil, err
	}
	return group, tx.Commit()
}

func (s *CupService) UpdateGroupTeams(ctx context.Context, name string, teamIDs []uuid.UUID) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.store.UpdateGroupTeams(ctx, tx, name, teamIDs); err != nil {
		return err
	}
	return tx.Commit()
}

type GroupFixtureInput struct {
	GroupName  string
	Jornada    int
	HomeTeamID uuid.UUID
	AwayTeamID uuid.UUID
	MatchDate  time.Time
}

type GroupFixtureUpdate struct {
	Jornada   *int
	HomeScore *int
	AwayScore *int
	MatchDate *time.Time
	Status    *league.MatchStatus
}

func (s *CupService) CreateGroupFixture(ctx context.Context, input GroupFixtureInput) (*cup.GroupFixture, error) {
	if _, err := s.store.GetGroupByName(ctx, input.GroupName); err != nil {
		return nil, err
	}

	fixture := &cup.GroupFixture{
		ID:         uuid.New(),
		GroupName:  input.GroupName,
		Jornada:    input.Jornada,
		HomeTeamID: input.HomeTeamID,
		AwayTeamID: input.AwayTeamID,
		MatchDate:  input.MatchDate,
		Status:     league.StatusScheduled,
		UpdatedAt:  time.Now().UTC(),
	}
	if err := s.store.CreateGroupFixture(ctx, fixture); err != nil {
		return nil, err
	}
	return fixture, nil
}

// UpdateGroupFixture applies a partial update. Group fixtures may pass
// through live and halftime on match day.
func (s *CupService) UpdateGroupFixture(ctx context.Context, id string, upd GroupFixtureUpdate) (*cup.GroupFixture, error) {
	if upd.Status != nil && !validCupStatus(*upd.Status) {
		return nil, fmt.Errorf("%w: status %q", league.ErrValidation, *upd.Status)
	}

	fixture, err := s.store.GetGroupFixture(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Jornada != nil {
		fixture.Jornada = *upd.Jornada
	}
	if upd.HomeScore != nil {
		fixture.HomeScore = upd.HomeScore
	}
	if upd.AwayScore != nil {
		fixture.AwayScore = upd.AwayScore
	}
	if upd.MatchDate != nil {
		fixture.MatchDate = *upd.MatchDate
	}
	if upd.Status != nil {
		fixture.Status = *upd.Status
	}

	fixture.UpdatedAt = time.Now().UTC()
	if err := s.store.UpdateGroupFixture(ctx, fixture); err != nil {
		return nil, err
	}
	return fixture, nil
}
