package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aferrandez/liga-veteranos/internal/league"
	"github.com/aferrandez/liga-veteranos/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type FixtureService struct {
	db    *sqlx.DB
	store *store.FixtureStore
}

func NewFixtureService(db *sqlx.DB, store *store.FixtureStore) *FixtureService {
	return &FixtureService{db: db, store: store}
}

type FixtureInput struct {
	Division   int
	WeekNumber int
	HomeTeamID uuid.UUID
	AwayTeamID uuid.UUID
	MatchDate  time.Time
}

type FixtureUpdate struct {
	WeekNumber *int
	HomeScore  *int
	AwayScore  *int
	MatchDate  *time.Time
	Status     *league.MatchStatus
}

func (s *FixtureService) CreateFixture(ctx context.Context, input FixtureInput) (*league.Fixture, error) {
	fixture := newFixture(input)
	if err := s.store.CreateFixture(ctx, fixture); err != nil {
		return nil, err
	}
	return fixture, nil
}

// CreateFixturesBulk inserts a whole week of fixtures at once.
func (s *FixtureService) CreateFixturesBulk(ctx context.Context, inputs []FixtureInput) ([]league.Fixture, error) {
	fixtures := make([]league.Fixture, 0, len(inputs))
	for _, input := range inputs {
		fixtures = append(fixtures, *newFixture(input))
	}
	if err := s.store.CreateFixtures(ctx, fixtures); err != nil {
		return nil, err
	}
	return fixtures, nil
}

// UpdateFixture applies a partial update. League fixtures only move between
// scheduled and completed; the cup's live/halftime statuses are rejected.
func (s *FixtureService) UpdateFixture(ctx context.Context, id string, upd FixtureUpdate) (*league.Fixture, error) {
	if upd.Status != nil && *upd.Status != league.StatusScheduled && *upd.Status != league.StatusCompleted {
		return nil, fmt.Errorf("%w: status %q", league.ErrValidation, *upd.Status)
	}

	fixture, err := s.store.GetFixture(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.WeekNumber != nil {
		fixture.WeekNumber = *upd.WeekNumber
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
	if err := s.store.UpdateFixture(ctx, fixture); err != nil {
		return nil, err
	}
	return fixture, nil
}

func newFixture(input FixtureInput) *league.Fixture {
	return &league.Fixture{
		ID:         uuid.New(),
		Division:   input.Division,
		WeekNumber: input.WeekNumber,
		HomeTeamID: input.HomeTeamID,
		AwayTeamID: input.AwayTeamID,
		MatchDate:  input.MatchDate,
		Status:     league.StatusScheduled,
		UpdatedAt:  time.Now().UTC(),
	}
}
