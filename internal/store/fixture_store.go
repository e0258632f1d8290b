package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aferrandez/liga-veteranos/internal/league"
	"github.com/jmoiron/sqlx"
)

type FixtureStore struct {
	db *sqlx.DB
}

func NewFixtureStore(db *sqlx.DB) *FixtureStore {
	return &FixtureStore{db: db}
}

func (s *FixtureStore) CreateFixture(ctx context.Context, fixture *league.Fixture) error {
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO fixtures (id, division, week_number, home_team_id, away_team_id, home_score, away_score, match_date, status, updated_at)
		VALUES (:id, :division, :week_number, :home_team_id, :away_team_id, :home_score, :away_score, :match_date, :status, :updated_at)`, fixture)
	return err
}

func (s *FixtureStore) CreateFixtures(ctx context.Context, fixtures []league.Fixture) error {
	if len(fixtures) == 0 {
		return nil
	}
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO fixtures (id, division, week_number, home_team_id, away_team_id, home_score, away_score, match_date, status, updated_at)
		VALUES (:id, :division, :week_number, :home_team_id, :away_team_id, :home_score, :away_score, :match_date, :status, :updated_at)`, fixtures)
	return err
}

func (s *FixtureStore) GetFixture(ctx context.Context, id string) (*league.Fixture, error) {
	var fixture league.Fixture
	err := s.db.GetContext(ctx, &fixture, "SELECT * FROM fixtures WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("fixture %s: %w", id, league.ErrNotFound)
	}
	return &fixture, err
}

func (s *FixtureStore) GetFixtures(ctx context.Context) ([]league.Fixture, error) {
	var fixtures []league.Fixture
	err := s.db.SelectContext(ctx, &fixtures, "SELECT * FROM fixtures ORDER BY week_number ASC, match_date ASC")
	return fixtures, err
}

func (s *FixtureStore) GetFixturesByDivision(ctx context.Context, division int) ([]league.Fixture, error) {
	var fixtures []league.Fixture
	err := s.db.SelectContext(ctx, &fixtures, "SELECT * FROM fixtures WHERE division = ? ORDER BY week_number ASC, match_date ASC", division)
	return fixtures, err
}

func (s *FixtureStore) GetCompletedFixturesByDivision(ctx context.Context, division int) ([]league.Fixture, error) {
	var fixtures []league.Fixture
	err := s.db.SelectContext(ctx, &fixtures, "SELECT * FROM fixtures WHERE division = ? AND status = ? ORDER BY week_number ASC, match_date ASC", division, league.StatusCompleted)
	return fixtures, err
}

func (s *FixtureStore) UpdateFixture(ctx context.Context, fixture *league.Fixture) error {
	res, err := s.db.NamedExecContext(ctx, `UPDATE fixtures SET week_number = :week_number, home_score = :home_score, away_score = :away_score,
		match_date = :match_date, status = :status, updated_at = :updated_at WHERE id = :id`, fixture)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("fixture %s: %w", fixture.ID, league.ErrNotFound)
	}
	return nil
}

func (s *FixtureStore) DeleteFixture(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM fixtures WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("fixture %s: %w", id, league.ErrNotFound)
	}
	return nil
}
