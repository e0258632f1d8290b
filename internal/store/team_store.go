package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aferrandez/liga-veteranos/internal/league"
	"github.com/jmoiron/sqlx"
)

type TeamStore struct {
	db *sqlx.DB
}

func NewTeamStore(db *sqlx.DB) *TeamStore {
	return &TeamStore{db: db}
}

func (s *TeamStore) CreateTeam(ctx context.Context, team *league.Team) error {
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO teams (id, name, division, logo_url, created_at)
		VALUES (:id, :name, :division, :logo_url, :created_at)`, team)
	return err
}

func (s *TeamStore) GetTeam(ctx context.Context, id string) (*league.Team, error) {
	var team league.Team
	err := s.db.GetContext(ctx, &team, "SELECT * FROM teams WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("team %s: %w", id, league.ErrNotFound)
	}
	return &team, err
}

func (s *TeamStore) GetTeams(ctx context.Context) ([]league.Team, error) {
	var teams []league.Team
	err := s.db.SelectContext(ctx, &teams, "SELECT * FROM teams ORDER BY division ASC, name ASC")
	return teams, err
}

func (s *TeamStore) GetTeamsByDivision(ctx context.Context, division int) ([]league.Team, error) {
	var teams []league.Team
	err := s.db.SelectContext(ctx, &teams, "SELECT * FROM teams WHERE division = ? ORDER BY name ASC", division)
	return teams, err
}

func (s *TeamStore) UpdateTeam(ctx context.Context, team *league.Team) error {
	res, err := s.db.NamedExecContext(ctx, `UPDATE teams SET name = :name, division = :division, logo_url = :logo_url
		WHERE id = :id`, team)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("team %s: %w", team.ID, league.ErrNotFound)
	}
	return nil
}

func (s *TeamStore) DeleteTeam(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM teams WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("team %s: %w", id, league.ErrNotFound)
	}
	return nil
}
