package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/aferrandez/liga-veteranos/internal/cup"
	"github.com/aferrandez/liga-veteranos/internal/league"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type CupStore struct {
	db *sqlx.DB
}

func NewCupStore(db *sqlx.DB) *CupStore {
	return &CupStore{db: db}
}

// --- Groups ---

func (s *CupStore) CreateGroup(ctx context.Context, tx *sqlx.Tx, group *cup.Group) error {
	_, err := tx.NamedExecContext(ctx, `INSERT INTO cup_groups (id, group_name, created_at)
		VALUES (:id, :group_name, :created_at)`, group)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("group %s: %w", group.GroupName, league.ErrConflict)
	}
	if err != nil {
		return err
	}
	return s.replaceGroupTeamsTx(ctx, tx, group.ID, group.TeamIDs)
}

func (s *CupStore) GetGroupByName(ctx context.Context, name string) (*cup.Group, error) {
	var group cup.Group
	err := s.db.GetContext(ctx, &group, "SELECT * FROM cup_groups WHERE group_name = ?", name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("group %s: %w", name, league.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	group.TeamIDs, err = s.getGroupTeams(ctx, group.ID)
	return &group, err
}

func (s *CupStore) GetGroups(ctx context.Context) ([]cup.Group, error) {
	var groups []cup.Group
	if err := s.db.SelectContext(ctx, &groups, "SELECT * FROM cup_groups ORDER BY group_name ASC"); err != nil {
		return nil, err
	}
	for i := range groups {
		teamIDs, err := s.getGroupTeams(ctx, groups[i].ID)
		if err != nil {
			return nil, err
		}
		groups[i].TeamIDs = teamIDs
	}
	return groups, nil
}

func (s *CupStore) UpdateGroupTeams(ctx context.Context, tx *sqlx.Tx, name string, teamIDs []uuid.UUID) error {
	var group cup.Group
	err := tx.GetContext(ctx, &group, "SELECT * FROM cup_groups WHERE group_name = ?", name)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("group %s: %w", name, league.ErrNotFound)
	}
	if err != nil {
		return err
	}
	return s.replaceGroupTeamsTx(ctx, tx, group.ID, teamIDs)
}

func (s *CupStore) DeleteGroup(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM cup_groups WHERE group_name = ?", name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("group %s: %w", name, league.ErrNotFound)
	}
	return nil
}

func (s *CupStore) getGroupTeams(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, error) {
	var teamIDs []uuid.UUID
	err := s.db.SelectContext(ctx, &teamIDs, "SELECT team_id FROM cup_group_teams WHERE group_id = ? ORDER BY rowid ASC", groupID)
	return teamIDs, err
}

func (s *CupStore) replaceGroupTeamsTx(ctx context.Context, tx *sqlx.Tx, groupID uuid.UUID, teamIDs []uuid.UUID) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM cup_group_teams WHERE group_id = ?", groupID); err != nil {
		return err
	}
	for _, teamID := range teamIDs {
		if _, err := tx.ExecContext(ctx, "INSERT INTO cup_group_teams (group_id, team_id) VALUES (?, ?)", groupID, teamID); err != nil {
			return err
		}
	}
	return nil
}

// --- Group fixtures ---

func (s *CupStore) CreateGroupFixture(ctx context.Context, fixture *cup.GroupFixture) error {
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO cup_fixtures (id, group_name, jornada, home_team_id, away_team_id, home_score, away_score, match_date, status, updated_at)
		VALUES (:id, :group_name, :jornada, :home_team_id, :away_team_id, :home_score, :away_score, :match_date, :status, :updated_at)`, fixture)
	return err
}

func (s *CupStore) GetGroupFixture(ctx context.Context, id string) (*cup.GroupFixture, error) {
	var fixture cup.GroupFixture
	err := s.db.GetContext(ctx, &fixture, "SELECT * FROM cup_fixtures WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("cup fixture %s: %w", id, league.ErrNotFound)
	}
	return &fixture, err
}

func (s *CupStore) GetGroupFixtures(ctx context.Context) ([]cup.GroupFixture, error) {
	var fixtures []cup.GroupFixture
	err := s.db.SelectContext(ctx, &fixtures, "SELECT * FROM cup_fixtures ORDER BY group_name ASC, jornada ASC, match_date ASC")
	return fixtures, err
}

func (s *CupStore) GetCompletedGroupFixtures(ctx context.Context, groupName string) ([]cup.GroupFixture, error) {
	var fixtures []cup.GroupFixture
	err := s.db.SelectContext(ctx, &fixtures, "SELECT * FROM cup_fixtures WHERE group_name = ? AND status = ? ORDER BY jornada ASC, match_date ASC", groupName, league.StatusCompleted)
	return fixtures, err
}

func (s *CupStore) UpdateGroupFixture(ctx context.Context, fixture *cup.GroupFixture) error {
	res, err := s.db.NamedExecContext(ctx, `UPDATE cup_fixtures SET jornada = :jornada, home_score = :home_score, away_score = :away_score,
		match_date = :match_date, status = :status, updated_at = :updated_at WHERE id = :id`, fixture)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("cup fixture %s: %w", fixture.ID, league.ErrNotFound)
	}
	return nil
}

func (s *CupStore) DeleteGroupFixture(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM cup_fixtures WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("cup fixture %s: %w", id, league.ErrNotFound)
	}
	return nil
}

// --- Bracket matches ---

func (s *CupStore) CreateBracketMatch(ctx context.Context, match *cup.BracketMatch) error {
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO cup_brackets (id, round_type, match_position, home_team_id, away_team_id, home_score, away_score, match_date, status, winner_team_id, created_at, updated_at)
		VALUES (:id, :round_type, :match_position, :home_team_id, :away_team_id, :home_score, :away_score, :match_date, :status, :winner_team_id, :created_at, :updated_at)`, match)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("bracket slot %s/%d: %w", match.RoundType, match.MatchPosition, league.ErrConflict)
	}
	return err
}

func (s *CupStore) CreateBracketMatchTx(ctx context.Context, tx *sqlx.Tx, match *cup.BracketMatch) error {
	_, err := tx.NamedExecContext(ctx, `INSERT INTO cup_brackets (id, round_type, match_position, home_team_id, away_team_id, home_score, away_score, match_date, status, winner_team_id, created_at, updated_at)
		VALUES (:id, :round_type, :match_position, :home_team_id, :away_team_id, :home_score, :away_score, :match_date, :status, :winner_team_id, :created_at, :updated_at)`, match)
	return err
}

func (s *CupStore) GetBracketMatch(ctx context.Context, id string) (*cup.BracketMatch, error) {
	var match cup.BracketMatch
	err := s.db.GetContext(ctx, &match, "SELECT * FROM cup_brackets WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bracket match %s: %w", id, league.ErrNotFound)
	}
	return &match, err
}

func (s *CupStore) GetBracketMatches(ctx context.Context) ([]cup.BracketMatch, error) {
	var matches []cup.BracketMatch
	err := s.db.SelectContext(ctx, &matches, `SELECT * FROM cup_brackets ORDER BY
		CASE round_type WHEN 'round_of_16' THEN 1 WHEN 'quarter_final' THEN 2 WHEN 'semi_final' THEN 3 ELSE 4 END ASC,
		match_position ASC`)
	return matches, err
}

func (s *CupStore) GetBracketMatchBySlotTx(ctx context.Context, tx *sqlx.Tx, round cup.RoundType, position int) (*cup.BracketMatch, error) {
	var match cup.BracketMatch
	err := tx.GetContext(ctx, &match, "SELECT * FROM cup_brackets WHERE round_type = ? AND match_position = ?", round, position)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bracket slot %s/%d: %w", round, position, league.ErrNotFound)
	}
	return &match, err
}

func (s *CupStore) UpdateBracketMatch(ctx context.Context, match *cup.BracketMatch) error {
	res, err := s.db.NamedExecContext(ctx, bracketUpdateQuery, match)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("bracket match %s: %w", match.ID, league.ErrNotFound)
	}
	return nil
}

func (s *CupStore) UpdateBracketMatchTx(ctx context.Context, tx *sqlx.Tx, match *cup.BracketMatch) error {
	res, err := tx.NamedExecContext(ctx, bracketUpdateQuery, match)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("bracket match %s: %w", match.ID, league.ErrNotFound)
	}
	return nil
}

const bracketUpdateQuery = `UPDATE cup_brackets SET home_team_id = :home_team_id, away_team_id = :away_team_id,
	home_score = :home_score, away_score = :away_score, match_date = :match_date, status = :status,
	winner_team_id = :winner_team_id, updated_at = :updated_at WHERE id = :id`

func (s *CupStore) DeleteBracketMatch(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM cup_brackets WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("bracket match %s: %w", id, league.ErrNotFound)
	}
	return nil
}
