package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aferrandez/liga-veteranos/internal/league"
	"github.com/jmoiron/sqlx"
)

type PlayerStore struct {
	db *sqlx.DB
}

func NewPlayerStore(db *sqlx.DB) *PlayerStore {
	return &PlayerStore{db: db}
}

// counterColumns whitelists the player columns the ledger may move. Column
// names are interpolated into SQL, so nothing outside this map is accepted.
var counterColumns = map[string]bool{
	"goals_scored": true,
	"yellow_cards": true,
	"red_cards":    true,
}

func (s *PlayerStore) CreatePlayer(ctx context.Context, player *league.Player) error {
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO players (id, name, team_id, jersey_number, goals_scored, yellow_cards, red_cards, created_at)
		VALUES (:id, :name, :team_id, :jersey_number, :goals_scored, :yellow_cards, :red_cards, :created_at)`, player)
	return err
}

func (s *PlayerStore) GetPlayer(ctx context.Context, id string) (*league.Player, error) {
	var player league.Player
	err := s.db.GetContext(ctx, &player, "SELECT * FROM players WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("player %s: %w", id, league.ErrNotFound)
	}
	return &player, err
}

func (s *PlayerStore) GetPlayerTx(ctx context.Context, tx *sqlx.Tx, id string) (*league.Player, error) {
	var player league.Player
	err := tx.GetContext(ctx, &player, "SELECT * FROM players WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("player %s: %w", id, league.ErrNotFound)
	}
	return &player, err
}

func (s *PlayerStore) GetPlayers(ctx context.Context) ([]league.Player, error) {
	var players []league.Player
	err := s.db.SelectContext(ctx, &players, "SELECT * FROM players ORDER BY name ASC")
	return players, err
}

func (s *PlayerStore) GetPlayersByTeam(ctx context.Context, teamID string) ([]league.Player, error) {
	var players []league.Player
	err := s.db.SelectContext(ctx, &players, "SELECT * FROM players WHERE team_id = ? ORDER BY jersey_number ASC, name ASC", teamID)
	return players, err
}

func (s *PlayerStore) UpdatePlayer(ctx context.Context, player *league.Player) error {
	res, err := s.db.NamedExecContext(ctx, `UPDATE players SET name = :name, team_id = :team_id, jersey_number = :jersey_number
		WHERE id = :id`, player)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("player %s: %w", player.ID, league.ErrNotFound)
	}
	return nil
}

func (s *PlayerStore) DeletePlayer(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM players WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("player %s: %w", id, league.ErrNotFound)
	}
	return nil
}

// IncrementCounterTx bumps a counter column by one inside the ledger
// transaction. The move happens in SQL so concurrent ledger calls never
// read-modify-write.
func (s *PlayerStore) IncrementCounterTx(ctx context.Context, tx *sqlx.Tx, playerID, column string) error {
	if !counterColumns[column] {
		return fmt.Errorf("%w: counter column %q", league.ErrValidation, column)
	}
	res, err := tx.ExecContext(ctx, fmt.Sprintf("UPDATE players SET %s = %s + 1 WHERE id = ?", column, column), playerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("player %s: %w", playerID, league.ErrNotFound)
	}
	return nil
}

// DecrementCounterTx lowers a counter column by one, clamped at zero. It
// returns league.ErrCounterMismatch when the counter was already zero, so the
// caller can recount from the event log instead of going negative.
func (s *PlayerStore) DecrementCounterTx(ctx context.Context, tx *sqlx.Tx, playerID, column string) error {
	if !counterColumns[column] {
		return fmt.Errorf("%w: counter column %q", league.ErrValidation, column)
	}
	res, err := tx.ExecContext(ctx, fmt.Sprintf("UPDATE players SET %s = %s - 1 WHERE id = ? AND %s > 0", column, column, column), playerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists bool
		if err := tx.GetContext(ctx, &exists, "SELECT EXISTS (SELECT 1 FROM players WHERE id = ?)", playerID); err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("player %s: %w", playerID, league.ErrNotFound)
		}
		return fmt.Errorf("player %s, column %s: %w", playerID, column, league.ErrCounterMismatch)
	}
	return nil
}

// SetCounterTx overwrites a counter with a recounted value during repair.
func (s *PlayerStore) SetCounterTx(ctx context.Context, tx *sqlx.Tx, playerID, column string, value int) error {
	if !counterColumns[column] {
		return fmt.Errorf("%w: counter column %q", league.ErrValidation, column)
	}
	_, err := tx.ExecContext(ctx, fmt.Sprintf("UPDATE players SET %s = ? WHERE id = ?", column), value, playerID)
	return err
}

// GetTopScorers lists players with at least one goal, best first. teamIDs
// narrows the result to a division's teams when non-empty.
func (s *PlayerStore) GetTopScorers(ctx context.Context, teamIDs []string, limit int) ([]league.Player, error) {
	query := "SELECT * FROM players WHERE goals_scored > 0 ORDER BY goals_scored DESC, name ASC LIMIT ?"
	args := []interface{}{limit}
	if len(teamIDs) > 0 {
		var err error
		query, args, err = sqlx.In("SELECT * FROM players WHERE goals_scored > 0 AND team_id IN (?) ORDER BY goals_scored DESC, name ASC LIMIT ?", teamIDs, limit)
		if err != nil {
			return nil, err
		}
	}
	var players []league.Player
	err := s.db.SelectContext(ctx, &players, s.db.Rebind(query), args...)
	return players, err
}

// GetCardedPlayers lists players holding any card, worst offenders first.
func (s *PlayerStore) GetCardedPlayers(ctx context.Context, teamIDs []string, limit int) ([]league.Player, error) {
	query := "SELECT * FROM players WHERE yellow_cards > 0 OR red_cards > 0 ORDER BY red_cards DESC, yellow_cards DESC, name ASC LIMIT ?"
	args := []interface{}{limit}
	if len(teamIDs) > 0 {
		var err error
		query, args, err = sqlx.In("SELECT * FROM players WHERE (yellow_cards > 0 OR red_cards > 0) AND team_id IN (?) ORDER BY red_cards DESC, yellow_cards DESC, name ASC LIMIT ?", teamIDs, limit)
		if err != nil {
			return nil, err
		}
	}
	var players []league.Player
	err := s.db.SelectContext(ctx, &players, s.db.Rebind(query), args...)
	return players, err
}
