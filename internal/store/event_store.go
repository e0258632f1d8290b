package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aferrandez/liga-veteranos/internal/league"
	"github.com/jmoiron/sqlx"
)

// EventStore holds the goal and card ledgers. Events are rows keyed by match
// id rather than arrays embedded in the match, so appends and removals touch
// one row each.
type EventStore struct {
	db *sqlx.DB
}

func NewEventStore(db *sqlx.DB) *EventStore {
	return &EventStore{db: db}
}

// MatchExistsTx reports whether id names a league fixture, a cup group
// fixture or a bracket match. The ledger treats all three the same way.
func (s *EventStore) MatchExistsTx(ctx context.Context, tx *sqlx.Tx, matchID string) (bool, error) {
	var exists bool
	err := tx.GetContext(ctx, &exists, `SELECT EXISTS (
		SELECT 1 FROM fixtures WHERE id = ?
		UNION SELECT 1 FROM cup_fixtures WHERE id = ?
		UNION SELECT 1 FROM cup_brackets WHERE id = ?)`, matchID, matchID, matchID)
	return exists, err
}

func (s *EventStore) InsertGoalTx(ctx context.Context, tx *sqlx.Tx, event *league.GoalEvent) error {
	_, err := tx.NamedExecContext(ctx, `INSERT INTO goal_events (id, match_id, side, player_id, player_name, minute, created_at)
		VALUES (:id, :match_id, :side, :player_id, :player_name, :minute, :created_at)`, event)
	return err
}

func (s *EventStore) GetGoalTx(ctx context.Context, tx *sqlx.Tx, matchID, goalID string, side league.Side) (*league.GoalEvent, error) {
	var event league.GoalEvent
	err := tx.GetContext(ctx, &event, "SELECT * FROM goal_events WHERE id = ? AND match_id = ? AND side = ?", goalID, matchID, side)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("goal %s: %w", goalID, league.ErrNotFound)
	}
	return &event, err
}

func (s *EventStore) DeleteGoalTx(ctx context.Context, tx *sqlx.Tx, goalID string) error {
	res, err := tx.ExecContext(ctx, "DELETE FROM goal_events WHERE id = ?", goalID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("goal %s: %w", goalID, league.ErrNotFound)
	}
	return nil
}

func (s *EventStore) CountGoalsByPlayerTx(ctx context.Context, tx *sqlx.Tx, playerID string) (int, error) {
	var count int
	err := tx.GetContext(ctx, &count, "SELECT COUNT(*) FROM goal_events WHERE player_id = ?", playerID)
	return count, err
}

func (s *EventStore) GetGoalsByMatch(ctx context.Context, matchID string) ([]league.GoalEvent, error) {
	var events []league.GoalEvent
	err := s.db.SelectContext(ctx, &events, "SELECT * FROM goal_events WHERE match_id = ? ORDER BY created_at ASC, id ASC", matchID)
	return events, err
}

func (s *EventStore) InsertCardTx(ctx context.Context, tx *sqlx.Tx, event *league.CardEvent) error {
	_, err := tx.NamedExecContext(ctx, `INSERT INTO card_events (id, match_id, side, player_id, player_name, card_kind, minute, created_at)
		VALUES (:id, :match_id, :side, :player_id, :player_name, :card_kind, :minute, :created_at)`, event)
	return err
}

func (s *EventStore) GetCardTx(ctx context.Context, tx *sqlx.Tx, matchID, cardID string, side league.Side) (*league.CardEvent, error) {
	var event league.CardEvent
	err := tx.GetContext(ctx, &event, "SELECT * FROM card_events WHERE id = ? AND match_id = ? AND side = ?", cardID, matchID, side)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("card %s: %w", cardID, league.ErrNotFound)
	}
	return &event, err
}

func (s *EventStore) DeleteCardTx(ctx context.Context, tx *sqlx.Tx, cardID string) error {
	res, err := tx.ExecContext(ctx, "DELETE FROM card_events WHERE id = ?", cardID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("card %s: %w", cardID, league.ErrNotFound)
	}
	return nil
}

func (s *EventStore) CountCardsByPlayerTx(ctx context.Context, tx *sqlx.Tx, playerID string, kind league.CardKind) (int, error) {
	var count int
	err := tx.GetContext(ctx, &count, "SELECT COUNT(*) FROM card_events WHERE player_id = ? AND card_kind = ?", playerID, kind)
	return count, err
}

func (s *EventStore) GetCardsByMatch(ctx context.Context, matchID string) ([]league.CardEvent, error) {
	var events []league.CardEvent
	err := s.db.SelectContext(ctx, &events, "SELECT * FROM card_events WHERE match_id = ? ORDER BY created_at ASC, id ASC", matchID)
	return events, err
}
