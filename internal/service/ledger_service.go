package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aferrandez/liga-veteranos/internal/league"
	"github.com/aferrandez/liga-veteranos/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// LedgerService owns the goal/card event log and the denormalized player
// counters derived from it. Every mutation writes the event row and moves the
// counter in one transaction, so the two can only drift if something edits
// the tables behind its back; a decrement hitting zero repairs the counter by
// recounting the player's events.
type LedgerService struct {
	db      *sqlx.DB
	events  *store.EventStore
	players *store.PlayerStore
}

func NewLedgerService(db *sqlx.DB, events *store.EventStore, players *store.PlayerStore) *LedgerService {
	return &LedgerService{db: db, events: events, players: players}
}

func (s *LedgerService) AddGoal(ctx context.Context, matchID string, side league.Side, playerID string, minute *int) (uuid.UUID, error) {
	if !side.Valid() {
		return uuid.Nil, fmt.Errorf("%w: side %q", league.ErrValidation, side)
	}
	matchUUID, err := uuid.Parse(matchID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("match %s: %w", matchID, league.ErrNotFound)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback()

	if err := s.requireMatchTx(ctx, tx, matchID); err != nil {
		return uuid.Nil, err
	}

	player, err := s.players.GetPlayerTx(ctx, tx, playerID)
	if err != nil {
		return uuid.Nil, err
	}

	event := &league.GoalEvent{
		ID:         uuid.New(),
		MatchID:    matchUUID,
		Side:       side,
		PlayerID:   player.ID,
		PlayerName: player.Name,
		Minute:     minute,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.events.InsertGoalTx(ctx, tx, event); err != nil {
		return uuid.Nil, fmt.Errorf("failed to record goal: %w", err)
	}
	if err := s.players.IncrementCounterTx(ctx, tx, playerID, "goals_scored"); err != nil {
		return uuid.Nil, err
	}

	return event.ID, tx.Commit()
}

func (s *LedgerService) RemoveGoal(ctx context.Context, matchID, goalID string, side league.Side) error {
	if !side.Valid() {
		return fmt.Errorf("%w: side %q", league.ErrValidation, side)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.requireMatchTx(ctx, tx, matchID); err != nil {
		return err
	}

	// The stored event decides whose counter moves, not the caller.
	event, err := s.events.GetGoalTx(ctx, tx, matchID, goalID, side)
	if err != nil {
		return err
	}
	if err := s.events.DeleteGoalTx(ctx, tx, goalID); err != nil {
		return err
	}

	err = s.players.DecrementCounterTx(ctx, tx, event.PlayerID.String(), "goals_scored")
	if errors.Is(err, league.ErrCounterMismatch) {
		if err := s.repairCounterTx(ctx, tx, event.PlayerID.String(), "goals_scored", ""); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	return tx.Commit()
}

func (s *LedgerService) AddCard(ctx context.Context, matchID string, side league.Side, playerID string, kind league.CardKind, minute *int) (uuid.UUID, error) {
	if !side.Valid() {
		return uuid.Nil, fmt.Errorf("%w: side %q", league.ErrValidation, side)
	}
	if !kind.Valid() {
		return uuid.Nil, fmt.Errorf("%w: card kind %q", league.ErrValidation, kind)
	}
	matchUUID, err := uuid.Parse(matchID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("match %s: %w", matchID, league.ErrNotFound)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback()

	if err := s.requireMatchTx(ctx, tx, matchID); err != nil {
		return uuid.Nil, err
	}

	player, err := s.players.GetPlayerTx(ctx, tx, playerID)
	if err != nil {
		return uuid.Nil, err
	}

	event := &league.CardEvent{
		ID:         uuid.New(),
		MatchID:    matchUUID,
		Side:       side,
		PlayerID:   player.ID,
		PlayerName: player.Name,
		CardKind:   kind,
		Minute:     minute,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.events.InsertCardTx(ctx, tx, event); err != nil {
		return uuid.Nil, fmt.Errorf("failed to record card: %w", err)
	}
	if err := s.players.IncrementCounterTx(ctx, tx, playerID, counterColumn(kind)); err != nil {
		return uuid.Nil, err
	}

	return event.ID, tx.Commit()
}

func (s *LedgerService) RemoveCard(ctx context.Context, matchID, cardID string, side league.Side) error {
	if !side.Valid() {
		return fmt.Errorf("%w: side %q", league.ErrValidation, side)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.requireMatchTx(ctx, tx, matchID); err != nil {
		return err
	}

	// The stored kind decides which counter moves.
	event, err := s.events.GetCardTx(ctx, tx, matchID, cardID, side)
	if err != nil {
		return err
	}
	if err := s.events.DeleteCardTx(ctx, tx, cardID); err != nil {
		return err
	}

	err = s.players.DecrementCounterTx(ctx, tx, event.PlayerID.String(), counterColumn(event.CardKind))
	if errors.Is(err, league.ErrCounterMismatch) {
		if err := s.repairCounterTx(ctx, tx, event.PlayerID.String(), counterColumn(event.CardKind), event.CardKind); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	return tx.Commit()
}

// MatchSheet returns the event lists recorded against one match.
func (s *LedgerService) MatchSheet(ctx context.Context, matchID string) ([]league.GoalEvent, []league.CardEvent, error) {
	goals, err := s.events.GetGoalsByMatch(ctx, matchID)
	if err != nil {
		return nil, nil, err
	}
	cards, err := s.events.GetCardsByMatch(ctx, matchID)
	if err != nil {
		return nil, nil, err
	}
	return goals, cards, nil
}

func (s *LedgerService) requireMatchTx(ctx context.Context, tx *sqlx.Tx, matchID string) error {
	exists, err := s.events.MatchExistsTx(ctx, tx, matchID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("match %s: %w", matchID, league.ErrNotFound)
	}
	return nil
}

// repairCounterTx recounts a player's counter from the event log after a
// decrement found it already at zero. kind is empty for the goal counter.
func (s *LedgerService) repairCounterTx(ctx context.Context, tx *sqlx.Tx, playerID, column string, kind league.CardKind) error {
	var count int
	var err error
	if kind == "" {
		count, err = s.events.CountGoalsByPlayerTx(ctx, tx, playerID)
	} else {
		count, err = s.events.CountCardsByPlayerTx(ctx, tx, playerID, kind)
	}
	if err != nil {
		return err
	}
	slog.Warn("repairing player counter from event log", "player_id", playerID, "column", column, "recounted", count)
	return s.players.SetCounterTx(ctx, tx, playerID, column, count)
}

func counterColumn(kind league.CardKind) string {
	if kind == league.RedCard {
		return "red_cards"
	}
	return "yellow_cards"
}
