package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aferrandez/liga-veteranos/internal/cup"
	"github.com/aferrandez/liga-veteranos/internal/league"
	"github.com/aferrandez/liga-veteranos/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type BracketService struct {
	db    *sqlx.DB
	store *store.CupStore
}

func NewBracketService(db *sqlx.DB, store *store.CupStore) *BracketService {
	return &BracketService{db: db, store: store}
}

type BracketMatchInput struct {
	RoundType     cup.RoundType
	MatchPosition int
	HomeTeamID    *uuid.UUID
	AwayTeamID    *uuid.UUID
	MatchDate     *time.Time
}

type BracketMatchUpdate struct {
	HomeTeamID   *uuid.UUID
	AwayTeamID   *uuid.UUID
	HomeScore    *int
	AwayScore    *int
	MatchDate    *time.Time
	Status       *league.MatchStatus
	WinnerTeamID *uuid.UUID
}

func (s *BracketService) CreateMatch(ctx context.Context, input BracketMatchInput) (*cup.BracketMatch, error) {
	if !input.RoundType.Valid() {
		return nil, fmt.Errorf("%w: round type %q", league.ErrValidation, input.RoundType)
	}
	if !input.RoundType.ValidPosition(input.MatchPosition) {
		return nil, fmt.Errorf("%w: position %d out of range for %s", league.ErrValidation, input.MatchPosition, input.RoundType)
	}

	now := time.Now().UTC()
	match := &cup.BracketMatch{
		ID:            uuid.New(),
		RoundType:     input.RoundType,
		MatchPosition: input.MatchPosition,
		HomeTeamID:    input.HomeTeamID,
		AwayTeamID:    input.AwayTeamID,
		MatchDate:     input.MatchDate,
		Status:        league.StatusScheduled,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.CreateBracketMatch(ctx, match); err != nil {
		return nil, err
	}
	return match, nil
}

func (s *BracketService) GetMatches(ctx context.Context) ([]cup.BracketMatch, error) {
	return s.store.GetBracketMatches(ctx)
}

func (s *BracketService) DeleteMatch(ctx context.Context, id string) error {
	return s.store.DeleteBracketMatch(ctx, id)
}

// UpdateMatch applies a partial update. When the update completes a match
// without naming a winner and the scores are unequal, the winner is derived
// from them; a drawn score leaves winner_team_id unset for the caller to
// decide (penalties are not modelled in the score columns).
func (s *BracketService) UpdateMatch(ctx context.Context, id string, upd BracketMatchUpdate) (*cup.BracketMatch, error) {
	if upd.Status != nil && !validCupStatus(*upd.Status) {
		return nil, fmt.Errorf("%w: status %q", league.ErrValidation, *upd.Status)
	}

	match, err := s.store.GetBracketMatch(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.HomeTeamID != nil {
		match.HomeTeamID = upd.HomeTeamID
	}
	if upd.AwayTeamID != nil {
		match.AwayTeamID = upd.AwayTeamID
	}
	if upd.HomeScore != nil {
		match.HomeScore = upd.HomeScore
	}
	if upd.AwayScore != nil {
		match.AwayScore = upd.AwayScore
	}
	if upd.MatchDate != nil {
		match.MatchDate = upd.MatchDate
	}
	if upd.Status != nil {
		match.Status = *upd.Status
	}
	if upd.WinnerTeamID != nil {
		match.WinnerTeamID = upd.WinnerTeamID
	}

	if match.Status == league.StatusCompleted && match.WinnerTeamID == nil {
		if w := deriveWinner(match); w != nil {
			match.WinnerTeamID = w
		}
	}

	match.UpdatedAt = time.Now().UTC()
	if err := s.store.UpdateBracketMatch(ctx, match); err != nil {
		return nil, err
	}
	return match, nil
}

// Propagate records winnerTeamID as the winner of (round, position) and
// places the team into the slot it advances to, creating the next round's
// match row if it does not exist yet. It returns where the winner landed.
func (s *BracketService) Propagate(ctx context.Context, round cup.RoundType, position int, winnerTeamID uuid.UUID) (cup.RoundType, int, league.Side, error) {
	nextRound, nextPosition, side, err := cup.NextSlot(round, position)
	if err != nil {
		return "", 0, "", err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", 0, "", err
	}
	defer tx.Rollback()

	src, err := s.store.GetBracketMatchBySlotTx(ctx, tx, round, position)
	if err != nil {
		return "", 0, "", err
	}
	if !teamInMatch(src, winnerTeamID) {
		return "", 0, "", fmt.Errorf("%w: team %s is not part of %s match %d", league.ErrValidation, winnerTeamID, round, position)
	}

	src.WinnerTeamID = &winnerTeamID
	src.Status = league.StatusCompleted
	src.UpdatedAt = time.Now().UTC()
	if err := s.store.UpdateBracketMatchTx(ctx, tx, src); err != nil {
		return "", 0, "", err
	}

	dest, err := s.store.GetBracketMatchBySlotTx(ctx, tx, nextRound, nextPosition)
	if errors.Is(err, league.ErrNotFound) {
		now := time.Now().UTC()
		dest = &cup.BracketMatch{
			ID:            uuid.New(),
			RoundType:     nextRound,
			MatchPosition: nextPosition,
			Status:        league.StatusScheduled,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		setSlotTeam(dest, side, winnerTeamID)
		if err := s.store.CreateBracketMatchTx(ctx, tx, dest); err != nil {
			return "", 0, "", err
		}
		return nextRound, nextPosition, side, tx.Commit()
	}
	if err != nil {
		return "", 0, "", err
	}

	setSlotTeam(dest, side, winnerTeamID)
	dest.UpdatedAt = time.Now().UTC()
	if err := s.store.UpdateBracketMatchTx(ctx, tx, dest); err != nil {
		return "", 0, "", err
	}

	return nextRound, nextPosition, side, tx.Commit()
}

func teamInMatch(match *cup.BracketMatch, teamID uuid.UUID) bool {
	if match.HomeTeamID != nil && *match.HomeTeamID == teamID {
		return true
	}
	return match.AwayTeamID != nil && *match.AwayTeamID == teamID
}

func setSlotTeam(match *cup.BracketMatch, side league.Side, teamID uuid.UUID) {
	if side == league.HomeSide {
		match.HomeTeamID = &teamID
	} else {
		match.AwayTeamID = &teamID
	}
}

func deriveWinner(match *cup.BracketMatch) *uuid.UUID {
	if match.HomeScore == nil || match.AwayScore == nil {
		return nil
	}
	switch {
	case *match.HomeScore > *match.AwayScore:
		return match.HomeTeamID
	case *match.AwayScore > *match.HomeScore:
		return match.AwayTeamID
	default:
		return nil
	}
}

func validCupStatus(status league.MatchStatus) bool {
	switch status {
	case league.StatusScheduled, league.StatusLive, league.StatusHalftime, league.StatusCompleted:
		return true
	}
	return false
}
