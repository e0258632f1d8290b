package service

import (
	"context"
	"testing"

	"github.com/aferrandez/liga-veteranos/internal/cup"
	"github.com/aferrandez/liga-veteranos/internal/league"
	"github.com/aferrandez/liga-veteranos/internal/store"
	"github.com/aferrandez/liga-veteranos/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropagate_CreatesNextRoundMatch(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	cups := store.NewCupStore(db)
	brackets := NewBracketService(db, cups)

	home := seedTeam(t, db, "Home", 1)
	away := seedTeam(t, db, "Away", 1)

	src, err := brackets.CreateMatch(ctx, BracketMatchInput{
		RoundType:     cup.RoundOf16,
		MatchPosition: 3,
		HomeTeamID:    &home.ID,
		AwayTeamID:    &away.ID,
	})
	require.NoError(t, err)

	nextRound, nextPosition, side, err := brackets.Propagate(ctx, cup.RoundOf16, 3, home.ID)
	require.NoError(t, err)
	assert.Equal(t, cup.QuarterFinal, nextRound)
	assert.Equal(t, 2, nextPosition)
	assert.Equal(t, league.HomeSide, side)

	decided, err := cups.GetBracketMatch(ctx, src.ID.String())
	require.NoError(t, err)
	assert.Equal(t, league.StatusCompleted, decided.Status)
	require.NotNil(t, decided.WinnerTeamID)
	assert.Equal(t, home.ID, *decided.WinnerTeamID)

	matches, err := cups.GetBracketMatches(ctx)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	var dest *cup.BracketMatch
	for i := range matches {
		if matches[i].RoundType == cup.QuarterFinal {
			dest = &matches[i]
		}
	}
	require.NotNil(t, dest)
	assert.Equal(t, 2, dest.MatchPosition)
	assert.Equal(t, league.StatusScheduled, dest.Status)
	require.NotNil(t, dest.HomeTeamID)
	assert.Equal(t, home.ID, *dest.HomeTeamID)
	assert.Nil(t, dest.AwayTeamID)
}

func TestPropagate_FillsExistingSlot(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	cups := store.NewCupStore(db)
	brackets := NewBracketService(db, cups)

	teamA := seedTeam(t, db, "A", 1)
	teamB := seedTeam(t, db, "B", 1)
	teamC := seedTeam(t, db, "C", 1)
	teamD := seedTeam(t, db, "D", 1)

	_, err := brackets.CreateMatch(ctx, BracketMatchInput{
		RoundType: cup.SemiFinal, MatchPosition: 1, HomeTeamID: &teamA.ID, AwayTeamID: &teamB.ID,
	})
	require.NoError(t, err)
	_, err = brackets.CreateMatch(ctx, BracketMatchInput{
		RoundType: cup.SemiFinal, MatchPosition: 2, HomeTeamID: &teamC.ID, AwayTeamID: &teamD.ID,
	})
	require.NoError(t, err)

	_, _, side, err := brackets.Propagate(ctx, cup.SemiFinal, 1, teamA.ID)
	require.NoError(t, err)
	assert.Equal(t, league.HomeSide, side)

	_, _, side, err = brackets.Propagate(ctx, cup.SemiFinal, 2, teamD.ID)
	require.NoError(t, err)
	assert.Equal(t, league.AwaySide, side)

	matches, err := cups.GetBracketMatches(ctx)
	require.NoError(t, err)

	var final *cup.BracketMatch
	for i := range matches {
		if matches[i].RoundType == cup.Final {
			final = &matches[i]
		}
	}
	require.NotNil(t, final, "both semi finals should feed one final")
	require.NotNil(t, final.HomeTeamID)
	require.NotNil(t, final.AwayTeamID)
	assert.Equal(t, teamA.ID, *final.HomeTeamID)
	assert.Equal(t, teamD.ID, *final.AwayTeamID)
}

func TestPropagate_RejectsTeamOutsideMatch(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	cups := store.NewCupStore(db)
	brackets := NewBracketService(db, cups)

	home := seedTeam(t, db, "Home", 1)
	away := seedTeam(t, db, "Away", 1)
	other := seedTeam(t, db, "Other", 1)

	_, err := brackets.CreateMatch(ctx, BracketMatchInput{
		RoundType: cup.QuarterFinal, MatchPosition: 1, HomeTeamID: &home.ID, AwayTeamID: &away.ID,
	})
	require.NoError(t, err)

	_, _, _, err = brackets.Propagate(ctx, cup.QuarterFinal, 1, other.ID)
	assert.ErrorIs(t, err, league.ErrValidation)

	// The source slot must stay undecided after the rejection.
	matches, err := cups.GetBracketMatches(ctx)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, league.StatusScheduled, matches[0].Status)
	assert.Nil(t, matches[0].WinnerTeamID)
}

func TestPropagate_FinalHasNowhereToGo(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	brackets := NewBracketService(db, store.NewCupStore(db))
	_, _, _, err := brackets.Propagate(context.Background(), cup.Final, 1, uuid.New())
	assert.ErrorIs(t, err, league.ErrValidation)
}

func TestPropagate_MissingSourceSlot(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	brackets := NewBracketService(db, store.NewCupStore(db))
	_, _, _, err := brackets.Propagate(context.Background(), cup.RoundOf16, 1, uuid.New())
	assert.ErrorIs(t, err, league.ErrNotFound)
}

func TestCreateMatch_RejectsBadPosition(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	brackets := NewBracketService(db, store.NewCupStore(db))
	_, err := brackets.CreateMatch(context.Background(), BracketMatchInput{
		RoundType: cup.SemiFinal, MatchPosition: 3,
	})
	assert.ErrorIs(t, err, league.ErrValidation)
}

func TestUpdateMatch_DerivesWinnerOnCompletion(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	brackets := NewBracketService(db, store.NewCupStore(db))

	home := seedTeam(t, db, "Home", 1)
	away := seedTeam(t, db, "Away", 1)

	match, err := brackets.CreateMatch(ctx, BracketMatchInput{
		RoundType: cup.Final, MatchPosition: 1, HomeTeamID: &home.ID, AwayTeamID: &away.ID,
	})
	require.NoError(t, err)

	updated, err := brackets.UpdateMatch(ctx, match.ID.String(), BracketMatchUpdate{
		HomeScore: utils.Ptr(1),
		AwayScore: utils.Ptr(3),
		Status:    utils.Ptr(league.StatusCompleted),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.WinnerTeamID)
	assert.Equal(t, away.ID, *updated.WinnerTeamID)
}

func TestUpdateMatch_DrawLeavesWinnerUnset(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	brackets := NewBracketService(db, store.NewCupStore(db))

	home := seedTeam(t, db, "Home", 1)
	away := seedTeam(t, db, "Away", 1)

	match, err := brackets.CreateMatch(ctx, BracketMatchInput{
		RoundType: cup.Final, MatchPosition: 1, HomeTeamID: &home.ID, AwayTeamID: &away.ID,
	})
	require.NoError(t, err)

	updated, err := brackets.UpdateMatch(ctx, match.ID.String(), BracketMatchUpdate{
		HomeScore: utils.Ptr(2),
		AwayScore: utils.Ptr(2),
		Status:    utils.Ptr(league.StatusCompleted),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.WinnerTeamID)
}
