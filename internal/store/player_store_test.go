package store

import (
	"context"
	"testing"
	"time"

	"github.com/aferrandez/liga-veteranos/internal/league"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database and applies migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite3", "file::memory:")
	require.NoError(t, err, "Failed to connect to in-memory DB")

	_, err = database.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)

	driver, err := sqlite3.WithInstance(database.DB, &sqlite3.Config{})
	require.NoError(t, err, "Failed to create migrate driver instance")

	m, err := migrate.NewWithDatabaseInstance(
		"file://../../migrations",
		"sqlite3",
		driver,
	)
	require.NoError(t, err, "Failed to create migrate instance")

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, "Failed to apply migrations")
	}

	return database
}

func createTestPlayer(t *testing.T, db *sqlx.DB) *league.Player {
	t.Helper()

	team := &league.Team{ID: uuid.New(), Name: "Test Team", Division: 1, CreatedAt: time.Now().UTC()}
	require.NoError(t, NewTeamStore(db).CreateTeam(context.Background(), team))

	player := &league.Player{ID: uuid.New(), Name: "Test Player", TeamID: team.ID, CreatedAt: time.Now().UTC()}
	require.NoError(t, NewPlayerStore(db).CreatePlayer(context.Background(), player))
	return player
}

func TestIncrementCounterTx(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	store := NewPlayerStore(db)
	player := createTestPlayer(t, db)

	tx, err := db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, store.IncrementCounterTx(ctx, tx, player.ID.String(), "goals_scored"))
	require.NoError(t, store.IncrementCounterTx(ctx, tx, player.ID.String(), "goals_scored"))
	require.NoError(t, store.IncrementCounterTx(ctx, tx, player.ID.String(), "yellow_cards"))
	require.NoError(t, tx.Commit())

	fetched, err := store.GetPlayer(ctx, player.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 2, fetched.GoalsScored)
	assert.Equal(t, 1, fetched.YellowCards)
	assert.Zero(t, fetched.RedCards)
}

func TestIncrementCounterTx_RejectsUnknownColumn(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	store := NewPlayerStore(db)
	player := createTestPlayer(t, db)

	tx, err := db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	err = store.IncrementCounterTx(ctx, tx, player.ID.String(), "assists; DROP TABLE players")
	assert.Error(t, err)
}

func TestDecrementCounterTx_ClampsAtZero(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	store := NewPlayerStore(db)
	player := createTestPlayer(t, db)

	tx, err := db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	// Counter starts at zero, so the decrement must refuse instead of going
	// negative.
	err = store.DecrementCounterTx(ctx, tx, player.ID.String(), "red_cards")
	assert.ErrorIs(t, err, league.ErrCounterMismatch)
}

func TestDecrementCounterTx_UnknownPlayer(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	store := NewPlayerStore(db)

	tx, err := db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	err = store.DecrementCounterTx(ctx, tx, uuid.NewString(), "red_cards")
	assert.ErrorIs(t, err, league.ErrNotFound)
}

func TestSetCounterTx(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	store := NewPlayerStore(db)
	player := createTestPlayer(t, db)

	tx, err := db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, store.SetCounterTx(ctx, tx, player.ID.String(), "goals_scored", 7))
	require.NoError(t, tx.Commit())

	fetched, err := store.GetPlayer(ctx, player.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 7, fetched.GoalsScored)
}

func TestGetTopScorers(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	players := NewPlayerStore(db)

	team := &league.Team{ID: uuid.New(), Name: "Test Team", Division: 1, CreatedAt: time.Now().UTC()}
	require.NoError(t, NewTeamStore(db).CreateTeam(ctx, team))

	scorer := &league.Player{ID: uuid.New(), Name: "Scorer", TeamID: team.ID, GoalsScored: 9, CreatedAt: time.Now().UTC()}
	sub := &league.Player{ID: uuid.New(), Name: "Sub", TeamID: team.ID, GoalsScored: 2, CreatedAt: time.Now().UTC()}
	blank := &league.Player{ID: uuid.New(), Name: "Blank", TeamID: team.ID, CreatedAt: time.Now().UTC()}
	require.NoError(t, players.CreatePlayer(ctx, scorer))
	require.NoError(t, players.CreatePlayer(ctx, sub))
	require.NoError(t, players.CreatePlayer(ctx, blank))

	top, err := players.GetTopScorers(ctx, []string{team.ID.String()}, 10)
	require.NoError(t, err)
	require.Len(t, top, 2, "players without goals are left out")
	assert.Equal(t, scorer.ID, top[0].ID)
	assert.Equal(t, sub.ID, top[1].ID)
}
