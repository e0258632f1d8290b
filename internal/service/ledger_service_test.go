package service

import (
	"context"
	"testing"
	"time"

	"github.com/aferrandez/liga-veteranos/internal/league"
	"github.com/aferrandez/liga-veteranos/internal/store"
	"github.com/aferrandez/liga-veteranos/internal/utils"
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

func seedTeam(t *testing.T, db *sqlx.DB, name string, division int) *league.Team {
	t.Helper()
	team := &league.Team{ID: uuid.New(), Name: name, Division: division, CreatedAt: time.Now().UTC()}
	require.NoError(t, store.NewTeamStore(db).CreateTeam(context.Background(), team))
	return team
}

func seedPlayer(t *testing.T, db *sqlx.DB, team *league.Team, name string) *league.Player {
	t.Helper()
	player := &league.Player{ID: uuid.New(), Name: name, TeamID: team.ID, CreatedAt: time.Now().UTC()}
	require.NoError(t, store.NewPlayerStore(db).CreatePlayer(context.Background(), player))
	return player
}

func seedFixture(t *testing.T, db *sqlx.DB, home, away *league.Team) *league.Fixture {
	t.Helper()
	fixture := &league.Fixture{
		ID:         uuid.New(),
		Division:   home.Division,
		WeekNumber: 1,
		HomeTeamID: home.ID,
		AwayTeamID: away.ID,
		MatchDate:  time.Now().UTC(),
		Status:     league.StatusScheduled,
		UpdatedAt:  time.Now().UTC(),
	}
	require.NoError(t, store.NewFixtureStore(db).CreateFixture(context.Background(), fixture))
	return fixture
}

func newLedger(db *sqlx.DB) *LedgerService {
	return NewLedgerService(db, store.NewEventStore(db), store.NewPlayerStore(db))
}

func TestAddGoal(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	home := seedTeam(t, db, "Home", 1)
	away := seedTeam(t, db, "Away", 1)
	player := seedPlayer(t, db, home, "Paco")
	fixture := seedFixture(t, db, home, away)

	ledger := newLedger(db)
	players := store.NewPlayerStore(db)

	eventID, err := ledger.AddGoal(ctx, fixture.ID.String(), league.HomeSide, player.ID.String(), utils.Ptr(42))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, eventID)

	updated, err := players.GetPlayer(ctx, player.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 1, updated.GoalsScored)

	goals, cards, err := ledger.MatchSheet(ctx, fixture.ID.String())
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Empty(t, cards)
	assert.Equal(t, eventID, goals[0].ID)
	assert.Equal(t, player.ID, goals[0].PlayerID)
	assert.Equal(t, "Paco", goals[0].PlayerName)
	assert.Equal(t, league.HomeSide, goals[0].Side)
	require.NotNil(t, goals[0].Minute)
	assert.Equal(t, 42, *goals[0].Minute)
}

func TestAddGoal_UnknownMatch(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	home := seedTeam(t, db, "Home", 1)
	player := seedPlayer(t, db, home, "Paco")

	ledger := newLedger(db)

	_, err := ledger.AddGoal(ctx, uuid.NewString(), league.HomeSide, player.ID.String(), nil)
	assert.ErrorIs(t, err, league.ErrNotFound)

	_, err = ledger.AddGoal(ctx, "not-a-uuid", league.HomeSide, player.ID.String(), nil)
	assert.ErrorIs(t, err, league.ErrNotFound)
}

func TestAddGoal_InvalidSide(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ledger := newLedger(db)
	_, err := ledger.AddGoal(context.Background(), uuid.NewString(), "middle", uuid.NewString(), nil)
	assert.ErrorIs(t, err, league.ErrValidation)
}

func TestRemoveGoal_RestoresCounter(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	home := seedTeam(t, db, "Home", 1)
	away := seedTeam(t, db, "Away", 1)
	player := seedPlayer(t, db, home, "Paco")
	fixture := seedFixture(t, db, home, away)

	ledger := newLedger(db)
	players := store.NewPlayerStore(db)

	eventID, err := ledger.AddGoal(ctx, fixture.ID.String(), league.HomeSide, player.ID.String(), nil)
	require.NoError(t, err)

	err = ledger.RemoveGoal(ctx, fixture.ID.String(), eventID.String(), league.HomeSide)
	require.NoError(t, err)

	updated, err := players.GetPlayer(ctx, player.ID.String())
	require.NoError(t, err)
	assert.Zero(t, updated.GoalsScored)

	goals, _, err := ledger.MatchSheet(ctx, fixture.ID.String())
	require.NoError(t, err)
	assert.Empty(t, goals)
}

func TestRemoveGoal_WrongSide(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	home := seedTeam(t, db, "Home", 1)
	away := seedTeam(t, db, "Away", 1)
	player := seedPlayer(t, db, home, "Paco")
	fixture := seedFixture(t, db, home, away)

	ledger := newLedger(db)

	eventID, err := ledger.AddGoal(ctx, fixture.ID.String(), league.HomeSide, player.ID.String(), nil)
	require.NoError(t, err)

	// The event was recorded for the home side, so the away side has no
	// such goal.
	err = ledger.RemoveGoal(ctx, fixture.ID.String(), eventID.String(), league.AwaySide)
	assert.ErrorIs(t, err, league.ErrNotFound)

	players := store.NewPlayerStore(db)
	updated, err := players.GetPlayer(ctx, player.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 1, updated.GoalsScored, "a failed removal must not touch the counter")
}

func TestAddCard_MovesOnlyItsCounter(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	home := seedTeam(t, db, "Home", 1)
	away := seedTeam(t, db, "Away", 1)
	player := seedPlayer(t, db, home, "Paco")
	fixture := seedFixture(t, db, home, away)

	ledger := newLedger(db)
	players := store.NewPlayerStore(db)

	_, err := ledger.AddCard(ctx, fixture.ID.String(), league.HomeSide, player.ID.String(), league.YellowCard, utils.Ptr(30))
	require.NoError(t, err)

	updated, err := players.GetPlayer(ctx, player.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 1, updated.YellowCards)
	assert.Zero(t, updated.RedCards)
	assert.Zero(t, updated.GoalsScored)

	_, err = ledger.AddCard(ctx, fixture.ID.String(), league.HomeSide, player.ID.String(), league.RedCard, utils.Ptr(75))
	require.NoError(t, err)

	updated, err = players.GetPlayer(ctx, player.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 1, updated.YellowCards)
	assert.Equal(t, 1, updated.RedCards)
}

func TestAddCard_InvalidKind(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ledger := newLedger(db)
	_, err := ledger.AddCard(context.Background(), uuid.NewString(), league.HomeSide, uuid.NewString(), "orange", nil)
	assert.ErrorIs(t, err, league.ErrValidation)
}

func TestRemoveCard_RepairsDriftedCounter(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	home := seedTeam(t, db, "Home", 1)
	away := seedTeam(t, db, "Away", 1)
	player := seedPlayer(t, db, home, "Paco")
	fixture := seedFixture(t, db, home, away)

	ledger := newLedger(db)
	players := store.NewPlayerStore(db)

	first, err := ledger.AddCard(ctx, fixture.ID.String(), league.HomeSide, player.ID.String(), league.YellowCard, nil)
	require.NoError(t, err)
	_, err = ledger.AddCard(ctx, fixture.ID.String(), league.HomeSide, player.ID.String(), league.YellowCard, nil)
	require.NoError(t, err)

	// Simulate drift: something zeroed the counter behind the ledger's back
	// while two card events remain on record.
	_, err = db.Exec("UPDATE players SET yellow_cards = 0 WHERE id = $1", player.ID)
	require.NoError(t, err)

	err = ledger.RemoveCard(ctx, fixture.ID.String(), first.String(), league.HomeSide)
	require.NoError(t, err)

	// One event left after the removal, so the recount lands on 1.
	updated, err := players.GetPlayer(ctx, player.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 1, updated.YellowCards)
}

func TestRemoveGoal_RepairsDriftedCounter(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	home := seedTeam(t, db, "Home", 1)
	away := seedTeam(t, db, "Away", 1)
	player := seedPlayer(t, db, home, "Paco")
	fixture := seedFixture(t, db, home, away)

	ledger := newLedger(db)
	players := store.NewPlayerStore(db)

	eventID, err := ledger.AddGoal(ctx, fixture.ID.String(), league.AwaySide, player.ID.String(), nil)
	require.NoError(t, err)

	_, err = db.Exec("UPDATE players SET goals_scored = 0 WHERE id = $1", player.ID)
	require.NoError(t, err)

	err = ledger.RemoveGoal(ctx, fixture.ID.String(), eventID.String(), league.AwaySide)
	require.NoError(t, err)

	updated, err := players.GetPlayer(ctx, player.ID.String())
	require.NoError(t, err)
	assert.Zero(t, updated.GoalsScored)
}
