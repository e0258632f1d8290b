package cup

import (
	"testing"
	"time"

	"github.com/aferrandez/liga-veteranos/internal/league"
	"github.com/aferrandez/liga-veteranos/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groupFixture(group string, home, away uuid.UUID, homeScore, awayScore int) GroupFixture {
	return GroupFixture{
		ID:         uuid.New(),
		GroupName:  group,
		Jornada:    1,
		HomeTeamID: home,
		AwayTeamID: away,
		HomeScore:  utils.Ptr(homeScore),
		AwayScore:  utils.Ptr(awayScore),
		MatchDate:  time.Now().UTC(),
		Status:     league.StatusCompleted,
	}
}

func TestComputeGroupStandings(t *testing.T) {
	teamA := league.Team{ID: uuid.New(), Name: "Alhama"}
	teamB := league.Team{ID: uuid.New(), Name: "Bullas"}
	teamC := league.Team{ID: uuid.New(), Name: "Cehegin"}
	teams := []league.Team{teamA, teamB, teamC}
	roster := []uuid.UUID{teamA.ID, teamB.ID, teamC.ID}

	fixtures := []GroupFixture{
		groupFixture("A", teamA.ID, teamB.ID, 2, 0),
		groupFixture("A", teamB.ID, teamC.ID, 1, 1),
	}

	rows := ComputeGroupStandings(roster, teams, fixtures)
	require.Len(t, rows, 3)

	assert.Equal(t, teamA.ID, rows[0].TeamID)
	assert.Equal(t, 3, rows[0].Points)
	assert.Equal(t, teamC.ID, rows[1].TeamID)
	assert.Equal(t, 1, rows[1].Points)
	assert.Equal(t, teamB.ID, rows[2].TeamID)
	assert.Equal(t, 1, rows[2].Points)
}

// A fixture against a team outside the roster still credits the registered
// side, unlike the league table.
func TestComputeGroupStandings_CreditsSidesIndependently(t *testing.T) {
	teamA := league.Team{ID: uuid.New(), Name: "Alhama"}
	outsider := league.Team{ID: uuid.New(), Name: "Outsider"}
	teams := []league.Team{teamA, outsider}

	fixtures := []GroupFixture{
		groupFixture("A", teamA.ID, outsider.ID, 4, 1),
	}

	rows := ComputeGroupStandings([]uuid.UUID{teamA.ID}, teams, fixtures)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].GamesPlayed)
	assert.Equal(t, 3, rows[0].Points)
	assert.Equal(t, 4, rows[0].GoalsFor)
}

func TestComputeGroupStandings_GoalsForTieBreak(t *testing.T) {
	teamA := league.Team{ID: uuid.New(), Name: "Alhama"}
	teamB := league.Team{ID: uuid.New(), Name: "Bullas"}
	outsider := league.Team{ID: uuid.New(), Name: "Outsider"}
	teams := []league.Team{teamA, teamB, outsider}
	// Only A and B are in the group; the outsider keeps the tie clean.
	roster := []uuid.UUID{teamA.ID, teamB.ID}

	// Both win by three, so points and goal difference tie and goals for
	// decides: 8 beats 5.
	fixtures := []GroupFixture{
		groupFixture("A", teamB.ID, outsider.ID, 8, 5),
		groupFixture("A", teamA.ID, outsider.ID, 5, 2),
	}

	rows := ComputeGroupStandings(roster, teams, fixtures)
	require.Len(t, rows, 2)
	assert.Equal(t, rows[0].Points, rows[1].Points)
	assert.Equal(t, rows[0].GoalDifference, rows[1].GoalDifference)
	assert.Equal(t, "Bullas", rows[0].TeamName)
	assert.Equal(t, 8, rows[0].GoalsFor)
	assert.Equal(t, 5, rows[1].GoalsFor)
}

func TestComputeGroupStandings_SkipsUnknownRosterIDs(t *testing.T) {
	teamA := league.Team{ID: uuid.New(), Name: "Alhama"}
	ghost := uuid.New()

	rows := ComputeGroupStandings([]uuid.UUID{teamA.ID, ghost}, []league.Team{teamA}, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, teamA.ID, rows[0].TeamID)
}
