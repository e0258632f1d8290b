package league

import (
	"sort"

	"github.com/aferrandez/liga-veteranos/internal/utils"
	"github.com/google/uuid"
)

type StandingsRow struct {
	Position       int       `json:"position"`
	TeamID         uuid.UUID `json:"team_id"`
	TeamName       string    `json:"team_name"`
	GamesPlayed    int       `json:"games_played"`
	GamesWon       int       `json:"games_won"`
	GamesDraw      int       `json:"games_draw"`
	GamesLost      int       `json:"games_lost"`
	GoalsFor       int       `json:"goals_for"`
	GoalsAgainst   int       `json:"goals_against"`
	GoalDifference int       `json:"goal_difference"`
	Points         int       `json:"points"`
}

// ComputeStandings builds the division table from the team set and its
// completed fixtures. Every team gets a row even with no fixtures played.
// A fixture is only counted when both team ids belong to the division;
// anything referencing an unknown team is skipped entirely.
func ComputeStandings(teams []Team, fixtures []Fixture) []StandingsRow {
	rows := make([]StandingsRow, len(teams))
	index := make(map[uuid.UUID]*StandingsRow, len(teams))
	for i, t := range teams {
		rows[i] = StandingsRow{TeamID: t.ID, TeamName: t.Name}
		index[t.ID] = &rows[i]
	}

	for _, f := range fixtures {
		if f.Status != StatusCompleted {
			continue
		}
		home, homeKnown := index[f.HomeTeamID]
		away, awayKnown := index[f.AwayTeamID]
		if !homeKnown || !awayKnown {
			continue
		}
		homeScore := utils.OrZero(f.HomeScore)
		awayScore := utils.OrZero(f.AwayScore)

		CreditResult(home, homeScore, awayScore)
		CreditResult(away, awayScore, homeScore)
	}

	RankRows(rows)
	return rows
}

// CreditResult applies one completed match to a team's row: 3 points for a
// win, 1 each for a draw, none for a loss.
func CreditResult(row *StandingsRow, scored, conceded int) {
	row.GamesPlayed++
	row.GoalsFor += scored
	row.GoalsAgainst += conceded
	row.GoalDifference = row.GoalsFor - row.GoalsAgainst

	switch {
	case scored > conceded:
		row.GamesWon++
		row.Points += 3
	case scored == conceded:
		row.GamesDraw++
		row.Points++
	default:
		row.GamesLost++
	}
}

// RankRows orders by points, goal difference, goals for, then team name, and
// assigns positions. The name key makes the output order a pure function of
// the inputs regardless of how the rows arrive.
func RankRows(rows []StandingsRow) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.TeamName < b.TeamName
	})
	for i := range rows {
		rows[i].Position = i + 1
	}
}
