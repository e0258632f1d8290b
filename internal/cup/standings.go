package cup

import (
	"github.com/aferrandez/liga-veteranos/internal/league"
	"github.com/aferrandez/liga-veteranos/internal/utils"
	"github.com/google/uuid"
)

// ComputeGroupStandings builds the table for one group's roster from its
// completed fixtures. Only teams registered in the roster get a row, and each
// fixture side is credited independently: a known home team still scores its
// result even if the away id is not part of the group. That differs from the
// league table, which drops such fixtures outright.
func ComputeGroupStandings(roster []uuid.UUID, teams []league.Team, fixtures []GroupFixture) []league.StandingsRow {
	names := make(map[uuid.UUID]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}

	rows := make([]league.StandingsRow, 0, len(roster))
	index := make(map[uuid.UUID]*league.StandingsRow, len(roster))
	for _, id := range roster {
		name, ok := names[id]
		if !ok {
			continue
		}
		rows = append(rows, league.StandingsRow{TeamID: id, TeamName: name})
		index[id] = &rows[len(rows)-1]
	}

	for _, f := range fixtures {
		if f.Status != league.StatusCompleted {
			continue
		}
		homeScore := utils.OrZero(f.HomeScore)
		awayScore := utils.OrZero(f.AwayScore)

		if home, ok := index[f.HomeTeamID]; ok {
			league.CreditResult(home, homeScore, awayScore)
		}
		if away, ok := index[f.AwayTeamID]; ok {
			league.CreditResult(away, awayScore, homeScore)
		}
	}

	league.RankRows(rows)
	return rows
}
