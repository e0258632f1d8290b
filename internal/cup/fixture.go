package cup

import (
	"time"

	"github.com/aferrandez/liga-veteranos/internal/league"
	"github.com/google/uuid"
)

// GroupFixture is a group-stage match. Unlike league fixtures it can sit in
// the live and halftime statuses while a jornada is in progress.
type GroupFixture struct {
	ID         uuid.UUID          `db:"id" json:"id"`
	GroupName  string             `db:"group_name" json:"group_name"`
	Jornada    int                `db:"jornada" json:"jornada"`
	HomeTeamID uuid.UUID          `db:"home_team_id" json:"home_team_id"`
	AwayTeamID uuid.UUID          `db:"away_team_id" json:"away_team_id"`
	HomeScore  *int               `db:"home_score" json:"home_score,omitempty"`
	AwayScore  *int               `db:"away_score" json:"away_score,omitempty"`
	MatchDate  time.Time          `db:"match_date" json:"match_date"`
	Status     league.MatchStatus `db:"status" json:"status"`
	UpdatedAt  time.Time          `db:"updated_at" json:"updated_at"`
}
