package league

import (
	"time"

	"github.com/google/uuid"
)

type MatchStatus string

const (
	StatusScheduled MatchStatus = "scheduled"
	StatusLive      MatchStatus = "live"
	StatusHalftime  MatchStatus = "halftime"
	StatusCompleted MatchStatus = "completed"
)

type Side string

const (
	HomeSide Side = "home"
	AwaySide Side = "away"
)

func (s Side) Valid() bool {
	return s == HomeSide || s == AwaySide
}

type Fixture struct {
	ID         uuid.UUID   `db:"id" json:"id"`
	Division   int         `db:"division" json:"division"`
	WeekNumber int         `db:"week_number" json:"week_number"`
	HomeTeamID uuid.UUID   `db:"home_team_id" json:"home_team_id"`
	AwayTeamID uuid.UUID   `db:"away_team_id" json:"away_team_id"`
	HomeScore  *int        `db:"home_score" json:"home_score,omitempty"`
	AwayScore  *int        `db:"away_score" json:"away_score,omitempty"`
	MatchDate  time.Time   `db:"match_date" json:"match_date"`
	Status     MatchStatus `db:"status" json:"status"`
	UpdatedAt  time.Time   `db:"updated_at" json:"updated_at"`
}
