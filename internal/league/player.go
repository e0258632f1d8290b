package league

import (
	"time"

	"github.com/google/uuid"
)

// Player carries denormalized event counters so top-scorer and card tables
// are a single indexed read. The ledger keeps them in step with the event
// tables inside one transaction.
type Player struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	TeamID       uuid.UUID `db:"team_id" json:"team_id"`
	JerseyNumber *int      `db:"jersey_number" json:"jersey_number,omitempty"`
	GoalsScored  int       `db:"goals_scored" json:"goals_scored"`
	YellowCards  int       `db:"yellow_cards" json:"yellow_cards"`
	RedCards     int       `db:"red_cards" json:"red_cards"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
