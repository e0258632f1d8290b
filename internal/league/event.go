package league

import (
	"time"

	"github.com/google/uuid"
)

type CardKind string

const (
	YellowCard CardKind = "yellow"
	RedCard    CardKind = "red"
)

func (k CardKind) Valid() bool {
	return k == YellowCard || k == RedCard
}

// GoalEvent snapshots the player name at scoring time so historical match
// sheets survive a later rename.
type GoalEvent struct {
	ID         uuid.UUID `db:"id" json:"id"`
	MatchID    uuid.UUID `db:"match_id" json:"match_id"`
	Side       Side      `db:"side" json:"side"`
	PlayerID   uuid.UUID `db:"player_id" json:"player_id"`
	PlayerName string    `db:"player_name" json:"player_name"`
	Minute     *int      `db:"minute" json:"minute,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type CardEvent struct {
	ID         uuid.UUID `db:"id" json:"id"`
	MatchID    uuid.UUID `db:"match_id" json:"match_id"`
	Side       Side      `db:"side" json:"side"`
	PlayerID   uuid.UUID `db:"player_id" json:"player_id"`
	PlayerName string    `db:"player_name" json:"player_name"`
	CardKind   CardKind  `db:"card_kind" json:"card_kind"`
	Minute     *int      `db:"minute" json:"minute,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
