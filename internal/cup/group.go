package cup

import (
	"time"

	"github.com/google/uuid"
)

// Group is one named pool of the cup's round-robin stage (A, B, C, ...).
// Roster membership lives in its own table so team ids can be swapped without
// touching the group row.
type Group struct {
	ID        uuid.UUID `db:"id" json:"id"`
	GroupName string    `db:"group_name" json:"group_name"`
	TeamIDs   []uuid.UUID `db:"-" json:"team_ids"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
