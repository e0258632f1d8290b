package league

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleTeam  Role = "team"
)

type User struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	Username       string     `db:"username" json:"username"`
	HashedPassword string     `db:"hashed_password" json:"-"`
	Role           Role       `db:"role" json:"role"`
	TeamID         *uuid.UUID `db:"team_id" json:"team_id,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}
