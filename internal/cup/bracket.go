package cup

import (
	"fmt"
	"time"

	"github.com/aferrandez/liga-veteranos/internal/league"
	"github.com/google/uuid"
)

type RoundType string

const (
	RoundOf16    RoundType = "round_of_16"
	QuarterFinal RoundType = "quarter_final"
	SemiFinal    RoundType = "semi_final"
	Final        RoundType = "final"
)

// slotCounts fixes the bracket shape: 8 + 4 + 2 + 1 matches.
var slotCounts = map[RoundType]int{
	RoundOf16:    8,
	QuarterFinal: 4,
	SemiFinal:    2,
	Final:        1,
}

func (r RoundType) Valid() bool {
	_, ok := slotCounts[r]
	return ok
}

// SlotCount returns how many match positions the round holds.
func (r RoundType) SlotCount() int {
	return slotCounts[r]
}

// ValidPosition reports whether pos is a legal 1-based slot for the round.
func (r RoundType) ValidPosition(pos int) bool {
	return pos >= 1 && pos <= slotCounts[r]
}

// BracketMatch is a slot in the knockout stage, identified by
// (round_type, match_position). Team ids stay unset until the previous round
// feeds them in.
type BracketMatch struct {
	ID            uuid.UUID          `db:"id" json:"id"`
	RoundType     RoundType          `db:"round_type" json:"round_type"`
	MatchPosition int                `db:"match_position" json:"match_position"`
	HomeTeamID    *uuid.UUID         `db:"home_team_id" json:"home_team_id,omitempty"`
	AwayTeamID    *uuid.UUID         `db:"away_team_id" json:"away_team_id,omitempty"`
	HomeScore     *int               `db:"home_score" json:"home_score,omitempty"`
	AwayScore     *int               `db:"away_score" json:"away_score,omitempty"`
	MatchDate     *time.Time         `db:"match_date" json:"match_date,omitempty"`
	Status        league.MatchStatus `db:"status" json:"status"`
	WinnerTeamID  *uuid.UUID         `db:"winner_team_id" json:"winner_team_id,omitempty"`
	CreatedAt     time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `db:"updated_at" json:"updated_at"`
}

// NextSlot maps a decided slot onto the slot its winner advances into.
// Position i feeds position ceil(i/2) of the following round; odd positions
// land in the home slot, even positions in the away slot.
func NextSlot(round RoundType, pos int) (RoundType, int, league.Side, error) {
	if !round.Valid() {
		return "", 0, "", fmt.Errorf("%w: round type %q", league.ErrValidation, round)
	}
	if !round.ValidPosition(pos) {
		return "", 0, "", fmt.Errorf("%w: position %d out of range for %s", league.ErrValidation, pos, round)
	}

	var next RoundType
	switch round {
	case RoundOf16:
		next = QuarterFinal
	case QuarterFinal:
		next = SemiFinal
	case SemiFinal:
		next = Final
	case Final:
		return "", 0, "", fmt.Errorf("%w: the final has no next round", league.ErrValidation)
	}

	side := league.HomeSide
	if pos%2 == 0 {
		side = league.AwaySide
	}
	return next, (pos + 1) / 2, side, nil
}
