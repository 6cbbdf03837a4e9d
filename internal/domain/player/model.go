package player

import "fmt"

// Position is the explicit sum of recognized roles. Anything the seed data or
// an ingest path hands us that is not a known role becomes PositionUnknown, and
// downstream mappings treat it with the documented defaults instead of failing.
type Position string

const (
	PositionForward    Position = "Forward"
	PositionMidfielder Position = "Midfielder"
	PositionDefender   Position = "Defender"
	PositionUnknown    Position = "Unknown"
)

// ParsePosition is total: unrecognized values map to PositionUnknown.
func ParsePosition(v string) Position {
	switch Position(v) {
	case PositionForward, PositionMidfielder, PositionDefender:
		return Position(v)
	default:
		return PositionUnknown
	}
}

// Player is one athlete's raw record. The team field is a name reference into
// the team store and may dangle; consumers degrade rather than fail.
type Player struct {
	ID          int
	Name        string
	Team        string
	Position    Position
	Photo       string
	Goals       int
	Assists     int
	CleanSheets int
	MOTM        int
}

// Contributions is goals plus assists.
func (p Player) Contributions() int {
	return p.Goals + p.Assists
}

func (p Player) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("player id must be > 0")
	}
	if p.Name == "" {
		return fmt.Errorf("player %d: name is required", p.ID)
	}
	if p.Goals < 0 || p.Assists < 0 || p.CleanSheets < 0 || p.MOTM < 0 {
		return fmt.Errorf("player %d: stat counters must be >= 0", p.ID)
	}

	return nil
}

// Rated is a player enriched with the one-shot auto rating computed at
// startup. The base record stays immutable; everything after the load works
// with the enriched copy.
type Rated struct {
	Player
	Rating float64
}
