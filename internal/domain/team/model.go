package team

import "fmt"

// Result is a single entry in a team's recent form, oldest first.
type Result string

const (
	ResultWin  Result = "W"
	ResultDraw Result = "D"
	ResultLoss Result = "L"
)

// DefaultColor is used whenever a player references a team that does not exist.
const DefaultColor = "#6366f1"

// Team is a club in the tournament together with its raw record counters.
// Matches played, points and goal difference are derived, never stored.
type Team struct {
	Name         string
	Emoji        string
	Color        string
	CSSClass     string
	Founded      int
	Wins         int
	Draws        int
	Losses       int
	GoalsFor     int
	GoalsAgainst int
	Form         []Result
}

func (t Team) MatchesPlayed() int {
	return t.Wins + t.Draws + t.Losses
}

func (t Team) Points() int {
	return t.Wins*3 + t.Draws
}

func (t Team) GoalDifference() int {
	return t.GoalsFor - t.GoalsAgainst
}

func (t Team) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.Wins < 0 || t.Draws < 0 || t.Losses < 0 {
		return fmt.Errorf("team %s: result counters must be >= 0", t.Name)
	}
	if t.GoalsFor < 0 || t.GoalsAgainst < 0 {
		return fmt.Errorf("team %s: goal counters must be >= 0", t.Name)
	}
	for _, r := range t.Form {
		switch r {
		case ResultWin, ResultDraw, ResultLoss:
		default:
			return fmt.Errorf("team %s: invalid form entry %q", t.Name, r)
		}
	}

	return nil
}
