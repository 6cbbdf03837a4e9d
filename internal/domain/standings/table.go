package standings

import (
	"sort"

	"github.com/rsl-league/tournament-api/internal/domain/team"
)

// Row is one derived league-table entry. Played, Points and GoalDifference are
// recomputed from the team counters on every build; nothing here is cached.
type Row struct {
	Team           team.Team
	Position       int
	Played         int
	Points         int
	GoalDifference int
}

// BuildTable derives a freshly ordered table from the team records. Ordering
// is points desc, goal difference desc, goals for desc; fully tied teams are
// ordered by name ascending so the table is deterministic.
func BuildTable(teams []team.Team) []Row {
	rows := make([]Row, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, Row{
			Team:           t,
			Played:         t.MatchesPlayed(),
			Points:         t.Points(),
			GoalDifference: t.GoalDifference(),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.Team.GoalsFor != b.Team.GoalsFor {
			return a.Team.GoalsFor > b.Team.GoalsFor
		}
		return a.Team.Name < b.Team.Name
	})

	for i := range rows {
		rows[i].Position = i + 1
	}

	return rows
}

// RankByDefense reorders table rows by goals conceded ascending, name
// ascending on ties. Positions are renumbered for the defensive view.
func RankByDefense(rows []Row) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Team.GoalsAgainst != b.Team.GoalsAgainst {
			return a.Team.GoalsAgainst < b.Team.GoalsAgainst
		}
		return a.Team.Name < b.Team.Name
	})

	for i := range out {
		out[i].Position = i + 1
	}

	return out
}
