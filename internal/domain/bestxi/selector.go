package bestxi

import (
	"sort"

	"github.com/rsl-league/tournament-api/internal/domain/player"
)

// Row is the coarse pitch grouping a player occupies in a best-XI card.
type Row string

const (
	RowAttack   Row = "Attack"
	RowMidfield Row = "Midfield"
	RowDefense  Row = "Defense"
)

// rowOrder is the fixed pass order for squad selection.
var rowOrder = []Row{RowAttack, RowMidfield, RowDefense}

// RowForPosition is total: unknown positions land in midfield.
func RowForPosition(pos player.Position) Row {
	switch pos {
	case player.PositionForward:
		return RowAttack
	case player.PositionMidfielder:
		return RowMidfield
	case player.PositionDefender:
		return RowDefense
	default:
		return RowMidfield
	}
}

// CompositeScore is the squad-ranking blend. It is never displayed on its
// own; it only orders the pool.
func CompositeScore(p player.Rated) float64 {
	return float64(p.Goals)*3 + float64(p.Assists)*2 + float64(p.CleanSheets)*2 + p.Rating
}

// Pick is one selected player tagged with its pitch row and composite score.
type Pick struct {
	Player player.Rated
	Row    Row
	Score  float64
}

// Squad is an ordered selection of up to four picks.
type Squad []Pick

// SelectSquads partitions the pool into two disjoint squads of up to four
// players. Squad one is picked first from the full pool ordered by composite
// score descending (ties go to the lower player id); squad two re-applies the
// same row-priority pass over the remainder in its retained order, not a
// global re-sort. A row with no eligible player is skipped, so squads can be
// short; an empty pool yields two empty squads.
func SelectSquads(pool []player.Rated) (Squad, Squad) {
	scored := make([]Pick, 0, len(pool))
	for _, p := range pool {
		scored = append(scored, Pick{
			Player: p,
			Row:    RowForPosition(p.Position),
			Score:  CompositeScore(p),
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Player.ID < scored[j].Player.ID
	})

	first, used := pickSquad(scored, nil)
	second, _ := pickSquad(scored, used)

	return first, second
}

// pickSquad runs one selection pass: the best available player per row in
// fixed row order, then the best remaining player as the fourth slot.
func pickSquad(pool []Pick, excluded map[int]struct{}) (Squad, map[int]struct{}) {
	used := make(map[int]struct{}, len(excluded)+4)
	for id := range excluded {
		used[id] = struct{}{}
	}

	squad := make(Squad, 0, 4)
	take := func(pick Pick) {
		squad = append(squad, pick)
		used[pick.Player.ID] = struct{}{}
	}

	for _, row := range rowOrder {
		for _, pick := range pool {
			if _, ok := used[pick.Player.ID]; ok {
				continue
			}
			if pick.Row == row {
				take(pick)
				break
			}
		}
	}

	for _, pick := range pool {
		if _, ok := used[pick.Player.ID]; !ok {
			take(pick)
			break
		}
	}

	return squad, used
}
