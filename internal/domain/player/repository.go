package player

import "context"

// Repository reads the immutable, already-rated player record store.
type Repository interface {
	List(ctx context.Context) ([]Rated, error)
	GetByID(ctx context.Context, id int) (Rated, bool, error)
	ListByTeam(ctx context.Context, teamName string) ([]Rated, error)
}
