package team

import "context"

// Repository reads the immutable team record store seeded at startup.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	GetByName(ctx context.Context, name string) (Team, bool, error)
}
