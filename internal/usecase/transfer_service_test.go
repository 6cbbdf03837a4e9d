package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rsl-league/tournament-api/internal/domain/team"
)

func TestNextSundayNoon(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "midweek rolls to coming sunday",
			now:  time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC), // Wednesday
			want: time.Date(2026, 9, 6, 12, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday morning closes at noon the same day",
			now:  time.Date(2026, 9, 6, 11, 59, 0, 0, time.UTC),
			want: time.Date(2026, 9, 6, 12, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday at noon rolls a full week",
			now:  time.Date(2026, 9, 6, 12, 0, 0, 0, time.UTC),
			want: time.Date(2026, 9, 13, 12, 0, 0, 0, time.UTC),
		},
		{
			name: "saturday night",
			now:  time.Date(2026, 9, 5, 23, 30, 0, 0, time.UTC),
			want: time.Date(2026, 9, 6, 12, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := NextSundayNoon(tc.now); !got.Equal(tc.want) {
				t.Fatalf("NextSundayNoon(%v) = %v, want %v", tc.now, got, tc.want)
			}
		})
	}
}

func TestTransferService_Window(t *testing.T) {
	t.Parallel()

	service := NewTransferService(
		&stubTeamRepository{teams: fixtureTeams()},
		&stubPlayerRepository{players: fixturePlayers()},
	)
	now := time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	proposal, err := service.Window(context.Background())
	if err != nil {
		t.Fatalf("Window error: %v", err)
	}

	if proposal.FromTopTeam.Team.Name != "Red Wolves" {
		t.Fatalf("top team = %s, want Red Wolves", proposal.FromTopTeam.Team.Name)
	}
	if proposal.FromBottomTeam.Team.Name != "Green Eagles" {
		t.Fatalf("bottom team = %s, want Green Eagles", proposal.FromBottomTeam.Team.Name)
	}
	// Weakest of the leaders moves down, weakest of the strugglers moves up.
	if proposal.LeavingTop.ID != 8 {
		t.Fatalf("leaving top = %d, want 8", proposal.LeavingTop.ID)
	}
	if proposal.LeavingBottom.ID != 11 {
		t.Fatalf("leaving bottom = %d, want 11", proposal.LeavingBottom.ID)
	}

	wantDeadline := time.Date(2026, 9, 6, 12, 0, 0, 0, time.UTC)
	if !proposal.Deadline.Equal(wantDeadline) {
		t.Fatalf("deadline = %v, want %v", proposal.Deadline, wantDeadline)
	}
	if proposal.Remaining != wantDeadline.Sub(now) {
		t.Fatalf("remaining = %v, want %v", proposal.Remaining, wantDeadline.Sub(now))
	}
}

func TestTransferService_Window_NeedsTwoTeams(t *testing.T) {
	t.Parallel()

	service := NewTransferService(
		&stubTeamRepository{teams: []team.Team{{Name: "Lonely FC", Wins: 1}}},
		&stubPlayerRepository{},
	)

	if _, err := service.Window(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTransferService_Window_NeedsPlayersOnBothSides(t *testing.T) {
	t.Parallel()

	service := NewTransferService(
		&stubTeamRepository{teams: fixtureTeams()},
		&stubPlayerRepository{},
	)

	if _, err := service.Window(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
