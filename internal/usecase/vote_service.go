package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/rsl-league/tournament-api/internal/domain/player"
	"github.com/rsl-league/tournament-api/internal/platform/logging"
	"github.com/rsl-league/tournament-api/internal/platform/resilience"
)

// AwardKind keys an award's vote tree. The values double as storage path
// segments, so they stay free of dots, slashes and brackets.
type AwardKind string

const (
	AwardBallonDor   AwardKind = "rsl_ballon_dor_vote"
	AwardWoodenSpoon AwardKind = "rsl_wooden_spoon_vote"
)

// VotePhase is derived from the configured instants, never stored.
type VotePhase string

const (
	PhaseLocked  VotePhase = "locked"
	PhaseVoting  VotePhase = "voting"
	PhaseResults VotePhase = "results"
)

// VoteBackend is the tally store. The external Firebase client and the
// in-memory fallback both satisfy it.
type VoteBackend interface {
	CastVote(ctx context.Context, award, deviceID string, playerID int) error
	FetchCounts(ctx context.Context, award string) (map[int]int, int, error)
}

type VoteConfig struct {
	VotingStart  time.Time
	ResultsAt    time.Time
	PollInterval time.Duration
}

// AwardSummary describes one award for the awards listing.
type AwardSummary struct {
	Award       AwardKind
	Title       string
	Phase       VotePhase
	VotingStart time.Time
	ResultsAt   time.Time
	Candidates  []player.Rated
}

// VoteCounts is one observed tally. Later polls replace earlier ones
// wholesale; there is no merging.
type VoteCounts struct {
	Award     AwardKind
	Counts    map[int]int
	Total     int
	FetchedAt time.Time
}

// AwardResult is a decided award. FromFallback marks a stat-based winner used
// when no votes exist or the tally backend is unreachable.
type AwardResult struct {
	Award        AwardKind
	Winner       player.Rated
	Votes        int
	TotalVotes   int
	FromFallback bool
}

type voteSubscriber struct {
	award AwardKind
	ch    chan VoteCounts
}

type VoteService struct {
	playerRepo player.Repository
	backend    VoteBackend
	cfg        VoteConfig
	logger     *logging.Logger
	now        func() time.Time

	mu          sync.RWMutex
	latest      map[AwardKind]VoteCounts
	subscribers map[int]*voteSubscriber
	nextSubID   int
}

func NewVoteService(playerRepo player.Repository, backend VoteBackend, cfg VoteConfig, logger *logging.Logger) *VoteService {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &VoteService{
		playerRepo:  playerRepo,
		backend:     backend,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
		latest:      make(map[AwardKind]VoteCounts),
		subscribers: make(map[int]*voteSubscriber),
	}
}

// Awards is the fixed set of votable awards.
func Awards() []AwardKind {
	return []AwardKind{AwardBallonDor, AwardWoodenSpoon}
}

func ParseAward(v string) (AwardKind, error) {
	switch AwardKind(v) {
	case AwardBallonDor, AwardWoodenSpoon:
		return AwardKind(v), nil
	default:
		return "", fmt.Errorf("%w: unknown award %q", ErrInvalidInput, strings.TrimSpace(v))
	}
}

func awardTitle(award AwardKind) string {
	if award == AwardWoodenSpoon {
		return "Wooden Spoon"
	}
	return "Ballon d'Or"
}

// Phase resolves the award lifecycle at a given instant: results once the
// results date passes, voting from the voting start, locked before that.
func (s *VoteService) Phase(at time.Time) VotePhase {
	switch {
	case !at.Before(s.cfg.ResultsAt):
		return PhaseResults
	case !at.Before(s.cfg.VotingStart):
		return PhaseVoting
	default:
		return PhaseLocked
	}
}

// ListAwards returns both awards with their candidate orderings: favorites
// first for the Ballon d'Or, strugglers first for the Wooden Spoon.
func (s *VoteService) ListAwards(ctx context.Context) ([]AwardSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "VoteService.ListAwards")
	defer span.End()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	phase := s.Phase(s.now())
	out := make([]AwardSummary, 0, 2)
	for _, award := range Awards() {
		out = append(out, AwardSummary{
			Award:       award,
			Title:       awardTitle(award),
			Phase:       phase,
			VotingStart: s.cfg.VotingStart,
			ResultsAt:   s.cfg.ResultsAt,
			Candidates:  rankCandidates(players, award),
		})
	}

	return out, nil
}

// Cast records one device's vote. Voting phase only; a device voting again
// replaces its previous pick at the backend.
func (s *VoteService) Cast(ctx context.Context, award AwardKind, deviceID string, playerID int) error {
	ctx, span := startUsecaseSpan(ctx, "VoteService.Cast")
	defer span.End()

	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return fmt.Errorf("%w: device id is required", ErrInvalidInput)
	}

	if phase := s.Phase(s.now()); phase != PhaseVoting {
		return fmt.Errorf("%w: phase=%s", ErrVotingClosed, phase)
	}

	if _, exists, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		return fmt.Errorf("get player: %w", err)
	} else if !exists {
		return fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
	}

	if err := s.backend.CastVote(ctx, string(award), deviceID, playerID); err != nil {
		if errors.Is(err, resilience.ErrCircuitOpen) {
			return fmt.Errorf("%w: vote tally backend: %v", ErrDependencyUnavailable, err)
		}
		return fmt.Errorf("cast vote: %w", err)
	}

	return nil
}

// Counts returns the most recently observed tally, fetching synchronously
// when the poller has not seen this award yet.
func (s *VoteService) Counts(ctx context.Context, award AwardKind) (VoteCounts, error) {
	ctx, span := startUsecaseSpan(ctx, "VoteService.Counts")
	defer span.End()

	s.mu.RLock()
	cached, ok := s.latest[award]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	return s.refresh(ctx, award)
}

// Subscribe registers a live-count listener. The channel receives the current
// tally immediately when one is known, then every poller refresh. The cancel
// function must be called when the listener goes away.
func (s *VoteService) Subscribe(award AwardKind) (<-chan VoteCounts, func()) {
	ch := make(chan VoteCounts, 4)

	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = &voteSubscriber{award: award, ch: ch}
	if cached, ok := s.latest[award]; ok {
		ch <- cached
	}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}

	return ch, cancel
}

// Result decides an award once the results phase opens. Vote counts win when
// any exist; otherwise, or when the tally backend is down, the stat-based
// fallback applies.
func (s *VoteService) Result(ctx context.Context, award AwardKind) (AwardResult, error) {
	ctx, span := startUsecaseSpan(ctx, "VoteService.Result")
	defer span.End()

	if phase := s.Phase(s.now()); phase != PhaseResults {
		return AwardResult{}, fmt.Errorf("%w: results are not published yet, phase=%s", ErrVotingClosed, phase)
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return AwardResult{}, fmt.Errorf("list players: %w", err)
	}
	if len(players) == 0 {
		return AwardResult{}, fmt.Errorf("%w: no candidates", ErrNotFound)
	}

	counts, err := s.Counts(ctx, award)
	if err != nil || counts.Total == 0 {
		if err != nil {
			s.logger.WarnContext(ctx, "falling back to stat-based award winner", "award", award, "error", err)
		}
		ranked := rankCandidates(players, award)
		return AwardResult{
			Award:        award,
			Winner:       ranked[0],
			FromFallback: true,
		}, nil
	}

	var winner player.Rated
	winnerVotes := -1
	for _, p := range players {
		votes := counts.Counts[p.ID]
		if votes > winnerVotes || (votes == winnerVotes && p.ID < winner.ID) {
			winner = p
			winnerVotes = votes
		}
	}

	return AwardResult{
		Award:      award,
		Winner:     winner,
		Votes:      winnerVotes,
		TotalVotes: counts.Total,
	}, nil
}

// RunPoller refreshes tallies for every award while the voting phase is open
// and fans each refresh out to subscribers. It blocks until ctx is canceled.
func (s *VoteService) RunPoller(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if phase := s.Phase(s.now()); phase == PhaseLocked {
			continue
		}

		var wg conc.WaitGroup
		for _, award := range Awards() {
			award := award
			wg.Go(func() {
				if _, err := s.refresh(ctx, award); err != nil {
					s.logger.WarnContext(ctx, "vote tally refresh failed", "award", award, "error", err)
				}
			})
		}
		wg.Wait()
	}
}

func (s *VoteService) refresh(ctx context.Context, award AwardKind) (VoteCounts, error) {
	counts, total, err := s.backend.FetchCounts(ctx, string(award))
	if err != nil {
		if errors.Is(err, resilience.ErrCircuitOpen) {
			return VoteCounts{}, fmt.Errorf("%w: vote tally backend: %v", ErrDependencyUnavailable, err)
		}
		return VoteCounts{}, fmt.Errorf("fetch counts: %w", err)
	}

	snapshot := VoteCounts{
		Award:     award,
		Counts:    counts,
		Total:     total,
		FetchedAt: s.now(),
	}

	s.mu.Lock()
	s.latest[award] = snapshot
	for _, sub := range s.subscribers {
		if sub.award != award {
			continue
		}
		// Slow consumers drop updates instead of blocking the poller.
		select {
		case sub.ch <- snapshot:
		default:
		}
	}
	s.mu.Unlock()

	return snapshot, nil
}

// rankCandidates orders players for an award: rating then goal contributions,
// descending for the Ballon d'Or and ascending for the Wooden Spoon, player
// id ascending on full ties.
func rankCandidates(players []player.Rated, award AwardKind) []player.Rated {
	ranked := make([]player.Rated, len(players))
	copy(ranked, players)

	worstFirst := award == AwardWoodenSpoon
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if worstFirst {
			a, b = b, a
		}
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		if a.Contributions() != b.Contributions() {
			return a.Contributions() > b.Contributions()
		}
		return ranked[i].ID < ranked[j].ID
	})

	return ranked
}
