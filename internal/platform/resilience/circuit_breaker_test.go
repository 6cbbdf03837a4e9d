package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	t.Parallel()

	b := NewCircuitBreaker(3, time.Minute, 1)

	for i := 0; i < 3; i++ {
		if err := b.Allow(); err != nil {
			t.Fatalf("closed breaker rejected request %d: %v", i, err)
		}
		b.RecordFailure()
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if got := b.State(); got != CircuitStateOpen {
		t.Fatalf("expected open state, got %s", got)
	}
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	t.Parallel()

	b := NewCircuitBreaker(2, time.Minute, 1)
	b.RecordFailure()
	b.RecordSuccess()
	b.RecordFailure()

	if err := b.Allow(); err != nil {
		t.Fatalf("breaker should still be closed: %v", err)
	}
}

func TestCircuitBreaker_HalfOpenProbeThenClose(t *testing.T) {
	t.Parallel()

	b := NewCircuitBreaker(1, 10*time.Millisecond, 1)
	fakeNow := time.Now()
	b.now = func() time.Time { return fakeNow }

	b.RecordFailure()
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected open breaker, got %v", err)
	}

	fakeNow = fakeNow.Add(20 * time.Millisecond)
	if err := b.Allow(); err != nil {
		t.Fatalf("half-open probe rejected: %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected extra half-open request rejected, got %v", err)
	}

	b.RecordSuccess()
	if got := b.State(); got != CircuitStateClosed {
		t.Fatalf("expected closed after probe success, got %s", got)
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	t.Parallel()

	b := NewCircuitBreaker(1, 10*time.Millisecond, 1)
	fakeNow := time.Now()
	b.now = func() time.Time { return fakeNow }

	b.RecordFailure()
	fakeNow = fakeNow.Add(20 * time.Millisecond)
	if err := b.Allow(); err != nil {
		t.Fatalf("half-open probe rejected: %v", err)
	}

	b.RecordFailure()
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected reopened breaker, got %v", err)
	}
}

func TestNormalizeCircuitBreakerConfig(t *testing.T) {
	t.Parallel()

	got := NormalizeCircuitBreakerConfig(CircuitBreakerConfig{Enabled: true})
	defaults := DefaultCircuitBreakerConfig()
	if got.FailureThreshold != defaults.FailureThreshold || got.OpenTimeout != defaults.OpenTimeout || got.HalfOpenMaxReq != defaults.HalfOpenMaxReq {
		t.Fatalf("unexpected normalized config: %+v", got)
	}
}
