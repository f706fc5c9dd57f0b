package resilience

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half_open"
)

type BreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenProbes   int
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      15 * time.Second,
		HalfOpenProbes:   2,
	}
}

// Breaker stops calling a failing store for OpenTimeout after
// FailureThreshold consecutive failures, then lets HalfOpenProbes calls
// through to decide whether to close again.
type Breaker struct {
	name string
	cfg  BreakerConfig

	mu                sync.Mutex
	state             State
	failures          int
	openedAt          time.Time
	probesInFlight    int
	probeSuccesses    int
	now               func() time.Time
	onStateTransition func(name string, from, to State)
}

func NewBreaker(name string, cfg BreakerConfig) *Breaker {
	defaults := DefaultBreakerConfig()
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaults.OpenTimeout
	}
	if cfg.HalfOpenProbes < 1 {
		cfg.HalfOpenProbes = defaults.HalfOpenProbes
	}

	return &Breaker{
		name:  name,
		cfg:   cfg,
		state: StateClosed,
		now:   time.Now,
	}
}

// OnStateChange registers a hook called (under the breaker lock) on every
// state transition.
func (b *Breaker) OnStateChange(fn func(name string, from, to State)) {
	b.mu.Lock()
	b.onStateTransition = fn
	b.mu.Unlock()
}

// Do runs fn unless the breaker is open. Context cancellation is not counted
// as a store failure.
func (b *Breaker) Do(ctx context.Context, fn func(context.Context) error) error {
	if b == nil || !b.cfg.Enabled {
		return fn(ctx)
	}
	if err := b.allow(); err != nil {
		return err
	}

	err := fn(ctx)
	switch {
	case err == nil:
		b.recordSuccess()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		b.release()
	default:
		b.recordFailure()
	}
	return err
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		return StateHalfOpen
	}
	return b.state
}

func (b *Breaker) allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		if b.now().Sub(b.openedAt) < b.cfg.OpenTimeout {
			return fmt.Errorf("%w: %s", ErrCircuitOpen, b.name)
		}
		b.transition(StateHalfOpen)
	}
	if b.state == StateHalfOpen {
		if b.probesInFlight >= b.cfg.HalfOpenProbes {
			return fmt.Errorf("%w: %s", ErrCircuitOpen, b.name)
		}
		b.probesInFlight++
	}

	return nil
}

func (b *Breaker) recordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		b.failures = 0
	case StateHalfOpen:
		if b.probesInFlight > 0 {
			b.probesInFlight--
		}
		b.probeSuccesses++
		if b.probeSuccesses >= b.cfg.HalfOpenProbes && b.probesInFlight == 0 {
			b.transition(StateClosed)
		}
	}
}

func (b *Breaker) recordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.transition(StateOpen)
		}
	case StateHalfOpen:
		b.transition(StateOpen)
	case StateOpen:
		b.openedAt = b.now()
	}
}

func (b *Breaker) release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateHalfOpen && b.probesInFlight > 0 {
		b.probesInFlight--
	}
}

func (b *Breaker) transition(to State) {
	from := b.state
	b.state = to
	b.failures = 0
	b.probesInFlight = 0
	b.probeSuccesses = 0
	b.openedAt = time.Time{}
	if to == StateOpen {
		b.openedAt = b.now()
	}
	if b.onStateTransition != nil && from != to {
		b.onStateTransition(b.name, from, to)
	}
}
