package resilience

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrOpen is returned when the breaker refuses a call outright.
	ErrOpen = errors.New("circuit open")
	// ErrTooManyProbes is returned when a half-open breaker already has
	// its allowed probe calls in flight.
	ErrTooManyProbes = errors.New("too many probes")
)

// State is the condition of a breaker.
type State int

const (
	// StateClosed allows calls through and counts failures.
	StateClosed State = iota
	// StateOpen rejects calls until the cooldown elapses.
	StateOpen
	// StateHalfOpen lets a limited number of probe calls through.
	StateHalfOpen
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Config tunes a breaker.
type Config struct {
	// TripAfter is the number of consecutive failures that opens the
	// breaker. Defaults to 3.
	TripAfter uint32

	// Cooldown is how long the breaker stays open before moving to
	// half-open. Defaults to 30 seconds.
	Cooldown time.Duration

	// Probes is how many calls a half-open breaker lets through at
	// once. All of them must succeed to close the breaker again.
	// Defaults to 1.
	Probes uint32

	// OnChange, if set, is called after every state transition.
	OnChange func(name string, from, to State)
}

// Breaker trips after consecutive failures of a guarded call and
// rejects further calls until a cooldown passes. Spawning a shell that
// exits immediately is the canonical case: the breaker turns a crash
// loop into a fast, explicit error.
type Breaker struct {
	name string
	cfg  Config

	mu        sync.Mutex
	state     State
	failures  uint32
	probes    uint32
	successes uint32
	openedAt  time.Time
}

// New creates a breaker with the given name, applying defaults for
// zero-valued config fields.
func New(name string, cfg Config) *Breaker {
	if cfg.TripAfter == 0 {
		cfg.TripAfter = 3
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 30 * time.Second
	}
	if cfg.Probes == 0 {
		cfg.Probes = 1
	}
	return &Breaker{name: name, cfg: cfg}
}

// Name returns the breaker's name.
func (b *Breaker) Name() string {
	return b.name
}

// State returns the current state, accounting for cooldown expiry.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentState(time.Now())
}

// Do runs fn under the breaker. When the breaker rejects the call it
// returns ErrOpen or ErrTooManyProbes without invoking fn; otherwise
// it records fn's outcome and returns fn's error.
func (b *Breaker) Do(fn func() error) error {
	if err := b.allow(); err != nil {
		return err
	}
	err := fn()
	b.record(err == nil)
	return err
}

// allow decides whether a call may proceed, reserving a probe slot
// when half-open.
func (b *Breaker) allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.currentState(time.Now()) {
	case StateOpen:
		return ErrOpen
	case StateHalfOpen:
		if b.probes >= b.cfg.Probes {
			return ErrTooManyProbes
		}
		b.probes++
	}
	return nil
}

// record feeds a call outcome into the state machine.
func (b *Breaker) record(success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	switch b.currentState(now) {
	case StateClosed:
		if success {
			b.failures = 0
			return
		}
		b.failures++
		if b.failures >= b.cfg.TripAfter {
			b.transition(StateOpen, now)
		}
	case StateHalfOpen:
		if b.probes > 0 {
			b.probes--
		}
		if !success {
			b.transition(StateOpen, now)
			return
		}
		b.successes++
		if b.successes >= b.cfg.Probes {
			b.transition(StateClosed, now)
		}
	}
}

// currentState resolves open-to-half-open expiry. Callers hold b.mu.
func (b *Breaker) currentState(now time.Time) State {
	if b.state == StateOpen && now.Sub(b.openedAt) >= b.cfg.Cooldown {
		b.transition(StateHalfOpen, now)
	}
	return b.state
}

// transition moves to a new state and resets the counters. Callers
// hold b.mu.
func (b *Breaker) transition(to State, now time.Time) {
	if b.state == to {
		return
	}
	from := b.state
	b.state = to
	b.failures = 0
	b.probes = 0
	b.successes = 0
	if to == StateOpen {
		b.openedAt = now
	}
	if b.cfg.OnChange != nil {
		b.cfg.OnChange(b.name, from, to)
	}
}
