// Package circuitbreaker guards the remote booking API transport. A run of
// consecutive transport failures opens the breaker and requests fail fast
// until a cooldown passes; the first request after the cooldown probes the
// remote and a success closes the breaker again.
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// ErrOpen is returned without touching the network while the breaker is open.
var ErrOpen = errors.New("circuit breaker open")

type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "closed"
	}
}

type Settings struct {
	Name         string
	FailureLimit int           // consecutive failures before opening
	Window       time.Duration // a quiet period this long resets the count
	Cooldown     time.Duration // open duration before a probe is allowed
}

type CircuitBreaker struct {
	name         string
	failureLimit int
	window       time.Duration
	cooldown     time.Duration

	mu          sync.Mutex
	state       State
	failures    int
	lastFailure time.Time
}

func New(settings Settings) *CircuitBreaker {
	if settings.FailureLimit <= 0 {
		settings.FailureLimit = 5
	}
	if settings.Cooldown <= 0 {
		settings.Cooldown = 30 * time.Second
	}
	return &CircuitBreaker{
		name:         settings.Name,
		failureLimit: settings.FailureLimit,
		window:       settings.Window,
		cooldown:     settings.Cooldown,
		state:        StateClosed,
	}
}

// State reports the breaker's current position.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Execute runs fn unless the breaker is open, in which case it returns
// ErrOpen immediately. fn's error is passed through unchanged.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if err := cb.before(); err != nil {
		return err
	}
	err := fn()
	cb.after(err)
	return err
}

func (cb *CircuitBreaker) before() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state != StateOpen {
		return nil
	}
	if time.Since(cb.lastFailure) < cb.cooldown {
		return ErrOpen
	}
	cb.state = StateHalfOpen
	return nil
}

func (cb *CircuitBreaker) after(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err == nil {
		cb.state = StateClosed
		cb.failures = 0
		return
	}

	now := time.Now()
	if cb.window > 0 && now.Sub(cb.lastFailure) > cb.window {
		cb.failures = 0
	}
	cb.failures++
	cb.lastFailure = now

	if cb.state == StateHalfOpen || cb.failures >= cb.failureLimit {
		cb.state = StateOpen
	}
}
