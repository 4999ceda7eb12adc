// Package wait implements explicit waits: evaluate a condition repeatedly at
// a fixed interval until it holds or a timeout elapses.
package wait

import (
	"errors"
	"fmt"
	"time"
)

const (
	DefaultTimeout  = 10 * time.Second
	DefaultInterval = 500 * time.Millisecond
)

// ErrTimeout is matched by every *TimeoutError.
var ErrTimeout = errors.New("wait timed out")

// TimeoutError reports a condition that did not hold within Timeout.
type TimeoutError struct {
	Condition string
	Timeout   time.Duration
	// Last is the most recent ignored error, if any.
	Last error
}

func (e *TimeoutError) Error() string {
	if e.Last == nil {
		return fmt.Sprintf("timed out after %s waiting for %s", e.Timeout, e.Condition)
	}
	return fmt.Sprintf("timed out after %s waiting for %s: %v", e.Timeout, e.Condition, e.Last)
}

func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// Poller holds the timing of a wait. It has no state between waits and can
// be reused.
type Poller struct {
	timeout  time.Duration
	interval time.Duration
	ignored  []error
	sleep    func(time.Duration)
	now      func() time.Time
}

// Option configures a Poller.
type Option func(*Poller)

// WithInterval sets the delay between two evaluations of the condition.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		p.interval = d
	}
}

// Ignoring makes errors matching any of errs (via errors.Is) count as "not
// satisfied yet" instead of aborting the wait.
func Ignoring(errs ...error) Option {
	return func(p *Poller) {
		p.ignored = append(p.ignored, errs...)
	}
}

// withClock replaces the time source. Tests only.
func withClock(now func() time.Time, sleep func(time.Duration)) Option {
	return func(p *Poller) {
		p.now = now
		p.sleep = sleep
	}
}

// New creates a Poller that gives up after timeout.
func New(timeout time.Duration, opts ...Option) *Poller {
	p := &Poller{
		timeout:  timeout,
		interval: DefaultInterval,
		sleep:    time.Sleep,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Timeout returns the configured timeout.
func (p *Poller) Timeout() time.Duration {
	return p.timeout
}

// Interval returns the configured poll interval.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

func (p *Poller) isIgnored(err error) bool {
	for _, target := range p.ignored {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// For evaluates cond until it reports ok, returning the value it produced.
// The condition is evaluated at least once, even with a zero timeout.
// Errors not registered with Ignoring abort the wait and are returned
// unchanged. When the timeout elapses first, For returns a *TimeoutError
// describing condition.
//
// For blocks the calling goroutine for at most the timeout plus one
// evaluation of cond.
func For[T any](p *Poller, condition string, cond func() (T, bool, error)) (T, error) {
	var zero T
	var last error

	deadline := p.now().Add(p.timeout)
	for {
		value, ok, err := cond()
		switch {
		case err != nil && !p.isIgnored(err):
			return zero, err
		case err != nil:
			last = err
		case ok:
			return value, nil
		}

		remaining := deadline.Sub(p.now())
		if remaining <= 0 {
			return zero, &TimeoutError{Condition: condition, Timeout: p.timeout, Last: last}
		}
		p.sleep(min(p.interval, remaining))
	}
}
