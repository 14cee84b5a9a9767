// Package loader bootstraps external SDK scripts and waits until they are usable.
//
// A script counts as ready only once its host reports the watched global property,
// not merely when the script itself finished loading.
package loader

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gxplayer/gxplayer/log"
)

// DefaultInterval is how often the watched property is polled.
const DefaultInterval = 100 * time.Millisecond

var (
	// ErrLoadFailed is wrapped by every *LoadError.
	ErrLoadFailed = errors.New("script failed to load")

	// ErrTimedOut is returned when the property did not appear within MaxWait.
	ErrTimedOut = errors.New("script readiness timed out")
)

// LoadError reports a script the host could not load.
type LoadError struct {
	Src string
	Err error
}

func (e *LoadError) Error() string {
	return e.Src + " failed to load"
}

func (e *LoadError) Unwrap() []error {
	return []error{ErrLoadFailed, e.Err}
}

// Host injects scripts and answers global property lookups.
type Host interface {
	// AppendScript inserts src under parent. The returned channel yields exactly one
	// value: nil once the script ran, or the reason it could not.
	AppendScript(ctx context.Context, src, parent string) <-chan error

	// Defined reports whether the dotted global path resolves.
	Defined(path string) bool
}

// State is the lifecycle of a Loader.
type State int

const (
	Idle State = iota
	Loading
	Ready
	Failed
	TimedOut
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	case TimedOut:
		return "timed out"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Loader loads one script through a Host.
type Loader struct {
	// Src is the script location handed to the host.
	Src string
	// Property is the dotted global path confirming the SDK initialised. Empty means
	// the script load alone is enough.
	Property string
	// Parent is the element the script is appended to; empty lets the host decide.
	Parent string
	// Interval between property checks, DefaultInterval when zero.
	Interval time.Duration
	// MaxWait bounds the property polling; zero waits until the context ends.
	MaxWait time.Duration

	host Host

	mu      sync.Mutex
	state   State
	attempt *attempt
}

// attempt is one run of the script, shared by every caller waiting on it.
type attempt struct {
	done chan struct{}
	err  error
}

// stateAfter is the state an attempt ending with err leaves the loader in.
func stateAfter(err error) State {
	switch {
	case err == nil:
		return Ready
	case errors.Is(err, ErrTimedOut):
		return TimedOut
	case errors.Is(err, ErrLoadFailed):
		return Failed
	default:
		// cancelled by its caller: allow a fresh attempt later
		return Idle
	}
}

// New creates an idle loader for src, ready once property is defined on host.
func New(host Host, src, property string) *Loader {
	return &Loader{
		Src:      src,
		Property: property,
		Interval: DefaultInterval,
		host:     host,
	}
}

// State returns the current lifecycle state.
func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Load appends the script and waits for the property.
// Concurrent calls share one attempt; a ready loader returns immediately, a failed
// or timed out one tries again. A waiter whose shared attempt was cancelled by
// another caller starts its own.
func (l *Loader) Load(ctx context.Context) (string, error) {
	for {
		l.mu.Lock()
		switch l.state {
		case Ready:
			l.mu.Unlock()
			return l.readyMessage(), nil
		case Loading:
			shared := l.attempt
			l.mu.Unlock()

			select {
			case <-shared.done:
			case <-ctx.Done():
				return "", ctx.Err()
			}

			if shared.err == nil {
				return l.readyMessage(), nil
			}
			if stateAfter(shared.err) == Idle {
				continue
			}
			return "", shared.err
		}

		own := &attempt{done: make(chan struct{})}
		l.state = Loading
		l.attempt = own
		l.mu.Unlock()

		err := l.run(ctx)

		l.mu.Lock()
		own.err = err
		l.state = stateAfter(err)
		close(own.done)
		l.mu.Unlock()

		if err != nil {
			return "", err
		}
		return l.readyMessage(), nil
	}
}

func (l *Loader) run(ctx context.Context) error {
	logger := log.WithFields(log.Fields{"src": l.Src, "property": l.Property})
	logger.Debug("appending script")

	select {
	case err := <-l.host.AppendScript(ctx, l.Src, l.Parent):
		if err != nil {
			logger.Warnf("script failed: %v", err)
			return &LoadError{Src: l.Src, Err: err}
		}
	case <-ctx.Done():
		return ctx.Err()
	}

	if l.Property == "" {
		return nil
	}

	if err := l.waitForProperty(ctx); err != nil {
		logger.Warnf("property never appeared: %v", err)
		return err
	}

	logger.Debug("script ready")
	return nil
}

// waitForProperty polls the host until the property is defined, the context ends
// or MaxWait elapses.
func (l *Loader) waitForProperty(ctx context.Context) error {
	if l.host.Defined(l.Property) {
		return nil
	}

	interval := l.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var deadline <-chan time.Time
	if l.MaxWait > 0 {
		timer := time.NewTimer(l.MaxWait)
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline:
			return fmt.Errorf("%w: %s not defined after %s", ErrTimedOut, l.Property, l.MaxWait)
		case <-ticker.C:
			if l.host.Defined(l.Property) {
				return nil
			}
		}
	}
}

func (l *Loader) readyMessage() string {
	return l.Src + " ready"
}
