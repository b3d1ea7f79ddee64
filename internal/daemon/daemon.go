// Package daemon runs the sample, classify, actuate, recover cycle until
// its context is cancelled.
package daemon

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/rileyhilliard/wifimon/internal/actuator"
	"github.com/rileyhilliard/wifimon/internal/errors"
	"github.com/rileyhilliard/wifimon/internal/health"
	"github.com/rileyhilliard/wifimon/internal/logger"
	"github.com/rileyhilliard/wifimon/internal/network"
)

// Phase is where the daemon is in its lifecycle.
type Phase int

const (
	Starting Phase = iota
	Polling
	ShuttingDown
	Stopped
)

func (p Phase) String() string {
	switch p {
	case Starting:
		return "starting"
	case Polling:
		return "polling"
	case ShuttingDown:
		return "shutting-down"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Sampler takes network snapshots.
type Sampler interface {
	Sample(ctx context.Context) network.Sample
}

// Actuator shows commands on the LEDs and display.
type Actuator interface {
	Apply(cmd actuator.Command)
	Off()
	Close()
}

// Recoverer decides on and runs supplicant reconfiguration.
type Recoverer interface {
	Due(state health.State, noGatewayTicks int, now time.Time) bool
	MaybeTrigger(ctx context.Context, state health.State, noGatewayTicks int, now time.Time) bool
	Settle(ctx context.Context) error
}

// Deps is everything the daemon needs, built once at startup.
type Deps struct {
	Sampler      Sampler
	Classifier   health.Classifier
	Actuator     Actuator
	Recoverer    Recoverer
	Log          logger.Logger
	PollInterval time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

// Status is a snapshot of the daemon's view of the link.
type Status struct {
	Phase          Phase
	Cycles         int
	State          health.State
	Sample         network.Sample
	NoGatewayTicks int
	Recoveries     int
	LastRecovery   time.Time
	LastError      string
}

// Daemon owns the poll loop. The no-gateway counter and the heartbeat are
// only touched from the loop goroutine.
type Daemon struct {
	deps  Deps
	sleep func(ctx context.Context, d time.Duration) error

	heartbeat bool

	mu     sync.Mutex
	status Status
}

// DefaultPollInterval is the pause between cycles.
const DefaultPollInterval = 15 * time.Second

// New creates a daemon in the Starting phase.
func New(deps Deps) *Daemon {
	if deps.Log == nil {
		deps.Log = logger.Noop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.PollInterval <= 0 {
		deps.PollInterval = DefaultPollInterval
	}
	return &Daemon{deps: deps, sleep: sleepCtx}
}

// Run polls until ctx is cancelled, then turns the actuators off and
// releases them. It returns nil on a clean shutdown.
func (d *Daemon) Run(ctx context.Context) error {
	d.deps.Log.Info("starting, polling every %s", d.deps.PollInterval)
	d.setPhase(Polling)

	for ctx.Err() == nil {
		if err := d.Cycle(ctx); err != nil && ctx.Err() == nil {
			d.deps.Log.Error("cycle %d failed: %s", d.Status().Cycles, errors.Summary(err))
		}
		if err := d.sleep(ctx, d.deps.PollInterval); err != nil {
			break
		}
	}

	d.setPhase(ShuttingDown)
	d.deps.Log.Info("shutting down")
	d.deps.Actuator.Off()
	d.deps.Actuator.Close()
	d.setPhase(Stopped)

	return nil
}

// Cycle runs one sample, classify, apply, recover pass. A panic anywhere
// in the cycle is recovered: the failure indication is shown and the
// panic is returned as an error.
func (d *Daemon) Cycle(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			d.deps.Log.Error("cycle panicked: %v\n%s", r, debug.Stack())
			err = errors.New(errors.ErrService, fmt.Sprintf("cycle panicked: %v", r), "")
			d.deps.Actuator.Apply(health.FailureCommand(d.deps.Now()))
			d.update(func(s *Status) {
				s.Cycles++
				s.LastError = errors.Summary(err)
			})
		}
	}()

	sample := d.deps.Sampler.Sample(ctx)
	// A sample cut short by shutdown reads as offline. Drop it.
	if err := ctx.Err(); err != nil {
		return err
	}
	prior := d.Status()
	state, ticks := d.deps.Classifier.Classify(sample, prior.State, prior.NoGatewayTicks)

	d.heartbeat = !d.heartbeat
	now := d.deps.Now()
	d.deps.Actuator.Apply(health.CommandFor(state, sample, now, d.heartbeat))

	d.update(func(s *Status) {
		s.Cycles++
		s.State = state
		s.Sample = sample
		s.NoGatewayTicks = ticks
		s.LastError = ""
	})

	for fact, ferr := range sample.Faults {
		d.deps.Log.Debug("%s unavailable: %s", fact, errors.Summary(ferr))
	}

	if !d.deps.Recoverer.Due(state, ticks, now) {
		return nil
	}

	d.deps.Actuator.Apply(health.CommandFor(health.Reconfiguring, sample, now, d.heartbeat))
	d.update(func(s *Status) { s.State = health.Reconfiguring })
	if d.deps.Recoverer.MaybeTrigger(ctx, state, ticks, now) {
		d.update(func(s *Status) {
			s.Recoveries++
			s.LastRecovery = now
		})
		if err := d.deps.Recoverer.Settle(ctx); err != nil {
			d.deps.Log.Debug("settle interrupted: %v", err)
		}
	}

	// Put the classified state back so the blink doesn't outlast the attempt.
	d.update(func(s *Status) { s.State = state })
	d.deps.Actuator.Apply(health.CommandFor(state, sample, d.deps.Now(), d.heartbeat))
	return nil
}

// Status returns a copy of the current status. Safe from any goroutine.
func (d *Daemon) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

func (d *Daemon) setPhase(p Phase) {
	d.update(func(s *Status) { s.Phase = p })
}

func (d *Daemon) update(fn func(*Status)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(&d.status)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
