// Package recovery asks the wireless supplicant to reconfigure when the
// link is down, at most once per cooldown period.
package recovery

import (
	"bufio"
	"context"
	"strings"
	"time"

	"github.com/rileyhilliard/wifimon/internal/errors"
	"github.com/rileyhilliard/wifimon/internal/exec"
	"github.com/rileyhilliard/wifimon/internal/health"
	"github.com/rileyhilliard/wifimon/internal/logger"
)

// Options configures a Trigger. Commands are already expanded argv.
type Options struct {
	Enabled bool
	// AfterTicks is how many consecutive no-gateway cycles are tolerated.
	// Offline triggers on the first cycle.
	AfterTicks int
	Cooldown   time.Duration
	Timeout    time.Duration
	Settle     time.Duration

	Command []string
	// Alternative runs when Command fails. May be empty.
	Alternative []string
}

// Cooldown tracks the last attempt. The zero value means never attempted.
type Cooldown struct {
	LastAttempt time.Time
}

// Ready reports whether period has passed since the last attempt.
func (c Cooldown) Ready(now time.Time, period time.Duration) bool {
	return c.LastAttempt.IsZero() || now.Sub(c.LastAttempt) >= period
}

// Remaining is how long until Ready, or zero.
func (c Cooldown) Remaining(now time.Time, period time.Duration) time.Duration {
	if c.Ready(now, period) {
		return 0
	}
	return period - now.Sub(c.LastAttempt)
}

// Trigger owns the cooldown and runs the reconfigure commands.
type Trigger struct {
	runner  exec.Runner
	opts    Options
	journal Journal
	log     logger.Logger

	cooldown Cooldown
	attempts int
}

// NewTrigger creates a Trigger. A nil journal records nothing.
func NewTrigger(runner exec.Runner, opts Options, journal Journal, log logger.Logger) *Trigger {
	if journal == nil {
		journal = NopJournal{}
	}
	if log == nil {
		log = logger.Noop()
	}
	return &Trigger{runner: runner, opts: opts, journal: journal, log: log}
}

// Eligible reports whether state calls for recovery, ignoring the cooldown.
func (t *Trigger) Eligible(state health.State, noGatewayTicks int) bool {
	if !t.opts.Enabled {
		return false
	}
	switch state {
	case health.Offline:
		return true
	case health.DegradedNoGateway:
		return noGatewayTicks >= t.opts.AfterTicks
	default:
		return false
	}
}

// Due reports whether MaybeTrigger would fire now.
func (t *Trigger) Due(state health.State, noGatewayTicks int, now time.Time) bool {
	return t.Eligible(state, noGatewayTicks) && t.cooldown.Ready(now, t.opts.Cooldown)
}

// MaybeTrigger runs the reconfigure command when Due. The cooldown is
// stamped before the command starts, so a hung or failed command still
// holds off the next attempt. A cancelled ctx issues nothing and leaves
// the cooldown untouched. Returns whether a command was issued.
func (t *Trigger) MaybeTrigger(ctx context.Context, state health.State, noGatewayTicks int, now time.Time) bool {
	if ctx.Err() != nil {
		return false
	}
	if !t.Eligible(state, noGatewayTicks) {
		return false
	}
	if !t.cooldown.Ready(now, t.opts.Cooldown) {
		t.log.Debug("recovery for %s held off, %s of cooldown left",
			state, t.cooldown.Remaining(now, t.opts.Cooldown).Round(time.Second))
		return false
	}

	t.cooldown.LastAttempt = now
	t.attempts++
	reason := state.String()
	t.log.Info("link %s, reconfiguring (attempt %d)", reason, t.attempts)

	res := t.run(ctx, now, reason, t.opts.Command)
	if err := commandFailed(res); err != nil {
		t.log.Warn("reconfigure failed: %s", errors.Summary(err))
		if len(t.opts.Alternative) > 0 && ctx.Err() == nil {
			alt := t.run(ctx, now, reason+" (alternative)", t.opts.Alternative)
			if err := commandFailed(alt); err != nil {
				t.log.Warn("alternative reconfigure failed: %s", errors.Summary(err))
			}
		}
	}

	return true
}

// Settle waits for the supplicant to re-associate after an attempt.
// Returns ctx.Err() if cancelled first.
func (t *Trigger) Settle(ctx context.Context) error {
	if t.opts.Settle <= 0 {
		return nil
	}
	timer := time.NewTimer(t.opts.Settle)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Cooldown returns the current cooldown state.
func (t *Trigger) Cooldown() Cooldown {
	return t.cooldown
}

// Attempts counts recovery attempts since start.
func (t *Trigger) Attempts() int {
	return t.attempts
}

func (t *Trigger) run(ctx context.Context, now time.Time, reason string, argv []string) exec.Result {
	res := t.runner.Run(ctx, argv, t.opts.Timeout)
	if err := t.journal.Record(Entry{Time: now, Reason: reason, Result: res}); err != nil {
		t.log.Warn("%s", errors.Summary(err))
	}
	return res
}

// commandFailed reports why a reconfigure command didn't succeed. wpa_cli
// exits 0 even when the daemon replies FAIL, so the reply is checked too.
func commandFailed(res exec.Result) error {
	if err := res.Err(); err != nil {
		return err
	}
	if reply := failReply(res.Stdout); reply != "" {
		name := "command"
		if len(res.Argv) > 0 {
			name = res.Argv[0]
		}
		return errors.New(errors.ErrRecovery, name+" replied "+reply, "")
	}
	return nil
}

func failReply(out string) string {
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "FAIL" || strings.HasPrefix(line, "FAIL-") {
			return line
		}
	}
	return ""
}
