// Package exec runs the external commands wifimon samples and acts through.
//
// Commands are always argv slices, never shell strings. A Result describes
// exactly one of four outcomes: the process exited (any code), it timed out,
// the context was cancelled, or it could not be launched.
package exec

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rileyhilliard/wifimon/internal/errors"
)

// MaxOutputBytes caps how much of each stream is kept.
const MaxOutputBytes = 64 * 1024

// Runner executes a command and waits for it.
type Runner interface {
	// Run never returns an error for a non-zero exit; inspect the Result.
	// A timeout <= 0 means no per-call limit beyond ctx.
	Run(ctx context.Context, argv []string, timeout time.Duration) Result
}

// Result is the outcome of one command.
type Result struct {
	Argv     []string
	ExitCode int
	Stdout   string
	Stderr   string

	// TimedOut is set when the per-call timeout expired and the child was killed.
	TimedOut bool
	// Canceled is set when ctx was cancelled before the child finished.
	Canceled bool
	// LaunchErr is set when the executable could not be started. ExitCode is -1.
	LaunchErr error
	// Truncated is set when either stream exceeded MaxOutputBytes.
	Truncated bool

	Duration time.Duration
}

// OK reports whether the command ran to completion with exit status 0.
func (r Result) OK() bool {
	return r.LaunchErr == nil && !r.TimedOut && !r.Canceled && r.ExitCode == 0
}

// Combined returns stdout followed by stderr.
func (r Result) Combined() string {
	switch {
	case r.Stderr == "":
		return r.Stdout
	case r.Stdout == "":
		return r.Stderr
	case strings.HasSuffix(r.Stdout, "\n"):
		return r.Stdout + r.Stderr
	default:
		return r.Stdout + "\n" + r.Stderr
	}
}

// Status is a short description of how the command ended, for logs and the
// restart journal.
func (r Result) Status() string {
	switch {
	case r.LaunchErr != nil:
		return "launch failed"
	case r.TimedOut:
		return "timed out"
	case r.Canceled:
		return "cancelled"
	default:
		return fmt.Sprintf("exit %d", r.ExitCode)
	}
}

// Err converts a failed Result into a coded error. Returns nil when OK.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}

	name := "command"
	if len(r.Argv) > 0 {
		name = r.Argv[0]
	}

	switch {
	case r.LaunchErr != nil:
		if errors.Is(r.LaunchErr, ErrNotFound) {
			return notFoundError(name)
		}
		return errors.WrapWithCode(r.LaunchErr, errors.ErrExec,
			fmt.Sprintf("Couldn't start '%s'", name),
			"Make sure the command exists and is executable.")
	case r.TimedOut:
		return errors.WrapWithCode(context.DeadlineExceeded, errors.ErrExec,
			fmt.Sprintf("'%s' timed out after %s", name, r.Duration.Round(time.Millisecond)),
			"The command hung. Check the interface is up, or raise the timeout in the config.")
	case r.Canceled:
		return errors.WrapWithCode(context.Canceled, errors.ErrExec,
			fmt.Sprintf("'%s' was cancelled", name), "")
	}

	if missing, ok := IsCommandNotFound(r.Stderr, r.ExitCode); ok {
		if missing == "" {
			missing = name
		}
		return notFoundError(missing)
	}

	msg := fmt.Sprintf("'%s' exited with status %d", name, r.ExitCode)
	if line := firstLine(r.Stderr); line != "" {
		msg += ": " + line
	}
	return errors.New(errors.ErrExec, msg, "")
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
