package exec

import (
	"context"
	"os"
	"os/exec"
	"time"

	"github.com/rileyhilliard/wifimon/internal/errors"
)

// ErrNotFound is returned (wrapped) in Result.LaunchErr when argv[0] is not on PATH.
var ErrNotFound = exec.ErrNotFound

// DefaultWaitDelay is how long Local waits for output pipes to close after
// the child has been killed. Grandchildren that inherited the pipes would
// otherwise keep Run blocked.
const DefaultWaitDelay = 2 * time.Second

// Local runs commands on this machine with os/exec.
type Local struct {
	// WaitDelay overrides DefaultWaitDelay when non-zero.
	WaitDelay time.Duration
	// Env is appended to the inherited environment.
	Env []string
}

// NewLocal returns a Local runner that forces the C locale, so tool output
// is parsed in English regardless of the system language.
func NewLocal() *Local {
	return &Local{Env: []string{"LC_ALL=C", "LANG=C"}}
}

// Run executes argv and waits for it to finish, time out, or be cancelled.
func (l *Local) Run(ctx context.Context, argv []string, timeout time.Duration) Result {
	start := time.Now()
	res := Result{Argv: argv, ExitCode: -1}

	if len(argv) == 0 || argv[0] == "" {
		res.LaunchErr = errors.New(errors.ErrExec,
			"No command to run",
			"Check the command lists in your config aren't empty.")
		return res
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	stdout := &cappedBuffer{limit: MaxOutputBytes}
	stderr := &cappedBuffer{limit: MaxOutputBytes}

	command := exec.CommandContext(ctx, argv[0], argv[1:]...)
	command.Stdout = stdout
	command.Stderr = stderr
	command.WaitDelay = DefaultWaitDelay
	if l.WaitDelay > 0 {
		command.WaitDelay = l.WaitDelay
	}
	if len(l.Env) > 0 {
		command.Env = append(os.Environ(), l.Env...)
	}

	runErr := command.Run()

	res.Duration = time.Since(start)
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()
	res.Truncated = stdout.truncated || stderr.truncated

	switch {
	case runErr == nil:
		res.ExitCode = 0
	case ctx.Err() != nil && command.ProcessState != nil && !exitedCleanly(command.ProcessState, runErr):
		// Killed because the deadline passed or the caller gave up.
		res.TimedOut = errors.Is(ctx.Err(), context.DeadlineExceeded)
		res.Canceled = !res.TimedOut
	case command.ProcessState != nil:
		// The child ran. Exit codes, including signals (-1), are results, not errors.
		res.ExitCode = command.ProcessState.ExitCode()
	case ctx.Err() != nil:
		// Context was already done before the child could start.
		res.TimedOut = errors.Is(ctx.Err(), context.DeadlineExceeded)
		res.Canceled = !res.TimedOut
	default:
		res.LaunchErr = runErr
	}

	return res
}

// exitedCleanly reports whether the child exited on its own even though the
// context is done, e.g. it finished just as the deadline passed.
func exitedCleanly(state *os.ProcessState, runErr error) bool {
	if errors.Is(runErr, exec.ErrWaitDelay) {
		return state.Exited()
	}
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		return exitErr.Exited()
	}
	return false
}

// cappedBuffer keeps the first limit bytes written and discards the rest.
// Write always reports success so the child never sees EPIPE.
type cappedBuffer struct {
	buf       []byte
	limit     int
	truncated bool
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	room := b.limit - len(b.buf)
	if room <= 0 {
		if len(p) > 0 {
			b.truncated = true
		}
		return len(p), nil
	}
	if len(p) > room {
		b.buf = append(b.buf, p[:room]...)
		b.truncated = true
		return len(p), nil
	}
	b.buf = append(b.buf, p...)
	return len(p), nil
}

func (b *cappedBuffer) String() string {
	return string(b.buf)
}
