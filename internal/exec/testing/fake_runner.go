// Package testing provides test doubles for the exec package.
package testing

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rileyhilliard/wifimon/internal/exec"
)

// Call records a call to Run.
type Call struct {
	Argv    []string
	Timeout time.Duration
}

// FakeRunner returns canned Results keyed by command line.
//
// Lookup order for each Run: the full argv joined by spaces, then argv[0].
// Commands with no canned Result fail as if not installed.
type FakeRunner struct {
	mu sync.Mutex

	// Configuration
	responses map[string]exec.Result
	queued    map[string][]exec.Result
	hooks     map[string]func(ctx context.Context) exec.Result

	// Call tracking
	Calls []Call
}

// NewFakeRunner creates a fake runner with no canned responses.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		responses: make(map[string]exec.Result),
		queued:    make(map[string][]exec.Result),
		hooks:     make(map[string]func(ctx context.Context) exec.Result),
	}
}

// On sets the Result returned every time key runs.
// key is either a program name ("iwconfig") or a full command line ("iwconfig wlan0").
func (f *FakeRunner) On(key string, res exec.Result) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[key] = res
	return f
}

// OnStdout is On with a successful Result carrying stdout.
func (f *FakeRunner) OnStdout(key, stdout string) *FakeRunner {
	return f.On(key, exec.Result{Stdout: stdout})
}

// OnTimeout makes key time out.
func (f *FakeRunner) OnTimeout(key string) *FakeRunner {
	return f.On(key, exec.Result{ExitCode: -1, TimedOut: true})
}

// OnMissing makes key fail to launch as if it were not installed.
func (f *FakeRunner) OnMissing(key string) *FakeRunner {
	return f.On(key, missing())
}

// Queue adds Results returned once each, in order, before falling back to On.
func (f *FakeRunner) Queue(key string, results ...exec.Result) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queued[key] = append(f.queued[key], results...)
	return f
}

// OnFunc runs fn instead of returning a canned Result. fn runs without the
// runner's lock held, so it may block on ctx or panic.
func (f *FakeRunner) OnFunc(key string, fn func(ctx context.Context) exec.Result) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hooks[key] = fn
	return f
}

// Run implements exec.Runner.
func (f *FakeRunner) Run(ctx context.Context, argv []string, timeout time.Duration) exec.Result {
	f.mu.Lock()
	f.Calls = append(f.Calls, Call{Argv: append([]string(nil), argv...), Timeout: timeout})

	var (
		res   exec.Result
		hook  func(context.Context) exec.Result
		found bool
	)
	for _, key := range keys(argv) {
		if q := f.queued[key]; len(q) > 0 {
			res, f.queued[key], found = q[0], q[1:], true
			break
		}
		if fn, ok := f.hooks[key]; ok {
			hook, found = fn, true
			break
		}
		if r, ok := f.responses[key]; ok {
			res, found = r, true
			break
		}
	}
	f.mu.Unlock()

	if hook != nil {
		res = hook(ctx)
	}
	if !found {
		res = missing()
	}
	res.Argv = argv
	return res
}

// CallCount returns how many times key ran. key matches like On.
func (f *FakeRunner) CallCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, call := range f.Calls {
		for _, k := range keys(call.Argv) {
			if k == key {
				count++
				break
			}
		}
	}
	return count
}

// Called reports whether key ran at least once.
func (f *FakeRunner) Called(key string) bool {
	return f.CallCount(key) > 0
}

// Reset clears canned responses and recorded calls.
func (f *FakeRunner) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = make(map[string]exec.Result)
	f.queued = make(map[string][]exec.Result)
	f.hooks = make(map[string]func(ctx context.Context) exec.Result)
	f.Calls = nil
}

func keys(argv []string) []string {
	if len(argv) == 0 {
		return nil
	}
	return []string{strings.Join(argv, " "), argv[0]}
}

func missing() exec.Result {
	return exec.Result{ExitCode: -1, LaunchErr: exec.ErrNotFound}
}
