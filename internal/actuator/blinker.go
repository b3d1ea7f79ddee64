package actuator

import (
	"context"
	"time"
)

// blinker toggles one output on a fixed period until stopped.
type blinker struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// startBlinker calls toggle(true) immediately, then alternates every period.
// Toggle errors are passed to onErr and blinking continues.
func startBlinker(period time.Duration, toggle func(on bool) error, onErr func(error)) *blinker {
	ctx, cancel := context.WithCancel(context.Background())
	b := &blinker{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(b.done)

		ticker := time.NewTicker(period)
		defer ticker.Stop()

		lit := true
		for {
			if err := toggle(lit); err != nil && onErr != nil {
				onErr(err)
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				lit = !lit
			}
		}
	}()

	return b
}

// stop ends the blinker and waits for its goroutine to exit.
func (b *blinker) stop() {
	if b == nil {
		return
	}
	b.cancel()
	<-b.done
}
