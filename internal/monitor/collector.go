package monitor

import (
	"context"
	"time"

	"github.com/rileyhilliard/wifimon/internal/actuator"
	"github.com/rileyhilliard/wifimon/internal/health"
	"github.com/rileyhilliard/wifimon/internal/network"
)

// Sampler takes network snapshots.
type Sampler interface {
	Sample(ctx context.Context) network.Sample
}

// Snapshot is one collected reading plus what the daemon would show for it.
type Snapshot struct {
	Sample         network.Sample
	State          health.State
	NoGatewayTicks int
	Command        actuator.Command
	Took           time.Duration
}

// Collector samples and classifies, remembering the previous state and
// no-gateway counter like the daemon's poll loop does. Collect is called
// from one goroutine at a time.
type Collector struct {
	sampler    Sampler
	classifier health.Classifier
	now        func() time.Time

	state     health.State
	ticks     int
	heartbeat bool
}

// NewCollector creates a collector.
func NewCollector(sampler Sampler, classifier health.Classifier) *Collector {
	return &Collector{sampler: sampler, classifier: classifier, now: time.Now}
}

// Collect takes one sample and classifies it.
func (c *Collector) Collect(ctx context.Context) Snapshot {
	start := c.now()
	sample := c.sampler.Sample(ctx)
	c.state, c.ticks = c.classifier.Classify(sample, c.state, c.ticks)
	c.heartbeat = !c.heartbeat

	return Snapshot{
		Sample:         sample,
		State:          c.state,
		NoGatewayTicks: c.ticks,
		Command:        health.CommandFor(c.state, sample, c.now(), c.heartbeat),
		Took:           c.now().Sub(start),
	}
}
