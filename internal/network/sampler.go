package network

import (
	"context"
	"net"
	"time"

	"github.com/jackpal/gateway"

	"github.com/rileyhilliard/wifimon/internal/errors"
	"github.com/rileyhilliard/wifimon/internal/exec"
	"github.com/rileyhilliard/wifimon/internal/logger"
	"github.com/rileyhilliard/wifimon/internal/network/parsers"
)

// Options configures a Sampler. Commands are already expanded argv.
type Options struct {
	Interface string
	// ExpectedSSID, when set, must match for the sample to count as connected.
	ExpectedSSID string
	// Timeout bounds each command.
	Timeout time.Duration

	WirelessCommand []string
	AddressCommand  []string
	RouteCommand    []string

	// Fallback asks the kernel routing table directly when the address or
	// route command fails.
	Fallback bool
}

// Sampler runs the three fact queries and parses what they print.
type Sampler struct {
	runner exec.Runner
	opts   Options
	log    logger.Logger

	now              func() time.Time
	discoverGateway  func() (net.IP, error)
	discoverInternal func() (net.IP, error)
}

// NewSampler creates a Sampler. A nil logger discards output.
func NewSampler(runner exec.Runner, opts Options, log logger.Logger) *Sampler {
	if log == nil {
		log = logger.Noop()
	}
	return &Sampler{
		runner:           runner,
		opts:             opts,
		log:              log,
		now:              time.Now,
		discoverGateway:  gateway.DiscoverGateway,
		discoverInternal: gateway.DiscoverInterface,
	}
}

// Sample takes a snapshot. It always returns a Sample: each query that
// fails leaves its facts nil and is recorded in Faults, and the others still run.
func (s *Sampler) Sample(ctx context.Context) Sample {
	sample := Sample{
		Timestamp: s.now(),
		Faults:    make(map[Fact]error),
	}

	if out, ok := s.query(ctx, FactWireless, s.opts.WirelessCommand, sample.Faults); ok {
		info := parsers.ParseWireless(out)
		sample.SSID = info.SSID
		sample.SignalDBM = info.SignalDBM
	}

	if out, ok := s.query(ctx, FactAddress, s.opts.AddressCommand, sample.Faults); ok {
		sample.IP = parsers.ParseAddress(out)
	} else if s.opts.Fallback {
		sample.IP = s.fallback(FactAddress, s.discoverInternal, sample.Faults)
	}

	if out, ok := s.query(ctx, FactGateway, s.opts.RouteCommand, sample.Faults); ok {
		sample.Gateway = parsers.ParseDefaultRoute(out, s.opts.Interface)
	} else if s.opts.Fallback {
		sample.Gateway = s.fallback(FactGateway, s.discoverGateway, sample.Faults)
	}

	sample.Connected = s.connected(sample.SSID)

	return sample
}

func (s *Sampler) connected(ssid *string) bool {
	if ssid == nil || *ssid == "" || *ssid == OfflineSSID {
		return false
	}
	if s.opts.ExpectedSSID != "" && *ssid != s.opts.ExpectedSSID {
		return false
	}
	return true
}

// query runs one command. On failure it records the fault and returns false.
func (s *Sampler) query(ctx context.Context, fact Fact, argv []string, faults map[Fact]error) (string, bool) {
	res := s.runner.Run(ctx, argv, s.opts.Timeout)
	if err := res.Err(); err != nil {
		faults[fact] = errors.WrapWithCode(err, errors.ErrSample,
			"Couldn't query "+string(fact), "")
		s.log.Debug("%s query failed (%s): %s", fact, res.Status(), errors.Summary(err))
		return "", false
	}
	if res.Truncated {
		s.log.Debug("%s query output was truncated", fact)
	}
	return res.Stdout, true
}

// fallback asks discover for the fact. On success the command fault is cleared.
func (s *Sampler) fallback(fact Fact, discover func() (net.IP, error), faults map[Fact]error) *string {
	ip, err := discover()
	if err != nil || ip == nil || ip.To4() == nil {
		s.log.Debug("%s fallback found nothing: %v", fact, err)
		return nil
	}
	addr := ip.String()
	delete(faults, fact)
	s.log.Debug("%s from routing table: %s", fact, addr)
	return &addr
}
