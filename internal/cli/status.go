package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/rileyhilliard/wifimon/internal/config"
	"github.com/rileyhilliard/wifimon/internal/errors"
	"github.com/rileyhilliard/wifimon/internal/health"
	"github.com/rileyhilliard/wifimon/internal/logger"
	"github.com/rileyhilliard/wifimon/internal/monitor"
	"github.com/rileyhilliard/wifimon/internal/network"
	"github.com/rileyhilliard/wifimon/internal/ui"
)

// StatusOutput represents the JSON output for the status command.
type StatusOutput struct {
	Interface string            `json:"interface"`
	State     string            `json:"state"`
	SSID      *string           `json:"ssid"`
	SignalDBM *int              `json:"signal_dbm"`
	IP        *string           `json:"ip"`
	Gateway   *string           `json:"gateway"`
	Connected bool              `json:"connected"`
	LED       string            `json:"led"`
	Display   []string          `json:"display"`
	Bars      int               `json:"bars"`
	Faults    map[string]string `json:"faults,omitempty"`
	SampledAt time.Time         `json:"sampled_at"`
}

// statusResult is one sample and its classification.
type statusResult struct {
	iface  string
	sample network.Sample
	state  health.State
}

// statusCommand samples the link once and prints what the daemon would show.
func statusCommand(ctx context.Context, w io.Writer, asJSON bool) error {
	cfg, _, err := loadConfig()
	if err != nil {
		if asJSON {
			_ = WriteJSONFromError(w, err)
		}
		return err
	}

	log, closer, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closer.Close()

	res := sampleOnce(ctx, cfg, log)
	if asJSON {
		return WriteJSONSuccess(w, newStatusOutput(res))
	}
	_, err = io.WriteString(w, renderStatus(res))
	return err
}

// sampleOnce takes one sample and classifies it with no prior state.
func sampleOnce(ctx context.Context, cfg *config.Config, log logger.Logger) statusResult {
	sample := newSampler(cfg, newRunner(), log).Sample(ctx)
	state, _ := newClassifier(cfg, nil).Classify(sample, health.Unknown, 0)
	return statusResult{iface: cfg.Network.Interface, sample: sample, state: state}
}

func newStatusOutput(res statusResult) StatusOutput {
	cmd := health.CommandFor(res.state, res.sample, res.sample.Timestamp, false)
	out := StatusOutput{
		Interface: res.iface,
		State:     res.state.String(),
		SSID:      res.sample.SSID,
		SignalDBM: res.sample.SignalDBM,
		IP:        res.sample.IP,
		Gateway:   res.sample.Gateway,
		Connected: res.sample.Connected,
		LED:       cmd.LED.String(),
		Display:   cmd.Lines,
		Bars:      cmd.Bars,
		SampledAt: res.sample.Timestamp,
	}
	if len(res.sample.Faults) > 0 {
		out.Faults = make(map[string]string, len(res.sample.Faults))
		for fact, err := range res.sample.Faults {
			out.Faults[string(fact)] = errors.Summary(err)
		}
	}
	return out
}

// renderStatus renders the human-readable status.
func renderStatus(res statusResult) string {
	s := res.sample
	cmd := health.CommandFor(res.state, s, s.Timestamp, false)

	signal := "unknown"
	if s.SignalDBM != nil {
		signal = fmt.Sprintf("%d dBm (%d/4 bars)", *s.SignalDBM, cmd.Bars)
	}

	rows := []ui.FactRow{
		{Label: "SSID", Value: s.SSIDOr(network.OfflineSSID)},
		{Label: "Signal", Value: signal},
		{Label: "IP", Value: s.IPOr("NA")},
		{Label: "Gateway", Value: s.GatewayOr("none")},
		{Label: "LEDs", Value: monitor.RenderLEDs(cmd.LED)},
	}

	facts := make([]string, 0, len(s.Faults))
	for fact := range s.Faults {
		facts = append(facts, string(fact))
	}
	sort.Strings(facts)
	errStyle := ui.ErrorStyle()
	for _, fact := range facts {
		rows = append(rows, ui.FactRow{
			Label: fact,
			Value: errors.Summary(s.Faults[network.Fact(fact)]),
			Style: &errStyle,
		})
	}

	header := fmt.Sprintf("%s %s\n\n", res.iface, monitor.StateStyle(res.state).Render(res.state.String()))
	return header + ui.RenderFacts(rows)
}
