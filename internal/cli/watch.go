package cli

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/wifimon/internal/errors"
	"github.com/rileyhilliard/wifimon/internal/logger"
	"github.com/rileyhilliard/wifimon/internal/monitor"
)

// MinWatchInterval keeps the watch view from hammering the wireless tools.
const MinWatchInterval = 500 * time.Millisecond

// watchCommand starts the live terminal view.
func watchCommand(interval time.Duration) error {
	if interval < MinWatchInterval {
		return errors.New(errors.ErrConfig,
			"Interval too short",
			"Minimum interval is 500ms.")
	}

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	// Log output would tear the alt screen.
	log := logger.Noop()
	sampler := newSampler(cfg, newRunner(), log)
	collector := monitor.NewCollector(sampler, newClassifier(cfg, nil))

	// Each collection runs three queries back to back.
	timeout := 3*cfg.Network.SampleTimeout + time.Second
	model := monitor.NewModel(collector, cfg.Network.Interface, interval, timeout)

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"The watch view failed",
			"Run 'wifimon status' instead if this terminal can't show it.")
	}
	return nil
}
