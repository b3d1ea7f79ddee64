package cli

import (
	"github.com/rileyhilliard/wifimon/internal/config"
	"github.com/rileyhilliard/wifimon/internal/exec"
	"github.com/rileyhilliard/wifimon/internal/health"
	"github.com/rileyhilliard/wifimon/internal/logger"
	"github.com/rileyhilliard/wifimon/internal/network"
	"github.com/rileyhilliard/wifimon/internal/recovery"
)

// newRunner builds the command runner. Replaced in tests.
var newRunner = func() exec.Runner {
	return exec.NewLocal()
}

func newSampler(cfg *config.Config, runner exec.Runner, log logger.Logger) *network.Sampler {
	cmds := cfg.ExpandCommands()
	return network.NewSampler(runner, network.Options{
		Interface:       cfg.Network.Interface,
		ExpectedSSID:    cfg.Network.SSID,
		Timeout:         cfg.Network.SampleTimeout,
		WirelessCommand: cmds.Wireless,
		AddressCommand:  cmds.Address,
		RouteCommand:    cmds.Route,
		Fallback:        cfg.Network.GatewayFallback,
	}, log.Named("sampler"))
}

func newClassifier(cfg *config.Config, log logger.Logger) health.Classifier {
	return health.Classifier{
		StrictSignal:  cfg.Health.StrictSignal,
		WeakSignalDBM: cfg.Health.WeakSignalDBM,
		Log:           log,
	}
}

func newTrigger(cfg *config.Config, runner exec.Runner, journal recovery.Journal, log logger.Logger) *recovery.Trigger {
	cmds := cfg.ExpandCommands()
	return recovery.NewTrigger(runner, recovery.Options{
		Enabled:     cfg.Recovery.Enabled,
		AfterTicks:  cfg.Recovery.AfterTicks,
		Cooldown:    cfg.Recovery.Cooldown,
		Timeout:     cfg.Recovery.Timeout,
		Settle:      cfg.Recovery.Settle,
		Command:     cmds.Reconfigure,
		Alternative: cmds.Alternative,
	}, journal, log.Named("recovery"))
}

// openJournal opens the restart journal. No journal path, or recovery
// switched off, records nothing.
func openJournal(cfg *config.Config) (recovery.Journal, error) {
	if !cfg.Recovery.Enabled || cfg.Recovery.Journal == "" {
		return recovery.NopJournal{}, nil
	}
	return recovery.OpenJournal(cfg.Recovery.Journal, recovery.DefaultJournalMaxSizeMB)
}
