package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/rileyhilliard/wifimon/internal/errors"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. WIFIMON_POLL_INTERVAL.
	EnvPrefix = "WIFIMON"
)

// SearchPaths lists where Find looks for a config file, in order.
// Entries may start with ~.
var SearchPaths = []string{
	"/etc/wifimon/" + ConfigFileName,
	"~/.config/wifimon/" + ConfigFileName,
}

// Load reads config from the specified path.
// An empty path loads defaults plus environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	bindDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.WrapWithCode(err, errors.ErrConfig,
					"Config file not found: "+path,
					"Run 'wifimon init' to create one, or drop --config to use defaults.")
			}
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check the file exists and is valid YAML")
		}
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. each entry of SearchPaths
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	for _, candidate := range SearchPaths {
		path := ExpandTilde(candidate)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", nil
}

// LoadOrDefault finds and loads the config, falling back to defaults when no
// file exists. The returned path is empty when defaults were used.
func LoadOrDefault(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		where := "the environment"
		if path != "" {
			where = path
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+where)
	}

	cfg.Recovery.Journal = ExpandTilde(cfg.Recovery.Journal)
	cfg.Log.File = ExpandTilde(cfg.Log.File)

	return cfg, nil
}

// bindDefaults registers every scalar key with viper so WIFIMON_* environment
// variables override them even without a config file.
func bindDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("version", d.Version)
	v.SetDefault("poll_interval", d.PollInterval)

	v.SetDefault("network.interface", d.Network.Interface)
	v.SetDefault("network.ssid", d.Network.SSID)
	v.SetDefault("network.sample_timeout", d.Network.SampleTimeout)
	v.SetDefault("network.gateway_fallback", d.Network.GatewayFallback)

	v.SetDefault("health.strict_signal", d.Health.StrictSignal)
	v.SetDefault("health.weak_signal_dbm", d.Health.WeakSignalDBM)

	v.SetDefault("recovery.enabled", d.Recovery.Enabled)
	v.SetDefault("recovery.after_ticks", d.Recovery.AfterTicks)
	v.SetDefault("recovery.cooldown", d.Recovery.Cooldown)
	v.SetDefault("recovery.timeout", d.Recovery.Timeout)
	v.SetDefault("recovery.settle", d.Recovery.Settle)
	v.SetDefault("recovery.journal", d.Recovery.Journal)

	v.SetDefault("display.driver", d.Display.Driver)
	v.SetDefault("display.bus", d.Display.Bus)
	v.SetDefault("display.address", d.Display.Address)
	v.SetDefault("display.rotate", d.Display.Rotate)

	v.SetDefault("leds.driver", d.LEDs.Driver)
	v.SetDefault("leds.green", d.LEDs.Green)
	v.SetDefault("leds.yellow", d.LEDs.Yellow)
	v.SetDefault("leds.red", d.LEDs.Red)
	v.SetDefault("leds.active_low", d.LEDs.ActiveLow)
	v.SetDefault("leds.blink_period", d.LEDs.BlinkPeriod)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)

	v.SetDefault("lock_file", d.LockFile)
}

// configDir returns the directory containing the config file.
func configDir(configPath string) string {
	if configPath == "" {
		return ExpandTilde(filepath.Dir(SearchPaths[len(SearchPaths)-1]))
	}
	return filepath.Dir(configPath)
}
