package doctor

import (
	"github.com/rileyhilliard/wifimon/internal/config"
	"github.com/rileyhilliard/wifimon/internal/errors"
)

// ConfigCheck verifies that the config file is found, parses, and validates.
// With no file the daemon runs on defaults, which is a warning.
type ConfigCheck struct {
	ConfigPath string // Explicit path, or empty to search
}

func (c *ConfigCheck) Name() string     { return "config" }
func (c *ConfigCheck) Category() string { return CategoryConfig }

func (c *ConfigCheck) Run() CheckResult {
	path, err := config.Find(c.ConfigPath)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    errors.Summary(err),
			Suggestion: "Check the --config path, or run 'wifimon init' to create one",
		}
	}

	if path == "" {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "No config file found, using defaults",
			Suggestion: "Run 'wifimon init' to write one",
		}
	}

	cfg, err := config.Load(path)
	if err == nil {
		err = config.Validate(cfg)
	}
	if err != nil {
		result := CheckResult{
			Name:    c.Name(),
			Status:  StatusFail,
			Message: errors.Summary(err),
		}
		var wmErr *errors.Error
		if errors.As(err, &wmErr) {
			result.Suggestion = wmErr.Suggestion
		}
		return result
	}

	return pass(c.Name(), "Config valid: "+path)
}

func (c *ConfigCheck) Fix() error {
	return nil // 'wifimon init' is interactive
}
