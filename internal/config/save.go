package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/wifimon/internal/errors"
)

const fileHeader = "# wifimon configuration\n# Commands may use ${IFACE} for network.interface.\n\n"

// Marshal renders cfg as the YAML written by 'wifimon init'.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}
	return append([]byte(fileHeader), data...), nil
}

// DefaultSavePath is where 'wifimon init' writes when no path is given.
func DefaultSavePath() string {
	return filepath.Join(configDir(""), ConfigFileName)
}

// Save writes cfg to path, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Can't create config directory "+filepath.Dir(path),
			"Check your permissions, or pass --path to write elsewhere.")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Can't write config file "+path,
			"Check your permissions, or pass --path to write elsewhere.")
	}

	return nil
}
