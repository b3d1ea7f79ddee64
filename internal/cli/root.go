package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rileyhilliard/wifimon/internal/config"
	"github.com/rileyhilliard/wifimon/internal/logger"
	"github.com/rileyhilliard/wifimon/internal/ui"
)

// Global flags
var (
	cfgFile string
	verbose bool
	debug   bool
	noColor bool
)

// stdoutIsTerminal is replaced in tests.
var stdoutIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

var rootCmd = &cobra.Command{
	Use:   "wifimon",
	Short: "Wireless link status on LEDs and a small OLED, with automatic recovery",
	Long: `wifimon watches a wireless interface, shows the link state on three LEDs
and a 128x64 display, and asks the supplicant to reconfigure when the link
drops.

Run 'wifimon init' to create a config, 'wifimon status' to check the link
once, and 'wifimon service install' to run it at boot.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor || !stdoutIsTerminal() {
			ui.DisableColors()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default /etc/wifimon/config.yaml or ~/.config/wifimon/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at info level")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log at debug level")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// Config returns the --config flag value.
func Config() string {
	return cfgFile
}

// printError writes err the way every command reports failures.
func printError(w io.Writer, err error) {
	fmt.Fprintln(w, ui.ErrorStyle().Render(err.Error()))
}

// loadConfig finds, loads and validates the config. path is empty when
// defaults were used.
func loadConfig() (*config.Config, string, error) {
	cfg, path, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, "", err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// logLevel picks the level from the flags, falling back to def.
func logLevel(def string) string {
	switch {
	case debug:
		return "debug"
	case verbose:
		return "info"
	default:
		return def
	}
}

// newLogger builds the process logger. The daemon logs at the configured
// level to the configured file; one-shot commands only warn on stderr.
func newLogger(cfg *config.Config, daemon bool) (logger.Logger, io.Closer, error) {
	opts := logger.Options{Level: logLevel("warn")}
	if daemon {
		opts = logger.Options{Level: logLevel(cfg.Log.Level), File: cfg.Log.File}
	}

	log, closer, err := logger.New(opts)
	if err != nil {
		return nil, nil, err
	}
	logger.SetDefault(log)
	return log, closer, nil
}
