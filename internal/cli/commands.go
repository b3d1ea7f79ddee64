package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/wifimon/internal/errors"
)

// Command-specific flags
var (
	statusJSON         bool
	watchInterval      time.Duration
	initPath           string
	initInterface      string
	initSSID           string
	initDisplay        string
	initLEDs           string
	initForce          bool
	initNonInteractive bool
)

// runCmd runs the status daemon
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the status daemon",
	Long: `Sample the wireless link every poll interval, show its state on the LEDs
and display, and reconfigure the supplicant when the link drops.

Runs in the foreground when started from a terminal; Ctrl+C turns the LEDs
and display off and exits. Installed as a service, the service manager starts
and stops it.

Examples:
  wifimon run
  wifimon run --config ./config.yaml --debug`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand()
	},
}

// statusCmd samples the link once
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Sample and classify the link once",
	Long: `Run the wireless, address and route queries once and print the result,
the health state, and what the LEDs would show. Never touches the
hardware or the supplicant.

Examples:
  wifimon status
  wifimon status --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return statusCommand(cmd.Context(), cmd.OutOrStdout(), statusJSON)
	},
}

// watchCmd starts the live view
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live terminal view of the link",
	Long: `Sample the link repeatedly and show the state, signal history, LEDs
and a preview of the display. Safe to run next to the daemon.

Keyboard shortcuts:
  q / Ctrl+C  Quit
  r           Sample now
  p           Toggle display preview
  ?           Show help

Examples:
  wifimon watch
  wifimon watch --interval 2s`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return watchCommand(watchInterval)
	},
}

// initCmd creates a config file
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a wifimon config file",
	Long: `Write a config file with defaults for a Raspberry Pi with an SH1106 OLED
on I2C bus 1 and LEDs on GPIO17/27/22, asking for the settings that
usually differ.

Examples:
  wifimon init
  sudo wifimon init --path /etc/wifimon/config.yaml
  wifimon init --non-interactive --interface wlan1 --display none`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Init(InitOptions{
			Path:           initPath,
			Interface:      initInterface,
			SSID:           initSSID,
			Display:        initDisplay,
			LEDs:           initLEDs,
			Overwrite:      initForce,
			NonInteractive: initNonInteractive,
			Out:            cmd.OutOrStdout(),
		})
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for wifimon.

Examples:
  # Bash
  wifimon completion bash > /etc/bash_completion.d/wifimon

  # Zsh
  wifimon completion zsh > "${fpath[1]}/_wifimon"

  # Fish
  wifimon completion fish > ~/.config/fish/completions/wifimon.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrConfig,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	// status command flags
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output in JSON format")

	// watch command flags
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 5*time.Second, "pause between samples (e.g., 2s, 10s)")

	// init command flags
	initCmd.Flags().StringVar(&initPath, "path", "", "where to write the config (default ~/.config/wifimon/config.yaml)")
	initCmd.Flags().StringVar(&initInterface, "interface", "", "wireless interface to watch")
	initCmd.Flags().StringVar(&initSSID, "ssid", "", "expected network name")
	initCmd.Flags().StringVar(&initDisplay, "display", "", "display driver (sh1106 or none)")
	initCmd.Flags().StringVar(&initLEDs, "leds", "", "LED driver (gpio or none)")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	initCmd.Flags().BoolVar(&initNonInteractive, "non-interactive", false, "don't prompt, use flags and defaults")

	// Register all commands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serviceCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(completionCmd)
}
