package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/rileyhilliard/wifimon/internal/config"
	"github.com/rileyhilliard/wifimon/internal/errors"
	"github.com/rileyhilliard/wifimon/internal/ui"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Path           string // Where to write; default config.DefaultSavePath()
	Interface      string // Pre-specified wireless interface
	SSID           string // Pre-specified expected SSID
	Display        string // Pre-specified display driver
	LEDs           string // Pre-specified LED driver
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use flags and defaults
	Out            io.Writer
}

// stdinIsTerminal is replaced in tests.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Init creates a new wifimon config file.
func Init(opts InitOptions) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	path := opts.Path
	if path == "" {
		path = config.DefaultSavePath()
	}
	interactive := !opts.NonInteractive && stdinIsTerminal()

	// Check for existing config
	if _, err := os.Stat(path); err == nil && !opts.Overwrite {
		if !interactive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", path),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", path)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	if opts.Interface != "" {
		cfg.Network.Interface = opts.Interface
	}
	if opts.SSID != "" {
		cfg.Network.SSID = opts.SSID
	}
	if opts.Display != "" {
		cfg.Display.Driver = opts.Display
	}
	if opts.LEDs != "" {
		cfg.LEDs.Driver = opts.LEDs
	}

	if interactive {
		if err := promptConfig(cfg); err != nil {
			return err
		}
	}

	checkInterface(out, cfg)

	if err := config.Save(cfg, path); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s Created %s\n\n", ui.SuccessStyle().Render(ui.SymbolSuccess), path)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  wifimon status            - Check the link once")
	fmt.Fprintln(out, "  wifimon watch             - Watch it live")
	fmt.Fprintln(out, "  sudo wifimon service install --config "+path)

	return nil
}

// promptConfig asks for the settings most setups change.
func promptConfig(cfg *config.Config) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Wireless interface").
				Description("The interface to watch and reconfigure").
				Placeholder("wlan0").
				Value(&cfg.Network.Interface).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("interface is required")
					}
					if strings.ContainsAny(s, " \t\n/") {
						return fmt.Errorf("interface name cannot contain whitespace or '/'")
					}
					return nil
				}),
			huh.NewInput().
				Title("Expected network (optional)").
				Description("Any other SSID counts as offline. Leave empty to accept any.").
				Value(&cfg.Network.SSID),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Status display").
				Options(
					huh.NewOption("SH1106 128x64 OLED on I2C", config.DisplaySH1106),
					huh.NewOption("None (log what would be shown)", config.DisplayNone),
				).
				Value(&cfg.Display.Driver),
			huh.NewSelect[string]().
				Title("Status LEDs").
				Options(
					huh.NewOption("Green/yellow/red on GPIO17/27/22", config.LEDsGPIO),
					huh.NewOption("None", config.LEDsNone),
				).
				Value(&cfg.LEDs.Driver),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Reconfigure the supplicant when the link drops?").
				Value(&cfg.Recovery.Enabled),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --non-interactive flag")
	}
	return nil
}

// checkInterface runs the wireless query once and reports whether it
// answered. A failure is a warning: the config may be written on another
// machine than the one it runs on.
func checkInterface(w io.Writer, cfg *config.Config) {
	argv := cfg.ExpandCommands().Wireless
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Network.SampleTimeout)
	defer cancel()

	res := newRunner().Run(ctx, argv, cfg.Network.SampleTimeout)
	if err := res.Err(); err != nil {
		fmt.Fprintf(w, "%s %s didn't answer: %s\n", ui.WarningStyle().Render(ui.SymbolWarning),
			strings.Join(argv, " "), errors.Summary(err))
		return
	}
	fmt.Fprintf(w, "%s %s answered\n", ui.SuccessStyle().Render(ui.SymbolSuccess), strings.Join(argv, " "))
}
