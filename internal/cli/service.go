package cli

import (
	"fmt"
	"io"

	"github.com/kardianos/service"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/wifimon/internal/daemon"
	"github.com/rileyhilliard/wifimon/internal/errors"
	"github.com/rileyhilliard/wifimon/internal/ui"
)

// controlProgram satisfies service.Interface for commands that only talk
// to the service manager and never run the loop.
type controlProgram struct{}

func (controlProgram) Start(service.Service) error { return nil }
func (controlProgram) Stop(service.Service) error  { return nil }

// newControlService is replaced in tests.
var newControlService = func() (service.Service, error) {
	return daemon.NewService(controlProgram{}, daemon.ServiceConfig(serviceArgs()))
}

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Manage the wifimon " + service.Platform() + " service",
	Long: `Install wifimon to start at boot, or control the installed service.

The service runs 'wifimon run' with the --config given here, after the
network comes up, and is restarted if it exits.

Examples:
  sudo wifimon service install --config /etc/wifimon/config.yaml
  sudo wifimon service start
  wifimon service status`,
}

// serviceActions maps subcommands to kardianos control actions.
var serviceActions = []struct {
	action string
	short  string
	done   string
}{
	{"install", "Install wifimon as a " + service.Platform() + " service", "Installed"},
	{"uninstall", "Remove the installed service", "Uninstalled"},
	{"start", "Start the installed service", "Started"},
	{"stop", "Stop the running service", "Stopped"},
	{"restart", "Restart the service", "Restarted"},
}

var serviceStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the service is installed and running",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serviceStatusCommand(cmd.OutOrStdout())
	},
}

func init() {
	for _, a := range serviceActions {
		serviceCmd.AddCommand(&cobra.Command{
			Use:   a.action,
			Short: a.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return serviceControl(cmd.OutOrStdout(), a.action, a.done)
			},
		})
	}
	serviceCmd.AddCommand(serviceStatusCmd)
}

// serviceControl runs one install/uninstall/start/stop/restart action.
func serviceControl(w io.Writer, action, done string) error {
	svc, err := newControlService()
	if err != nil {
		return err
	}

	if err := service.Control(svc, action); err != nil {
		return errors.WrapWithCode(err, errors.ErrService,
			fmt.Sprintf("Couldn't %s the service", action),
			"Service management usually needs root. Try again with sudo.")
	}

	fmt.Fprintf(w, "%s %s %s service\n", ui.SuccessStyle().Render(ui.SymbolSuccess), done, service.Platform())
	return nil
}

// serviceStatusCommand reports the service manager's view of wifimon.
func serviceStatusCommand(w io.Writer) error {
	svc, err := newControlService()
	if err != nil {
		return err
	}

	status, err := svc.Status()
	switch {
	case errors.Is(err, service.ErrNotInstalled):
		fmt.Fprintf(w, "%s not installed\n", ui.MutedStyle().Render(ui.SymbolPending))
		return nil
	case err != nil:
		return errors.WrapWithCode(err, errors.ErrService,
			"Couldn't query the service",
			"Check that "+service.Platform()+" is running.")
	}

	fmt.Fprintln(w, renderServiceStatus(status))
	return nil
}

func renderServiceStatus(s service.Status) string {
	switch s {
	case service.StatusRunning:
		return ui.SuccessStyle().Render(ui.SymbolComplete) + " running"
	case service.StatusStopped:
		return ui.ErrorStyle().Render(ui.SymbolFail) + " stopped"
	default:
		return ui.WarningStyle().Render(ui.SymbolWarning) + " unknown"
	}
}
