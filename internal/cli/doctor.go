package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kardianos/service"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/wifimon/internal/config"
	"github.com/rileyhilliard/wifimon/internal/doctor"
	"github.com/rileyhilliard/wifimon/internal/ui"
)

var (
	doctorJSON bool
	doctorFix  bool
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the config, commands, hardware and service",
	Long: `Run diagnostic checks and report anything that would stop wifimon from
working: an invalid config, missing commands, an unreachable display or
LEDs, an unwritable journal, or a service that isn't installed.

The sampling commands are run once. Recovery commands are only looked up.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doctorCommand(cmd.OutOrStdout())
	},
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output in JSON format")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "attempt automatic fixes where possible")
}

// DoctorOutput represents the JSON output for doctor command.
type DoctorOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Summary    SummaryOutput    `json:"summary"`
}

// CategoryOutput represents a category of check results.
type CategoryOutput struct {
	Name    string               `json:"name"`
	Results []doctor.CheckResult `json:"results"`
}

// SummaryOutput summarizes the check results.
type SummaryOutput struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	Fixable  int  `json:"fixable"`
	AllClear bool `json:"all_clear"`
}

// newServiceStatus is replaced in tests.
var newServiceStatus = func() (service.Status, error) {
	svc, err := newControlService()
	if err != nil {
		return service.StatusUnknown, err
	}
	return svc.Status()
}

// hardwareChecks is replaced in tests so they never touch I2C or GPIO.
var hardwareChecks = doctor.NewHardwareChecks

// doctorCommand implements the doctor command logic.
func doctorCommand(w io.Writer) error {
	checks := collectChecks()

	results := doctor.RunAll(checks)
	if doctorFix {
		results = doctor.FixAll(checks, results)
	}

	if doctorJSON {
		return outputDoctorJSON(w, checks, results)
	}
	outputDoctorText(w, checks, results)
	return nil
}

// collectChecks gathers all checks. A config that fails to load is reported
// by the config check; the rest run against defaults.
func collectChecks() []doctor.Check {
	cfg, _, err := loadConfig()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	checks := []doctor.Check{&doctor.ConfigCheck{ConfigPath: cfgFile}}
	checks = append(checks, doctor.NewCommandChecks(cfg, newRunner())...)
	checks = append(checks, hardwareChecks(cfg)...)
	checks = append(checks, doctor.NewRecoveryChecks(cfg)...)
	checks = append(checks, &doctor.ServiceCheck{Status: newServiceStatus})
	checks = append(checks, &doctor.InstanceCheck{LockDir: cfg.LockFile})
	return checks
}

// outputDoctorJSON writes results grouped by category.
func outputDoctorJSON(w io.Writer, checks []doctor.Check, results []doctor.CheckResult) error {
	grouped := doctor.GroupByCategory(checks)

	output := DoctorOutput{Categories: []CategoryOutput{}}
	for _, cat := range doctor.CategoryOrder {
		indices := grouped[cat]
		if len(indices) == 0 {
			continue
		}
		co := CategoryOutput{Name: cat}
		for _, idx := range indices {
			co.Results = append(co.Results, results[idx])
		}
		output.Categories = append(output.Categories, co)
	}

	counts := doctor.CountByStatus(results)
	output.Summary = SummaryOutput{
		Pass:     counts[doctor.StatusPass],
		Warn:     counts[doctor.StatusWarn],
		Fail:     counts[doctor.StatusFail],
		Fixable:  doctor.FixableCount(results),
		AllClear: !doctor.HasIssues(results),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// outputDoctorText writes the human-readable report.
func outputDoctorText(w io.Writer, checks []doctor.Check, results []doctor.CheckResult) {
	header := lipgloss.NewStyle().Bold(true)

	fmt.Fprintln(w)
	fmt.Fprintln(w, header.Render("wifimon diagnostic report"))
	fmt.Fprintln(w)

	grouped := doctor.GroupByCategory(checks)
	for _, category := range doctor.CategoryOrder {
		indices := grouped[category]
		if len(indices) == 0 {
			continue
		}

		fmt.Fprintln(w, header.Render(category))
		for _, idx := range indices {
			renderCheckResult(w, results[idx])
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, strings.Repeat("━", 60))
	fmt.Fprintln(w)

	if !doctor.HasIssues(results) {
		fmt.Fprintf(w, "%s %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), doctor.Summary(results))
	} else {
		fmt.Fprintf(w, "%s %s\n", ui.ErrorStyle().Render(ui.SymbolFail), doctor.Summary(results))

		if doctor.FixableCount(results) > 0 && !doctorFix {
			fmt.Fprintln(w)
			fmt.Fprintf(w, "  Run with %s to attempt automatic fixes where possible.\n",
				ui.MutedStyle().Render("--fix"))
		}
	}
	fmt.Fprintln(w)
}

// renderCheckResult renders a single check result.
func renderCheckResult(w io.Writer, result doctor.CheckResult) {
	var symbol string
	switch result.Status {
	case doctor.StatusPass:
		symbol = ui.SuccessStyle().Render(ui.SymbolComplete)
	case doctor.StatusWarn:
		symbol = ui.WarningStyle().Render(ui.SymbolWarning)
	default:
		symbol = ui.ErrorStyle().Render(ui.SymbolFail)
	}

	fmt.Fprintf(w, "  %s %s\n", symbol, result.Message)

	if result.Suggestion != "" && result.Status != doctor.StatusPass {
		for _, line := range strings.Split(result.Suggestion, "\n") {
			fmt.Fprintf(w, "    %s\n", ui.MutedStyle().Render(line))
		}
	}
}
