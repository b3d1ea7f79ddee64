package doctor

import (
	"context"
	"fmt"
	osexec "os/exec"
	"strings"
	"time"

	"github.com/rileyhilliard/wifimon/internal/config"
	"github.com/rileyhilliard/wifimon/internal/errors"
	"github.com/rileyhilliard/wifimon/internal/exec"
)

// packages suggests where the default commands come from on Debian-based
// systems.
var packages = map[string]string{
	"iwconfig": "wireless-tools",
	"iw":       "iw",
	"ip":       "iproute2",
	"hostname": "hostname",
	"wpa_cli":  "wpasupplicant",
}

// ToolCheck verifies that a configured command's program is installed. It
// never runs the command.
type ToolCheck struct {
	Setting  string // config key, e.g. "network.wireless_command"
	Argv     []string
	LookPath func(file string) (string, error) // nil means os/exec.LookPath
}

func (c *ToolCheck) Name() string     { return "tool_" + c.Setting }
func (c *ToolCheck) Category() string { return CategoryCommands }

func (c *ToolCheck) Run() CheckResult {
	if len(c.Argv) == 0 {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusFail,
			Message: c.Setting + " is empty",
		}
	}

	lookPath := c.LookPath
	if lookPath == nil {
		lookPath = osexec.LookPath
	}

	program := c.Argv[0]
	path, err := lookPath(program)
	if err != nil {
		suggestion := fmt.Sprintf("Install %s or change %s", program, c.Setting)
		if pkg, ok := packages[program]; ok {
			suggestion = fmt.Sprintf("Install it: apt install %s (or change %s)", pkg, c.Setting)
		}
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("%s not found (%s)", program, c.Setting),
			Suggestion: suggestion,
		}
	}

	return pass(c.Name(), fmt.Sprintf("%s (%s)", path, c.Setting))
}

func (c *ToolCheck) Fix() error {
	return nil // System package installation is out of scope
}

// QueryCheck runs a read-only sampling command once and reports whether it
// answered.
type QueryCheck struct {
	Setting string
	Argv    []string
	Runner  exec.Runner
	Timeout time.Duration
}

func (c *QueryCheck) Name() string     { return "query_" + c.Setting }
func (c *QueryCheck) Category() string { return CategoryCommands }

func (c *QueryCheck) Run() CheckResult {
	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout+time.Second)
	defer cancel()

	res := c.Runner.Run(ctx, c.Argv, c.Timeout)
	line := strings.Join(c.Argv, " ")
	if err := res.Err(); err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("'%s' failed: %s", line, errors.Summary(err)),
			Suggestion: "Check network.interface, or run the command by hand to see what it prints",
		}
	}

	return pass(c.Name(), fmt.Sprintf("'%s' answered in %s", line, res.Duration.Round(time.Millisecond)))
}

func (c *QueryCheck) Fix() error {
	return nil
}

// NewCommandChecks checks every configured command is installed and runs
// the sampling commands once. Recovery commands are only looked up.
func NewCommandChecks(cfg *config.Config, runner exec.Runner) []Check {
	cmds := cfg.ExpandCommands()
	sampling := []struct {
		setting string
		argv    []string
	}{
		{"network.wireless_command", cmds.Wireless},
		{"network.address_command", cmds.Address},
		{"network.route_command", cmds.Route},
	}

	var checks []Check
	for _, s := range sampling {
		checks = append(checks, &ToolCheck{Setting: s.setting, Argv: s.argv})
	}
	if cfg.Recovery.Enabled {
		checks = append(checks, &ToolCheck{Setting: "recovery.command", Argv: cmds.Reconfigure})
		if len(cmds.Alternative) > 0 {
			checks = append(checks, &ToolCheck{Setting: "recovery.alternative", Argv: cmds.Alternative})
		}
	}
	for _, s := range sampling {
		checks = append(checks, &QueryCheck{
			Setting: s.setting,
			Argv:    s.argv,
			Runner:  runner,
			Timeout: cfg.Network.SampleTimeout,
		})
	}
	return checks
}
