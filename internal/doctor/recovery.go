package doctor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rileyhilliard/wifimon/internal/config"
)

// JournalCheck verifies the restart journal's directory exists and is
// writable by this user. --fix creates a missing directory.
type JournalCheck struct {
	Path string
}

func (c *JournalCheck) Name() string     { return "recovery_journal" }
func (c *JournalCheck) Category() string { return CategoryRecovery }

func (c *JournalCheck) Run() CheckResult {
	dir := filepath.Dir(c.Path)

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Journal directory %s doesn't exist", dir),
			Suggestion: "Run with --fix to create it, or change recovery.journal",
			Fixable:    true,
		}
	}
	if err != nil || !info.IsDir() {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Journal directory %s isn't usable", dir),
			Suggestion: "Change recovery.journal to a path in a writable directory",
		}
	}

	tmp, err := os.CreateTemp(dir, ".wifimon-doctor-*")
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Journal directory %s isn't writable by this user", dir),
			Suggestion: "Fine if the service runs as root; otherwise change recovery.journal",
		}
	}
	tmp.Close()
	os.Remove(tmp.Name())

	return pass(c.Name(), "Journal: "+c.Path)
}

func (c *JournalCheck) Fix() error {
	return os.MkdirAll(filepath.Dir(c.Path), 0755)
}

// NewRecoveryChecks checks the journal when recovery is enabled.
func NewRecoveryChecks(cfg *config.Config) []Check {
	if !cfg.Recovery.Enabled {
		return nil
	}
	return []Check{&JournalCheck{Path: cfg.Recovery.Journal}}
}
