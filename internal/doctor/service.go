package doctor

import (
	"fmt"

	"github.com/kardianos/service"

	"github.com/rileyhilliard/wifimon/internal/errors"
	"github.com/rileyhilliard/wifimon/internal/lock"
)

// ServiceCheck asks the service manager about the installed wifimon service.
type ServiceCheck struct {
	Status func() (service.Status, error)
}

func (c *ServiceCheck) Name() string     { return "service" }
func (c *ServiceCheck) Category() string { return CategoryService }

func (c *ServiceCheck) Run() CheckResult {
	status, err := c.Status()
	switch {
	case errors.Is(err, service.ErrNotInstalled):
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    service.Platform() + " service not installed",
			Suggestion: "sudo wifimon service install --config <path>",
		}
	case err != nil:
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusWarn,
			Message: "Couldn't query " + service.Platform() + ": " + errors.Summary(err),
		}
	}

	switch status {
	case service.StatusRunning:
		return pass(c.Name(), service.Platform()+" service running")
	case service.StatusStopped:
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    service.Platform() + " service installed but stopped",
			Suggestion: "sudo wifimon service start",
		}
	default:
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusWarn,
			Message: service.Platform() + " service state unknown",
		}
	}
}

func (c *ServiceCheck) Fix() error {
	return nil // Installing needs root and an explicit --config
}

// InstanceCheck reports which wifimon, if any, holds the instance lock.
type InstanceCheck struct {
	LockDir string
}

func (c *InstanceCheck) Name() string     { return "instance" }
func (c *InstanceCheck) Category() string { return CategoryService }

func (c *InstanceCheck) Run() CheckResult {
	if c.LockDir == "" {
		return pass(c.Name(), "Instance lock disabled (lock_file is empty)")
	}
	holder, held, stale := lock.Holder(c.LockDir)
	switch {
	case !held:
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "No wifimon daemon holds " + c.LockDir,
			Suggestion: "Start it with: sudo wifimon service start",
		}
	case stale:
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Stale lock %s left by %s", c.LockDir, holder),
			Suggestion: "Run with --fix to remove it",
			Fixable:    true,
		}
	default:
		return pass(c.Name(), "Daemon running: "+holder)
	}
}

func (c *InstanceCheck) Fix() error {
	return lock.RemoveStale(c.LockDir)
}
