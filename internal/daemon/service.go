package daemon

import (
	"context"
	"time"

	"github.com/kardianos/service"

	"github.com/rileyhilliard/wifimon/internal/errors"
	"github.com/rileyhilliard/wifimon/internal/logger"
)

// ServiceName is the system service name.
const ServiceName = "wifimon"

// StopTimeout bounds how long Stop waits for the loop to wind down.
const StopTimeout = 10 * time.Second

// Program adapts a Daemon to the service manager: Start launches the loop
// and returns, Stop cancels it and waits.
type Program struct {
	daemon *Daemon
	log    logger.Logger

	cancel context.CancelFunc
	done   chan error
}

// NewProgram wraps d.
func NewProgram(d *Daemon, log logger.Logger) *Program {
	if log == nil {
		log = logger.Noop()
	}
	return &Program{daemon: d, log: log}
}

// Start implements service.Interface. It must not block.
func (p *Program) Start(s service.Service) error {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan error, 1)

	go func() {
		p.done <- p.daemon.Run(ctx)
	}()
	return nil
}

// Stop implements service.Interface.
func (p *Program) Stop(s service.Service) error {
	if p.cancel == nil {
		return nil
	}
	p.cancel()

	select {
	case err := <-p.done:
		st := p.daemon.Status()
		p.log.Info("stopped after %d cycles, %d recoveries", st.Cycles, st.Recoveries)
		return err
	case <-time.After(StopTimeout):
		return errors.New(errors.ErrService,
			"Timed out waiting for the poll loop to stop",
			"A command may be hung; the service manager will kill the process.")
	}
}

// ServiceConfig describes wifimon to the service manager. args are the
// command line the service runs with, e.g. run --config /etc/wifimon/config.yaml.
func ServiceConfig(args []string) *service.Config {
	return &service.Config{
		Name:        ServiceName,
		DisplayName: "wifimon",
		Description: "Wireless link status display, LEDs and automatic reconfiguration",
		Arguments:   args,
		Dependencies: []string{
			"After=network.target",
			"Wants=network.target",
		},
		Option: service.KeyValue{
			"Restart": "always",
		},
	}
}

// NewService binds a program to the platform service manager.
func NewService(prg service.Interface, cfg *service.Config) (service.Service, error) {
	s, err := service.New(prg, cfg)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrService,
			"Couldn't set up the "+service.Platform()+" service",
			"wifimon supports systemd, SysV and upstart on Linux.")
	}
	return s, nil
}
