package cli

import (
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/wifimon/internal/actuator"
	"github.com/rileyhilliard/wifimon/internal/daemon"
	"github.com/rileyhilliard/wifimon/internal/errors"
	"github.com/rileyhilliard/wifimon/internal/lock"
	"github.com/rileyhilliard/wifimon/internal/logger"
)

// runCommand starts the poll loop under the service manager, or in the
// foreground when started from a terminal. It returns after SIGINT/SIGTERM
// or a service stop.
func runCommand() error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	log, closer, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer closer.Close()

	if path == "" {
		log.Warn("no config file found, using defaults")
	} else {
		log.Info("using config %s", path)
	}

	instance, err := acquireLock(cfg.LockFile, log)
	if err != nil {
		return err
	}
	defer instance.Release()

	journal, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer journal.Close()

	runner := newRunner()
	layer := actuator.Open(cfg, log.Named("actuator"))
	log.Info("actuators: %s", layer.Describe())

	d := daemon.New(daemon.Deps{
		Sampler:      newSampler(cfg, runner, log),
		Classifier:   newClassifier(cfg, log.Named("health")),
		Actuator:     layer,
		Recoverer:    newTrigger(cfg, runner, journal, log),
		Log:          log.Named("daemon"),
		PollInterval: cfg.PollInterval,
	})

	svc, err := daemon.NewService(daemon.NewProgram(d, log), daemon.ServiceConfig(serviceArgs()))
	if err != nil {
		return err
	}

	if err := svc.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrService,
			"The daemon stopped with an error",
			"Check the log for the last cycle before the failure.")
	}
	return nil
}

// acquireLock takes the single-instance lock. Only a live holder is fatal:
// a lock that can't be created is logged and the daemon runs without one.
func acquireLock(path string, log logger.Logger) (*lock.Lock, error) {
	if path == "" {
		return nil, nil
	}
	l, err := lock.Acquire(path, strings.Join(append([]string{"wifimon"}, serviceArgs()...), " "))
	switch {
	case errors.Is(err, lock.ErrLocked):
		return nil, err
	case err != nil:
		log.Warn("running without an instance lock: %s", errors.Summary(err))
		return nil, nil
	}
	return l, nil
}

// serviceArgs is the command line the installed service runs with. The
// config path is made absolute so it survives the service's working dir.
func serviceArgs() []string {
	args := []string{"run"}
	if cfgFile != "" {
		path, err := filepath.Abs(cfgFile)
		if err != nil {
			path = cfgFile
		}
		args = append(args, "--config", path)
	}
	if debug {
		args = append(args, "--debug")
	}
	return args
}
