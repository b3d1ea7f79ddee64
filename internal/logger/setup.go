package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-logr/zerologr"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/rileyhilliard/wifimon/internal/errors"
)

// Options controls where and how much the process logs.
type Options struct {
	// Level is a zerolog level name: "debug", "info", "warn", "error".
	Level string

	// File is the log file path. Empty means stderr.
	// Ignored when attached to a terminal or running under systemd.
	File string

	// MaxSizeMB caps the log file before rotation.
	MaxSizeMB int

	// MaxBackups is the number of rotated files kept.
	MaxBackups int
}

// isTerminal reports whether fd is an interactive terminal.
// Replaced in tests.
var isTerminal = func(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// underSystemd reports whether journald is collecting our stderr.
func underSystemd() bool {
	return os.Getenv("JOURNAL_STREAM") != "" || os.Getenv("INVOCATION_ID") != ""
}

// New builds the process logger: zerolog behind logr, writing to a console
// writer on a terminal, plain JSON on stderr under systemd, or a rotating
// file otherwise. The returned closer flushes and closes the file, if any.
func New(opts Options) (Logger, io.Closer, error) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerologr.NameFieldName = "logger"
	zerologr.NameSeparator = "/"
	zerologr.SetMaxV(1)

	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	var w io.Writer
	var closer io.Closer = nopCloser{}
	terminal := isTerminal(os.Stderr.Fd())

	switch {
	case terminal:
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	case opts.File == "" || underSystemd():
		w = os.Stderr
	default:
		fw, err := fileWriter(opts)
		if err != nil {
			return nil, nil, err
		}
		w = fw
		closer = fw
	}

	zl := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return FromLogr(zerologr.New(&zl)), closer, nil
}

func fileWriter(opts Options) (*lumberjack.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Can't create log directory "+filepath.Dir(opts.File),
			"Check permissions, or set log.file to a writable path.")
	}

	// Open once so an unwritable path fails at startup, not on first write.
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Can't open log file "+opts.File,
			"Check permissions, or set log.file to a writable path.")
	}
	f.Close()

	maxSize := opts.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 5
	}
	backups := opts.MaxBackups
	if backups <= 0 {
		backups = 3
	}

	return &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    maxSize,
		MaxBackups: backups,
		MaxAge:     28,
		Compress:   true,
	}, nil
}

func parseLevel(s string) (zerolog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return zerolog.NoLevel, errors.WrapWithCode(err, errors.ErrConfig,
			"Unknown log level '"+s+"'",
			"Use one of: debug, info, warn, error.")
	}
	return level, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
