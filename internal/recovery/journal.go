package recovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/rileyhilliard/wifimon/internal/errors"
	"github.com/rileyhilliard/wifimon/internal/exec"
)

// Journal keeps an append-only record of recovery attempts.
type Journal interface {
	Record(e Entry) error
	Close() error
}

// Entry is one command run during a recovery attempt.
type Entry struct {
	Time   time.Time
	Reason string
	Result exec.Result
}

// Format renders the entry as it appears in the journal: a header line
// followed by the command output, indented.
func (e Entry) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: %s -> %s (%s)\n",
		e.Time.Format(time.RFC3339), e.Reason,
		strings.Join(e.Result.Argv, " "), e.Result.Status(),
		e.Result.Duration.Round(time.Millisecond))

	out := strings.TrimRight(e.Result.Combined(), "\n")
	if out != "" {
		for _, line := range strings.Split(out, "\n") {
			b.WriteString("    ")
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	if e.Result.Truncated {
		b.WriteString("    [output truncated]\n")
	}
	if e.Result.LaunchErr != nil {
		fmt.Fprintf(&b, "    %s\n", errors.Summary(e.Result.LaunchErr))
	}
	return b.String()
}

// DefaultJournalMaxSizeMB caps the journal before it is rotated.
const DefaultJournalMaxSizeMB = 1

// FileJournal appends entries to a size-capped file.
type FileJournal struct {
	mu sync.Mutex
	w  *lumberjack.Logger
}

// OpenJournal checks path is writable, creating its directory, and returns
// a journal that appends to it. Older content rotates out past maxSizeMB.
func OpenJournal(path string, maxSizeMB int) (*FileJournal, error) {
	if maxSizeMB <= 0 {
		maxSizeMB = DefaultJournalMaxSizeMB
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrRecovery,
			"Can't create the restart journal directory "+filepath.Dir(path),
			"Run as root, or set recovery.journal to a writable path.")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrRecovery,
			"Can't open the restart journal "+path,
			"Run as root, or set recovery.journal to a writable path.")
	}
	_ = f.Close()

	return &FileJournal{
		w: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxSizeMB,
			MaxBackups: 2,
		},
	}, nil
}

// Record appends e.
func (j *FileJournal) Record(e Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if _, err := j.w.Write([]byte(e.Format())); err != nil {
		return errors.WrapWithCode(err, errors.ErrRecovery, "Couldn't write the restart journal", "")
	}
	return nil
}

func (j *FileJournal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.w.Close()
}

// NopJournal discards entries.
type NopJournal struct{}

func (NopJournal) Record(Entry) error { return nil }
func (NopJournal) Close() error       { return nil }
