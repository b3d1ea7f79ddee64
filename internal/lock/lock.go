// Package lock keeps two wifimon daemons from driving the same LEDs and
// display. The lock is a directory created with mkdir, which is atomic,
// holding an info.json that names the owner.
package lock

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rileyhilliard/wifimon/internal/errors"
)

const infoFileName = "info.json"

// staleGrace is how long a lock without readable info is left alone. A
// new holder creates the directory before writing info.json.
const staleGrace = 30 * time.Second

// Lock represents an acquired lock.
type Lock struct {
	Dir  string    // The lock directory
	Info *LockInfo // Info about the lock holder (us)
}

// processAlive is replaced in tests.
var processAlive = func(pid int) bool {
	if pid <= 0 {
		return false
	}
	p, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = p.Signal(syscall.Signal(0))
	return err == nil || stderrors.Is(err, syscall.EPERM)
}

// Acquire takes the lock at dir, creating its parent directory. A lock
// left behind by a process that is no longer running on this host is
// removed and taken over. A live holder yields an error wrapping ErrLocked.
func Acquire(dir, command string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(dir), 0755); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrLock,
			"Can't create lock directory "+filepath.Dir(dir),
			"Run as root, or change lock_file in your config.")
	}

	info := NewLockInfo(command)

	// Two attempts: the second follows removal of a stale lock.
	for attempt := 0; attempt < 2; attempt++ {
		err := os.Mkdir(dir, 0755)
		if err == nil {
			if err := writeInfo(dir, info); err != nil {
				os.RemoveAll(dir)
				return nil, err
			}
			return &Lock{Dir: dir, Info: info}, nil
		}
		if !os.IsExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrLock,
				"Can't create lock "+dir,
				"Run as root, or change lock_file in your config.")
		}

		holder, stale := inspect(dir, info.Hostname)
		if !stale {
			return nil, errors.WrapWithCode(ErrLocked, errors.ErrLock,
				"Another wifimon is already running: "+holder,
				"Stop it first (wifimon service stop), or remove "+dir+" if it isn't running.")
		}
		if err := os.RemoveAll(dir); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrLock,
				fmt.Sprintf("Can't remove stale lock %s", dir),
				"Remove it by hand.")
		}
	}

	return nil, errors.WrapWithCode(ErrLocked, errors.ErrLock,
		"Lost the race for "+dir+" to another wifimon",
		"Stop the other instance first.")
}

// Release removes the lock. Releasing a nil lock is a no-op.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	if err := os.RemoveAll(l.Dir); err != nil {
		return errors.WrapWithCode(err, errors.ErrLock,
			"Failed to remove lock directory: "+l.Dir, "")
	}
	return nil
}

// Holder describes who holds the lock at dir. held is false when there is
// no lock at all; stale is true when the holder on this host is gone.
func Holder(dir string) (holder string, held, stale bool) {
	if _, err := os.Stat(dir); err != nil {
		return "", false, false
	}
	hostname, _ := os.Hostname()
	holder, stale = inspect(dir, hostname)
	return holder, true, stale
}

// RemoveStale removes the lock at dir when its holder is gone. A live or
// missing lock is left alone.
func RemoveStale(dir string) error {
	holder, held, stale := Holder(dir)
	if !held || !stale {
		return nil
	}
	if err := os.RemoveAll(dir); err != nil {
		return errors.WrapWithCode(err, errors.ErrLock,
			fmt.Sprintf("Can't remove stale lock %s left by %s", dir, holder),
			"Remove it by hand.")
	}
	return nil
}

// inspect describes the holder and reports whether the lock is stale. A
// lock from another host is never stale. One with missing or unreadable
// info is stale only once the directory is older than staleGrace.
func inspect(dir, hostname string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(dir, infoFileName))
	if err != nil {
		return "unknown", abandoned(dir)
	}
	info, err := ParseLockInfo(data)
	if err != nil {
		return "unknown", abandoned(dir)
	}
	if hostname != "" && info.Hostname != hostname {
		return info.String(), false
	}
	return info.String(), !processAlive(info.PID)
}

// abandoned reports whether dir was created more than staleGrace ago.
func abandoned(dir string) bool {
	fi, err := os.Stat(dir)
	if err != nil {
		return os.IsNotExist(err)
	}
	return time.Since(fi.ModTime()) > staleGrace
}

// writeInfo writes info.json through a rename so readers never see a
// partial file.
func writeInfo(dir string, info *LockInfo) error {
	data, err := info.Marshal()
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrLock,
			"Failed to serialize lock info",
			"This shouldn't happen")
	}
	tmp := filepath.Join(dir, infoFileName+".tmp")
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrLock,
			"Failed to write lock info file",
			"Check disk space and permissions on "+dir)
	}
	if err := os.Rename(tmp, filepath.Join(dir, infoFileName)); err != nil {
		return errors.WrapWithCode(err, errors.ErrLock,
			"Failed to write lock info file",
			"Check disk space and permissions on "+dir)
	}
	return nil
}
