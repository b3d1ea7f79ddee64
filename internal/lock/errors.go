package lock

import "errors"

// ErrLocked is returned by Acquire when the lock is held by a live process.
// This is a sentinel error that can be checked with errors.Is().
var ErrLocked = errors.New("lock is held by another process")
