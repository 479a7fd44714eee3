package chat

import (
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
)

// Locker hands out one mutex per session id so read-modify-write cycles on
// the same session never interleave inside this process. Entries live as
// long as the process, like the sessions they guard.
type Locker struct {
	locks *xsync.MapOf[string, *sync.Mutex]
}

// NewLocker creates an empty Locker.
func NewLocker() *Locker {
	return &Locker{locks: xsync.NewMapOf[string, *sync.Mutex]()}
}

// Lock blocks until the session's mutex is held and returns its release func.
func (l *Locker) Lock(sessionID string) func() {
	mu, _ := l.locks.LoadOrCompute(sessionID, func() *sync.Mutex {
		return &sync.Mutex{}
	})
	mu.Lock()
	return mu.Unlock
}
