package evidence

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	// lockRetryInterval is how long a contending appender waits between
	// attempts to create the lock file.
	lockRetryInterval = 25 * time.Millisecond

	// lockWaitTimeout bounds how long an appender waits for the lock.
	lockWaitTimeout = 5 * time.Second

	// lockStaleAfter is the age past which a leftover lock file (from a
	// crashed process) is reclaimed.
	lockStaleAfter = 30 * time.Second
)

// acquireLock takes an exclusive advisory lock by creating lockPath with
// O_EXCL. Returns an unlock function that removes the lock file. Lock files
// older than lockStaleAfter are treated as abandoned and removed.
func acquireLock(lockPath string) (func(), error) {
	deadline := time.Now().Add(lockWaitTimeout)

	for {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err == nil {
			// Record the owning PID for diagnosis of abandoned locks.
			_, _ = f.WriteString(strconv.Itoa(os.Getpid()))
			_ = f.Close()
			return func() { _ = os.Remove(lockPath) }, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("creating lock file %s: %w", lockPath, err)
		}

		if info, statErr := os.Stat(lockPath); statErr == nil {
			if time.Since(info.ModTime()) > lockStaleAfter {
				// Abandoned lock from a crashed process; reclaim it and retry.
				_ = os.Remove(lockPath)
				continue
			}
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("timed out waiting for lock %s", lockPath)
		}
		time.Sleep(lockRetryInterval)
	}
}
