// Package supervise watches a parent process so that a plugin started by a
// formatting host exits when the host goes away.
package supervise

import (
	"context"
	"time"

	"github.com/signadot/clangfmt/debug"
)

// DefaultInterval is how often Watch polls.
const DefaultInterval = 30 * time.Second

// Watch polls pid every interval and calls onExit once when the process is
// no longer running. It returns when onExit returns or ctx is done.
func Watch(ctx context.Context, pid int, interval time.Duration, onExit func()) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if Alive(pid) {
			continue
		}
		if debug.LSP() {
			debug.Logf("process %d exited\n", pid)
		}
		onExit()
		return
	}
}
