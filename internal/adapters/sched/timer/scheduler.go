// Package timer schedules deferred callbacks on in-process timers.
package timer

import (
	"time"

	"github.com/bnema/player-boosts-cli/internal/ports"
)

// Scheduler runs callbacks on time.AfterFunc timers. Timers live only as
// long as the process, so callers pair it with lazy expiry on read.
type Scheduler struct{}

var _ ports.Scheduler = Scheduler{}

func New() Scheduler {
	return Scheduler{}
}

func (Scheduler) After(d time.Duration, fn func()) func() {
	if d < 0 {
		d = 0
	}

	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}
