package ports

import "time"

// Scheduler runs fn once after the delay, best effort: the callback may be
// skipped if the process goes away first. The returned cancel func is also
// best effort; callers revalidate at fire time rather than relying on it.
type Scheduler interface {
	After(d time.Duration, fn func()) (cancel func())
}
