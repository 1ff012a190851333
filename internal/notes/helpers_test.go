package notes

import (
	"sync"
	"time"
)

// recordingScheduler keeps every scheduled snapshot.
type recordingScheduler struct {
	mu        sync.Mutex
	snapshots []Snapshot
}

func (r *recordingScheduler) Schedule(s Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append(r.snapshots, s)
}

func (r *recordingScheduler) writes() []Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Snapshot, len(r.snapshots))
	copy(out, r.snapshots)
	return out
}

func (r *recordingScheduler) last() Snapshot {
	w := r.writes()
	return w[len(w)-1]
}

// fixedClock returns the same instant on every call.
func fixedClock(ms int64) Clock {
	return func() time.Time { return time.UnixMilli(ms) }
}

func newTestStore(opts ...Option) (*Store, *recordingScheduler) {
	rec := &recordingScheduler{}
	return NewStore(rec, opts...), rec
}
