package notes

import (
	stderrors "errors"
	"math"
	"sync"
	"time"
)

// ErrIDsExhausted is returned when a loaded id leaves no larger id to hand out.
var ErrIDsExhausted = stderrors.New("note ids exhausted")

// Clock returns the current time. Tests replace it.
type Clock func() time.Time

// idSource hands out creation-time ids in Unix milliseconds. Two notes
// created in the same millisecond still get distinct ids, and ids never go
// below a value already seen.
type idSource struct {
	mu   sync.Mutex
	now  Clock
	last int64
}

func newIDSource(now Clock) *idSource {
	if now == nil {
		now = time.Now
	}
	return &idSource{now: now}
}

func (s *idSource) next() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.now().UnixMilli()
	if id <= s.last {
		if s.last == math.MaxInt64 {
			return 0, ErrIDsExhausted
		}
		id = s.last + 1
	}
	s.last = id
	return id, nil
}

// observe makes sure future ids are greater than id.
func (s *idSource) observe(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id > s.last {
		s.last = id
	}
}
