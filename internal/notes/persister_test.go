package notes

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/cristianoliveira/tmux-notes/internal/errors"
	"github.com/cristianoliveira/tmux-notes/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// orderedGateway records every write in arrival order.
type orderedGateway struct {
	mu     sync.Mutex
	values []string
	delay  time.Duration
}

func (g *orderedGateway) Get(ctx context.Context, key string) (string, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.values) == 0 {
		return "", false, nil
	}
	return g.values[len(g.values)-1], true, nil
}

func (g *orderedGateway) Set(ctx context.Context, key, value string) error {
	if g.delay > 0 {
		time.Sleep(g.delay)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.values = append(g.values, value)
	return nil
}

func (g *orderedGateway) Close() error { return nil }

func TestPersisterWritesInOrder(t *testing.T) {
	gw := &orderedGateway{delay: time.Millisecond}
	p := NewPersister(gw, PersisterOptions{})
	defer p.Close()

	s := NewStore(p, WithClock(fixedClock(1)))
	for _, text := range []string{"a", "b", "c"} {
		_, err := s.Add(text)
		require.NoError(t, err)
	}
	require.NoError(t, s.Remove(2))

	require.NoError(t, p.Flush(context.Background()))

	require.Len(t, gw.values, 4)
	var counts []int
	for _, raw := range gw.values {
		snap, err := DecodeSnapshot(raw)
		require.NoError(t, err)
		counts = append(counts, snap.Count)
	}
	assert.Equal(t, []int{1, 2, 3, 2}, counts)
	assert.JSONEq(t, `{"count":2,"listNotes":[{"id":1,"text":"a"},{"id":3,"text":"c"}]}`, gw.values[3])
}

func TestPersisterUsesConfiguredKey(t *testing.T) {
	gw := storage.NewMemoryStorage()
	p := NewPersister(gw, PersisterOptions{Key: "customKey"})
	assert.Equal(t, "customKey", p.Key())

	p.Schedule(Snapshot{ListNotes: []Note{{ID: 1, Text: "x"}}})
	require.NoError(t, p.Close())

	raw, found, err := gw.Get(context.Background(), "customKey")
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `{"count":1,"listNotes":[{"id":1,"text":"x"}]}`, raw)
}

func TestPersisterFailureDoesNotRollBack(t *testing.T) {
	gw := new(storage.MockGateway)
	gw.On("Set", mock.Anything, DefaultStorageKey, mock.Anything).Return(stderrors.New("disk full"))

	var (
		mu       sync.Mutex
		reported []error
	)
	p := NewPersister(gw, PersisterOptions{OnError: func(err error) {
		mu.Lock()
		defer mu.Unlock()
		reported = append(reported, err)
	}})
	defer p.Close()

	s := NewStore(p)
	_, err := s.Add("keep me")
	require.NoError(t, err)
	require.NoError(t, p.Flush(context.Background()))

	assert.Equal(t, 1, s.Count())
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, reported, 1)
	assert.True(t, stderrors.Is(reported[0], errors.ErrStorage))
	assert.Contains(t, reported[0].Error(), "disk full")
	gw.AssertNumberOfCalls(t, "Set", 1)
}

func TestPersisterWriteTimeout(t *testing.T) {
	gw := new(storage.MockGateway)
	gw.On("Set", mock.Anything, DefaultStorageKey, mock.Anything).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(context.DeadlineExceeded)

	errs := make(chan error, 1)
	p := NewPersister(gw, PersisterOptions{
		Timeout: 10 * time.Millisecond,
		OnError: func(err error) { errs <- err },
	})
	defer p.Close()

	p.Schedule(EmptySnapshot())
	select {
	case err := <-errs:
		assert.True(t, stderrors.Is(err, context.DeadlineExceeded))
	case <-time.After(2 * time.Second):
		t.Fatal("write did not time out")
	}
}

func TestPersisterAfterClose(t *testing.T) {
	errs := make(chan error, 1)
	p := NewPersister(storage.NewMemoryStorage(), PersisterOptions{OnError: func(err error) { errs <- err }})
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())

	assert.ErrorIs(t, p.Flush(context.Background()), ErrPersisterClosed)
	p.Schedule(EmptySnapshot())
	err := <-errs
	assert.ErrorIs(t, err, ErrPersisterClosed)
}

func TestFlushHonoursContext(t *testing.T) {
	block := make(chan struct{})
	gw := new(storage.MockGateway)
	gw.On("Set", mock.Anything, DefaultStorageKey, mock.Anything).
		Run(func(mock.Arguments) { <-block }).
		Return(nil)

	p := NewPersister(gw, PersisterOptions{})
	p.Schedule(EmptySnapshot())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, p.Flush(ctx), context.DeadlineExceeded)

	close(block)
	require.NoError(t, p.Close())
}
