package notes

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/cristianoliveira/tmux-notes/internal/colors"
	"github.com/cristianoliveira/tmux-notes/internal/errors"
	"github.com/cristianoliveira/tmux-notes/internal/logging"
	"github.com/cristianoliveira/tmux-notes/internal/storage"
)

const (
	// DefaultStorageKey is the key the snapshot is stored under.
	DefaultStorageKey = "notesData"
	// DefaultWriteTimeout bounds a single gateway write.
	DefaultWriteTimeout = 5 * time.Second
)

// ErrPersisterClosed is returned by Flush after Close.
var ErrPersisterClosed = stderrors.New("persister closed")

// PersisterOptions configures a Persister.
type PersisterOptions struct {
	// Key defaults to DefaultStorageKey.
	Key string
	// Timeout defaults to DefaultWriteTimeout.
	Timeout time.Duration
	// OnError receives every failed write wrapped as a storage error.
	OnError func(error)
	// Logger defaults to the global file logger. Entries are tagged
	// component=persister.
	Logger logging.Logger
}

type persistJob struct {
	payload string
	// flush markers carry no payload and are closed once reached.
	flushed chan struct{}
}

// Persister writes snapshots to the storage gateway on a single background
// worker. Jobs are written in the order they were scheduled and each job
// carries its own encoded payload.
type Persister struct {
	gateway storage.Gateway
	key     string
	timeout time.Duration
	logger  logging.Logger

	mu      sync.Mutex
	queue   []persistJob
	onError func(error)
	closed  bool

	wake chan struct{}
	done chan struct{}
}

// NewPersister starts a Persister writing through gateway.
func NewPersister(gateway storage.Gateway, opts PersisterOptions) *Persister {
	if gateway == nil {
		panic("NewPersister: gateway dependency cannot be nil")
	}
	if opts.Key == "" {
		opts.Key = DefaultStorageKey
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultWriteTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logging.GetGlobal()
	}
	p := &Persister{
		gateway: gateway,
		key:     opts.Key,
		timeout: opts.Timeout,
		logger:  opts.Logger.With("component", "persister"),
		onError: opts.OnError,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

// Key returns the storage key snapshots are written under.
func (p *Persister) Key() string {
	return p.key
}

// SetOnError replaces the failure callback.
func (p *Persister) SetOnError(fn func(error)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onError = fn
}

// Schedule queues a write of s. It never waits for the gateway.
func (p *Persister) Schedule(s Snapshot) {
	payload, err := s.Encode()
	if err != nil {
		p.report(errors.Storage("encode", err))
		return
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.report(errors.Storage("set", ErrPersisterClosed))
		return
	}
	p.queue = append(p.queue, persistJob{payload: payload})
	p.mu.Unlock()
	p.signal()
}

// Flush waits until every write scheduled before the call has finished.
func (p *Persister) Flush(ctx context.Context) error {
	marker := persistJob{flushed: make(chan struct{})}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPersisterClosed
	}
	p.queue = append(p.queue, marker)
	p.mu.Unlock()
	p.signal()

	select {
	case <-marker.flushed:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close writes any queued snapshots and stops the worker.
func (p *Persister) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		<-p.done
		return nil
	}
	p.closed = true
	p.mu.Unlock()
	p.signal()
	<-p.done
	return nil
}

func (p *Persister) signal() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *Persister) run() {
	defer close(p.done)
	for {
		p.mu.Lock()
		if len(p.queue) == 0 {
			closed := p.closed
			p.mu.Unlock()
			if closed {
				return
			}
			<-p.wake
			continue
		}
		job := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		if job.flushed != nil {
			close(job.flushed)
			continue
		}
		p.write(job.payload)
	}
}

func (p *Persister) write(payload string) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	start := time.Now()
	if err := p.gateway.Set(ctx, p.key, payload); err != nil {
		p.report(errors.Storage("set", err))
		return
	}
	p.logger.Debug("snapshot persisted", "key", p.key, "bytes", len(payload), "duration", time.Since(start))
	colors.StructuredDebug("persister", "set", "completed", nil, p.key, map[string]interface{}{"bytes": len(payload)})
}

func (p *Persister) report(err error) {
	p.logger.Warn("snapshot not persisted", "key", p.key, "error", err)
	colors.StructuredWarn("persister", "set", "failed", err, p.key, nil)

	p.mu.Lock()
	fn := p.onError
	p.mu.Unlock()
	if fn != nil {
		fn(err)
	}
}
