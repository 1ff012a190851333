package main

import (
	"context"
	stderrors "errors"
	"strconv"
	"testing"
	"time"

	"github.com/cristianoliveira/tmux-notes/internal/app"
	"github.com/cristianoliveira/tmux-notes/internal/errors"
	"github.com/cristianoliveira/tmux-notes/internal/identity"
	"github.com/cristianoliveira/tmux-notes/internal/notes"
	"github.com/cristianoliveira/tmux-notes/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type staticUsers struct{}

func (staticUsers) Current(context.Context) (identity.User, error) {
	return identity.User{Name: "Ada"}, nil
}

type recordingPublisher struct {
	counts []int
}

func (r *recordingPublisher) Publish(_ context.Context, count int) error {
	r.counts = append(r.counts, count)
	return nil
}

func newTestClient(t *testing.T, gw storage.Gateway) *notesClient {
	t.Helper()
	t.Setenv("TMUX", "")
	c := &notesClient{open: func(ctx context.Context, opts app.RuntimeOptions) (*app.Runtime, error) {
		opts.Gateway = gw
		opts.Users = staticUsers{}
		opts.Key = notes.DefaultStorageKey
		opts.Timeout = time.Second
		return app.Open(ctx, opts)
	}}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestClientMutationsAreFlushed(t *testing.T) {
	ctx := context.Background()
	gw := storage.NewMemoryStorage()
	c := newTestClient(t, gw)

	first, err := c.Add(ctx, "  buy milk ")
	require.NoError(t, err)
	assert.Equal(t, "buy milk", first.Text)

	second, err := c.Add(ctx, "call mom")
	require.NoError(t, err)

	_, err = c.Edit(ctx, first.ID, "buy oat milk")
	require.NoError(t, err)
	require.NoError(t, c.Delete(ctx, second.ID))

	raw, found, err := gw.Get(ctx, notes.DefaultStorageKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `{"count":1,"listNotes":[{"id":`+itoa(first.ID)+`,"text":"buy oat milk"}]}`, raw)

	list, err := c.Notes(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestClientKeepsErrorKinds(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, storage.NewMemoryStorage())

	_, err := c.Add(ctx, "   ")
	assert.True(t, stderrors.Is(err, errors.ErrEmpty))

	err = c.Delete(ctx, 123)
	assert.True(t, stderrors.Is(err, errors.ErrNotFound))
}

func TestClientReturnsWriteFailure(t *testing.T) {
	gw := new(storage.MockGateway)
	gw.On("Get", mock.Anything, notes.DefaultStorageKey).Return("", false, nil)
	gw.On("Set", mock.Anything, notes.DefaultStorageKey, mock.Anything).Return(stderrors.New("disk full"))
	gw.On("Close").Return(nil)
	c := newTestClient(t, gw)

	note, err := c.Add(context.Background(), "kept in memory")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrStorage))
	assert.Equal(t, "kept in memory", note.Text)

	list, err := c.Notes(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestClientPublishesCountAfterCleanFlush(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, storage.NewMemoryStorage())
	pub := &recordingPublisher{}
	c.status = pub

	first, err := c.Add(ctx, "one")
	require.NoError(t, err)
	_, err = c.Add(ctx, "two")
	require.NoError(t, err)
	require.NoError(t, c.Delete(ctx, first.ID))

	assert.Equal(t, []int{1, 2, 1}, pub.counts)
}

func TestClientSkipsPublishOnWriteFailure(t *testing.T) {
	gw := new(storage.MockGateway)
	gw.On("Get", mock.Anything, notes.DefaultStorageKey).Return("", false, nil)
	gw.On("Set", mock.Anything, notes.DefaultStorageKey, mock.Anything).Return(stderrors.New("disk full"))
	gw.On("Close").Return(nil)
	c := newTestClient(t, gw)
	pub := &recordingPublisher{}
	c.status = pub

	_, err := c.Add(context.Background(), "lost")
	require.Error(t, err)
	assert.Empty(t, pub.counts)
}

func TestClientOpenFailure(t *testing.T) {
	c := &notesClient{open: func(context.Context, app.RuntimeOptions) (*app.Runtime, error) {
		return nil, stderrors.New("no state dir")
	}}
	_, err := c.Notes(context.Background())
	require.ErrorContains(t, err, "no state dir")
	assert.NoError(t, c.Close())
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
