package registry

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/memory-server/internal/memory"
)

func quietLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestRegistry(t *testing.T) (*Registry, *quartz.Mock) {
	clk := quartz.NewMock(t)
	r := New(clk, quietLogger())
	t.Cleanup(r.Close)
	return r, clk
}

func TestCreateGetDelete(t *testing.T) {
	r, _ := newTestRegistry(t)

	e, err := r.Create(memory.DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())

	got, err := r.Get(e.ID)
	require.NoError(t, err)
	assert.Same(t, e, got)

	require.NoError(t, r.Delete(e.ID))
	assert.Equal(t, 0, r.Len())

	_, err = r.Get(e.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, r.Delete(e.ID), ErrNotFound)

	// the deleted session no longer accepts input
	assert.ErrorIs(t, e.Restart(), memory.ErrSessionClosed)
}

func TestCreateRejectsBadParams(t *testing.T) {
	r, _ := newTestRegistry(t)

	_, err := r.Create(memory.DefaultParams().WithDimension(5))
	assert.ErrorIs(t, err, memory.ErrInvalidDimension)
	assert.Equal(t, 0, r.Len())
}

func TestGetUnknown(t *testing.T) {
	r, _ := newTestRegistry(t)

	_, err := r.Get(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSweep(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	r, clk := newTestRegistry(t)
	idle, err := r.Create(memory.DefaultParams())
	require.NoError(t, err)
	used, err := r.Create(memory.DefaultParams())
	require.NoError(t, err)
	watched, err := r.Create(memory.DefaultParams())
	require.NoError(t, err)

	_, unsubscribe := watched.Hub.Subscribe()
	defer unsubscribe()

	clk.Advance(20 * time.Minute).MustWait(ctx)
	_, err = r.Get(used.ID)
	require.NoError(t, err)
	clk.Advance(15 * time.Minute).MustWait(ctx)

	assert.Equal(t, 1, r.Sweep(30*time.Minute))

	_, err = r.Get(idle.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = r.Get(used.ID)
	assert.NoError(t, err)
	_, err = r.Get(watched.ID)
	assert.NoError(t, err)
}

func TestRunStopsWithContext(t *testing.T) {
	r := New(quartz.NewReal(), quietLogger())
	defer r.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, r.Run(ctx, time.Minute, time.Hour))
}

func TestEntryDrivesSession(t *testing.T) {
	r, _ := newTestRegistry(t)
	e, err := r.Create(memory.DefaultParams())
	require.NoError(t, err)

	e.Start()
	assert.Equal(t, memory.Running, e.Session.Phase())

	e.Click(0)
	assert.Equal(t, 1, e.Session.State().TotalFlips)

	assert.False(t, e.TriggerRestart(), "no win banner yet")
	require.NoError(t, e.Restart())
	assert.Equal(t, memory.Idle, e.Session.Phase())
}
