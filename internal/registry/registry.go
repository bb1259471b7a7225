// Package registry keeps the live game sessions of the server in memory.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/memory-server/internal/broadcast"
	"github.com/vancomm/memory-server/internal/memory"
)

var ErrNotFound = fmt.Errorf("session not found")

// Entry couples a session with the hub it renders to.
type Entry struct {
	ID      uuid.UUID
	Session *memory.Session
	Hub     *broadcast.Hub

	lastSeen time.Time
}

// Click and the other input methods let an Entry act as a
// [command.Target].
func (e *Entry) Click(index int)      { e.Session.Click(index) }
func (e *Entry) Start()               { e.Session.Start() }
func (e *Entry) Restart() error       { return e.Session.Restart() }
func (e *Entry) TriggerRestart() bool { return e.Hub.TriggerRestart() }

type Registry struct {
	sync.RWMutex
	clock   quartz.Clock
	log     logrus.FieldLogger
	entries map[uuid.UUID]*Entry
}

func New(clock quartz.Clock, log logrus.FieldLogger) *Registry {
	return &Registry{
		clock:   clock,
		log:     log,
		entries: make(map[uuid.UUID]*Entry),
	}
}

// Create starts a new session rendered to a fresh hub.
func (r *Registry) Create(params memory.Params, opts ...memory.Option) (*Entry, error) {
	id := uuid.New()
	log := r.log.WithField("session", id)
	hub := broadcast.NewHub(log, broadcast.DefaultBuffer)

	opts = append([]memory.Option{
		memory.WithClock(r.clock),
		memory.WithLogger(log),
	}, opts...)
	session, err := memory.NewSession(params, hub, opts...)
	if err != nil {
		return nil, err
	}

	e := &Entry{ID: id, Session: session, Hub: hub, lastSeen: r.clock.Now()}

	r.Lock()
	r.entries[id] = e
	r.Unlock()

	log.WithField("dimension", params.Dimension).Info("session created")
	return e, nil
}

// Get looks a session up and marks it as recently used.
func (r *Registry) Get(id uuid.UUID) (*Entry, error) {
	r.Lock()
	defer r.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.lastSeen = r.clock.Now()
	return e, nil
}

func (r *Registry) Delete(id uuid.UUID) error {
	r.Lock()
	e, ok := r.entries[id]
	delete(r.entries, id)
	r.Unlock()

	if !ok {
		return ErrNotFound
	}
	e.close()
	r.log.WithField("session", id).Info("session deleted")
	return nil
}

func (r *Registry) Len() int {
	r.RLock()
	defer r.RUnlock()

	return len(r.entries)
}

// Sweep closes sessions that have not been used for longer than idle and
// have nobody watching. It returns the number of sessions removed.
func (r *Registry) Sweep(idle time.Duration) int {
	now := r.clock.Now()
	var stale []*Entry

	r.Lock()
	for id, e := range r.entries {
		if now.Sub(e.lastSeen) > idle && e.Hub.Subscribers() == 0 {
			stale = append(stale, e)
			delete(r.entries, id)
		}
	}
	r.Unlock()

	for _, e := range stale {
		e.close()
	}
	if len(stale) > 0 {
		r.log.WithField("count", len(stale)).Info("swept idle sessions")
	}
	return len(stale)
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval, idle time.Duration) error {
	if interval <= 0 {
		<-ctx.Done()
		return nil
	}
	w := r.clock.TickerFunc(ctx, interval, func() error {
		r.Sweep(idle)
		return nil
	}, "registry", "sweep")
	err := w.Wait()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// Close ends every session.
func (r *Registry) Close() {
	r.Lock()
	entries := r.entries
	r.entries = make(map[uuid.UUID]*Entry)
	r.Unlock()

	for _, e := range entries {
		e.close()
	}
}

func (e *Entry) close() {
	e.Session.Close()
	e.Hub.Close()
}
