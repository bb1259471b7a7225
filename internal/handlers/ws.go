package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/memory-server/internal/broadcast"
	"github.com/vancomm/memory-server/internal/command"
	"github.com/vancomm/memory-server/internal/registry"
)

var errSessionGone = errors.New("session gone")

// ConnectWS streams the session's render events to the client and executes
// the command lines it sends back.
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	e, ok := g.entry(w, r)
	if !ok {
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithError(err).Warn("upgrade")
		return
	}
	defer c.Close()

	log := g.log.WithFields(logrus.Fields{
		"session": e.ID,
		"remote":  r.RemoteAddr,
	})
	log.Debug("ws connected")

	replies := make(chan broadcast.Event, 8)

	grp, ctx := errgroup.WithContext(r.Context())
	grp.Go(func() error {
		defer c.Close()
		return writeEvents(ctx, c, e, replies)
	})
	grp.Go(func() error {
		return readCommands(ctx, c, e, replies, log)
	})

	err = grp.Wait()
	switch {
	case err == nil:
		log.Debug("ws closed by server")
	case errors.Is(err, errSessionGone):
		log.Debug("session closed, ws disconnected")
	case websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway):
		log.Debug("ws disconnected")
	default:
		log.WithError(err).Debug("ws dropped")
	}
}

// writeEvents subscribes to the session's hub and forwards its events along
// with the replies to the client's commands. Every subscription starts with a
// state event, so a client evicted for lagging behind is resynced.
func writeEvents(
	ctx context.Context,
	c *websocket.Conn,
	e *registry.Entry,
	replies <-chan broadcast.Event,
) error {
	events, unsubscribe := e.Hub.Subscribe()
	defer func() { unsubscribe() }()
	if err := c.WriteJSON(broadcast.StateEvent(e.Session.Snapshot())); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			c.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
			return nil
		case ev, ok := <-events:
			if ok {
				if err := c.WriteJSON(ev); err != nil {
					return err
				}
				continue
			}
			if e.Hub.Closed() {
				c.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"))
				return errSessionGone
			}
			unsubscribe()
			events, unsubscribe = e.Hub.Subscribe()
			if err := c.WriteJSON(broadcast.StateEvent(e.Session.Snapshot())); err != nil {
				return err
			}
		case ev := <-replies:
			if err := c.WriteJSON(ev); err != nil {
				return err
			}
		}
	}
}

func readCommands(
	ctx context.Context,
	c *websocket.Conn,
	e *registry.Entry,
	replies chan<- broadcast.Event,
	log logrus.FieldLogger,
) error {
	reply := func(ev broadcast.Event) bool {
		select {
		case replies <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			return err
		}
		if mt != websocket.TextMessage {
			continue
		}
		for _, line := range command.Lines(string(message)) {
			log.WithField("command", line).Debug("\t>")
			cmd, err := command.Parse(line)
			if err != nil {
				if !reply(broadcast.ErrorEvent(err)) {
					return nil
				}
				continue
			}
			if cmd.Kind == command.Get {
				if !reply(broadcast.StateEvent(e.Session.Snapshot())) {
					return nil
				}
				continue
			}
			if err := command.Execute(e, cmd); err != nil {
				log.WithError(err).Warn("command failed")
				if !reply(broadcast.ErrorEvent(err)) {
					return nil
				}
			}
		}
	}
}
