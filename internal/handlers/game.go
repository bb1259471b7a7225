package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/memory-server/internal/config"
	"github.com/vancomm/memory-server/internal/memory"
	"github.com/vancomm/memory-server/internal/registry"
)

type GameHandler struct {
	log      logrus.FieldLogger
	registry *registry.Registry
	ws       *config.WebSocket
	params   memory.Params
}

func NewGameHandler(
	log logrus.FieldLogger,
	registry *registry.Registry,
	ws *config.WebSocket,
	params memory.Params,
) *GameHandler {
	handler := &GameHandler{
		log:      log,
		registry: registry,
		ws:       ws,
		params:   params,
	}

	return handler
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseCreateNewGameDTO(r.URL.Query())
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}

	params := g.params
	if dto.Dimension != 0 {
		params = params.WithDimension(dto.Dimension)
	}

	e, err := g.registry.Create(params)
	if errors.Is(err, memory.ErrInvalidDimension) ||
		errors.Is(err, memory.ErrInsufficientSymbols) {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to create game session")
		return
	}

	sendStatusJSON(w, g.log, http.StatusCreated,
		NewGameSessionDTO(e.ID.String(), e.Session.Snapshot()),
	)
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	e, ok := g.entry(w, r)
	if !ok {
		return
	}
	g.reply(w, e)
}

func (g GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	e, ok := g.entry(w, r)
	if !ok {
		return
	}
	e.Start()
	g.reply(w, e)
}

func (g GameHandler) Flip(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseFlipDTO(r.URL.Query())
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}

	e, ok := g.entry(w, r)
	if !ok {
		return
	}
	e.Click(dto.Index)
	g.reply(w, e)
}

func (g GameHandler) Restart(w http.ResponseWriter, r *http.Request) {
	e, ok := g.entry(w, r)
	if !ok {
		return
	}
	if err := e.Restart(); err != nil {
		if errors.Is(err, memory.ErrSessionClosed) {
			w.WriteHeader(http.StatusGone)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to restart game")
		return
	}
	g.reply(w, e)
}

func (g GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}
	if err := g.registry.Delete(id); errors.Is(err, registry.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (g GameHandler) entry(w http.ResponseWriter, r *http.Request) (*registry.Entry, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return nil, false
	}
	e, err := g.registry.Get(id)
	if errors.Is(err, registry.ErrNotFound) {
		sendError(w, g.log, http.StatusNotFound, err)
		return nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to fetch session")
		return nil, false
	}
	return e, true
}

func (g GameHandler) reply(w http.ResponseWriter, e *registry.Entry) {
	sendJSONOrLog(w, g.log, NewGameSessionDTO(e.ID.String(), e.Session.Snapshot()))
}
