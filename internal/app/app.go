package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/coder/quartz"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/memory-server/internal/config"
	"github.com/vancomm/memory-server/internal/middleware"
	"github.com/vancomm/memory-server/internal/registry"
)

type App struct {
	log      *logrus.Logger
	config   *config.Config
	router   *http.ServeMux
	registry *registry.Registry
	ws       *config.WebSocket
}

func New(log *logrus.Logger, cfg *config.Config, clock quartz.Clock) *App {
	app := &App{
		log:      log,
		config:   cfg,
		router:   http.NewServeMux(),
		registry: registry.New(clock, log),
		ws:       config.NewWebSocket(cfg),
	}
	app.loadRoutes()

	return app
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Logging(a.log),
		middleware.Cors(a.config.Origins),
	)
}

func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Start serves until ctx is done or the listener fails, then shuts the
// server down and closes every session.
func (a *App) Start(ctx context.Context) error {
	defer a.registry.Close()

	server := &http.Server{
		Addr:    a.config.Addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
		defer cancel()
		return server.Shutdown(sCtx)
	})
	g.Go(func() error {
		return a.registry.Run(gCtx,
			a.config.Sessions.SweepInterval.Duration,
			a.config.Sessions.IdleTimeout.Duration,
		)
	})

	a.log.Infof("ready to serve @ %s", a.config.Addr)
	return g.Wait()
}
