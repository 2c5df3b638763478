package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/angelofallars/hyperinvoice/internal/editor"
	"github.com/angelofallars/hyperinvoice/internal/service"
)

const pruneInterval = time.Minute

type App struct {
	host string
	port int

	logger *zap.Logger
	router chi.Router

	registry   *editor.Registry
	svcInvoice service.Invoice
}

func New(logger *zap.Logger, svcInvoice service.Invoice, registry *editor.Registry) *App {
	app := &App{
		host: "localhost",
		port: 3000,

		router: chi.NewRouter(),
		logger: logger,

		registry:   registry,
		svcInvoice: svcInvoice,
	}

	app.RegisterRoutes()

	return app
}

func (a *App) WithHost(host string) *App {
	a.host = host
	return a
}

func (a *App) WithPort(port uint) *App {
	a.port = int(port)
	return a
}

func (a *App) Handler() http.Handler {
	return a.router
}

// Serve runs the server and the session pruner until ctx is cancelled,
// then shuts the server down gracefully.
func (a *App) Serve(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", a.host, a.port)
	server := &http.Server{
		Addr:    addr,
		Handler: a.router,

		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.registry.Run(ctx, pruneInterval, func(dropped int) {
			a.logger.Debug("expired sessions pruned", zap.Int("dropped", dropped), zap.Int("remaining", a.registry.Len()))
		})
		return nil
	})

	g.Go(func() error {
		a.logger.Info("server started listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		a.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		a.logger.Info("server stopped gracefully")
		return nil
	})

	return g.Wait()
}
