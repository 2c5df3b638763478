package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelofallars/hyperinvoice/app/route/invoice"
	"github.com/angelofallars/hyperinvoice/app/session"
)

func (a *App) RegisterRoutes() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.RealIP)
	a.router.Use(requestLogger(a.logger))
	a.router.Use(requestMetrics)
	a.router.Use(middleware.Recoverer)

	a.router.Handle("/metrics", promhttp.Handler())
	a.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	a.router.Group(func(r chi.Router) {
		r.Use(session.RequireEditor(a.registry))
		invoice.NewHandlerGroup(a.svcInvoice, a.logger).Mount(r)
	})
}
