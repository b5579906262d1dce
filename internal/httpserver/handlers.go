package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/engula/engula-operator/internal/infra/appstate"
)

// newRouter mounts the operational endpoints.
func newRouter(logger *slog.Logger, appState appstater) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)

	router.Get("/-/healthz", appstate.HandleHealthz(logger, appState))
	router.Get("/-/readyz", appstate.HandleReadyz(logger, appState))
	router.Get("/-/status", appstate.HandleStatus(logger, appState))

	return router
}
