package common

import (
	"context"
	"net/http"

	"github.com/clubhub-dev/clubhub/cmd/app"
	"github.com/clubhub-dev/clubhub/internal/adapters/controller/http/handlers"
	"github.com/clubhub-dev/clubhub/pkg/logger/types"
	"github.com/clubhub-dev/clubhub/pkg/response"
	"github.com/go-chi/chi/v5"
)

type pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	logger  *types.Logger
	db      pinger
	metrics http.Handler
}

func New(a *app.App) (*Handler, error) {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return nil, err
	}
	return &Handler{
		logger:  a.Logger,
		db:      sqlDB,
		metrics: a.Metrics.Handler(),
	}, nil
}

func (h Handler) Setup(r chi.Router) {
	r.Get("/about", h.About)
	r.Get("/healthz", h.Health)
	r.Method(http.MethodGet, "/metrics", h.metrics)
}

func (h Handler) About(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"title": "About"})
}

func (h Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
