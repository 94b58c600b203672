package setup

import (
	"net/http"

	"github.com/clubhub-dev/clubhub/cmd/app"
	"github.com/clubhub-dev/clubhub/internal/adapters/controller/http/handlers/club"
	"github.com/clubhub-dev/clubhub/internal/adapters/controller/http/handlers/common"
	"github.com/clubhub-dev/clubhub/internal/adapters/controller/http/handlers/middlewares"
	"github.com/clubhub-dev/clubhub/internal/adapters/controller/http/handlers/post"
	"github.com/clubhub-dev/clubhub/internal/adapters/controller/http/handlers/user"
	"github.com/clubhub-dev/clubhub/pkg/response"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

type routes interface {
	Setup(r chi.Router)
}

// Setup builds the HTTP router.
func Setup(a *app.App) (http.Handler, error) {
	middle := middlewares.New(a)
	commonHandler, err := common.New(a)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middle.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middle.Metrics)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   a.Settings.HTTP.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler)
	r.Use(middle.Identify)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.ErrorWithMessage(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.ErrorWithMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	for _, h := range []routes{
		commonHandler,
		user.New(a, middle),
		post.New(a, middle),
		club.New(a, middle),
	} {
		h.Setup(r)
	}

	return r, nil
}
