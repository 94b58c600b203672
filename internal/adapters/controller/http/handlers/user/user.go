package user

import (
	"context"
	"net/http"
	"time"

	"github.com/clubhub-dev/clubhub/cmd/app"
	"github.com/clubhub-dev/clubhub/internal/adapters/controller/http/handlers"
	"github.com/clubhub-dev/clubhub/internal/adapters/controller/http/handlers/middlewares"
	"github.com/clubhub-dev/clubhub/internal/adapters/database/postgres"
	"github.com/clubhub-dev/clubhub/internal/domain/dto"
	"github.com/clubhub-dev/clubhub/internal/domain/service"
	"github.com/clubhub-dev/clubhub/pkg/logger/types"
	"github.com/clubhub-dev/clubhub/pkg/response"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

type authService interface {
	Login(ctx context.Context, username, password string) (*dto.Session, error)
	Logout(ctx context.Context, token string) error
	SessionTTL() time.Duration
}

type listingService interface {
	Users(ctx context.Context, req dto.PageRequest) (dto.Page[dto.User], error)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Handler struct {
	logger        *types.Logger
	auth          authService
	listing       listingService
	middlewares   *middlewares.Handler
	limiter       *middlewares.IPRateLimiter
	secureCookies bool
}

func New(a *app.App, middle *middlewares.Handler) *Handler {
	userStorage := postgres.NewUserStorage(a.DB)

	return &Handler{
		logger: a.Logger,
		auth:   service.NewAuthService(a.Logger.Named("auth"), userStorage, a.Redis.Sessions, a.Settings.Auth.AuthConfig),
		listing: service.NewListingService(
			postgres.NewPostStorage(a.DB),
			postgres.NewClubStorage(a.DB),
			userStorage,
			postgres.NewJoinStorage(a.DB),
			postgres.NewAttendStorage(a.DB),
			a.Settings.PageSizes,
		),
		middlewares:   middle,
		limiter:       middlewares.NewIPRateLimiter(rate.Limit(a.Settings.Auth.LoginRate), a.Settings.Auth.LoginBurst),
		secureCookies: a.Settings.Auth.SecureCookies,
	}
}

func (h Handler) Setup(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middlewares.RateLimit(h.limiter))
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	r.With(h.middlewares.RequireUser).Get("/users", h.List)
}

// Login opens a session: the token is set as an http-only cookie and an access
// token for API clients is returned in the body.
func (h Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := handlers.Decode(w, r, &req); err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}

	session, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middlewares.SessionCookie,
		Value:    session.Token,
		Path:     "/",
		MaxAge:   int(h.auth.SessionTTL().Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	response.JSON(w, http.StatusOK, session)
}

func (h Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middlewares.SessionCookie); err == nil {
		if err = h.auth.Logout(r.Context(), cookie.Value); err != nil {
			handlers.Fail(h.logger, w, r, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middlewares.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	response.JSON(w, http.StatusOK, map[string]string{"redirect": "/"})
}

func (h Handler) List(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.Page(r)
	if err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}
	page, err := h.listing.Users(r.Context(), req)
	if err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, page)
}
