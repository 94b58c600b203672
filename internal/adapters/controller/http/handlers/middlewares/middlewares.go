package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/clubhub-dev/clubhub/cmd/app"
	"github.com/clubhub-dev/clubhub/internal/adapters/database/postgres"
	"github.com/clubhub-dev/clubhub/internal/domain/common/errorz"
	"github.com/clubhub-dev/clubhub/internal/domain/entity"
	"github.com/clubhub-dev/clubhub/internal/domain/service"
	"github.com/clubhub-dev/clubhub/pkg/logger/types"
	"github.com/clubhub-dev/clubhub/pkg/response"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// SessionCookie holds the session token issued on login.
const SessionCookie = "session"

type contextKey struct{}

var userKey = contextKey{}

// UserFromContext returns the identified caller or nil for anonymous requests.
func UserFromContext(ctx context.Context) *entity.User {
	user, _ := ctx.Value(userKey).(*entity.User)
	return user
}

func WithUser(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

type authenticator interface {
	UserBySession(ctx context.Context, token string) (*entity.User, error)
	UserByAccessToken(ctx context.Context, token string) (*entity.User, error)
}

type requestObserver interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

type Handler struct {
	logger  *types.Logger
	auth    authenticator
	metrics requestObserver
}

func New(a *app.App) *Handler {
	auth := service.NewAuthService(
		a.Logger.Named("auth"),
		postgres.NewUserStorage(a.DB),
		a.Redis.Sessions,
		a.Settings.Auth.AuthConfig,
	)
	return &Handler{
		logger:  a.Logger,
		auth:    auth,
		metrics: a.Metrics,
	}
}

// Identify resolves the caller from the session cookie or a bearer token. Requests
// with missing or stale credentials continue anonymously.
func (h Handler) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			user *entity.User
			err  error
		)
		if cookie, cookieErr := r.Cookie(SessionCookie); cookieErr == nil && cookie.Value != "" {
			user, err = h.auth.UserBySession(r.Context(), cookie.Value)
		}
		// a stale cookie must not shadow a valid bearer token
		if user == nil && (err == nil || errors.Is(err, errorz.ErrUnauthenticated)) {
			if token, ok := bearerToken(r); ok {
				user, err = h.auth.UserByAccessToken(r.Context(), token)
			}
		}

		if err != nil && !errors.Is(err, errorz.ErrUnauthenticated) {
			h.logger.Errorf("failed to identify caller: %v", err)
			response.Error(w, err)
			return
		}
		if user != nil {
			r = r.WithContext(WithUser(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireUser rejects anonymous requests. Browsers are sent to the login page
// with the original path in ?next=, API clients get 401.
func (h Handler) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFromContext(r.Context()) != nil {
			next.ServeHTTP(w, r)
			return
		}
		if wantsHTML(r) {
			http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
			return
		}
		response.Error(w, errorz.ErrUnauthenticated)
	})
}

// Logger writes one access log line per request.
func (h Handler) Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		h.logger.Infow("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// Metrics records request latency labelled by the matched route pattern.
func (h Handler) Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		h.metrics.ObserveRequest(r.Method, route, status, time.Since(start))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
