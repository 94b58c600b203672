package post

import (
	"context"
	"fmt"
	"net/http"

	"github.com/clubhub-dev/clubhub/cmd/app"
	"github.com/clubhub-dev/clubhub/internal/adapters/controller/http/handlers"
	"github.com/clubhub-dev/clubhub/internal/adapters/controller/http/handlers/middlewares"
	"github.com/clubhub-dev/clubhub/internal/adapters/database/postgres"
	"github.com/clubhub-dev/clubhub/internal/domain/dto"
	"github.com/clubhub-dev/clubhub/internal/domain/entity"
	"github.com/clubhub-dev/clubhub/internal/domain/service"
	"github.com/clubhub-dev/clubhub/pkg/logger/types"
	qr "github.com/clubhub-dev/clubhub/pkg/qrcode"
	"github.com/clubhub-dev/clubhub/pkg/response"
	"github.com/go-chi/chi/v5"
)

type postService interface {
	Get(ctx context.Context, id uint) (*entity.Post, error)
	Create(ctx context.Context, user *entity.User, input dto.PostInput) (*entity.Post, error)
	Update(ctx context.Context, user *entity.User, id uint, input dto.PostInput) (*entity.Post, error)
	Delete(ctx context.Context, user *entity.User, id uint) error
}

type listingService interface {
	Posts(ctx context.Context, req dto.PageRequest) (dto.Page[dto.Post], error)
	PostsByUsername(ctx context.Context, username string, req dto.PageRequest) (dto.Page[dto.Post], error)
	JoinsByPost(ctx context.Context, postID uint, req dto.PageRequest) (dto.Page[dto.Join], error)
	JoinsByUser(ctx context.Context, user *entity.User, req dto.PageRequest) (dto.Page[dto.Join], error)
}

type joinService interface {
	Register(ctx context.Context, user *entity.User, targetID uint) (*dto.Registration, error)
}

type exportService interface {
	Calendar(ctx context.Context, postID uint) ([]byte, error)
	QR(ctx context.Context, postID uint) ([]byte, error)
	JoinsXLSX(ctx context.Context, user *entity.User, postID uint) ([]byte, error)
}

type Handler struct {
	logger      *types.Logger
	posts       postService
	listing     listingService
	joins       joinService
	exports     exportService
	middlewares *middlewares.Handler
}

func New(a *app.App, middle *middlewares.Handler) *Handler {
	postStorage := postgres.NewPostStorage(a.DB)
	joinStorage := postgres.NewJoinStorage(a.DB)

	return &Handler{
		logger: a.Logger,
		posts:  service.NewPostService(a.Logger.Named("posts"), postStorage),
		listing: service.NewListingService(
			postStorage,
			postgres.NewClubStorage(a.DB),
			postgres.NewUserStorage(a.DB),
			joinStorage,
			postgres.NewAttendStorage(a.DB),
			a.Settings.PageSizes,
		),
		joins:       service.NewJoinService(a.Logger.Named("joins"), postStorage, joinStorage, a.Metrics),
		exports:     service.NewExportService(postStorage, joinStorage, qr.Default, a.Settings.HTTP.PublicURL),
		middlewares: middle,
	}
}

func (h Handler) Setup(r chi.Router) {
	r.Get("/posts", h.List)
	r.Get("/posts/{id}", h.Get)
	r.Get("/posts/{id}/calendar.ics", h.Calendar)
	r.Get("/posts/{id}/qr.png", h.QR)
	r.Get("/users/{username}/posts", h.ByUsername)

	r.Group(func(r chi.Router) {
		r.Use(h.middlewares.RequireUser)
		r.Post("/posts", h.Create)
		r.Put("/posts/{id}", h.Update)
		r.Delete("/posts/{id}", h.Delete)
		r.Post("/posts/{id}/join", h.Join)
		r.Get("/posts/{id}/joins", h.Joins)
		r.Get("/posts/{id}/joins/export.xlsx", h.ExportJoins)
		r.Get("/me/joins", h.MyJoins)
	})
}

func (h Handler) List(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.Page(r)
	if err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}
	page, err := h.listing.Posts(r.Context(), req)
	if err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, page)
}

func (h Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.ID(r, "id")
	if err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}
	post, err := h.posts.Get(r.Context(), id)
	if err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, dto.NewPostFromEntity(*post))
}

func (h Handler) ByUsername(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.Page(r)
	if err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}
	page, err := h.listing.PostsByUsername(r.Context(), chi.URLParam(r, "username"), req)
	if err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, page)
}

func (h Handler) Create(w http.ResponseWriter, r *http.Request) {
	var input dto.PostInput
	if err := handlers.Decode(w, r, &input); err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}
	post, err := h.posts.Create(r.Context(), middlewares.UserFromContext(r.Context()), input)
	if err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}
	response.JSON(w, http.StatusCreated, dto.NewPostFromEntity(*post))
}

func (h Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.ID(r, "id")
	if err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}
	var input dto.PostInput
	if err = handlers.Decode(w, r, &input); err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}
	post, err := h.posts.Update(r.Context(), middlewares.UserFromContext(r.Context()), id, input)
	if err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, dto.NewPostFromEntity(*post))
}

func (h Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.ID(r, "id")
	if err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}
	if err = h.posts.Delete(r.Context(), middlewares.UserFromContext(r.Context()), id); err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"redirect": "/"})
}

func (h Handler) Join(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.ID(r, "id")
	if err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}
	registration, err := h.joins.Register(r.Context(), middlewares.UserFromContext(r.Context()), id)
	if err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, registration)
}

func (h Handler) Joins(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.ID(r, "id")
	if err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}
	req, err := handlers.Page(r)
	if err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}
	page, err := h.listing.JoinsByPost(r.Context(), id, req)
	if err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, page)
}

func (h Handler) MyJoins(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.Page(r)
	if err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}
	page, err := h.listing.JoinsByUser(r.Context(), middlewares.UserFromContext(r.Context()), req)
	if err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, page)
}

func (h Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.ID(r, "id")
	if err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}
	data, err := h.exports.Calendar(r.Context(), id)
	if err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}
	response.Blob(w, "text/calendar; charset=utf-8", fmt.Sprintf("post-%d.ics", id), data)
}

func (h Handler) QR(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.ID(r, "id")
	if err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}
	data, err := h.exports.QR(r.Context(), id)
	if err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}
	response.Blob(w, "image/png", "", data)
}

func (h Handler) ExportJoins(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.ID(r, "id")
	if err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}
	data, err := h.exports.JoinsXLSX(r.Context(), middlewares.UserFromContext(r.Context()), id)
	if err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}
	response.Blob(w,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		fmt.Sprintf("post-%d-joins.xlsx", id),
		data,
	)
}
