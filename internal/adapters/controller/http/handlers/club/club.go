package club

import (
	"context"
	"net/http"

	"github.com/clubhub-dev/clubhub/cmd/app"
	"github.com/clubhub-dev/clubhub/internal/adapters/controller/http/handlers"
	"github.com/clubhub-dev/clubhub/internal/adapters/controller/http/handlers/middlewares"
	"github.com/clubhub-dev/clubhub/internal/adapters/database/postgres"
	"github.com/clubhub-dev/clubhub/internal/domain/dto"
	"github.com/clubhub-dev/clubhub/internal/domain/entity"
	"github.com/clubhub-dev/clubhub/internal/domain/service"
	"github.com/clubhub-dev/clubhub/pkg/logger/types"
	"github.com/clubhub-dev/clubhub/pkg/response"
	"github.com/go-chi/chi/v5"
)

type clubService interface {
	Get(ctx context.Context, id uint) (*entity.Club, error)
}

type listingService interface {
	Clubs(ctx context.Context, req dto.PageRequest) (dto.Page[dto.Club], error)
	AttendsByClub(ctx context.Context, clubID uint, req dto.PageRequest) (dto.Page[dto.Attend], error)
	AttendsByUser(ctx context.Context, user *entity.User, req dto.PageRequest) (dto.Page[dto.Attend], error)
}

type attendService interface {
	Register(ctx context.Context, user *entity.User, targetID uint) (*dto.Registration, error)
}

type Handler struct {
	logger      *types.Logger
	clubs       clubService
	listing     listingService
	attends     attendService
	middlewares *middlewares.Handler
}

func New(a *app.App, middle *middlewares.Handler) *Handler {
	clubStorage := postgres.NewClubStorage(a.DB)
	attendStorage := postgres.NewAttendStorage(a.DB)

	return &Handler{
		logger: a.Logger,
		clubs:  service.NewClubService(clubStorage),
		listing: service.NewListingService(
			postgres.NewPostStorage(a.DB),
			clubStorage,
			postgres.NewUserStorage(a.DB),
			postgres.NewJoinStorage(a.DB),
			attendStorage,
			a.Settings.PageSizes,
		),
		attends:     service.NewAttendService(a.Logger.Named("attends"), clubStorage, attendStorage, a.Metrics),
		middlewares: middle,
	}
}

func (h Handler) Setup(r chi.Router) {
	r.Get("/clubs", h.List)
	r.Get("/clubs/{id}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(h.middlewares.RequireUser)
		r.Post("/clubs/{id}/attend", h.Attend)
		r.Get("/clubs/{id}/attends", h.Attends)
		r.Get("/me/attends", h.MyAttends)
	})
}

func (h Handler) List(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.Page(r)
	if err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}
	page, err := h.listing.Clubs(r.Context(), req)
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
	club, err := h.clubs.Get(r.Context(), id)
	if err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, dto.NewClubFromEntity(*club))
}

func (h Handler) Attend(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.ID(r, "id")
	if err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}
	registration, err := h.attends.Register(r.Context(), middlewares.UserFromContext(r.Context()), id)
	if err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, registration)
}

func (h Handler) Attends(w http.ResponseWriter, r *http.Request) {
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
	page, err := h.listing.AttendsByClub(r.Context(), id, req)
	if err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, page)
}

func (h Handler) MyAttends(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.Page(r)
	if err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}
	page, err := h.listing.AttendsByUser(r.Context(), middlewares.UserFromContext(r.Context()), req)
	if err != nil {
		handlers.Fail(h.logger, w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, page)
}
