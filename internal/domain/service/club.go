package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/clubhub-dev/clubhub/internal/domain/common/errorz"
	"github.com/clubhub-dev/clubhub/internal/domain/entity"
	"github.com/clubhub-dev/clubhub/internal/domain/utils/validator"
)

type ClubStorage interface {
	Create(ctx context.Context, club *entity.Club) (*entity.Club, error)
	Get(ctx context.Context, id uint) (*entity.Club, error)
}

type ClubService struct {
	storage ClubStorage
	now     func() time.Time
}

func NewClubService(storage ClubStorage) *ClubService {
	return &ClubService{
		storage: storage,
		now:     time.Now,
	}
}

// Create is used by the command line to seed clubs.
func (s *ClubService) Create(ctx context.Context, title string) (*entity.Club, error) {
	title = strings.TrimSpace(title)
	if !validator.ClubTitle(title) {
		return nil, fmt.Errorf("%w: club title must be 3 to 100 characters", errorz.ErrBadRequest)
	}
	return s.storage.Create(ctx, &entity.Club{
		Title:       title,
		DateCreated: s.now(),
	})
}

func (s *ClubService) Get(ctx context.Context, id uint) (*entity.Club, error) {
	return s.storage.Get(ctx, id)
}
