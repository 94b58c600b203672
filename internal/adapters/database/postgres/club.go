package postgres

import (
	"context"

	"github.com/clubhub-dev/clubhub/internal/domain/dto"
	"github.com/clubhub-dev/clubhub/internal/domain/entity"
	"gorm.io/gorm"
)

type ClubStorage struct {
	db *gorm.DB
}

func NewClubStorage(db *gorm.DB) *ClubStorage {
	return &ClubStorage{
		db: db,
	}
}

func (s *ClubStorage) Create(ctx context.Context, club *entity.Club) (*entity.Club, error) {
	err := s.db.WithContext(ctx).Create(club).Error
	return club, translate(err)
}

func (s *ClubStorage) Get(ctx context.Context, id uint) (*entity.Club, error) {
	var club entity.Club
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&club).Error
	if err != nil {
		return nil, translate(err)
	}
	return &club, nil
}

// Target is Get for the attend registration flow.
func (s *ClubStorage) Target(ctx context.Context, id uint) (entity.Target, error) {
	club, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return club, nil
}

// GetWithPagination returns clubs newest first.
func (s *ClubStorage) GetWithPagination(ctx context.Context, req dto.PageRequest, size int) (dto.Page[entity.Club], error) {
	page, err := findPage[entity.Club](ctx, s.db, req, size, "date_created DESC, id DESC")
	return page, translate(err)
}
