package postgres

import (
	"context"
	"time"

	"github.com/clubhub-dev/clubhub/internal/domain/dto"
	"github.com/clubhub-dev/clubhub/internal/domain/entity"
	"gorm.io/gorm"
)

const attendOrder = "date_attended DESC, id DESC"

type AttendStorage struct {
	db *gorm.DB
}

func NewAttendStorage(db *gorm.DB) *AttendStorage {
	return &AttendStorage{
		db: db,
	}
}

// Create inserts the attendance of userID at clubID, errorz.ErrAlreadyExists
// when the pair is already registered.
func (s *AttendStorage) Create(ctx context.Context, userID, clubID uint, at time.Time) error {
	err := s.db.WithContext(ctx).Create(&entity.Attend{
		UserID:       userID,
		ClubID:       clubID,
		DateAttended: at,
	}).Error
	return translate(err)
}

func (s *AttendStorage) Count(ctx context.Context, userID, clubID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Attend{}).
		Where("user_id = ? AND club_id = ?", userID, clubID).
		Count(&count).Error
	return count, err
}

func (s *AttendStorage) GetByClubIDWithPagination(ctx context.Context, clubID uint, req dto.PageRequest, size int) (dto.Page[entity.Attend], error) {
	query := s.db.Where("club_id = ?", clubID)
	page, err := findPage[entity.Attend](ctx, query, req, size, attendOrder, "User", "Club")
	return page, translate(err)
}

func (s *AttendStorage) GetByUserIDWithPagination(ctx context.Context, userID uint, req dto.PageRequest, size int) (dto.Page[entity.Attend], error) {
	query := s.db.Where("user_id = ?", userID)
	page, err := findPage[entity.Attend](ctx, query, req, size, attendOrder, "User", "Club")
	return page, translate(err)
}
