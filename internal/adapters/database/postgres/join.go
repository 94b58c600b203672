package postgres

import (
	"context"
	"time"

	"github.com/clubhub-dev/clubhub/internal/domain/dto"
	"github.com/clubhub-dev/clubhub/internal/domain/entity"
	"gorm.io/gorm"
)

const joinOrder = "date_joined DESC, id DESC"

type JoinStorage struct {
	db *gorm.DB
}

func NewJoinStorage(db *gorm.DB) *JoinStorage {
	return &JoinStorage{
		db: db,
	}
}

// Create inserts the join of userID to postID. If the pair already exists the
// unique index rejects the insert and errorz.ErrAlreadyExists is returned.
func (s *JoinStorage) Create(ctx context.Context, userID, postID uint, at time.Time) error {
	err := s.db.WithContext(ctx).Create(&entity.Join{
		UserID:     userID,
		PostID:     postID,
		DateJoined: at,
	}).Error
	return translate(err)
}

// Count returns how many joins exist for the (userID, postID) pair.
func (s *JoinStorage) Count(ctx context.Context, userID, postID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Join{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count, err
}

func (s *JoinStorage) CountByPostID(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Join{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// GetByPostID returns every join of a post, newest first.
func (s *JoinStorage) GetByPostID(ctx context.Context, postID uint) ([]entity.Join, error) {
	var joins []entity.Join
	err := s.db.WithContext(ctx).Preload("User").Where("post_id = ?", postID).Order(joinOrder).Find(&joins).Error
	return joins, err
}

func (s *JoinStorage) GetByPostIDWithPagination(ctx context.Context, postID uint, req dto.PageRequest, size int) (dto.Page[entity.Join], error) {
	query := s.db.Where("post_id = ?", postID)
	page, err := findPage[entity.Join](ctx, query, req, size, joinOrder, "User", "Post")
	return page, translate(err)
}

func (s *JoinStorage) GetByUserIDWithPagination(ctx context.Context, userID uint, req dto.PageRequest, size int) (dto.Page[entity.Join], error) {
	query := s.db.Where("user_id = ?", userID)
	page, err := findPage[entity.Join](ctx, query, req, size, joinOrder, "User", "Post")
	return page, translate(err)
}
