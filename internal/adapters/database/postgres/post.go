package postgres

import (
	"context"

	"github.com/clubhub-dev/clubhub/internal/domain/dto"
	"github.com/clubhub-dev/clubhub/internal/domain/entity"
	"gorm.io/gorm"
)

const postOrder = "date_posted DESC, id DESC"

type PostStorage struct {
	db *gorm.DB
}

func NewPostStorage(db *gorm.DB) *PostStorage {
	return &PostStorage{
		db: db,
	}
}

// Create is a function that creates a new post in the database.
func (s *PostStorage) Create(ctx context.Context, post *entity.Post) (*entity.Post, error) {
	err := s.db.WithContext(ctx).Omit("Author").Create(post).Error
	return post, translate(err)
}

// Get is a function that gets a post with its author by id.
func (s *PostStorage) Get(ctx context.Context, id uint) (*entity.Post, error) {
	var post entity.Post
	err := s.db.WithContext(ctx).Preload("Author").Where("id = ?", id).First(&post).Error
	if err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

// Target is Get for the join registration flow.
func (s *PostStorage) Target(ctx context.Context, id uint) (entity.Target, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return post, nil
}

// Update is a function that saves the editable fields of a post.
func (s *PostStorage) Update(ctx context.Context, post *entity.Post) (*entity.Post, error) {
	err := s.db.WithContext(ctx).Model(post).
		Select("Title", "Content", "Location", "DateStart", "DateEnd", "AuthorID").
		Updates(post).Error
	return post, translate(err)
}

// Delete is a function that deletes a post and its joins from the database.
func (s *PostStorage) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&entity.Join{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&entity.Post{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate(err)
}

// GetWithPagination is a function that gets a page of posts newest first.
func (s *PostStorage) GetWithPagination(ctx context.Context, req dto.PageRequest, size int) (dto.Page[entity.Post], error) {
	page, err := findPage[entity.Post](ctx, s.db, req, size, postOrder, "Author")
	return page, translate(err)
}

// GetByAuthorWithPagination is GetWithPagination restricted to one author.
func (s *PostStorage) GetByAuthorWithPagination(ctx context.Context, authorID uint, req dto.PageRequest, size int) (dto.Page[entity.Post], error) {
	query := s.db.Where("author_id = ?", authorID)
	page, err := findPage[entity.Post](ctx, query, req, size, postOrder, "Author")
	return page, translate(err)
}
