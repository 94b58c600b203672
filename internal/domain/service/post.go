package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/clubhub-dev/clubhub/internal/domain/common/errorz"
	"github.com/clubhub-dev/clubhub/internal/domain/dto"
	"github.com/clubhub-dev/clubhub/internal/domain/entity"
	"github.com/clubhub-dev/clubhub/internal/domain/utils/validator"
	"github.com/clubhub-dev/clubhub/pkg/logger/types"
)

type PostStorage interface {
	Create(ctx context.Context, post *entity.Post) (*entity.Post, error)
	Get(ctx context.Context, id uint) (*entity.Post, error)
	Update(ctx context.Context, post *entity.Post) (*entity.Post, error)
	Delete(ctx context.Context, id uint) error
}

type PostService struct {
	logger  *types.Logger
	storage PostStorage
	now     func() time.Time
}

func NewPostService(logger *types.Logger, storage PostStorage) *PostService {
	return &PostService{
		logger:  logger,
		storage: storage,
		now:     time.Now,
	}
}

func (s *PostService) Get(ctx context.Context, id uint) (*entity.Post, error) {
	return s.storage.Get(ctx, id)
}

// Create stores a new post authored by user. Only privileged users may create posts.
func (s *PostService) Create(ctx context.Context, user *entity.User, input dto.PostInput) (*entity.Post, error) {
	if err := authorizeCreate(user); err != nil {
		return nil, err
	}

	post := &entity.Post{}
	if err := applyPostInput(post, input); err != nil {
		return nil, err
	}
	post.AuthorID = user.ID
	post.DatePosted = s.now()

	created, err := s.storage.Create(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	s.logger.Infof("(user: %d) created post %d", user.ID, created.ID)

	// the caller is the author; avoid a second round trip to load it
	created.Author = *user
	return created, nil
}

// Update replaces the editable fields of a post. A missing post is reported
// before the ownership check.
func (s *PostService) Update(ctx context.Context, user *entity.User, id uint, input dto.PostInput) (*entity.Post, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}

	post, err := s.storage.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = authorizeMutate(user, post); err != nil {
		return nil, err
	}
	if err = applyPostInput(post, input); err != nil {
		return nil, err
	}

	updated, err := s.storage.Update(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("update post %d: %w", id, err)
	}
	s.logger.Infof("(user: %d) updated post %d", user.ID, id)
	return updated, nil
}

func (s *PostService) Delete(ctx context.Context, user *entity.User, id uint) error {
	if err := requireUser(user); err != nil {
		return err
	}

	post, err := s.storage.Get(ctx, id)
	if err != nil {
		return err
	}
	if err = authorizeMutate(user, post); err != nil {
		return err
	}

	if err = s.storage.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	s.logger.Infof("(user: %d) deleted post %d", user.ID, id)
	return nil
}

func applyPostInput(post *entity.Post, input dto.PostInput) error {
	if !validator.PostTitle(input.Title) {
		return fmt.Errorf("%w: title must be 1 to 100 characters", errorz.ErrBadRequest)
	}
	if !validator.PostContent(input.Content) {
		return fmt.Errorf("%w: content is required", errorz.ErrBadRequest)
	}
	if !validator.PostLocation(input.Location) {
		return fmt.Errorf("%w: location must be at most 100 characters", errorz.ErrBadRequest)
	}
	start, ok := validator.PostTime(input.DateStart)
	if !ok {
		return fmt.Errorf("%w: invalid date_start", errorz.ErrBadRequest)
	}
	end, ok := validator.PostTime(input.DateEnd)
	if !ok {
		return fmt.Errorf("%w: invalid date_end", errorz.ErrBadRequest)
	}
	if !validator.PostPeriod(start, end) {
		return fmt.Errorf("%w: date_end is before date_start", errorz.ErrBadRequest)
	}

	post.Title = strings.TrimSpace(input.Title)
	post.Content = input.Content
	post.Location = strings.TrimSpace(input.Location)
	post.DateStart = start
	post.DateEnd = end
	return nil
}
