package service

import (
	"context"

	"github.com/clubhub-dev/clubhub/internal/domain/dto"
	"github.com/clubhub-dev/clubhub/internal/domain/entity"
)

// PageSizes holds the number of items per page for each listing.
type PageSizes struct {
	Posts   int
	Clubs   int
	Joins   int
	Attends int
	Users   int
}

var DefaultPageSizes = PageSizes{
	Posts:   5,
	Clubs:   5,
	Joins:   5,
	Attends: 5,
	Users:   8,
}

type PostLister interface {
	GetWithPagination(ctx context.Context, req dto.PageRequest, size int) (dto.Page[entity.Post], error)
	GetByAuthorWithPagination(ctx context.Context, authorID uint, req dto.PageRequest, size int) (dto.Page[entity.Post], error)
	Get(ctx context.Context, id uint) (*entity.Post, error)
}

type ClubLister interface {
	GetWithPagination(ctx context.Context, req dto.PageRequest, size int) (dto.Page[entity.Club], error)
	Get(ctx context.Context, id uint) (*entity.Club, error)
}

type UserLister interface {
	GetWithPagination(ctx context.Context, req dto.PageRequest, size int) (dto.Page[entity.User], error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}

type JoinLister interface {
	GetByPostIDWithPagination(ctx context.Context, postID uint, req dto.PageRequest, size int) (dto.Page[entity.Join], error)
	GetByUserIDWithPagination(ctx context.Context, userID uint, req dto.PageRequest, size int) (dto.Page[entity.Join], error)
}

type AttendLister interface {
	GetByClubIDWithPagination(ctx context.Context, clubID uint, req dto.PageRequest, size int) (dto.Page[entity.Attend], error)
	GetByUserIDWithPagination(ctx context.Context, userID uint, req dto.PageRequest, size int) (dto.Page[entity.Attend], error)
}

// ListingService serves every paginated listing. Posts and clubs are newest first,
// users by id.
type ListingService struct {
	posts   PostLister
	clubs   ClubLister
	users   UserLister
	joins   JoinLister
	attends AttendLister
	sizes   PageSizes
}

func NewListingService(posts PostLister, clubs ClubLister, users UserLister, joins JoinLister, attends AttendLister, sizes PageSizes) *ListingService {
	return &ListingService{
		posts:   posts,
		clubs:   clubs,
		users:   users,
		joins:   joins,
		attends: attends,
		sizes:   sizes,
	}
}

func (s *ListingService) Posts(ctx context.Context, req dto.PageRequest) (dto.Page[dto.Post], error) {
	page, err := s.posts.GetWithPagination(ctx, req, s.sizes.Posts)
	if err != nil {
		return dto.Page[dto.Post]{}, err
	}
	return dto.MapPage(page, dto.NewPostFromEntity), nil
}

// PostsByUsername lists the posts of an existing user. An unknown username is ErrNotFound.
func (s *ListingService) PostsByUsername(ctx context.Context, username string, req dto.PageRequest) (dto.Page[dto.Post], error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return dto.Page[dto.Post]{}, err
	}
	page, err := s.posts.GetByAuthorWithPagination(ctx, user.ID, req, s.sizes.Posts)
	if err != nil {
		return dto.Page[dto.Post]{}, err
	}
	return dto.MapPage(page, dto.NewPostFromEntity), nil
}

func (s *ListingService) Clubs(ctx context.Context, req dto.PageRequest) (dto.Page[dto.Club], error) {
	page, err := s.clubs.GetWithPagination(ctx, req, s.sizes.Clubs)
	if err != nil {
		return dto.Page[dto.Club]{}, err
	}
	return dto.MapPage(page, dto.NewClubFromEntity), nil
}

func (s *ListingService) Users(ctx context.Context, req dto.PageRequest) (dto.Page[dto.User], error) {
	page, err := s.users.GetWithPagination(ctx, req, s.sizes.Users)
	if err != nil {
		return dto.Page[dto.User]{}, err
	}
	return dto.MapPage(page, dto.NewUserFromEntity), nil
}

// JoinsByPost lists the joins of an existing post.
func (s *ListingService) JoinsByPost(ctx context.Context, postID uint, req dto.PageRequest) (dto.Page[dto.Join], error) {
	if _, err := s.posts.Get(ctx, postID); err != nil {
		return dto.Page[dto.Join]{}, err
	}
	page, err := s.joins.GetByPostIDWithPagination(ctx, postID, req, s.sizes.Joins)
	if err != nil {
		return dto.Page[dto.Join]{}, err
	}
	return dto.MapPage(page, dto.NewJoinFromEntity), nil
}

func (s *ListingService) JoinsByUser(ctx context.Context, user *entity.User, req dto.PageRequest) (dto.Page[dto.Join], error) {
	if err := requireUser(user); err != nil {
		return dto.Page[dto.Join]{}, err
	}
	page, err := s.joins.GetByUserIDWithPagination(ctx, user.ID, req, s.sizes.Joins)
	if err != nil {
		return dto.Page[dto.Join]{}, err
	}
	return dto.MapPage(page, dto.NewJoinFromEntity), nil
}

// AttendsByClub lists the attends of an existing club.
func (s *ListingService) AttendsByClub(ctx context.Context, clubID uint, req dto.PageRequest) (dto.Page[dto.Attend], error) {
	if _, err := s.clubs.Get(ctx, clubID); err != nil {
		return dto.Page[dto.Attend]{}, err
	}
	page, err := s.attends.GetByClubIDWithPagination(ctx, clubID, req, s.sizes.Attends)
	if err != nil {
		return dto.Page[dto.Attend]{}, err
	}
	return dto.MapPage(page, dto.NewAttendFromEntity), nil
}

func (s *ListingService) AttendsByUser(ctx context.Context, user *entity.User, req dto.PageRequest) (dto.Page[dto.Attend], error) {
	if err := requireUser(user); err != nil {
		return dto.Page[dto.Attend]{}, err
	}
	page, err := s.attends.GetByUserIDWithPagination(ctx, user.ID, req, s.sizes.Attends)
	if err != nil {
		return dto.Page[dto.Attend]{}, err
	}
	return dto.MapPage(page, dto.NewAttendFromEntity), nil
}
