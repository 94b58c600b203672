package service

import (
	"context"
	"fmt"
	"time"

	"github.com/clubhub-dev/clubhub/internal/domain/common/errorz"
	"github.com/clubhub-dev/clubhub/internal/domain/entity"
	"github.com/clubhub-dev/clubhub/internal/domain/utils/validator"
	"golang.org/x/crypto/bcrypt"
)

type UserStorage interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	Get(ctx context.Context, id uint) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}

type UserService struct {
	storage UserStorage
	cost    int
	now     func() time.Time
}

func NewUserService(storage UserStorage) *UserService {
	return &UserService{
		storage: storage,
		cost:    bcrypt.DefaultCost,
		now:     time.Now,
	}
}

// Create registers an account with a bcrypt-hashed password.
func (s *UserService) Create(ctx context.Context, username, password string, role entity.Role) (*entity.User, error) {
	if !validator.Username(username) {
		return nil, fmt.Errorf("%w: invalid username", errorz.ErrBadRequest)
	}
	if !validator.Password(password) {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", errorz.ErrBadRequest)
	}
	if role != entity.RoleRegular && role != entity.RolePrivileged {
		return nil, fmt.Errorf("%w: unknown role %d", errorz.ErrBadRequest, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return s.storage.Create(ctx, &entity.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		DateJoined:   s.now(),
	})
}

func (s *UserService) Get(ctx context.Context, id uint) (*entity.User, error) {
	return s.storage.Get(ctx, id)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return s.storage.GetByUsername(ctx, username)
}
