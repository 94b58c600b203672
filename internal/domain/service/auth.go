package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/clubhub-dev/clubhub/internal/domain/common/errorz"
	"github.com/clubhub-dev/clubhub/internal/domain/dto"
	"github.com/clubhub-dev/clubhub/internal/domain/entity"
	"github.com/clubhub-dev/clubhub/pkg/logger/types"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenIssuer = "clubhub"

type SessionStorage interface {
	Get(ctx context.Context, token string) (uint, error)
	Set(ctx context.Context, token string, userID uint, expiration time.Duration) error
	Clear(ctx context.Context, token string) error
}

type authUserStorage interface {
	Get(ctx context.Context, id uint) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}

// TokenClaims is the payload of a bearer access token.
type TokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	SessionTTL time.Duration
}

// AuthService identifies users either by a session cookie stored in redis or by
// a signed bearer token.
type AuthService struct {
	logger   *types.Logger
	users    authUserStorage
	sessions SessionStorage
	secret   []byte
	tokenTTL time.Duration
	ttl      time.Duration
	now      func() time.Time
}

func NewAuthService(logger *types.Logger, users authUserStorage, sessions SessionStorage, cfg AuthConfig) *AuthService {
	return &AuthService{
		logger:   logger,
		users:    users,
		sessions: sessions,
		secret:   []byte(cfg.JWTSecret),
		tokenTTL: cfg.TokenTTL,
		ttl:      cfg.SessionTTL,
		now:      time.Now,
	}
}

func (s *AuthService) SessionTTL() time.Duration {
	return s.ttl
}

// Login checks the credentials, opens a session and issues an access token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*dto.Session, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", errorz.ErrBadRequest)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errorz.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid username or password", errorz.ErrUnauthenticated)
		}
		return nil, err
	}
	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid username or password", errorz.ErrUnauthenticated)
	}

	token := uuid.NewString()
	if err = s.sessions.Set(ctx, token, user.ID, s.ttl); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	now := s.now()
	expiresAt := now.Add(s.tokenTTL)
	claims := &TokenClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	s.logger.Infof("(user: %d) logged in", user.ID)
	return &dto.Session{
		Token:       token,
		AccessToken: access,
		ExpiresAt:   expiresAt,
		User:        dto.NewUserFromEntity(*user),
	}, nil
}

// Logout drops the session. Unknown tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Clear(ctx, token)
}

// UserBySession resolves a session cookie value to its user.
func (s *AuthService) UserBySession(ctx context.Context, token string) (*entity.User, error) {
	userID, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, errorz.ErrNotFound) {
			return nil, errorz.ErrUnauthenticated
		}
		return nil, err
	}
	return s.userByID(ctx, userID)
}

// UserByAccessToken validates a bearer token and loads its user.
func (s *AuthService) UserByAccessToken(ctx context.Context, raw string) (*entity.User, error) {
	token, err := jwt.ParseWithClaims(raw, &TokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid token", errorz.ErrUnauthenticated)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", errorz.ErrUnauthenticated)
	}
	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid token subject", errorz.ErrUnauthenticated)
	}
	return s.userByID(ctx, uint(userID))
}

func (s *AuthService) userByID(ctx context.Context, id uint) (*entity.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, errorz.ErrNotFound) {
			// account removed while the session was alive
			return nil, errorz.ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}
