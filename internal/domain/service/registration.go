package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clubhub-dev/clubhub/internal/domain/common/errorz"
	"github.com/clubhub-dev/clubhub/internal/domain/dto"
	"github.com/clubhub-dev/clubhub/internal/domain/entity"
	"github.com/clubhub-dev/clubhub/pkg/logger/types"
)

const (
	KindJoin   = "join"
	KindAttend = "attend"
)

// RegistrationStorage persists (user, target) registrations. Create must return
// errorz.ErrAlreadyExists when the pair is already stored.
type RegistrationStorage interface {
	Count(ctx context.Context, userID, targetID uint) (int64, error)
	Create(ctx context.Context, userID, targetID uint, at time.Time) error
}

type TargetStorage interface {
	Target(ctx context.Context, id uint) (entity.Target, error)
}

type registrationRecorder interface {
	RecordRegistration(kind string, created bool)
}

// RegistrationService implements "first request registers, later requests
// report status" for one kind of target.
type RegistrationService struct {
	kind    string
	logger  *types.Logger
	targets TargetStorage
	storage RegistrationStorage
	metrics registrationRecorder
	now     func() time.Time
}

func NewRegistrationService(
	kind string,
	logger *types.Logger,
	targets TargetStorage,
	storage RegistrationStorage,
	metrics registrationRecorder,
) *RegistrationService {
	return &RegistrationService{
		kind:    kind,
		logger:  logger,
		targets: targets,
		storage: storage,
		metrics: metrics,
		now:     time.Now,
	}
}

// NewJoinService registers users to posts.
func NewJoinService(logger *types.Logger, posts TargetStorage, joins RegistrationStorage, metrics registrationRecorder) *RegistrationService {
	return NewRegistrationService(KindJoin, logger, posts, joins, metrics)
}

// NewAttendService registers users to clubs.
func NewAttendService(logger *types.Logger, clubs TargetStorage, attends RegistrationStorage, metrics registrationRecorder) *RegistrationService {
	return NewRegistrationService(KindAttend, logger, clubs, attends, metrics)
}

// Register records that user registered for the target with targetID unless such a
// record already exists. The target must exist.
func (s *RegistrationService) Register(ctx context.Context, user *entity.User, targetID uint) (*dto.Registration, error) {
	if user == nil {
		return nil, errorz.ErrUnauthenticated
	}

	target, err := s.targets.Target(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("get %s target %d: %w", s.kind, targetID, err)
	}

	count, err := s.storage.Count(ctx, user.ID, targetID)
	if err != nil {
		return nil, fmt.Errorf("count %s registrations: %w", s.kind, err)
	}
	s.logger.Debugf("(user: %d) %s target %d existing registrations: %d", user.ID, s.kind, targetID, count)

	already := count > 0
	if !already {
		err = s.storage.Create(ctx, user.ID, targetID, s.now())
		switch {
		case err == nil:
			s.logger.Infof("(user: %d) registered %s to %d", user.ID, s.kind, targetID)
		case errors.Is(err, errorz.ErrAlreadyExists):
			// lost the race against a concurrent request for the same pair
			already = true
		default:
			return nil, fmt.Errorf("create %s registration: %w", s.kind, err)
		}
	}

	if s.metrics != nil {
		s.metrics.RecordRegistration(s.kind, !already)
	}

	return &dto.Registration{
		Kind:              s.kind,
		TargetID:          target.GetID(),
		TargetTitle:       target.GetTitle(),
		Username:          user.Username,
		AlreadyRegistered: already,
	}, nil
}
