package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/clubhub-dev/clubhub/internal/domain/common/errorz"
	"github.com/clubhub-dev/clubhub/internal/domain/entity"
	"github.com/clubhub-dev/clubhub/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrationService_Register(t *testing.T) {
	ctx := context.Background()
	user := &entity.User{ID: 2, Username: "bob"}

	tests := []struct {
		name        string
		setup       func(storage *FakeRegistrationStorage, targets *FakeTargetStorage)
		user        *entity.User
		wantErr     error
		wantAlready bool
		wantTrace   []string
	}{
		{
			name:      "first registration creates a record",
			user:      user,
			wantTrace: []string{"Count", "Create"},
		},
		{
			name: "existing registration is reported",
			setup: func(storage *FakeRegistrationStorage, _ *FakeTargetStorage) {
				require.NoError(t, storage.Create(ctx, user.ID, 1, time.Now()))
			},
			user:        user,
			wantAlready: true,
			wantTrace:   []string{"Create", "Count"},
		},
		{
			name: "legacy duplicate rows still count as registered",
			setup: func(storage *FakeRegistrationStorage, _ *FakeTargetStorage) {
				storage.CountFunc = func(context.Context, uint, uint) (int64, error) { return 3, nil }
			},
			user:        user,
			wantAlready: true,
			wantTrace:   []string{"Count"},
		},
		{
			name: "conflict on create is already registered",
			setup: func(storage *FakeRegistrationStorage, _ *FakeTargetStorage) {
				storage.CreateFunc = func(context.Context, uint, uint, time.Time) error { return errorz.ErrAlreadyExists }
			},
			user:        user,
			wantAlready: true,
			wantTrace:   []string{"Count", "Create"},
		},
		{
			name: "missing target",
			setup: func(_ *FakeRegistrationStorage, targets *FakeTargetStorage) {
				targets.TargetFunc = func(context.Context, uint) (entity.Target, error) { return nil, errorz.ErrNotFound }
			},
			user:    user,
			wantErr: errorz.ErrNotFound,
		},
		{
			name:    "anonymous caller",
			user:    nil,
			wantErr: errorz.ErrUnauthenticated,
		},
		{
			name: "storage failure is returned",
			setup: func(storage *FakeRegistrationStorage, _ *FakeTargetStorage) {
				storage.CountFunc = func(context.Context, uint, uint) (int64, error) { return 0, errors.New("db down") }
			},
			user:      user,
			wantErr:   errors.New("db down"),
			wantTrace: []string{"Count"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := NewFakeRegistrationStorage()
			targets := &FakeTargetStorage{}
			if tt.setup != nil {
				tt.setup(storage, targets)
			}
			svc := NewJoinService(logger.Nop(), targets, storage, nil)

			got, err := svc.Register(ctx, tt.user, 1)
			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, errorz.ErrNotFound) || errors.Is(tt.wantErr, errorz.ErrUnauthenticated) {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.Contains(t, err.Error(), tt.wantErr.Error())
				}
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantAlready, got.AlreadyRegistered)
				assert.Equal(t, KindJoin, got.Kind)
				assert.Equal(t, uint(1), got.TargetID)
				assert.Equal(t, "bob", got.Username)
			}
			if tt.wantTrace != nil {
				assert.Equal(t, tt.wantTrace, storage.Trace())
			}
		})
	}
}

func TestRegistrationService_HikeScenario(t *testing.T) {
	ctx := context.Background()
	alice := &entity.User{ID: 1, Username: "alice", Role: entity.RolePrivileged}
	bob := &entity.User{ID: 2, Username: "bob"}
	carol := &entity.User{ID: 3, Username: "carol"}

	posts := NewFakePostStorage()
	post, err := NewPostService(logger.Nop(), posts).Create(ctx, alice, postInput("Hike"))
	require.NoError(t, err)
	assert.Equal(t, alice.ID, post.AuthorID)

	joins := NewFakeRegistrationStorage()
	recorder := &FakeRecorder{}
	svc := NewJoinService(logger.Nop(), posts, joins, recorder)

	first, err := svc.Register(ctx, bob, post.ID)
	require.NoError(t, err)
	assert.False(t, first.AlreadyRegistered)
	assert.Equal(t, "Hike", first.TargetTitle)

	second, err := svc.Register(ctx, bob, post.ID)
	require.NoError(t, err)
	assert.True(t, second.AlreadyRegistered)

	third, err := svc.Register(ctx, carol, post.ID)
	require.NoError(t, err)
	assert.False(t, third.AlreadyRegistered)

	assert.Equal(t, 2, joins.Total(post.ID))
	assert.Equal(t, []bool{true, false, true}, recorder.outcome[KindJoin])
}

func TestRegistrationService_Attend(t *testing.T) {
	ctx := context.Background()
	user := &entity.User{ID: 5, Username: "dana"}
	targets := &FakeTargetStorage{TargetFunc: func(_ context.Context, id uint) (entity.Target, error) {
		return &entity.Club{ID: id, Title: "Chess"}, nil
	}}
	attends := NewFakeRegistrationStorage()
	svc := NewAttendService(logger.Nop(), targets, attends, nil)

	got, err := svc.Register(ctx, user, 9)
	require.NoError(t, err)
	assert.Equal(t, KindAttend, got.Kind)
	assert.Equal(t, "Chess", got.TargetTitle)
	assert.False(t, got.AlreadyRegistered)

	got, err = svc.Register(ctx, user, 9)
	require.NoError(t, err)
	assert.True(t, got.AlreadyRegistered)
	assert.Equal(t, 1, attends.Total(9))
}

func TestRegistrationService_ConcurrentRegister(t *testing.T) {
	ctx := context.Background()
	user := &entity.User{ID: 2, Username: "bob"}
	storage := NewFakeRegistrationStorage()
	// every request sees an empty table before writing
	storage.CountFunc = func(context.Context, uint, uint) (int64, error) { return 0, nil }
	svc := NewJoinService(logger.Nop(), &FakeTargetStorage{}, storage, nil)

	const attempts = 10
	results := make([]bool, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := svc.Register(ctx, user, 1)
			if !assert.NoError(t, err) {
				results[i] = true
				return
			}
			results[i] = got.AlreadyRegistered
		}(i)
	}
	wg.Wait()

	created := 0
	for _, already := range results {
		if !already {
			created++
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, storage.Total(1))
}
