package service

import (
	"context"
	"testing"
	"time"

	"github.com/clubhub-dev/clubhub/internal/domain/common/errorz"
	"github.com/clubhub-dev/clubhub/internal/domain/dto"
	"github.com/clubhub-dev/clubhub/internal/domain/entity"
	"github.com/clubhub-dev/clubhub/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postInput(title string) dto.PostInput {
	return dto.PostInput{
		Title:     title,
		Content:   "Meet at the trailhead",
		Location:  "North gate",
		DateStart: "2026-06-01T09:00:00Z",
		DateEnd:   "2026-06-01T15:00:00Z",
	}
}

func TestCanCreateContent(t *testing.T) {
	assert.True(t, CanCreateContent(&entity.User{Role: entity.RolePrivileged}))
	assert.False(t, CanCreateContent(&entity.User{Role: entity.RoleRegular}))
	assert.False(t, CanCreateContent(&entity.User{Role: 2}))
	assert.False(t, CanCreateContent(nil))
}

func TestCanMutate(t *testing.T) {
	post := &entity.Post{ID: 1, AuthorID: 7}
	assert.True(t, CanMutate(&entity.User{ID: 7}, post))
	assert.False(t, CanMutate(&entity.User{ID: 8, Role: entity.RolePrivileged}, post))
	assert.False(t, CanMutate(nil, post))
	assert.False(t, CanMutate(&entity.User{ID: 7}, nil))
}

func TestPostService_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		user    *entity.User
		input   dto.PostInput
		wantErr error
	}{
		{name: "privileged user", user: &entity.User{ID: 1, Username: "alice", Role: entity.RolePrivileged}, input: postInput("Hike")},
		{name: "regular user", user: &entity.User{ID: 2, Role: entity.RoleRegular}, input: postInput("Hike"), wantErr: errorz.ErrForbidden},
		{name: "anonymous", user: nil, input: postInput("Hike"), wantErr: errorz.ErrUnauthenticated},
		{name: "empty title", user: &entity.User{ID: 1, Role: entity.RolePrivileged}, input: postInput("  "), wantErr: errorz.ErrBadRequest},
		{
			name: "end before start",
			user: &entity.User{ID: 1, Role: entity.RolePrivileged},
			input: dto.PostInput{
				Title: "Hike", Content: "x",
				DateStart: "2026-06-02T09:00:00Z", DateEnd: "2026-06-01T09:00:00Z",
			},
			wantErr: errorz.ErrBadRequest,
		},
		{
			name:    "unparseable date",
			user:    &entity.User{ID: 1, Role: entity.RolePrivileged},
			input:   dto.PostInput{Title: "Hike", Content: "x", DateStart: "tomorrow"},
			wantErr: errorz.ErrBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := NewFakePostStorage()
			svc := NewPostService(logger.Nop(), storage)
			svc.now = func() time.Time { return now }

			post, err := svc.Create(ctx, tt.user, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, storage.Trace())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.user.ID, post.AuthorID)
			assert.Equal(t, tt.user.Username, post.Author.Username)
			assert.Equal(t, now, post.DatePosted)
			assert.Equal(t, "Hike", post.Title)
			assert.Equal(t, []string{"Create"}, storage.Trace())
		})
	}
}

func TestPostService_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	author := &entity.User{ID: 1, Role: entity.RolePrivileged}
	other := &entity.User{ID: 2, Role: entity.RolePrivileged}

	newStorage := func() *FakePostStorage {
		return NewFakePostStorage(&entity.Post{ID: 10, Title: "Hike", Content: "x", AuthorID: author.ID})
	}

	t.Run("author updates", func(t *testing.T) {
		storage := newStorage()
		post, err := NewPostService(logger.Nop(), storage).Update(ctx, author, 10, postInput("Long hike"))
		require.NoError(t, err)
		assert.Equal(t, "Long hike", post.Title)
		assert.Equal(t, author.ID, post.AuthorID)
		assert.Equal(t, []string{"Get", "Update"}, storage.Trace())
	})

	t.Run("non-author cannot update", func(t *testing.T) {
		storage := newStorage()
		_, err := NewPostService(logger.Nop(), storage).Update(ctx, other, 10, postInput("Mine now"))
		assert.ErrorIs(t, err, errorz.ErrForbidden)
		assert.Equal(t, []string{"Get"}, storage.Trace())
	})

	t.Run("missing post is not found before forbidden", func(t *testing.T) {
		_, err := NewPostService(logger.Nop(), newStorage()).Update(ctx, other, 99, postInput("x"))
		assert.ErrorIs(t, err, errorz.ErrNotFound)
	})

	t.Run("non-author cannot delete", func(t *testing.T) {
		storage := newStorage()
		err := NewPostService(logger.Nop(), storage).Delete(ctx, other, 10)
		assert.ErrorIs(t, err, errorz.ErrForbidden)
		_, err = storage.Get(ctx, 10)
		assert.NoError(t, err)
	})

	t.Run("author deletes", func(t *testing.T) {
		storage := newStorage()
		require.NoError(t, NewPostService(logger.Nop(), storage).Delete(ctx, author, 10))
		_, err := storage.Get(ctx, 10)
		assert.ErrorIs(t, err, errorz.ErrNotFound)
	})

	t.Run("anonymous delete", func(t *testing.T) {
		err := NewPostService(logger.Nop(), newStorage()).Delete(ctx, nil, 10)
		assert.ErrorIs(t, err, errorz.ErrUnauthenticated)
	})
}
