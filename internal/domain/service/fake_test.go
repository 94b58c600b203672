package service

import (
	"context"
	"sync"
	"time"

	"github.com/clubhub-dev/clubhub/internal/domain/common/errorz"
	"github.com/clubhub-dev/clubhub/internal/domain/dto"
	"github.com/clubhub-dev/clubhub/internal/domain/entity"
)

// FakeRegistrationStorage is an in-memory RegistrationStorage. CreateFunc, when set,
// replaces the default behaviour.
type FakeRegistrationStorage struct {
	mu    sync.Mutex
	trace []string
	pairs map[[2]uint]int

	CountFunc  func(ctx context.Context, userID, targetID uint) (int64, error)
	CreateFunc func(ctx context.Context, userID, targetID uint, at time.Time) error
}

func NewFakeRegistrationStorage() *FakeRegistrationStorage {
	return &FakeRegistrationStorage{pairs: make(map[[2]uint]int)}
}

func (f *FakeRegistrationStorage) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRegistrationStorage) record(step string) {
	f.mu.Lock()
	f.trace = append(f.trace, step)
	f.mu.Unlock()
}

func (f *FakeRegistrationStorage) Total(targetID uint) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for pair, n := range f.pairs {
		if pair[1] == targetID {
			total += n
		}
	}
	return total
}

func (f *FakeRegistrationStorage) Count(ctx context.Context, userID, targetID uint) (int64, error) {
	f.record("Count")
	if f.CountFunc != nil {
		return f.CountFunc(ctx, userID, targetID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(f.pairs[[2]uint{userID, targetID}]), nil
}

func (f *FakeRegistrationStorage) Create(ctx context.Context, userID, targetID uint, at time.Time) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, userID, targetID, at)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]uint{userID, targetID}
	if f.pairs[key] > 0 {
		return errorz.ErrAlreadyExists
	}
	f.pairs[key]++
	return nil
}

type FakeTargetStorage struct {
	TargetFunc func(ctx context.Context, id uint) (entity.Target, error)
}

func (f *FakeTargetStorage) Target(ctx context.Context, id uint) (entity.Target, error) {
	if f.TargetFunc != nil {
		return f.TargetFunc(ctx, id)
	}
	return &entity.Post{ID: id, Title: "post"}, nil
}

type FakeRecorder struct {
	mu      sync.Mutex
	outcome map[string][]bool
}

func (f *FakeRecorder) RecordRegistration(kind string, created bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.outcome == nil {
		f.outcome = make(map[string][]bool)
	}
	f.outcome[kind] = append(f.outcome[kind], created)
}

// FakePostStorage keeps posts in a map keyed by id.
type FakePostStorage struct {
	trace  []string
	posts  map[uint]*entity.Post
	nextID uint

	GetWithPaginationFunc         func(ctx context.Context, req dto.PageRequest, size int) (dto.Page[entity.Post], error)
	GetByAuthorWithPaginationFunc func(ctx context.Context, authorID uint, req dto.PageRequest, size int) (dto.Page[entity.Post], error)
}

func NewFakePostStorage(posts ...*entity.Post) *FakePostStorage {
	f := &FakePostStorage{posts: make(map[uint]*entity.Post)}
	for _, p := range posts {
		f.posts[p.ID] = p
		if p.ID > f.nextID {
			f.nextID = p.ID
		}
	}
	return f
}

func (f *FakePostStorage) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakePostStorage) Create(_ context.Context, post *entity.Post) (*entity.Post, error) {
	f.trace = append(f.trace, "Create")
	f.nextID++
	post.ID = f.nextID
	stored := *post
	f.posts[post.ID] = &stored
	return post, nil
}

func (f *FakePostStorage) Get(_ context.Context, id uint) (*entity.Post, error) {
	f.trace = append(f.trace, "Get")
	post, ok := f.posts[id]
	if !ok {
		return nil, errorz.ErrNotFound
	}
	copied := *post
	return &copied, nil
}

func (f *FakePostStorage) Target(ctx context.Context, id uint) (entity.Target, error) {
	post, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (f *FakePostStorage) Update(_ context.Context, post *entity.Post) (*entity.Post, error) {
	f.trace = append(f.trace, "Update")
	if _, ok := f.posts[post.ID]; !ok {
		return nil, errorz.ErrNotFound
	}
	stored := *post
	f.posts[post.ID] = &stored
	return post, nil
}

func (f *FakePostStorage) Delete(_ context.Context, id uint) error {
	f.trace = append(f.trace, "Delete")
	if _, ok := f.posts[id]; !ok {
		return errorz.ErrNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *FakePostStorage) GetWithPagination(ctx context.Context, req dto.PageRequest, size int) (dto.Page[entity.Post], error) {
	f.trace = append(f.trace, "GetWithPagination")
	if f.GetWithPaginationFunc != nil {
		return f.GetWithPaginationFunc(ctx, req, size)
	}
	return dto.NewPage[entity.Post](nil, 1, size, 0), nil
}

func (f *FakePostStorage) GetByAuthorWithPagination(ctx context.Context, authorID uint, req dto.PageRequest, size int) (dto.Page[entity.Post], error) {
	f.trace = append(f.trace, "GetByAuthorWithPagination")
	if f.GetByAuthorWithPaginationFunc != nil {
		return f.GetByAuthorWithPaginationFunc(ctx, authorID, req, size)
	}
	return dto.NewPage[entity.Post](nil, 1, size, 0), nil
}

type FakeUserStorage struct {
	users map[uint]*entity.User

	GetWithPaginationFunc func(ctx context.Context, req dto.PageRequest, size int) (dto.Page[entity.User], error)
}

func NewFakeUserStorage(users ...*entity.User) *FakeUserStorage {
	f := &FakeUserStorage{users: make(map[uint]*entity.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *FakeUserStorage) Create(_ context.Context, user *entity.User) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == user.Username {
			return nil, errorz.ErrAlreadyExists
		}
	}
	user.ID = uint(len(f.users) + 1)
	f.users[user.ID] = user
	return user, nil
}

func (f *FakeUserStorage) Get(_ context.Context, id uint) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errorz.ErrNotFound
	}
	return u, nil
}

func (f *FakeUserStorage) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errorz.ErrNotFound
}

func (f *FakeUserStorage) GetWithPagination(ctx context.Context, req dto.PageRequest, size int) (dto.Page[entity.User], error) {
	if f.GetWithPaginationFunc != nil {
		return f.GetWithPaginationFunc(ctx, req, size)
	}
	return dto.NewPage[entity.User](nil, 1, size, 0), nil
}

// FakeSessionStorage is an in-memory SessionStorage ignoring expiration.
type FakeSessionStorage struct {
	sessions map[string]uint
}

func NewFakeSessionStorage() *FakeSessionStorage {
	return &FakeSessionStorage{sessions: make(map[string]uint)}
}

func (f *FakeSessionStorage) Get(_ context.Context, token string) (uint, error) {
	id, ok := f.sessions[token]
	if !ok {
		return 0, errorz.ErrNotFound
	}
	return id, nil
}

func (f *FakeSessionStorage) Set(_ context.Context, token string, userID uint, _ time.Duration) error {
	f.sessions[token] = userID
	return nil
}

func (f *FakeSessionStorage) Clear(_ context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

type FakeJoinStorage struct {
	GetByPostIDFunc func(ctx context.Context, postID uint) ([]entity.Join, error)
}

func (f *FakeJoinStorage) GetByPostID(ctx context.Context, postID uint) ([]entity.Join, error) {
	if f.GetByPostIDFunc != nil {
		return f.GetByPostIDFunc(ctx, postID)
	}
	return nil, nil
}
