package service

import (
	"github.com/clubhub-dev/clubhub/internal/domain/common/errorz"
	"github.com/clubhub-dev/clubhub/internal/domain/entity"
)

// CanCreateContent reports whether user may create posts: only the privileged role.
func CanCreateContent(user *entity.User) bool {
	return user != nil && user.IsPrivileged()
}

// CanMutate reports whether user may update or delete post: only its author.
func CanMutate(user *entity.User, post *entity.Post) bool {
	return user != nil && post != nil && post.AuthorID == user.ID
}

func requireUser(user *entity.User) error {
	if user == nil {
		return errorz.ErrUnauthenticated
	}
	return nil
}

func authorizeCreate(user *entity.User) error {
	if err := requireUser(user); err != nil {
		return err
	}
	if !CanCreateContent(user) {
		return errorz.ErrForbidden
	}
	return nil
}

func authorizeMutate(user *entity.User, post *entity.Post) error {
	if err := requireUser(user); err != nil {
		return err
	}
	if !CanMutate(user, post) {
		return errorz.ErrForbidden
	}
	return nil
}
