package postgres

import (
	"errors"
	"strings"

	"github.com/clubhub-dev/clubhub/internal/domain/common/errorz"
	"gorm.io/gorm"
)

// translate maps driver errors onto domain errors.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errorz.ErrNotFound
	case isUniqueViolation(err):
		return errorz.ErrAlreadyExists
	default:
		return err
	}
}

// isUniqueViolation recognises duplicate-key errors from both supported drivers,
// with or without gorm's error translation enabled.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "SQLSTATE 23505")
}
