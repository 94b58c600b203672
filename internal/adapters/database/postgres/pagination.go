package postgres

import (
	"context"

	"github.com/clubhub-dev/clubhub/internal/domain/dto"
	"gorm.io/gorm"
)

// findPage counts the rows matched by query, resolves the requested page against
// that count and loads it. query must not carry Preload clauses; pass them in preload.
func findPage[T any](ctx context.Context, query *gorm.DB, req dto.PageRequest, size int, order string, preload ...string) (dto.Page[T], error) {
	query = query.WithContext(ctx).Session(&gorm.Session{})

	var total int64
	if err := query.Model(new(T)).Count(&total).Error; err != nil {
		return dto.Page[T]{}, err
	}

	number, err := req.Resolve(total, size)
	if err != nil {
		return dto.Page[T]{}, err
	}

	find := query.Order(order).Offset((number - 1) * size).Limit(size)
	for _, p := range preload {
		find = find.Preload(p)
	}

	var items []T
	if err = find.Find(&items).Error; err != nil {
		return dto.Page[T]{}, err
	}
	return dto.NewPage(items, number, size, total), nil
}
