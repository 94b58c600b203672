package dto

import (
	"strconv"
	"strings"

	"github.com/clubhub-dev/clubhub/internal/domain/common/errorz"
)

// PageRequest is a requested page number as it came from the client.
// Last selects the final page regardless of Number.
type PageRequest struct {
	Number int
	Last   bool
}

// ParsePageRequest parses the ?page= query value. An empty value means page 1,
// "last" means the final page, anything that is not a positive integer is ErrNotFound.
func ParsePageRequest(raw string) (PageRequest, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return PageRequest{Number: 1}, nil
	}
	if raw == "last" {
		return PageRequest{Last: true}, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return PageRequest{}, errorz.ErrNotFound
	}
	return PageRequest{Number: n}, nil
}

// Resolve returns the concrete 1-based page number for a listing of total items.
// Page 1 of an empty listing is valid; any page past the last one is ErrNotFound.
func (r PageRequest) Resolve(total int64, size int) (int, error) {
	numPages := NumPages(total, size)
	if r.Last {
		return numPages, nil
	}
	if r.Number < 1 || r.Number > numPages {
		return 0, errorz.ErrNotFound
	}
	return r.Number, nil
}

// NumPages never returns less than 1.
func NumPages(total int64, size int) int {
	if size < 1 || total <= 0 {
		return 1
	}
	return int((total + int64(size) - 1) / int64(size))
}

type Page[T any] struct {
	Items       []T   `json:"items"`
	Number      int   `json:"page"`
	Size        int   `json:"page_size"`
	Total       int64 `json:"total"`
	NumPages    int   `json:"num_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

func NewPage[T any](items []T, number, size int, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	numPages := NumPages(total, size)
	return Page[T]{
		Items:       items,
		Number:      number,
		Size:        size,
		Total:       total,
		NumPages:    numPages,
		HasNext:     number < numPages,
		HasPrevious: number > 1,
	}
}

// MapPage converts the items of a page, keeping its pagination metadata.
func MapPage[S, T any](p Page[S], fn func(S) T) Page[T] {
	items := make([]T, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, fn(item))
	}
	return Page[T]{
		Items:       items,
		Number:      p.Number,
		Size:        p.Size,
		Total:       p.Total,
		NumPages:    p.NumPages,
		HasNext:     p.HasNext,
		HasPrevious: p.HasPrevious,
	}
}
