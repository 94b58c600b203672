package validator

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/clubhub-dev/clubhub/internal/domain/utils/location"
)

const localLayout = "2006-01-02 15:04"

func PostTitle(title string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(title))
	return n >= 1 && n <= 100
}

func PostContent(content string) bool {
	return strings.TrimSpace(content) != ""
}

func PostLocation(location string) bool {
	return utf8.RuneCountInString(location) <= 100
}

// PostTime parses an optional post date. Empty input yields the zero time.
func PostTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	t, err := time.ParseInLocation(localLayout, value, location.Location())
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// PostPeriod reports whether end does not precede start. Unset bounds always pass.
func PostPeriod(start, end time.Time) bool {
	if start.IsZero() || end.IsZero() {
		return true
	}
	return !end.Before(start)
}
