package validator

import (
	"strings"
	"unicode/utf8"
)

func ClubTitle(title string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(title))
	return n >= 3 && n <= 100
}
