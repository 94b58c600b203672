package validator

import (
	"regexp"
	"unicode/utf8"
)

var usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)

// Username follows the usual web-framework rule: up to 150 letters, digits and @.+-_ characters.
func Username(username string) bool {
	n := utf8.RuneCountInString(username)
	return n >= 1 && n <= 150 && usernameRe.MatchString(username)
}

func Password(password string) bool {
	return utf8.RuneCountInString(password) >= 8
}
