package req

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Column limits shared by users and appointments.
const (
	MaxEmailLength    = 100
	MaxFullNameLength = 100
	MaxPhoneLength    = 20
)

var emailRegex = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

// IsEmail reports whether s looks like a deliverable email address.
func IsEmail(s string) bool {
	return len(s) <= MaxEmailLength && emailRegex.MatchString(strings.TrimSpace(s))
}

// TooLong reports whether s has more than max characters.
func TooLong(s string, max int) bool {
	return utf8.RuneCountInString(s) > max
}
