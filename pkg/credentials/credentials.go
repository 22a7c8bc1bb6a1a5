package credentials

import (
	"regexp"
	"unicode/utf16"
)

const MinPasswordLength = 6

var loginPattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// ValidLogin reports whether login is a non-empty run of ASCII letters and digits.
func ValidLogin(login string) bool {
	return loginPattern.MatchString(login)
}

// ValidPassword checks the length in UTF-16 code units, so a character outside
// the basic multilingual plane counts twice.
func ValidPassword(password string) bool {
	return len(utf16.Encode([]rune(password))) >= MinPasswordLength
}
