package validators

import (
	"unicode"
	"unicode/utf8"
)

// RawKeyLength is the exact number of characters of a vault key.
const RawKeyLength = 16

// ValidateRawKey checks the format of a user-supplied vault key: exactly
// [RawKeyLength] characters, at least one letter and at least one digit.
func ValidateRawKey(key string) error {
	if !utf8.ValidString(key) || utf8.RuneCountInString(key) != RawKeyLength {
		return ErrInvalidRawKey
	}

	var hasLetter, hasDigit bool
	for _, r := range key {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return ErrInvalidRawKey
	}

	return nil
}
