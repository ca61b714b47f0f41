package domain

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxNameLength is the longest accepted Pokémon lookup name.
const MaxNameLength = 50

var (
	ErrNameEmpty     = errors.New("name is empty")
	ErrNameTooLong   = errors.New("name is too long")
	ErrNameInvalid   = errors.New("name contains invalid characters")
	validNamePattern = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// SanitizeName turns user input into a lookup key: trimmed, lowercase,
// 1-50 characters of [a-z0-9-]. It never touches the network or storage.
func SanitizeName(raw string) (string, error) {
	name := NormalizeText(raw)
	if name == "" {
		return "", ErrNameEmpty
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", ErrNameTooLong
	}
	if !validNamePattern.MatchString(name) {
		return "", ErrNameInvalid
	}
	return name, nil
}

// NormalizeText prepares text for storage and comparison:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - compresses multiple spaces into one
func NormalizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)

	// Compress multiple spaces into one.
	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if r == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
