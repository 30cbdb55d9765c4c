package security

import (
	"strings"
	"unicode"
)

// Sanitize normalizes user-supplied text for safe downstream processing.
//
// It removes C0 control characters (except tab, newline, and carriage
// return, which are treated as whitespace), collapses every run of
// whitespace into a single space, and trims leading and trailing
// whitespace.
//
// Sanitize is a pure function and idempotent: Sanitize(Sanitize(s)) ==
// Sanitize(s) for any input.
func Sanitize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	inSpace := false
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			inSpace = true
		case r < 0x20 || r == 0x7f:
			// Remaining control characters are dropped entirely.
			continue
		default:
			if inSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			inSpace = false
			b.WriteRune(r)
		}
	}

	return b.String()
}
