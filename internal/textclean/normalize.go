// Package textclean strips OCR noise from extracted screen text.
package textclean

import (
	"strings"
	"unicode"
)

// Normalize keeps ASCII letters, digits, Unicode whitespace, '.' and ',', collapses
// whitespace runs to a single space and trims the result.
func Normalize(raw string) string {
	kept := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == ',':
			return r
		case unicode.IsSpace(r), r >= 0x1c && r <= 0x1f:
			// 0x1c-0x1f are the ASCII separators, which OCR output treats as breaks
			return ' '
		}
		return -1
	}, raw)

	return strings.Join(strings.Fields(kept), " ")
}
