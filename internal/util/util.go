// internal/util/util.go
package util

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TruncateRunes truncates a string to a maximum number of runes,
// appending an ellipsis if truncated.
func TruncateRunes(text string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxRunes]) + "…"
}

// Capitalize upper-cases the first rune of text and leaves the rest alone.
func Capitalize(text string) string {
	r, size := utf8.DecodeRuneInString(text)
	if r == utf8.RuneError && size <= 1 {
		return text
	}
	return string(unicode.ToUpper(r)) + text[size:]
}

// BoolMark renders a checkbox-style marker.
func BoolMark(v bool) string {
	if v {
		return "[x]"
	}
	return "[ ]"
}

// PadRight pads text with spaces to width runes.
func PadRight(text string, width int) string {
	n := utf8.RuneCountInString(text)
	if n >= width {
		return text
	}
	return text + strings.Repeat(" ", width-n)
}
