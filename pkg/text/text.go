package text

import (
	"strings"
)

// IsBlank returns if a text is blank.
func IsBlank(text string) bool {
	return len(strings.TrimSpace(text)) == 0
}

// Lines splits a text on newlines. The result always contains at least one element.
func Lines(text string) []string {
	return strings.Split(text, "\n")
}

// FirstNonBlankLine returns the first line containing non-whitespace characters,
// or the empty string when the text is blank.
func FirstNonBlankLine(text string) string {
	for _, line := range Lines(text) {
		if !IsBlank(line) {
			return line
		}
	}
	return ""
}

// TrimBlankLines removes leading and trailing blank lines, preserving
// interior blank lines and the indentation of the remaining lines.
func TrimBlankLines(text string) string {
	lines := Lines(text)

	start := 0
	for start < len(lines) && IsBlank(lines[start]) {
		start++
	}
	end := len(lines)
	for end > start && IsBlank(lines[end-1]) {
		end--
	}

	return strings.Join(lines[start:end], "\n")
}
