// Package notebook splits, classifies, formats, and reassembles Databricks
// notebook source files.
//
// A notebook is a flat Python file beginning with a header line and divided
// into cells by a delimiter line. Non-Python cells tag every line with a
// magic prefix and declare their type with a sub-type token (%sql, %md, ...).
// All functions operate on in-memory text and are pure.
package notebook

import (
	"strings"

	"github.com/julien-sobczak/nbfmt/pkg/text"
)

// IsNotebook reports whether the content starts with the Databricks notebook
// header. Files without the header are not notebooks and must be left alone.
func IsNotebook(content string) bool {
	return strings.Contains(text.FirstNonBlankLine(content), Header)
}

// Split removes the header and splits the remaining content into cells on the
// command delimiter. Each cell is trimmed of surrounding blank lines. Empty
// cells (nothing but blank lines between two delimiters) are dropped so that
// they round-trip to nothing instead of duplicating delimiters.
func Split(content string) []Cell {
	body := strings.Replace(content, Header, "", 1)

	var cells []Cell
	for _, raw := range strings.Split(body, CommandDelimiter) {
		cell := Cell(text.TrimBlankLines(raw))
		if cell == "" {
			continue
		}
		cells = append(cells, cell)
	}
	return cells
}

// Join reassembles formatted cells into notebook content.
//
// Every line is stripped of trailing whitespace. Cells are joined with one
// delimiter line surrounded by exactly one blank line above and below. The
// header is prepended and the file is terminated with exactly one trailing
// newline. The single exception to trailing-whitespace stripping: a bare
// magic line must keep one trailing space (see WrapMagic).
func Join(cells []Cell) string {
	parts := make([]string, 0, len(cells))
	for _, cell := range cells {
		parts = append(parts, stripTrailingWhitespace(string(cell)))
	}

	content := Header + "\n" + strings.Join(parts, "\n\n"+CommandDelimiter+"\n\n")
	content = strings.TrimRight(content, " \t\n") + "\n"
	return restoreBlankMagicLines(content)
}

// stripTrailingWhitespace right-trims every line and the text as a whole.
func stripTrailingWhitespace(s string) string {
	lines := text.Lines(s)
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// restoreBlankMagicLines appends the trailing space on lines consisting of
// exactly the magic prefix.
func restoreBlankMagicLines(content string) string {
	lines := text.Lines(content)
	for i, line := range lines {
		if line == MagicPrefix {
			lines[i] = MagicPrefix + " "
		}
	}
	return strings.Join(lines, "\n")
}
