package notebook

import (
	"strings"

	"github.com/julien-sobczak/nbfmt/pkg/text"
)

// FormatSQLCell reformats an SQL cell.
//
// An optional title line is extracted first and reattached verbatim ahead of
// the result. If the effective first content line carries the no-format
// directive, the cell body is returned untouched. Otherwise the magic prefix
// and the %sql token are stripped from every line, the bare SQL is delegated
// to the formatter with reindentation enabled, and every resulting line is
// wrapped back with the magic prefix below a fresh %sql marker line.
func FormatSQLCell(cell Cell, formatter SQLFormatter, keywordCase Case) Cell {
	it := text.NewLineIteratorFromText(string(cell))
	it.SkipBlankLines()

	var title string
	if IsTitle(it.Peek().Text) {
		title = it.Next().Text
	}

	body := text.TrimBlankLines(strings.Join(it.Rest(), "\n"))

	if strings.Contains(text.FirstNonBlankLine(body), NoFormatDirective) {
		return reattachTitle(title, body)
	}

	var sqlLines []string
	for _, line := range text.Lines(body) {
		payload := StripMagic(line)
		trimmed := strings.TrimSpace(payload)
		if strings.HasPrefix(trimmed, SQLToken) {
			// The sub-type marker is re-emitted below. Keep any SQL written
			// on the same line.
			payload = strings.TrimSpace(strings.TrimPrefix(trimmed, SQLToken))
			if payload == "" {
				continue
			}
		}
		sqlLines = append(sqlLines, payload)
	}

	sql := text.TrimBlankLines(strings.Join(sqlLines, "\n"))

	wrapped := []string{WrapMagic(SQLToken)}
	if sql != "" {
		formatted := formatter.Format(sql, SQLOptions{Reindent: true, KeywordCase: keywordCase})
		for _, line := range text.Lines(text.TrimBlankLines(formatted)) {
			wrapped = append(wrapped, WrapMagic(line))
		}
	}

	return reattachTitle(title, strings.Join(wrapped, "\n"))
}

func reattachTitle(title, body string) Cell {
	if title == "" {
		return Cell(body)
	}
	return Cell(title + "\n" + body)
}
