package notebook

import (
	"fmt"
)

// DefaultLineLength is the default maximum line length for Python cells.
const DefaultLineLength = 88

// Case is a SQL keyword case policy.
type Case string

const (
	Uppercase Case = "upper"
	Lowercase Case = "lower"
)

// Config holds the formatting options of one pass. It is an immutable value
// passed explicitly into every call: two notebooks formatted concurrently
// with different configs must not interfere.
type Config struct {
	LineLength     int
	SQLKeywordCase Case
	TwoSpaceIndent bool
}

// DefaultConfig returns the options used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		LineLength:     DefaultLineLength,
		SQLKeywordCase: Uppercase,
		TwoSpaceIndent: true,
	}
}

// CodeOptions configures a single code formatting call.
type CodeOptions struct {
	LineLength     int
	TwoSpaceIndent bool
}

// CodeFormatter formats Python code. It fails when the code cannot be parsed.
type CodeFormatter interface {
	Format(code string, opts CodeOptions) (string, error)
}

// CodeFormatterFunc adapts a function to the CodeFormatter interface.
type CodeFormatterFunc func(code string, opts CodeOptions) (string, error)

func (f CodeFormatterFunc) Format(code string, opts CodeOptions) (string, error) {
	return f(code, opts)
}

// SQLOptions configures a single SQL formatting call.
type SQLOptions struct {
	Reindent    bool
	KeywordCase Case
}

// SQLFormatter formats SQL statements. It never fails: malformed SQL is
// reformatted best-effort.
type SQLFormatter interface {
	Format(sql string, opts SQLOptions) string
}

// SQLFormatterFunc adapts a function to the SQLFormatter interface.
type SQLFormatterFunc func(sql string, opts SQLOptions) string

func (f SQLFormatterFunc) Format(sql string, opts SQLOptions) string {
	return f(sql, opts)
}

// Formatters groups the external formatters consumed by Format.
type Formatters struct {
	Code CodeFormatter
	SQL  SQLFormatter
}

// Format reformats whole notebook content and returns the new content.
//
// Content without the notebook header is returned unchanged. A code cell
// rejected by the code formatter is fatal for the whole file; no partial
// recovery is attempted. Format is idempotent as long as the external
// formatters are.
func Format(content string, cfg Config, formatters Formatters) (string, error) {
	if !IsNotebook(content) {
		return content, nil
	}

	cells := Split(content)
	formatted := make([]Cell, 0, len(cells))
	for i, cell := range cells {
		switch cell.Kind() {
		case KindSQL:
			formatted = append(formatted, FormatSQLCell(cell, formatters.SQL, cfg.SQLKeywordCase))
		case KindPassthrough:
			formatted = append(formatted, cell)
		default:
			output, err := formatters.Code.Format(string(cell), CodeOptions{
				LineLength:     cfg.LineLength,
				TwoSpaceIndent: cfg.TwoSpaceIndent,
			})
			if err != nil {
				return "", fmt.Errorf("cell %d: %w", i+1, err)
			}
			formatted = append(formatted, Cell(output))
		}
	}

	return Join(formatted), nil
}
