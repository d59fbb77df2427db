package notebook

import (
	"strings"

	"github.com/julien-sobczak/nbfmt/pkg/text"
)

// Cell is one delimited segment of a notebook, trimmed of the delimiter and
// surrounding blank lines. Cells are value objects; their kind is derived
// from their content, never stored.
type Cell string

// Kind classifies a cell for formatting dispatch.
type Kind int

const (
	// KindCode means Python code, formatted by the code formatter.
	KindCode Kind = iota
	// KindSQL means an SQL cell, formatted by the SQL formatter.
	KindSQL
	// KindPassthrough means any other magic cell (%md, %sh, ...), emitted verbatim.
	KindPassthrough
)

func (k Kind) String() string {
	switch k {
	case KindSQL:
		return "sql"
	case KindPassthrough:
		return "passthrough"
	default:
		return "code"
	}
}

// Kind determines the cell kind from its content.
//
// The first magic line (skipping blank lines and an optional title line)
// decides: a payload starting with %sql makes an SQL cell. Any other magic
// line makes a passthrough cell. A cell without magic lines is Python code.
func (c Cell) Kind() Kind {
	it := text.NewLineIteratorFromText(string(c))
	for it.HasNext() {
		line := it.Next()
		if line.IsBlank() || IsTitle(line.Text) {
			continue
		}
		if IsMagic(line.Text) {
			payload := strings.TrimSpace(StripMagic(line.Text))
			if strings.HasPrefix(payload, SQLToken) {
				return KindSQL
			}
		}
		break
	}
	if strings.Contains(string(c), MagicPrefix) {
		return KindPassthrough
	}
	return KindCode
}

// IsTitle reports whether a line is a cell title line.
func IsTitle(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), TitlePrefix)
}
