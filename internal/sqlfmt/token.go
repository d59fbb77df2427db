package sqlfmt

import (
	"strings"
)

type tokenKind int

const (
	tokenWord tokenKind = iota
	tokenString
	tokenQuoted
	tokenLineComment
	tokenBlockComment
	tokenOperator
	tokenPunct // , ; ( )
)

type token struct {
	kind tokenKind
	text string
	// whitespace preceding the token in the source, preserved for
	// case-only formatting
	space string
}

func isWordRune(r byte) bool {
	return r == '_' || r == '$' || r == '.' ||
		(r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z')
}

func isOperatorRune(r byte) bool {
	return strings.IndexByte("+-*/%<>=!|&^~", r) >= 0
}

// scan tokenizes an SQL text. String literals, quoted identifiers, and
// comments are kept as single tokens so that later passes never alter their
// content. The trailing whitespace after the last token is returned
// separately.
func scan(sql string) ([]token, string) {
	var tokens []token
	i := 0

	for i < len(sql) {
		start := i
		for i < len(sql) && (sql[i] == ' ' || sql[i] == '\t' || sql[i] == '\n' || sql[i] == '\r') {
			i++
		}
		space := sql[start:i]
		if i >= len(sql) {
			return tokens, space
		}

		start = i
		c := sql[i]
		var kind tokenKind
		switch {
		case c == '\'' || c == '"' || c == '`':
			i = scanQuoted(sql, i)
			kind = tokenString
			if c != '\'' {
				kind = tokenQuoted
			}
		case c == '-' && i+1 < len(sql) && sql[i+1] == '-':
			for i < len(sql) && sql[i] != '\n' {
				i++
			}
			kind = tokenLineComment
		case c == '/' && i+1 < len(sql) && sql[i+1] == '*':
			i += 2
			for i < len(sql) && !(sql[i-1] == '*' && sql[i] == '/') {
				i++
			}
			if i < len(sql) {
				i++
			}
			kind = tokenBlockComment
		case isWordRune(c):
			for i < len(sql) && isWordRune(sql[i]) {
				i++
			}
			kind = tokenWord
		case c == ',' || c == ';' || c == '(' || c == ')' || c == '[' || c == ']':
			i++
			kind = tokenPunct
		case isOperatorRune(c):
			for i < len(sql) && isOperatorRune(sql[i]) {
				// Stop before a comment opener.
				if i+1 < len(sql) && ((sql[i] == '-' && sql[i+1] == '-') || (sql[i] == '/' && sql[i+1] == '*')) && i > start {
					break
				}
				i++
			}
			kind = tokenOperator
		default:
			i++
			kind = tokenPunct
		}

		tokens = append(tokens, token{kind: kind, text: sql[start:i], space: space})
	}

	return tokens, ""
}

// scanQuoted scans a literal delimited by the byte at position i, honoring
// doubled-delimiter and backslash escapes. It returns the position after the
// closing delimiter (or the end of the text when unterminated).
func scanQuoted(sql string, i int) int {
	delim := sql[i]
	i++
	for i < len(sql) {
		switch sql[i] {
		case '\\':
			i += 2
		case delim:
			if i+1 < len(sql) && sql[i+1] == delim {
				i += 2
				continue
			}
			return i + 1
		default:
			i++
		}
	}
	return i
}
