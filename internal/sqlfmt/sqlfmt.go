// Package sqlfmt is a best-effort SQL formatter. It normalizes keyword case
// and reindents statements one clause per line, aligning list items under
// their clause. It never fails: malformed SQL comes out as well as it goes in.
package sqlfmt

import (
	"strings"

	"github.com/julien-sobczak/nbfmt/internal/notebook"
)

type Formatter struct{}

func New() *Formatter {
	return &Formatter{}
}

// Format applies the requested keyword case and, when opts.Reindent is set,
// relayouts the statements. Without reindentation the original whitespace is
// preserved byte for byte.
func (f *Formatter) Format(sql string, opts notebook.SQLOptions) string {
	tokens, trailing := scan(sql)
	applyCase(tokens, opts.KeywordCase)
	if !opts.Reindent {
		var b strings.Builder
		for _, tok := range tokens {
			b.WriteString(tok.space)
			b.WriteString(tok.text)
		}
		b.WriteString(trailing)
		return b.String()
	}
	return reindent(tokens)
}

var keywords = map[string]bool{
	"ALL": true, "ALTER": true, "AND": true, "AS": true, "ASC": true,
	"BETWEEN": true, "BY": true, "CASE": true, "CREATE": true, "CROSS": true,
	"DELETE": true, "DESC": true, "DISTINCT": true, "DROP": true, "ELSE": true,
	"END": true, "EXCEPT": true, "EXISTS": true, "FALSE": true, "FROM": true,
	"FULL": true, "GROUP": true, "HAVING": true, "IF": true, "IN": true,
	"INNER": true, "INSERT": true, "INTERSECT": true, "INTO": true, "IS": true,
	"JOIN": true, "LEFT": true, "LIKE": true, "LIMIT": true, "NOT": true,
	"NULL": true, "OFFSET": true, "ON": true, "OR": true, "ORDER": true,
	"OUTER": true, "OVER": true, "PARTITION": true, "REPLACE": true,
	"RIGHT": true, "SELECT": true, "SET": true, "TABLE": true, "THEN": true,
	"TRUE": true, "UNION": true, "UPDATE": true, "USING": true, "VALUES": true,
	"VIEW": true, "WHEN": true, "WHERE": true, "WITH": true,
}

func isKeyword(word string) bool {
	return keywords[strings.ToUpper(word)] && !strings.Contains(word, ".")
}

// applyCase rewrites keyword tokens in place. Identifiers (including
// qualified names), literals, and comments are left untouched.
func applyCase(tokens []token, keywordCase notebook.Case) {
	for i, tok := range tokens {
		if tok.kind != tokenWord || !isKeyword(tok.text) {
			continue
		}
		if keywordCase == notebook.Lowercase {
			tokens[i].text = strings.ToLower(tok.text)
		} else {
			tokens[i].text = strings.ToUpper(tok.text)
		}
	}
}

// Clauses starting a new line at parenthesis depth zero. Multi-word clause
// names are merged before lookup (see mergeClause).
var clauseBreaks = map[string]bool{
	"AND": true, "CROSS JOIN": true, "EXCEPT": true, "FROM": true,
	"FULL JOIN": true, "FULL OUTER JOIN": true, "GROUP BY": true,
	"HAVING": true, "INNER JOIN": true, "INTERSECT": true, "JOIN": true,
	"LEFT JOIN": true, "LEFT OUTER JOIN": true, "LIMIT": true,
	"OFFSET": true, "OR": true, "ORDER BY": true, "RIGHT JOIN": true,
	"RIGHT OUTER JOIN": true, "SELECT": true, "SET": true, "UNION": true,
	"UNION ALL": true, "VALUES": true, "WHERE": true,
}

// Clauses whose comma-separated items are placed one per line, aligned under
// the first item.
var listClauses = map[string]bool{
	"SELECT": true, "GROUP BY": true, "ORDER BY": true,
}

// mergeClause returns the clause name formed by the word tokens starting at
// position i, and how many tokens it spans. Single words return themselves.
func mergeClause(tokens []token, i int) (string, int) {
	first := strings.ToUpper(tokens[i].text)
	two := first
	if i+1 < len(tokens) && tokens[i+1].kind == tokenWord {
		two = first + " " + strings.ToUpper(tokens[i+1].text)
	}
	three := two
	if i+2 < len(tokens) && tokens[i+2].kind == tokenWord {
		three = two + " " + strings.ToUpper(tokens[i+2].text)
	}

	switch {
	case clauseBreaks[three]:
		return three, 3
	case clauseBreaks[two]:
		return two, 2
	case clauseBreaks[first]:
		return first, 1
	}
	return first, 1
}

// reindent lays out tokens from scratch, ignoring the original whitespace.
// Reformatted output scans to the same token sequence, so reindenting is
// idempotent by construction.
func reindent(tokens []token) string {
	var b strings.Builder

	depth := 0
	atLineStart := true
	indent := 0         // continuation indent for list-clause commas
	inListClause := false
	prevWord := ""      // last word token, uppercased
	betweenArms := 0    // pending ANDs that belong to a BETWEEN

	var prev *token
	for i := 0; i < len(tokens); {
		tok := tokens[i]

		if tok.kind == tokenWord && depth == 0 {
			clause, span := mergeClause(tokens, i)
			breakable := clauseBreaks[clause]
			if clause == "AND" && betweenArms > 0 {
				betweenArms--
				breakable = false
			}
			if (clause == "OR" || clause == "AND") && prevWord == "CREATE" {
				// CREATE OR REPLACE is one DDL head, not a boolean clause.
				breakable = false
			}
			if breakable && !atLineStart {
				b.WriteByte('\n')
				atLineStart = true
			}
			if breakable {
				words := make([]string, 0, span)
				for j := i; j < i+span; j++ {
					words = append(words, tokens[j].text)
				}
				b.WriteString(strings.Join(words, " "))
				atLineStart = false
				indent = len(clause) + 1
				inListClause = listClauses[clause]
				prevWord = clause
				prev = &tokens[i+span-1]
				i += span
				continue
			}
		}

		switch {
		case tok.kind == tokenPunct && tok.text == ";":
			b.WriteString(";")
			// Blank line between statements.
			if i+1 < len(tokens) {
				b.WriteString("\n\n")
				atLineStart = true
				inListClause = false
				indent = 0
				prevWord = ""
			}
		case tok.kind == tokenPunct && tok.text == ",":
			b.WriteString(",")
			if depth == 0 && inListClause {
				b.WriteByte('\n')
				b.WriteString(strings.Repeat(" ", indent))
				// The indentation already separates the next token.
				atLineStart = true
			}
		case tok.kind == tokenPunct && tok.text == "(":
			if !atLineStart && wantSpaceBeforeParen(prev) {
				b.WriteByte(' ')
			}
			b.WriteString("(")
			depth++
			atLineStart = false
		case tok.kind == tokenPunct && tok.text == ")":
			b.WriteString(")")
			if depth > 0 {
				depth--
			}
			atLineStart = false
		case tok.kind == tokenPunct && tok.text == "[":
			// Subscripts hug the value they index.
			b.WriteString("[")
			depth++
			atLineStart = false
		case tok.kind == tokenPunct && tok.text == "]":
			b.WriteString("]")
			if depth > 0 {
				depth--
			}
			atLineStart = false
		case tok.kind == tokenLineComment:
			if !atLineStart {
				b.WriteByte(' ')
			}
			b.WriteString(tok.text)
			if i+1 < len(tokens) {
				b.WriteByte('\n')
				atLineStart = true
			}
		default:
			if !atLineStart && wantSpaceBefore(prev) {
				b.WriteByte(' ')
			}
			b.WriteString(tok.text)
			atLineStart = false
			if tok.kind == tokenWord {
				if strings.ToUpper(tok.text) == "BETWEEN" {
					betweenArms++
				}
				prevWord = strings.ToUpper(tok.text)
			}
		}

		prev = &tokens[i]
		i++
	}

	return b.String()
}

// wantSpaceBeforeParen decides if an opening parenthesis is preceded by a
// space: yes after keywords and operators ("IN (", "= ("), no after function
// names ("SUM(").
func wantSpaceBeforeParen(prev *token) bool {
	if prev == nil {
		return false
	}
	if prev.kind == tokenWord {
		return isKeyword(prev.text)
	}
	return prev.text != "(" && prev.text != "."
}

func wantSpaceBefore(prev *token) bool {
	if prev == nil {
		return false
	}
	if prev.kind == tokenPunct && (prev.text == "(" || prev.text == "[") {
		return false
	}
	return true
}
