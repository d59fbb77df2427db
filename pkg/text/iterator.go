package text

type Line struct {
	Text   string
	Number int
}

// Null Object pattern.
// Useful to inspect lines past the end without guarding every call.
var MissingLine = Line{
	Text:   "",
	Number: -1,
}

func (l Line) IsBlank() bool {
	return IsBlank(l.Text)
}

// LineIterator implements the Iterator pattern to iterate over text lines.
type LineIterator struct {
	index int
	lines []string
}

func NewLineIteratorFromText(text string) *LineIterator {
	return &LineIterator{
		index: 0,
		lines: Lines(text),
	}
}

func (l *LineIterator) HasNext() bool {
	return l.index < len(l.lines)
}

// Same as Next but does not move the iterator
func (l *LineIterator) Peek() Line {
	if !l.HasNext() {
		return MissingLine
	}
	return Line{Text: l.lines[l.index], Number: l.index + 1}
}

func (l *LineIterator) Next() Line {
	line := l.Peek()
	if l.HasNext() {
		l.index++
	}
	return line
}

// SkipBlankLines moves the iterator to the next non-blank line (if any).
func (l *LineIterator) SkipBlankLines() {
	for l.HasNext() && l.Peek().IsBlank() {
		l.Next()
	}
}

// Rest returns all remaining lines without moving the iterator.
func (l *LineIterator) Rest() []string {
	return l.lines[l.index:]
}
