// Package console provides single-line progress reporting for batch runs.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ProgressLog rewrites a single console line to track a batch of steps.
type ProgressLog struct {
	output        io.Writer
	showPercent   bool
	maxSteps      int
	maxCharacters int
}

func NewProgressLog(maxSteps int, options ...func(*ProgressLog)) *ProgressLog {
	result := &ProgressLog{
		output:        os.Stdout,
		showPercent:   false,
		maxSteps:      maxSteps,
		maxCharacters: 80,
	}
	for _, option := range options {
		option(result)
	}
	return result
}

func ToWriter(w io.Writer) func(*ProgressLog) {
	return func(l *ProgressLog) {
		l.output = w
	}
}

func ShowPercent() func(*ProgressLog) {
	return func(l *ProgressLog) {
		l.showPercent = true
	}
}

func LineLength(characters int) func(*ProgressLog) {
	return func(l *ProgressLog) {
		l.maxCharacters = characters
	}
}

// Log rewrites the progress line for the given step.
func (l *ProgressLog) Log(currentStep int, message string) {
	var sb strings.Builder

	if l.showPercent {
		sb.WriteString(fmt.Sprintf("(%3d%%) ", currentStep*100/l.maxSteps))
	} else {
		sb.WriteString(fmt.Sprintf("(%d/%d) ", currentStep, l.maxSteps))
	}
	sb.WriteString(message)

	fmt.Fprint(l.output, l.pad(sb.String()), "\r")
}

// Clear replaces the progress line with a final message, or erases it when
// the message is empty.
func (l *ProgressLog) Clear(newMessage string) {
	fmt.Fprint(l.output, l.pad(newMessage))
	if newMessage == "" {
		fmt.Fprint(l.output, "\r")
	} else {
		fmt.Fprint(l.output, "\n")
	}
}

// pad truncates or right-pads a line to the configured width so that
// successive rewrites fully erase each other.
func (l *ProgressLog) pad(line string) string {
	if len(line) > l.maxCharacters {
		return line[:l.maxCharacters]
	}
	return line + strings.Repeat(" ", l.maxCharacters-len(line))
}
