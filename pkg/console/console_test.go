package console_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/julien-sobczak/nbfmt/pkg/console"
	"github.com/stretchr/testify/assert"
)

func TestProgressLog(t *testing.T) {
	var buf bytes.Buffer
	progress := console.NewProgressLog(4, console.ToWriter(&buf), console.LineLength(40))

	progress.Log(1, "notebook1.py")
	assert.Equal(t, "(1/4) notebook1.py"+strings.Repeat(" ", 22)+"\r", buf.String())

	buf.Reset()
	progress.Log(2, "a-very-long-notebook-name-that-overflows.py")
	line := buf.String()
	assert.Len(t, line, 41) // 40 characters + \r
	assert.True(t, strings.HasSuffix(line, "\r"))
}

func TestProgressLogPercent(t *testing.T) {
	var buf bytes.Buffer
	progress := console.NewProgressLog(2, console.ToWriter(&buf), console.ShowPercent(), console.LineLength(40))

	progress.Log(1, "notebook1.py")
	assert.True(t, strings.HasPrefix(buf.String(), "( 50%) notebook1.py"))
}

func TestProgressLogClear(t *testing.T) {
	var buf bytes.Buffer
	progress := console.NewProgressLog(1, console.ToWriter(&buf), console.LineLength(10))

	progress.Clear("")
	assert.Equal(t, strings.Repeat(" ", 10)+"\r", buf.String())

	buf.Reset()
	progress.Clear("Done")
	assert.Equal(t, "Done      \n", buf.String())
}
