package pyfmt_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/julien-sobczak/nbfmt/internal/notebook"
	"github.com/julien-sobczak/nbfmt/internal/pyfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReindentTwoSpaces(t *testing.T) {
	var tests = []struct {
		name     string
		code     string
		expected string
	}{
		{
			name:     "Top-level code untouched",
			code:     "x = 1\ny = 2\n",
			expected: "x = 1\ny = 2\n",
		},
		{
			name:     "One level",
			code:     "def f():\n    return 1\n",
			expected: "def f():\n  return 1\n",
		},
		{
			name:     "Nested levels",
			code:     "def f():\n    if x:\n        return 1\n",
			expected: "def f():\n  if x:\n    return 1\n",
		},
		{
			name:     "Partial level preserved",
			code:     "def f(a,\n      b):\n    pass\n",
			expected: "def f(a,\n    b):\n  pass\n",
		},
		{
			// The docstring body belongs to the string value. Only the line
			// opening the literal carries code indentation.
			name: "Docstring body untouched",
			code: "def f(input_param):\n" +
				"    \"\"\"Do nothing.\n" +
				"\n" +
				"    :param   input_param: input\n" +
				"    \"\"\"\n" +
				"    return None\n",
			expected: "def f(input_param):\n" +
				"  \"\"\"Do nothing.\n" +
				"\n" +
				"    :param   input_param: input\n" +
				"    \"\"\"\n" +
				"  return None\n",
		},
		{
			name:     "Single-line docstring",
			code:     "def f():\n    \"\"\"Do nothing.\"\"\"\n    return None\n",
			expected: "def f():\n  \"\"\"Do nothing.\"\"\"\n  return None\n",
		},
		{
			name:     "Quotes in strings and comments ignored",
			code:     "def f():\n    x = '\"\"\"'  # \"\"\" not a docstring\n    return x\n",
			expected: "def f():\n  x = '\"\"\"'  # \"\"\" not a docstring\n  return x\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, pyfmt.ReindentTwoSpaces(tt.code))
		})
	}
}

// fakeFormatter returns a Formatter backed by a script that echoes stdin,
// ignoring the flags passed to the real binary.
func fakeFormatter(t *testing.T) *pyfmt.Formatter {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}
	script := filepath.Join(t.TempDir(), "fakeblack")
	err := os.WriteFile(script, []byte("#!/bin/sh\ncat\n"), 0o755)
	require.NoError(t, err)
	return &pyfmt.Formatter{Command: script}
}

func TestFormatSubprocess(t *testing.T) {
	formatter := fakeFormatter(t)

	output, err := formatter.Format("x = 1", notebook.CodeOptions{LineLength: 88})
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", output)
}

func TestFormatSubprocessTwoSpaceIndent(t *testing.T) {
	formatter := fakeFormatter(t)

	output, err := formatter.Format("if x:\n    y = 1", notebook.CodeOptions{LineLength: 88, TwoSpaceIndent: true})
	require.NoError(t, err)
	assert.Equal(t, "if x:\n  y = 1\n", output)
}

func TestFormatMissingBinary(t *testing.T) {
	formatter := &pyfmt.Formatter{Command: "definitely-not-a-formatter"}

	_, err := formatter.Format("x = 1", notebook.CodeOptions{})
	require.Error(t, err)
	var syntaxErr *pyfmt.SyntaxError
	assert.False(t, errors.As(err, &syntaxErr))
}

func TestSyntaxError(t *testing.T) {
	err := &pyfmt.SyntaxError{Output: "error: cannot format -: invalid syntax"}
	assert.Contains(t, err.Error(), "invalid Python code")
	assert.Contains(t, err.Error(), "invalid syntax")
}
