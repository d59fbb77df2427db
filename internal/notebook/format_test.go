package notebook_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/julien-sobczak/nbfmt/internal/notebook"
	"github.com/julien-sobczak/nbfmt/internal/sqlfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spacedAssignments mimics a code formatter: it surrounds bare assignment
// signs with spaces and terminates the cell with a newline. Idempotent, like
// the real thing.
var spacedAssignments = notebook.CodeFormatterFunc(func(code string, opts notebook.CodeOptions) (string, error) {
	var lines []string
	for _, line := range strings.Split(code, "\n") {
		line = strings.ReplaceAll(line, "x=1", "x = 1")
		line = strings.ReplaceAll(line, "y=2", "y = 2")
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n") + "\n", nil
})

func testFormatters() notebook.Formatters {
	return notebook.Formatters{
		Code: spacedAssignments,
		SQL:  sqlfmt.New(),
	}
}

func TestFormat(t *testing.T) {
	content := "" +
		"# Databricks notebook source\n" +
		"x=1\n" +
		"\n" +
		"# COMMAND ----------\n" +
		"\n" +
		"# MAGIC %md\n" +
		"# MAGIC # Heading\n" +
		"\n" +
		"# COMMAND ----------\n" +
		"\n" +
		"# MAGIC %sql\n" +
		"# MAGIC select id from t limit 1\n"

	actual, err := notebook.Format(content, notebook.DefaultConfig(), testFormatters())
	require.NoError(t, err)

	expected := "" +
		"# Databricks notebook source\n" +
		"x = 1\n" +
		"\n" +
		"# COMMAND ----------\n" +
		"\n" +
		"# MAGIC %md\n" +
		"# MAGIC # Heading\n" +
		"\n" +
		"# COMMAND ----------\n" +
		"\n" +
		"# MAGIC %sql\n" +
		"# MAGIC SELECT id\n" +
		"# MAGIC FROM t\n" +
		"# MAGIC LIMIT 1\n"
	assert.Equal(t, expected, actual)
}

func TestFormatIdempotent(t *testing.T) {
	content := "" +
		"# Databricks notebook source\n" +
		"x=1\n" +
		"\n" +
		"# COMMAND ----------\n" +
		"\n" +
		"# DBTITLE 1,Title for an SQL cell\n" +
		"# MAGIC %sql\n" +
		"# MAGIC select country,\n" +
		"# MAGIC        product\n" +
		"# MAGIC from sales\n" +
		"\n" +
		"# COMMAND ----------\n" +
		"\n" +
		"# MAGIC %sh\n" +
		"# MAGIC ls -l\n"

	cfg := notebook.DefaultConfig()
	once, err := notebook.Format(content, cfg, testFormatters())
	require.NoError(t, err)
	twice, err := notebook.Format(once, cfg, testFormatters())
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestFormatNonNotebook(t *testing.T) {
	content := "x=1\nprint(x)\n"

	actual, err := notebook.Format(content, notebook.DefaultConfig(), testFormatters())
	require.NoError(t, err)

	assert.Equal(t, content, actual)
}

func TestFormatDropsEmptyCells(t *testing.T) {
	content := "" +
		"# Databricks notebook source\n" +
		"x=1\n" +
		"\n" +
		"# COMMAND ----------\n" +
		"\n" +
		"\n" +
		"# COMMAND ----------\n" +
		"\n" +
		"y=2\n"

	actual, err := notebook.Format(content, notebook.DefaultConfig(), testFormatters())
	require.NoError(t, err)

	expected := "" +
		"# Databricks notebook source\n" +
		"x = 1\n" +
		"\n" +
		"# COMMAND ----------\n" +
		"\n" +
		"y = 2\n"
	assert.Equal(t, expected, actual)
}

func TestFormatKeepsBlankMagicLines(t *testing.T) {
	content := "" +
		"# Databricks notebook source\n" +
		"# MAGIC %md\n" +
		"# MAGIC # Heading\n" +
		"# MAGIC\n" +
		"# MAGIC And a paragraph\n"

	actual, err := notebook.Format(content, notebook.DefaultConfig(), testFormatters())
	require.NoError(t, err)

	// The bare magic line ends with exactly one space.
	assert.Contains(t, actual, "# MAGIC # Heading\n# MAGIC \n# MAGIC And a paragraph\n")
}

func TestFormatPropagatesCodeFormatterErrors(t *testing.T) {
	failing := notebook.CodeFormatterFunc(func(code string, opts notebook.CodeOptions) (string, error) {
		return "", errors.New("cannot parse input")
	})
	formatters := notebook.Formatters{Code: failing, SQL: sqlfmt.New()}

	content := "# Databricks notebook source\nx ===== 1\n"
	_, err := notebook.Format(content, notebook.DefaultConfig(), formatters)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot parse input")
}

func TestFormatPassesConfigToCodeFormatter(t *testing.T) {
	var received notebook.CodeOptions
	recording := notebook.CodeFormatterFunc(func(code string, opts notebook.CodeOptions) (string, error) {
		received = opts
		return code, nil
	})
	formatters := notebook.Formatters{Code: recording, SQL: sqlfmt.New()}

	cfg := notebook.Config{LineLength: 120, SQLKeywordCase: notebook.Lowercase, TwoSpaceIndent: false}
	_, err := notebook.Format("# Databricks notebook source\nx=1\n", cfg, formatters)
	require.NoError(t, err)

	assert.Equal(t, notebook.CodeOptions{LineLength: 120, TwoSpaceIndent: false}, received)
}
