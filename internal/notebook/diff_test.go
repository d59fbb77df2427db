package notebook_test

import (
	"strings"
	"testing"

	"github.com/julien-sobczak/nbfmt/internal/notebook"
	"github.com/stretchr/testify/assert"
)

func TestUnifiedDiffIdentical(t *testing.T) {
	content := "# Databricks notebook source\nx = 1\n"
	assert.Empty(t, notebook.UnifiedDiff(content, content, "a", "b"))
}

func TestUnifiedDiff(t *testing.T) {
	before := "# Databricks notebook source\nx=1\ny = 2\n"
	after := "# Databricks notebook source\nx = 1\ny = 2\n"

	diff := notebook.UnifiedDiff(before, after, "test.py (before)", "test.py (after)")

	lines := strings.Split(diff, "\n")
	assert.Equal(t, "--- test.py (before)", lines[0])
	assert.Equal(t, "+++ test.py (after)", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "@@"))
	assert.Contains(t, diff, "-x=1")
	assert.Contains(t, diff, "+x = 1")
	assert.Contains(t, diff, " y = 2")
}
