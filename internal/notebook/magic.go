package notebook

import (
	"strings"
)

// Markers of the Databricks notebook source format.
const (
	// Header identifies a file as a Databricks notebook. It must appear on
	// the first non-blank line.
	Header = "# Databricks notebook source"

	// CommandDelimiter separates two cells.
	CommandDelimiter = "# COMMAND ----------"

	// MagicPrefix tags a line as belonging to a non-Python cell.
	MagicPrefix = "# MAGIC"

	// SQLToken is the sub-type token of SQL cells.
	SQLToken = "%sql"

	// TitlePrefix introduces a cell title. The line is preserved verbatim.
	TitlePrefix = "# DBTITLE 1,"

	// NoFormatDirective disables SQL reformatting for a single cell.
	NoFormatDirective = "-- nofmt"
)

// IsMagic reports whether a line is tagged with the magic prefix,
// ignoring leading whitespace.
func IsMagic(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), MagicPrefix)
}

// StripMagic removes the magic prefix and exactly one following space from a
// line. Lines without the prefix are returned unchanged.
func StripMagic(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, MagicPrefix) {
		return line
	}
	payload := strings.TrimPrefix(trimmed, MagicPrefix)
	// A single space separates the prefix from the payload. Remove only one
	// so that payload indentation survives the round-trip.
	if strings.HasPrefix(payload, " ") {
		payload = payload[1:]
	}
	return payload
}

// WrapMagic tags a payload with the magic prefix and exactly one separating
// space. An empty payload still gets the trailing space: Databricks always
// renders blank magic lines as "# MAGIC ", and emitting anything else causes
// perpetual spurious diffs.
func WrapMagic(payload string) string {
	return MagicPrefix + " " + payload
}
