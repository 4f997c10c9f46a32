package logging

import (
	"strings"
	"unicode/utf8"
)

const (
	// MaxCellLogLength is the maximum length of a spreadsheet cell value to log.
	MaxCellLogLength = 100
	// Ellipsis is appended to truncated values.
	Ellipsis = "..."
)

// SanitizeCell prepares a raw spreadsheet cell value for logging: newlines
// and tabs are collapsed to single spaces and overlong values are truncated.
// CMDB exports routinely contain free-text description cells spanning
// multiple lines; logging them verbatim breaks line-oriented log processing.
func SanitizeCell(value string) string {
	if value == "" {
		return ""
	}

	cleaned := strings.Join(strings.Fields(value), " ")
	if utf8.RuneCountInString(cleaned) <= MaxCellLogLength {
		return cleaned
	}

	runes := []rune(cleaned)
	return string(runes[:MaxCellLogLength]) + Ellipsis
}
