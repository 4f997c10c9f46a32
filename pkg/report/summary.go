// Package report renders validation findings for the console and exports
// them as JSON. Heavier export formats (HTML, PDF, CSV) live outside this
// tool.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jinzhu/inflection"

	"github.com/cmdbhub/cmdb-analyzer/pkg/models"
)

// severityOrder fixes the rendering order of severity sections.
var severityOrder = []models.Severity{
	models.SeverityError,
	models.SeverityWarning,
	models.SeverityInfo,
}

// Summary renders a human-readable report of the findings, grouped by
// severity, each line carrying code, message, and provenance when known.
func Summary(findings []*models.ValidationFinding) string {
	var b strings.Builder

	counts := make(map[models.Severity]int, len(severityOrder))
	for _, f := range findings {
		counts[f.Severity()]++
	}

	noun := "finding"
	if len(findings) != 1 {
		noun = inflection.Plural(noun)
	}
	fmt.Fprintf(&b, "Validation result: %d %s (%d errors, %d warnings, %d info)\n",
		len(findings), noun,
		counts[models.SeverityError], counts[models.SeverityWarning], counts[models.SeverityInfo])

	for _, severity := range severityOrder {
		if counts[severity] == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s:\n", severity)
		for _, f := range findings {
			if f.Severity() != severity {
				continue
			}
			b.WriteString(formatLine(f))
		}
	}
	return b.String()
}

// formatLine renders one finding as an indented report line.
func formatLine(f *models.ValidationFinding) string {
	view := f.View()

	var b strings.Builder
	fmt.Fprintf(&b, "  [%s] %s", view.Code, view.Message)
	if view.SheetName != "" {
		fmt.Fprintf(&b, " (sheet %q", view.SheetName)
		if view.RowIndex >= 0 {
			fmt.Fprintf(&b, ", row %d", view.RowIndex)
		}
		b.WriteString(")")
	}
	b.WriteString("\n")
	if view.Suggestion != "" {
		fmt.Fprintf(&b, "      -> %s\n", view.Suggestion)
	}
	return b.String()
}

// WriteJSON writes the full finding list as an indented JSON array.
func WriteJSON(w io.Writer, findings []*models.ValidationFinding) error {
	views := make([]models.FindingView, 0, len(findings))
	for _, f := range findings {
		views = append(views, f.View())
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(views); err != nil {
		return fmt.Errorf("failed to encode findings: %w", err)
	}
	return nil
}

// ErrorCount returns how many findings carry ERROR severity. The CLI uses it
// for its exit code.
func ErrorCount(findings []*models.ValidationFinding) int {
	n := 0
	for _, f := range findings {
		if f.Severity() == models.SeverityError {
			n++
		}
	}
	return n
}
