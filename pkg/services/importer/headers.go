// Package importer populates a CMDB dataset and reference catalog from
// external files: XLSX workbooks for entities and relationships, YAML for
// reference data.
package importer

import (
	"regexp"
	"strings"
)

// headerRule maps a raw-header pattern to its canonical key. Rule order
// matters: the first match wins, so more specific patterns come first.
type headerRule struct {
	pattern   *regexp.Regexp
	canonical string
}

var headerRules = []headerRule{
	{regexp.MustCompile(`(?i).*parent.?ci.*`), "parent_ci"},
	{regexp.MustCompile(`(?i).*ci.?name.*`), "name"},
	{regexp.MustCompile(`(?i).*class.*`), "class"},
	{regexp.MustCompile(`(?i).*relationship.*`), "relationship"},
	{regexp.MustCompile(`(?i).*desc.*`), "description"},
	{regexp.MustCompile(`(?i).*project.*`), "project"},
	{regexp.MustCompile(`(?i).*location.*`), "location"},
	{regexp.MustCompile(`(?i).*environment.*`), "environment"},
	{regexp.MustCompile(`(?i).*service.?offering.*`), "service_offering"},
	{regexp.MustCompile(`(?i).*business.?service.*`), "business_service"},
}

var nonAlnumPattern = regexp.MustCompile(`[^a-z0-9_]+`)

// NormalizeHeaders maps raw spreadsheet column headers to canonical keys
// ("Parent CI Name" -> "parent_ci", "CI Name" -> "name", ...). Matching is
// case-insensitive and whitespace-tolerant. Headers no rule matches fall
// back to a lowercased, alphanumeric-sanitized form, so every column gets a
// usable attribute key.
func NormalizeHeaders(rawHeaders []string) map[string]string {
	normalized := make(map[string]string, len(rawHeaders))
	for _, header := range rawHeaders {
		normalized[header] = NormalizeHeader(header)
	}
	return normalized
}

// NormalizeHeader maps one raw column header to its canonical key.
func NormalizeHeader(header string) string {
	cleaned := strings.ToLower(strings.TrimSpace(header))
	cleaned = strings.Join(strings.Fields(cleaned), "_")

	for _, rule := range headerRules {
		if rule.pattern.MatchString(cleaned) {
			return rule.canonical
		}
	}
	return nonAlnumPattern.ReplaceAllString(cleaned, "_")
}
