package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/cmdbhub/cmdb-analyzer/pkg/models"
)

func makeFinding(code models.FindingCode, severity models.Severity, message string) *models.ValidationFinding {
	f := models.NewFinding()
	f.SetCode(code)
	f.SetSeverity(severity)
	f.SetMessage(message)
	return f
}

func TestSummary_GroupsBySeverity(t *testing.T) {
	findings := []*models.ValidationFinding{
		makeFinding(models.CodeOrphanCI, models.SeverityWarning, "lonely CI"),
		makeFinding(models.CodeDanglingRelationship, models.SeverityError, "broken reference"),
		makeFinding(models.CodeMissingServiceOffering, models.SeverityInfo, "no offering"),
	}

	out := Summary(findings)

	if !strings.Contains(out, "3 findings (1 errors, 1 warnings, 1 info)") {
		t.Errorf("header wrong:\n%s", out)
	}

	errIdx := strings.Index(out, "ERROR:")
	warnIdx := strings.Index(out, "WARNING:")
	infoIdx := strings.Index(out, "INFO:")
	if errIdx < 0 || warnIdx < 0 || infoIdx < 0 {
		t.Fatalf("missing severity sections:\n%s", out)
	}
	if !(errIdx < warnIdx && warnIdx < infoIdx) {
		t.Errorf("sections out of order:\n%s", out)
	}
	if !strings.Contains(out, "[DANGLING_RELATIONSHIP] broken reference") {
		t.Errorf("line format wrong:\n%s", out)
	}
}

func TestSummary_SingularNoun(t *testing.T) {
	out := Summary([]*models.ValidationFinding{
		makeFinding(models.CodeOrphanCI, models.SeverityWarning, "lonely CI"),
	})
	if !strings.Contains(out, "1 finding (") {
		t.Errorf("one finding should not be pluralized:\n%s", out)
	}
}

func TestSummary_EmptySectionsOmitted(t *testing.T) {
	out := Summary([]*models.ValidationFinding{
		makeFinding(models.CodeOrphanCI, models.SeverityWarning, "lonely CI"),
	})
	if strings.Contains(out, "ERROR:") || strings.Contains(out, "INFO:") {
		t.Errorf("empty sections must not render:\n%s", out)
	}
}

func TestSummary_ProvenanceAndSuggestion(t *testing.T) {
	f := makeFinding(models.CodeInvalidClass, models.SeverityError, "bad class")
	f.SetSheetName("Servers")
	f.SetRowIndex(7)
	f.SetSuggestion("Use an approved class.")

	out := Summary([]*models.ValidationFinding{f})
	if !strings.Contains(out, `(sheet "Servers", row 7)`) {
		t.Errorf("provenance missing:\n%s", out)
	}
	if !strings.Contains(out, "-> Use an approved class.") {
		t.Errorf("suggestion missing:\n%s", out)
	}
}

func TestWriteJSON(t *testing.T) {
	f := makeFinding(models.CodeDuplicateCI, models.SeverityWarning, "double vision")
	f.PutContext("kept_ci_id", "CI-1")

	var buf bytes.Buffer
	if err := WriteJSON(&buf, []*models.ValidationFinding{f}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var views []models.FindingView
	if err := json.Unmarshal(buf.Bytes(), &views); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(views))
	}
	if views[0].Code != models.CodeDuplicateCI || views[0].Message != "double vision" {
		t.Errorf("unexpected view: %+v", views[0])
	}
	if views[0].Context["kept_ci_id"] != "CI-1" {
		t.Errorf("context lost: %+v", views[0].Context)
	}
}

func TestWriteJSON_EmptyListIsAnArray(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("expected an empty array, got %q", got)
	}
}

func TestErrorCount(t *testing.T) {
	findings := []*models.ValidationFinding{
		makeFinding(models.CodeDanglingRelationship, models.SeverityError, "a"),
		makeFinding(models.CodeOrphanCI, models.SeverityWarning, "b"),
		makeFinding(models.CodeCircularDependency, models.SeverityError, "c"),
	}
	if got := ErrorCount(findings); got != 2 {
		t.Errorf("expected 2 errors, got %d", got)
	}
	if got := ErrorCount(nil); got != 0 {
		t.Errorf("expected 0 errors for no findings, got %d", got)
	}
}
