package validation

import (
	"context"

	"github.com/cmdbhub/cmdb-analyzer/pkg/models"
)

// Rule is one pluggable consistency check. Evaluate must be a pure function
// of the snapshot: no mutation of snapshot state, no retained references
// across calls, findings emitted in the iteration order of the entities being
// scanned. Rules run in parallel against the same snapshot, so they must not
// communicate with each other.
//
// Rules never fail for data problems — bad data is what the findings report.
type Rule interface {
	// Name identifies the rule in logs and task names.
	Name() string

	// Evaluate scans the snapshot and returns its findings, possibly none.
	Evaluate(ctx context.Context, snap *Snapshot) []*models.ValidationFinding
}

// newFinding builds a classified finding.
func newFinding(code models.FindingCode, severity models.Severity, message string) *models.ValidationFinding {
	f := models.NewFinding()
	f.SetCode(code)
	f.SetSeverity(severity)
	f.SetMessage(message)
	return f
}

// attachCI links a finding to a CI and copies the CI's import provenance
// when available.
func attachCI(f *models.ValidationFinding, ci *models.CI) {
	if ci == nil {
		return
	}
	f.SetCI(ci)
	f.PutContext("ci_id", ci.ID())
	if meta := ci.Meta(); meta != nil {
		f.SetSourceFile(meta.SourceFile)
		f.SetSheetName(meta.SheetName)
		f.SetRowIndex(meta.RowIndexEntity)
	}
}

// attachRelationship links a finding to a relationship and copies the
// relationship's import provenance when available.
func attachRelationship(f *models.ValidationFinding, rel *models.Relationship) {
	if rel == nil {
		return
	}
	f.SetRelation(rel)
	f.PutContext("source_id", rel.SourceID())
	f.PutContext("target_id", rel.TargetID())
	f.PutContext("relationship_type", rel.Type())
	if sheet := rel.SourceSheet(); sheet != "" {
		f.SetSheetName(sheet)
	}
	if meta := rel.Meta(); meta != nil {
		f.SetSourceFile(meta.SourceFile)
		if meta.SheetName != "" {
			f.SetSheetName(meta.SheetName)
		}
		f.SetRowIndex(meta.RowIndexRelation)
	}
}
