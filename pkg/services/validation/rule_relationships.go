package validation

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmdbhub/cmdb-analyzer/pkg/models"
)

// DanglingRelationshipRule reports relationships whose source or target id
// is absent from the CI collection.
type DanglingRelationshipRule struct{}

// NewDanglingRelationshipRule creates the rule.
func NewDanglingRelationshipRule() *DanglingRelationshipRule {
	return &DanglingRelationshipRule{}
}

func (r *DanglingRelationshipRule) Name() string { return "dangling-relationship" }

func (r *DanglingRelationshipRule) Evaluate(ctx context.Context, snap *Snapshot) []*models.ValidationFinding {
	var findings []*models.ValidationFinding
	for _, rel := range snap.Graph.Dangling() {
		var missing []string
		if !snap.Graph.HasNode(rel.SourceID()) {
			missing = append(missing, rel.SourceID())
		}
		if !snap.Graph.HasNode(rel.TargetID()) {
			missing = append(missing, rel.TargetID())
		}
		if len(missing) == 0 {
			continue
		}

		// One finding per relationship, even when both endpoints are missing.
		f := newFinding(models.CodeDanglingRelationship, models.SeverityError,
			fmt.Sprintf("Relationship %q references CI '%s', which does not exist in the dataset", rel, missing[0]))
		attachRelationship(f, rel)
		f.PutContext("missing_ci_id", strings.Join(missing, ","))
		f.SetSuggestion(fmt.Sprintf("Remove or correct the reference to CI '%s'; it does not exist in the dataset.", missing[0]))
		findings = append(findings, f)
	}
	return findings
}

// InvalidRelationshipTypeRule reports relationship types absent from a
// non-empty reference catalog. With no types loaded the rule stays silent.
type InvalidRelationshipTypeRule struct{}

// NewInvalidRelationshipTypeRule creates the rule.
func NewInvalidRelationshipTypeRule() *InvalidRelationshipTypeRule {
	return &InvalidRelationshipTypeRule{}
}

func (r *InvalidRelationshipTypeRule) Name() string { return "invalid-relationship-type" }

func (r *InvalidRelationshipTypeRule) Evaluate(ctx context.Context, snap *Snapshot) []*models.ValidationFinding {
	if !snap.Catalog.HasRelationshipTypes() {
		return nil
	}

	var findings []*models.ValidationFinding
	for _, rel := range snap.Relationships {
		relType := rel.Type()
		if relType == "" {
			// Unset type is partial data, not a catalog mismatch.
			continue
		}
		if snap.Catalog.IsValidRelationshipType(relType) {
			continue
		}

		f := newFinding(models.CodeInvalidRelationshipType, models.SeverityError,
			fmt.Sprintf("Relationship type %q is not an approved relationship type", relType))
		attachRelationship(f, rel)
		f.SetSuggestion("Use one of the approved relationship types from the reference catalog.")
		findings = append(findings, f)
	}
	return findings
}
