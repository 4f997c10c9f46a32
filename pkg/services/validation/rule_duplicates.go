package validation

import (
	"context"
	"fmt"

	"github.com/cmdbhub/cmdb-analyzer/pkg/models"
)

// duplicateKey groups CIs that look like the same real-world item.
type duplicateKey struct {
	class    string
	name     string
	location string
}

// DuplicateCIRule reports distinct CI ids sharing an identical
// (class, name, location) triple. The first CI seen with a given triple is
// the kept one; every further CI in the group yields one finding referencing
// both.
type DuplicateCIRule struct{}

// NewDuplicateCIRule creates the rule.
func NewDuplicateCIRule() *DuplicateCIRule {
	return &DuplicateCIRule{}
}

func (r *DuplicateCIRule) Name() string { return "duplicate-ci" }

func (r *DuplicateCIRule) Evaluate(ctx context.Context, snap *Snapshot) []*models.ValidationFinding {
	kept := make(map[duplicateKey]*models.CI)
	seenIDs := make(map[string]struct{})

	var findings []*models.ValidationFinding
	for _, ci := range snap.CIs {
		// The same id appended twice is one CI, not a duplicate pair.
		if _, seen := seenIDs[ci.ID()]; seen {
			continue
		}
		seenIDs[ci.ID()] = struct{}{}

		if ci.Name() == "" {
			// Nameless rows group together for no meaningful reason.
			continue
		}

		key := duplicateKey{class: ci.Class(), name: ci.Name(), location: ci.Location()}
		first, exists := kept[key]
		if !exists {
			kept[key] = ci
			continue
		}

		f := newFinding(models.CodeDuplicateCI, models.SeverityWarning,
			fmt.Sprintf("CI '%s' duplicates CI '%s' (same class %q, name %q, location %q)",
				ci.ID(), first.ID(), key.class, key.name, key.location))
		attachCI(f, ci)
		f.PutContext("kept_ci_id", first.ID())
		f.PutContext("duplicate_ci_id", ci.ID())
		f.SetSuggestion(fmt.Sprintf("Merge CI '%s' into '%s', or differentiate their class, name, or location.",
			ci.ID(), first.ID()))
		findings = append(findings, f)
	}
	return findings
}
