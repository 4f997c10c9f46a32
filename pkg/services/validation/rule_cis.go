package validation

import (
	"context"
	"fmt"

	"github.com/cmdbhub/cmdb-analyzer/pkg/models"
)

// OrphanCIRule reports CIs with no relationships at all and no reference
// from any service offering or business-service dependency.
type OrphanCIRule struct{}

// NewOrphanCIRule creates the rule.
func NewOrphanCIRule() *OrphanCIRule {
	return &OrphanCIRule{}
}

func (r *OrphanCIRule) Name() string { return "orphan-ci" }

func (r *OrphanCIRule) Evaluate(ctx context.Context, snap *Snapshot) []*models.ValidationFinding {
	// A relationship counts even when its other endpoint is missing from the
	// dataset; the dangling rule reports that half of the problem.
	mentioned := make(map[string]struct{})
	for _, rel := range snap.Relationships {
		mentioned[rel.SourceID()] = struct{}{}
		mentioned[rel.TargetID()] = struct{}{}
	}
	for _, offering := range snap.ServiceOfferings {
		if id := offering.CIID(); id != "" {
			mentioned[id] = struct{}{}
		}
	}
	for _, svc := range snap.BusinessServices {
		for _, id := range svc.DependsOn() {
			mentioned[id] = struct{}{}
		}
	}

	var findings []*models.ValidationFinding
	for _, ci := range snap.CIs {
		if _, ok := mentioned[ci.ID()]; ok {
			continue
		}

		f := newFinding(models.CodeOrphanCI, models.SeverityWarning,
			fmt.Sprintf("CI '%s' has no relationships and is not referenced by any service", ci.ID()))
		attachCI(f, ci)
		f.SetSuggestion(fmt.Sprintf("Link CI '%s' to a related CI or service, or remove it if it is obsolete.", ci.ID()))
		findings = append(findings, f)
	}
	return findings
}

// MissingParentRule reports CIs of classes that are expected to hang off a
// parent (e.g. applications on servers) but have no incoming relationship of
// a structural type.
type MissingParentRule struct {
	requiredClasses map[string]struct{}
	structuralTypes map[string]struct{}
}

// NewMissingParentRule creates the rule. requiredClasses lists the CI classes
// expected to have a parent; structuralTypes lists the relationship types
// that count as parent links. An empty structuralTypes means every
// relationship type counts.
func NewMissingParentRule(requiredClasses, structuralTypes []string) *MissingParentRule {
	return &MissingParentRule{
		requiredClasses: toSet(requiredClasses),
		structuralTypes: toSet(structuralTypes),
	}
}

func (r *MissingParentRule) Name() string { return "missing-parent" }

func (r *MissingParentRule) Evaluate(ctx context.Context, snap *Snapshot) []*models.ValidationFinding {
	if len(r.requiredClasses) == 0 {
		return nil
	}

	var findings []*models.ValidationFinding
	for _, ci := range snap.CIs {
		if _, required := r.requiredClasses[ci.Class()]; !required {
			continue
		}
		if r.hasStructuralParent(snap, ci.ID()) {
			continue
		}

		f := newFinding(models.CodeMissingParent, models.SeverityWarning,
			fmt.Sprintf("CI '%s' (class %q) has no incoming structural relationship", ci.ID(), ci.Class()))
		attachCI(f, ci)
		f.SetSuggestion(fmt.Sprintf("Add a structural relationship (e.g. 'Contains') pointing at CI '%s'.", ci.ID()))
		findings = append(findings, f)
	}
	return findings
}

func (r *MissingParentRule) hasStructuralParent(snap *Snapshot, ciID string) bool {
	for _, rel := range snap.Graph.In(ciID) {
		if len(r.structuralTypes) == 0 {
			return true
		}
		if _, ok := r.structuralTypes[rel.Type()]; ok {
			return true
		}
	}
	return false
}

// InvalidClassRule reports CI classes absent from a non-empty reference
// catalog. With no classes loaded the rule stays silent.
type InvalidClassRule struct{}

// NewInvalidClassRule creates the rule.
func NewInvalidClassRule() *InvalidClassRule {
	return &InvalidClassRule{}
}

func (r *InvalidClassRule) Name() string { return "invalid-class" }

func (r *InvalidClassRule) Evaluate(ctx context.Context, snap *Snapshot) []*models.ValidationFinding {
	if !snap.Catalog.HasClasses() {
		return nil
	}

	var findings []*models.ValidationFinding
	for _, ci := range snap.CIs {
		class := ci.Class()
		if class == "" {
			// Unset class is partial data, not a catalog mismatch.
			continue
		}
		if snap.Catalog.IsValidClass(class) {
			continue
		}

		f := newFinding(models.CodeInvalidClass, models.SeverityError,
			fmt.Sprintf("CI '%s' has class %q, which is not an approved CI class", ci.ID(), class))
		attachCI(f, ci)
		f.PutContext("class", class)
		f.SetSuggestion("Use one of the approved CI classes from the reference catalog.")
		findings = append(findings, f)
	}
	return findings
}

// LocationInvalidRule reports CI locations absent from a non-empty reference
// catalog. With no locations loaded the rule stays silent.
type LocationInvalidRule struct{}

// NewLocationInvalidRule creates the rule.
func NewLocationInvalidRule() *LocationInvalidRule {
	return &LocationInvalidRule{}
}

func (r *LocationInvalidRule) Name() string { return "location-invalid" }

func (r *LocationInvalidRule) Evaluate(ctx context.Context, snap *Snapshot) []*models.ValidationFinding {
	if !snap.Catalog.HasLocations() {
		return nil
	}

	var findings []*models.ValidationFinding
	for _, ci := range snap.CIs {
		location := ci.Location()
		if location == "" {
			continue
		}
		if snap.Catalog.IsValidLocation(location) {
			continue
		}

		f := newFinding(models.CodeLocationInvalid, models.SeverityWarning,
			fmt.Sprintf("CI '%s' has location %q, which is not an approved location", ci.ID(), location))
		attachCI(f, ci)
		f.PutContext("location", location)
		f.SetSuggestion("Use one of the approved locations from the reference catalog.")
		findings = append(findings, f)
	}
	return findings
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}
