package validation

import (
	"context"
	"fmt"

	"github.com/cmdbhub/cmdb-analyzer/pkg/models"
)

// MissingServiceOfferingRule reports business services with no service
// offering at all. A service counts as covered when it lists offering ids
// itself or when an offering back-references it — imports fill in either
// side depending on which sheet arrived first.
type MissingServiceOfferingRule struct{}

// NewMissingServiceOfferingRule creates the rule.
func NewMissingServiceOfferingRule() *MissingServiceOfferingRule {
	return &MissingServiceOfferingRule{}
}

func (r *MissingServiceOfferingRule) Name() string { return "missing-service-offering" }

func (r *MissingServiceOfferingRule) Evaluate(ctx context.Context, snap *Snapshot) []*models.ValidationFinding {
	backRefs := make(map[string]struct{})
	for _, offering := range snap.ServiceOfferings {
		if id := offering.BusinessServiceID(); id != "" {
			backRefs[id] = struct{}{}
		}
	}

	var findings []*models.ValidationFinding
	for _, svc := range snap.BusinessServices {
		if len(svc.OfferingIDs()) > 0 {
			continue
		}
		if _, referenced := backRefs[svc.ID()]; referenced {
			continue
		}

		f := newFinding(models.CodeMissingServiceOffering, models.SeverityInfo,
			fmt.Sprintf("Business service '%s' (%s) has no service offerings", svc.ID(), svc.Name()))
		f.PutContext("business_service_id", svc.ID())
		f.SetSuggestion(fmt.Sprintf("Define at least one service offering for business service '%s'.", svc.ID()))
		findings = append(findings, f)
	}
	return findings
}
