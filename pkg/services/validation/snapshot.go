package validation

import (
	"github.com/cmdbhub/cmdb-analyzer/pkg/models"
)

// Snapshot is the frozen input of one validation pass: stable copies of the
// dataset collections, the reference catalog, and the graph derived from
// them. It is private to the pass that built it; rules treat it as
// read-only and may evaluate against it in parallel.
type Snapshot struct {
	CIs              []*models.CI
	Relationships    []*models.Relationship
	BusinessServices []*models.BusinessService
	ServiceOfferings []*models.ServiceOffering
	Projects         []*models.Project
	Catalog          *models.ReferenceCatalog
	Graph            *Graph

	ciByID map[string]*models.CI
}

// NewSnapshot captures the dataset and catalog into an immutable view.
// Appends to the dataset after this point are invisible to the pass.
func NewSnapshot(dataset *models.CMDBDataset, catalog *models.ReferenceCatalog) *Snapshot {
	snap := &Snapshot{
		CIs:              dataset.CIs(),
		Relationships:    dataset.Relationships(),
		BusinessServices: dataset.BusinessServices(),
		ServiceOfferings: dataset.ServiceOfferings(),
		Projects:         dataset.Projects(),
		Catalog:          catalog,
	}

	snap.ciByID = make(map[string]*models.CI, len(snap.CIs))
	for _, ci := range snap.CIs {
		if _, exists := snap.ciByID[ci.ID()]; !exists {
			snap.ciByID[ci.ID()] = ci
		}
	}

	snap.Graph = NewGraph(snap.CIs, snap.Relationships)
	return snap
}

// CIByID resolves a CI by identity within this snapshot. When the same id
// was added more than once, the first occurrence is authoritative.
func (s *Snapshot) CIByID(id string) (*models.CI, bool) {
	ci, ok := s.ciByID[id]
	return ci, ok
}
