package models

import (
	"fmt"
	"sync"
)

// CMDBDataset is the in-memory aggregate of everything an import produced:
// configuration items, relationships, business services, service offerings,
// projects, and the validation findings later raised against them.
//
// Multiple importer goroutines (typically one per sheet) append concurrently;
// the validation engine reads concurrently and only ever appends findings.
// A single RWMutex guards all collections, which gives the required
// happens-before guarantee: any append completed before a read starts is
// visible to that read. Accessors return defensive copies so snapshots stay
// stable against further appends.
//
// Cross-entity links are identity references resolved through CIByID rather
// than live pointers, so a relationship may name a CI that was never added —
// detecting that is the rule engine's job, not a dataset precondition.
type CMDBDataset struct {
	mu               sync.RWMutex
	cis              []*CI
	ciByID           map[string]*CI
	relationships    []*Relationship
	businessServices []*BusinessService
	serviceOfferings []*ServiceOffering
	projects         []*Project
	findings         []*ValidationFinding
}

// NewCMDBDataset creates an empty dataset.
func NewCMDBDataset() *CMDBDataset {
	return &CMDBDataset{
		ciByID: make(map[string]*CI),
	}
}

// AddCI appends a configuration item. Nil is ignored. If a CI with the same
// id was already added, the first one stays authoritative for lookups; the
// duplicate is still appended so duplicate-detection rules can see it.
func (d *CMDBDataset) AddCI(ci *CI) {
	if ci == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cis = append(d.cis, ci)
	if _, exists := d.ciByID[ci.ID()]; !exists {
		d.ciByID[ci.ID()] = ci
	}
}

// AddRelationship appends a relationship. Nil is ignored.
func (d *CMDBDataset) AddRelationship(rel *Relationship) {
	if rel == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.relationships = append(d.relationships, rel)
}

// AddBusinessService appends a business service. Nil is ignored.
func (d *CMDBDataset) AddBusinessService(svc *BusinessService) {
	if svc == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.businessServices = append(d.businessServices, svc)
}

// AddServiceOffering appends a service offering. Nil is ignored.
func (d *CMDBDataset) AddServiceOffering(offering *ServiceOffering) {
	if offering == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.serviceOfferings = append(d.serviceOfferings, offering)
}

// AddProject appends a project grouping. Nil is ignored.
func (d *CMDBDataset) AddProject(project *Project) {
	if project == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.projects = append(d.projects, project)
}

// AddFinding appends a validation finding. Nil is ignored.
func (d *CMDBDataset) AddFinding(finding *ValidationFinding) {
	if finding == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.findings = append(d.findings, finding)
}

// CIs returns a snapshot of all configuration items in insertion order.
func (d *CMDBDataset) CIs() []*CI {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]*CI, len(d.cis))
	copy(out, d.cis)
	return out
}

// CIByID resolves a CI by identity. Returns nil, false when absent.
func (d *CMDBDataset) CIByID(id string) (*CI, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ci, ok := d.ciByID[id]
	return ci, ok
}

// Relationships returns a snapshot of all relationships in insertion order.
func (d *CMDBDataset) Relationships() []*Relationship {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]*Relationship, len(d.relationships))
	copy(out, d.relationships)
	return out
}

// BusinessServices returns a snapshot of all business services.
func (d *CMDBDataset) BusinessServices() []*BusinessService {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]*BusinessService, len(d.businessServices))
	copy(out, d.businessServices)
	return out
}

// ServiceOfferings returns a snapshot of all service offerings.
func (d *CMDBDataset) ServiceOfferings() []*ServiceOffering {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]*ServiceOffering, len(d.serviceOfferings))
	copy(out, d.serviceOfferings)
	return out
}

// Projects returns a snapshot of all projects.
func (d *CMDBDataset) Projects() []*Project {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]*Project, len(d.projects))
	copy(out, d.projects)
	return out
}

// Findings returns a snapshot of all validation findings.
func (d *CMDBDataset) Findings() []*ValidationFinding {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]*ValidationFinding, len(d.findings))
	copy(out, d.findings)
	return out
}

// ClearAll atomically empties every collection. A concurrent reader sees
// either the full dataset or the empty one, never a partial clear.
func (d *CMDBDataset) ClearAll() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cis = nil
	d.ciByID = make(map[string]*CI)
	d.relationships = nil
	d.businessServices = nil
	d.serviceOfferings = nil
	d.projects = nil
	d.findings = nil
}

func (d *CMDBDataset) String() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return fmt.Sprintf("CMDBDataset{CIs=%d, Rels=%d, Services=%d, Offerings=%d, Projects=%d, Findings=%d}",
		len(d.cis), len(d.relationships), len(d.businessServices),
		len(d.serviceOfferings), len(d.projects), len(d.findings))
}
