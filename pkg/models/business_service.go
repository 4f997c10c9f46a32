package models

import (
	"fmt"
	"sync"
)

// BusinessService is a business-facing service that groups one or more
// service offerings and names the CIs it depends on. Offerings and
// dependencies are identity references resolved through the dataset.
type BusinessService struct {
	id string

	mu          sync.RWMutex
	name        string
	description string
	owner       string
	offeringIDs []string
	dependsOn   []string
}

// NewBusinessService creates a business service with a stable id.
func NewBusinessService(id, name string) *BusinessService {
	return &BusinessService{id: id, name: name}
}

// ID returns the stable identifier of this service.
func (b *BusinessService) ID() string {
	return b.id
}

func (b *BusinessService) Name() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.name
}

func (b *BusinessService) SetName(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.name = name
}

func (b *BusinessService) Description() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.description
}

func (b *BusinessService) SetDescription(description string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.description = description
}

func (b *BusinessService) Owner() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.owner
}

func (b *BusinessService) SetOwner(owner string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.owner = owner
}

// OfferingIDs returns a snapshot of the service offering ids grouped under
// this service.
func (b *BusinessService) OfferingIDs() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, len(b.offeringIDs))
	copy(out, b.offeringIDs)
	return out
}

// AddOffering links a service offering by id. Empty ids are ignored.
func (b *BusinessService) AddOffering(offeringID string) {
	if offeringID == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.offeringIDs = append(b.offeringIDs, offeringID)
}

// DependsOn returns a snapshot of the ids of CIs this service depends on.
func (b *BusinessService) DependsOn() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, len(b.dependsOn))
	copy(out, b.dependsOn)
	return out
}

// AddDependency records a supporting CI by id. Empty ids are ignored.
func (b *BusinessService) AddDependency(ciID string) {
	if ciID == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dependsOn = append(b.dependsOn, ciID)
}

func (b *BusinessService) String() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return fmt.Sprintf("BusinessService{id=%q, name=%q, offerings=%d, dependsOn=%d}",
		b.id, b.name, len(b.offeringIDs), len(b.dependsOn))
}
