package models

import (
	"fmt"
	"sync"
)

// ServiceOffering is a concrete offering delivered under a business service,
// optionally backed by the CI that implements it. The back-reference to the
// owning business service and the link to the implementing CI are both
// identity references; either may be unset while sheets are still loading.
type ServiceOffering struct {
	id string

	mu                sync.RWMutex
	name              string
	description       string
	sla               string
	status            string
	businessServiceID string
	ciID              string
}

// NewServiceOffering creates a service offering with a stable id.
func NewServiceOffering(id, name string) *ServiceOffering {
	return &ServiceOffering{id: id, name: name}
}

// ID returns the stable identifier of this offering.
func (s *ServiceOffering) ID() string {
	return s.id
}

func (s *ServiceOffering) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *ServiceOffering) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *ServiceOffering) Description() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.description
}

func (s *ServiceOffering) SetDescription(description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.description = description
}

func (s *ServiceOffering) SLA() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sla
}

func (s *ServiceOffering) SetSLA(sla string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sla = sla
}

func (s *ServiceOffering) Status() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *ServiceOffering) SetStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// BusinessServiceID returns the id of the owning business service, or "".
func (s *ServiceOffering) BusinessServiceID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.businessServiceID
}

func (s *ServiceOffering) SetBusinessServiceID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.businessServiceID = id
}

// CIID returns the id of the CI implementing this offering, or "".
func (s *ServiceOffering) CIID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ciID
}

func (s *ServiceOffering) SetCIID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ciID = id
}

func (s *ServiceOffering) String() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fmt.Sprintf("ServiceOffering{id=%q, name=%q, status=%q}", s.id, s.name, s.status)
}
