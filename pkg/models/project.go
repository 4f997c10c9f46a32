package models

import (
	"fmt"
	"sync"
)

// Project is a logical grouping of CIs, such as a customer project, factory,
// or site. Member CIs are held as identity references in insertion order;
// the order matters for display only, never for validation.
type Project struct {
	name string

	mu       sync.RWMutex
	code     string
	location string
	ciIDs    []string
}

// NewProject creates a project grouping. The name is its identity.
func NewProject(name string) *Project {
	return &Project{name: name}
}

// Name returns the project name (identity).
func (p *Project) Name() string {
	return p.name
}

func (p *Project) Code() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.code
}

func (p *Project) SetCode(code string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.code = code
}

func (p *Project) Location() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.location
}

func (p *Project) SetLocation(location string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.location = location
}

// CIIDs returns a snapshot of member CI ids in insertion order.
func (p *Project) CIIDs() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]string, len(p.ciIDs))
	copy(out, p.ciIDs)
	return out
}

// AddCI appends a member CI id. Empty ids are ignored.
func (p *Project) AddCI(ciID string) {
	if ciID == "" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ciIDs = append(p.ciIDs, ciID)
}

func (p *Project) String() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return fmt.Sprintf("Project{name=%q, code=%q, location=%q, cis=%d}",
		p.name, p.code, p.location, len(p.ciIDs))
}
