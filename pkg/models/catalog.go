package models

import (
	"fmt"
	"strings"
	"sync"
)

// ReferenceCatalog holds the externally-approved values CMDB validators check
// against: valid CI classes, relationship types, locations, and environments.
// The four dimensions are independent; an empty dimension means "nothing is
// known", not "everything is invalid", and rules must skip it entirely.
//
// Membership tests are case-sensitive exact match. Mutators silently ignore
// blank input. Safe for concurrent use from importer and validator goroutines.
type ReferenceCatalog struct {
	mu                sync.RWMutex
	classes           map[string]struct{}
	relationshipTypes map[string]struct{}
	locations         map[string]struct{}
	environments      map[string]struct{}
}

// NewReferenceCatalog creates an empty catalog.
func NewReferenceCatalog() *ReferenceCatalog {
	return &ReferenceCatalog{
		classes:           make(map[string]struct{}),
		relationshipTypes: make(map[string]struct{}),
		locations:         make(map[string]struct{}),
		environments:      make(map[string]struct{}),
	}
}

// AddValidClass records a valid CI class name.
func (rc *ReferenceCatalog) AddValidClass(class string) {
	if strings.TrimSpace(class) == "" {
		return
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.classes[class] = struct{}{}
}

// AddValidRelationshipType records a valid relationship type.
func (rc *ReferenceCatalog) AddValidRelationshipType(relType string) {
	if strings.TrimSpace(relType) == "" {
		return
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.relationshipTypes[relType] = struct{}{}
}

// AddValidLocation records a valid location.
func (rc *ReferenceCatalog) AddValidLocation(location string) {
	if strings.TrimSpace(location) == "" {
		return
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.locations[location] = struct{}{}
}

// AddValidEnvironment records a valid environment (e.g. Prod, Test, Dev).
func (rc *ReferenceCatalog) AddValidEnvironment(env string) {
	if strings.TrimSpace(env) == "" {
		return
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.environments[env] = struct{}{}
}

// IsValidClass reports whether the class is in the catalog.
func (rc *ReferenceCatalog) IsValidClass(class string) bool {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	_, ok := rc.classes[class]
	return ok
}

// IsValidRelationshipType reports whether the type is in the catalog.
func (rc *ReferenceCatalog) IsValidRelationshipType(relType string) bool {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	_, ok := rc.relationshipTypes[relType]
	return ok
}

// IsValidLocation reports whether the location is in the catalog.
func (rc *ReferenceCatalog) IsValidLocation(location string) bool {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	_, ok := rc.locations[location]
	return ok
}

// IsValidEnvironment reports whether the environment is in the catalog.
func (rc *ReferenceCatalog) IsValidEnvironment(env string) bool {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	_, ok := rc.environments[env]
	return ok
}

// HasClasses reports whether any class has been loaded. Rules consult this
// before flagging mismatches so that an unloaded dimension never produces
// false positives.
func (rc *ReferenceCatalog) HasClasses() bool {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return len(rc.classes) > 0
}

// HasRelationshipTypes reports whether any relationship type has been loaded.
func (rc *ReferenceCatalog) HasRelationshipTypes() bool {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return len(rc.relationshipTypes) > 0
}

// HasLocations reports whether any location has been loaded.
func (rc *ReferenceCatalog) HasLocations() bool {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return len(rc.locations) > 0
}

// HasEnvironments reports whether any environment has been loaded.
func (rc *ReferenceCatalog) HasEnvironments() bool {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return len(rc.environments) > 0
}

// ClearAll removes every reference value from all four dimensions.
func (rc *ReferenceCatalog) ClearAll() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.classes = make(map[string]struct{})
	rc.relationshipTypes = make(map[string]struct{})
	rc.locations = make(map[string]struct{})
	rc.environments = make(map[string]struct{})
}

func (rc *ReferenceCatalog) String() string {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return fmt.Sprintf("ReferenceCatalog{classes=%d, relTypes=%d, locations=%d, environments=%d}",
		len(rc.classes), len(rc.relationshipTypes), len(rc.locations), len(rc.environments))
}
