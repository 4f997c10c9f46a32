package models

import (
	"fmt"
	"sync"
)

// RelationshipKey is the identity triple of a relationship. Two relationships
// with the same source, target, and type are the same relationship; parallel
// edges of different types between the same pair are allowed.
type RelationshipKey struct {
	SourceID string
	TargetID string
	Type     string
}

// Relationship is a directed, typed edge between two CIs.
//
// Endpoints are CI identities, not object pointers; they are resolved through
// the dataset's lookup when needed. A relationship may reference an id that
// never shows up in the CI collection — that is exactly the dangling case the
// validation engine reports.
type Relationship struct {
	sourceID string
	targetID string
	relType  string

	mu          sync.RWMutex
	sourceSheet string
	meta        *ImportMetadata
}

// NewRelationship creates a directed relationship from sourceID to targetID.
func NewRelationship(sourceID, targetID, relType string) *Relationship {
	return &Relationship{
		sourceID: sourceID,
		targetID: targetID,
		relType:  relType,
	}
}

// SourceID returns the id of the CI initiating the relationship.
func (r *Relationship) SourceID() string {
	return r.sourceID
}

// TargetID returns the id of the CI being referenced.
func (r *Relationship) TargetID() string {
	return r.targetID
}

// Type returns the relationship type (e.g. "Depends on", "Runs on").
func (r *Relationship) Type() string {
	return r.relType
}

// Key returns the identity triple for equality and de-duplication.
func (r *Relationship) Key() RelationshipKey {
	return RelationshipKey{SourceID: r.sourceID, TargetID: r.targetID, Type: r.relType}
}

// SourceSheet returns the worksheet this relationship was parsed from,
// or "" if not recorded.
func (r *Relationship) SourceSheet() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sourceSheet
}

func (r *Relationship) SetSourceSheet(sheet string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sourceSheet = sheet
}

// Meta returns the import provenance for this relationship, or nil.
func (r *Relationship) Meta() *ImportMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.meta
}

func (r *Relationship) SetMeta(meta *ImportMetadata) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.meta = meta
}

// Equal reports whether two relationships carry the same identity triple.
func (r *Relationship) Equal(other *Relationship) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.Key() == other.Key()
}

func (r *Relationship) String() string {
	return fmt.Sprintf("%s -%s-> %s", r.sourceID, r.relType, r.targetID)
}
