// Package models contains domain types for cmdb-analyzer.
package models

import (
	"fmt"
	"sync"
)

// CI represents a single Configuration Item (server, application, PLC, ...)
// sourced from a CMDB export.
//
// The identifier is fixed at construction and is the only field that
// participates in equality. Every other field may be filled in later as more
// sheets are processed; a single coarse mutex guards the whole field group so
// related fields update atomically. Last write wins under concurrent update.
type CI struct {
	id string

	mu          sync.RWMutex
	class       string
	name        string
	description string
	location    string
	project     string
	environment string
	attributes  map[string]string
	meta        *ImportMetadata
}

// NewCI creates a CI with its stable identity and initial classification.
func NewCI(id, class, name string) *CI {
	return &CI{
		id:         id,
		class:      class,
		name:       name,
		attributes: make(map[string]string),
	}
}

// ID returns the stable identifier of this CI.
func (c *CI) ID() string {
	return c.id
}

// Class returns the CI's category (e.g. "Server", "Application").
func (c *CI) Class() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.class
}

func (c *CI) SetClass(class string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.class = class
}

func (c *CI) Name() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name
}

func (c *CI) SetName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.name = name
}

func (c *CI) Description() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.description
}

func (c *CI) SetDescription(description string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.description = description
}

func (c *CI) Location() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.location
}

func (c *CI) SetLocation(location string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.location = location
}

func (c *CI) Project() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.project
}

func (c *CI) SetProject(project string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.project = project
}

func (c *CI) Environment() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.environment
}

func (c *CI) SetEnvironment(environment string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.environment = environment
}

// Attributes returns a point-in-time copy of the open attribute map, so
// callers can iterate without observing concurrent mutation.
func (c *CI) Attributes() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]string, len(c.attributes))
	for k, v := range c.attributes {
		out[k] = v
	}
	return out
}

// Attribute looks up a single attribute value.
func (c *CI) Attribute(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.attributes[key]
	return v, ok
}

// PutAttribute records or updates an attribute value. Empty keys are ignored.
func (c *CI) PutAttribute(key, value string) {
	if key == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attributes[key] = value
}

// Meta returns the import provenance for this CI, or nil if none was recorded.
func (c *CI) Meta() *ImportMetadata {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.meta
}

func (c *CI) SetMeta(meta *ImportMetadata) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.meta = meta
}

// Equal reports whether two CIs denote the same configuration item.
// Identity is the id alone; attribute content is irrelevant.
func (c *CI) Equal(other *CI) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.id == other.id
}

func (c *CI) String() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return fmt.Sprintf("%s [%s]", c.name, c.class)
}
