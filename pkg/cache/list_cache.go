package cache

import (
	"sync"

	"github.com/flowform/flowform-go/pkg/models"
)

// ListCache holds one cached workflow list for the process lifetime. It is
// invalidated wholesale when the organization identity changes.
type ListCache struct {
	mu     sync.Mutex
	list   []models.WorkflowRef
	loaded bool
}

// NewListCache creates an empty single-slot cache.
func NewListCache() *ListCache {
	return &ListCache{}
}

// Get returns the cached list and whether the slot is populated.
func (c *ListCache) Get() ([]models.WorkflowRef, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		return nil, false
	}

	list := make([]models.WorkflowRef, len(c.list))
	copy(list, c.list)

	return list, true
}

// Set replaces the cached list.
func (c *ListCache) Set(list []models.WorkflowRef) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.list = make([]models.WorkflowRef, len(list))
	copy(c.list, list)
	c.loaded = true
}

// Clear empties the slot.
func (c *ListCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.list = nil
	c.loaded = false
}
