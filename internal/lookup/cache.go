// Package lookup resolves categorical slugs to their durable backend ids.
package lookup

import (
	"context"
	"fmt"
	"sync"
)

// Selector is the slice of the store client the cache needs.
type Selector interface {
	Select(ctx context.Context, table, columns string, filters map[string]string) ([]map[string]any, error)
}

// ServiceTypes caches service type slug -> id mappings for the life of the
// process. A resolved mapping is treated as immutable and never re-fetched.
// A slug the backend does not know is deliberately NOT cached: every call
// re-queries, so new categories start resolving as soon as the backend has
// them, without a restart.
type ServiceTypes struct {
	store Selector

	mu  sync.RWMutex
	ids map[string]int64
}

func NewServiceTypes(store Selector) *ServiceTypes {
	return &ServiceTypes{
		store: store,
		ids:   make(map[string]int64),
	}
}

// Resolve returns the backend id for a service type slug. The second
// return reports whether the slug resolved; an unresolved slug is not an
// error.
func (c *ServiceTypes) Resolve(ctx context.Context, slug string) (int64, bool, error) {
	if slug == "" {
		return 0, false, nil
	}

	c.mu.RLock()
	id, ok := c.ids[slug]
	c.mu.RUnlock()
	if ok {
		return id, true, nil
	}

	rows, err := c.store.Select(ctx, "service_types", "id", map[string]string{"slug": slug})
	if err != nil {
		return 0, false, fmt.Errorf("resolve service type %q: %w", slug, err)
	}
	if len(rows) == 0 {
		return 0, false, nil
	}

	raw, ok := rows[0]["id"].(float64)
	if !ok {
		return 0, false, fmt.Errorf("resolve service type %q: id column is not numeric", slug)
	}
	id = int64(raw)

	c.mu.Lock()
	c.ids[slug] = id
	c.mu.Unlock()

	return id, true, nil
}

// Clear drops all cached mappings. Intended for test isolation.
func (c *ServiceTypes) Clear() {
	c.mu.Lock()
	c.ids = make(map[string]int64)
	c.mu.Unlock()
}
