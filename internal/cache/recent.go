// Package cache holds small in-memory caches for the order-entry flow.
package cache

import (
	"sync"

	"github.com/glasspack/api/internal/draft"
)

const defaultRecentLimit = 20

// RecentOrders remembers the most recently created orders, overall and per
// team, so the entry screen can list them without a round trip. Newest
// first, bounded per key.
type RecentOrders struct {
	mu     sync.Mutex
	limit  int
	seeded bool
	all    []draft.WireOrder
	byTeam map[string][]draft.WireOrder
}

// NewRecentOrders creates an empty cache. limit <= 0 selects the default.
func NewRecentOrders(limit int) *RecentOrders {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return &RecentOrders{limit: limit, byTeam: make(map[string][]draft.WireOrder)}
}

// Add records a freshly created order, optionally under a team key.
func (c *RecentOrders) Add(o draft.WireOrder, team string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.all = prepend(c.all, o, c.limit)
	if team != "" {
		c.byTeam[team] = prepend(c.byTeam[team], o, c.limit)
	}
}

// Limit is the per-key cap on cached orders.
func (c *RecentOrders) Limit() int {
	return c.limit
}

// Seeded reports whether the cache already holds data, either from a Seed
// or from live Adds.
func (c *RecentOrders) Seeded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seeded || len(c.all) > 0
}

// Seed fills an empty cache from stored orders, newest first. Live Adds
// that raced ahead of the seed win; the seed is then a no-op.
func (c *RecentOrders) Seed(orders []draft.WireOrder) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seeded = true
	if len(c.all) > 0 {
		return
	}
	for _, o := range orders {
		if len(c.all) < c.limit {
			c.all = append(c.all, o)
		}
		if o.Team != "" && len(c.byTeam[o.Team]) < c.limit {
			c.byTeam[o.Team] = append(c.byTeam[o.Team], o)
		}
	}
}

// Recent returns the cached orders, newest first. An empty team returns the
// overall list.
func (c *RecentOrders) Recent(team string) []draft.WireOrder {
	c.mu.Lock()
	defer c.mu.Unlock()

	src := c.all
	if team != "" {
		src = c.byTeam[team]
	}
	out := make([]draft.WireOrder, len(src))
	copy(out, src)
	return out
}

func prepend(list []draft.WireOrder, o draft.WireOrder, limit int) []draft.WireOrder {
	list = append([]draft.WireOrder{o}, list...)
	if len(list) > limit {
		list = list[:limit]
	}
	return list
}
