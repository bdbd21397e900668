package catalog

import (
	"context"
	"log"
	"sync"

	"github.com/glasspack/api/internal/enum"
)

// Entry is a single reference-catalog record. Name holds the display field
// (FORMULA for glass and caps, box_name for boxes, name for pumps and
// accessories). NeckSize and Weight are only populated where the source
// catalog carries them.
type Entry struct {
	Name     string `json:"name"`
	NeckSize string `json:"neck_size,omitempty"`
	Weight   string `json:"weight,omitempty"`
}

// IsSentinel reports whether the entry is the N/A placeholder record.
func (e Entry) IsSentinel() bool {
	return e.Name == enum.Sentinel
}

// AccessoryStore defines the database methods needed by the live
// accessories catalog. Satisfied by *database.Queries; narrow interface
// for testability.
type AccessoryStore interface {
	ListAccessories(ctx context.Context) ([]string, error)
}

// Set holds every component catalog. The glass, caps, boxes and pumps
// tables are static; accessories are loaded lazily from the store the
// first time they are requested.
type Set struct {
	store AccessoryStore

	mu          sync.Mutex
	accessories []Entry
	loaded      bool
}

// NewSet creates a catalog Set backed by store for accessories.
func NewSet(store AccessoryStore) *Set {
	return &Set{store: store}
}

// ByCategory returns the full catalog for a category, sentinel included.
// Accessories trigger a one-time load; a failed load leaves only the
// sentinel entry and is retried on the next call.
func (s *Set) ByCategory(ctx context.Context, category string) []Entry {
	switch category {
	case enum.CategoryGlass:
		return glassCatalog
	case enum.CategoryCaps:
		return capCatalog
	case enum.CategoryBoxes:
		return boxCatalog
	case enum.CategoryPumps:
		return pumpCatalog
	case enum.CategoryAccessories:
		return s.loadAccessories(ctx)
	}
	return nil
}

// loadAccessories fetches the accessories list once and caches it.
func (s *Set) loadAccessories(ctx context.Context) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.accessories
	}

	entries := []Entry{{Name: enum.Sentinel}}
	if s.store != nil {
		names, err := s.store.ListAccessories(ctx)
		if err != nil {
			log.Printf("ERROR: load accessories catalog: %v", err)
			return entries
		}
		for _, n := range names {
			// The sentinel is always prepended above; a stored copy
			// would duplicate it.
			if n == enum.Sentinel {
				continue
			}
			entries = append(entries, Entry{Name: n})
		}
	}

	s.accessories = entries
	s.loaded = true
	return s.accessories
}
