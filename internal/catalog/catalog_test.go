package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/glasspack/api/internal/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterCaseInsensitiveContains(t *testing.T) {
	entries := []Entry{
		{Name: enum.Sentinel},
		{Name: "GPR-30-RND"},
		{Name: "GPR-30-SQR"},
		{Name: "GDR-30-DRP"},
	}

	got := Filter(entries, "gpr")
	require.Len(t, got, 2)
	assert.Equal(t, "GPR-30-RND", got[0].Name)
	assert.Equal(t, "GPR-30-SQR", got[1].Name)

	got = Filter(entries, "-30-")
	assert.Len(t, got, 3)

	got = Filter(entries, "  -30-  ")
	assert.Empty(t, got, "query matches as typed, whitespace included")
}

// An empty query returns every real entry; the sentinel stays hidden.
func TestFilterEmptyQueryExcludesSentinel(t *testing.T) {
	entries := []Entry{{Name: enum.Sentinel}, {Name: "A"}, {Name: "B"}}
	got := Filter(entries, "")
	require.Len(t, got, 2)
	for _, e := range got {
		assert.False(t, e.IsSentinel())
	}
}

// Typing the sentinel itself is the one way to surface it.
func TestFilterSentinelOnlyForLiteralQuery(t *testing.T) {
	entries := []Entry{{Name: enum.Sentinel}, {Name: "GPR-30-RND"}}

	got := Filter(entries, "n/a")
	require.Len(t, got, 1)
	assert.True(t, got[0].IsSentinel())

	got = Filter(entries, "N/A")
	require.Len(t, got, 1)
	assert.True(t, got[0].IsSentinel())

	got = Filter(entries, "n/")
	assert.Empty(t, got)

	got = Filter(entries, " n/a ")
	assert.Empty(t, got, "padded query is not the literal sentinel")
}

func TestFind(t *testing.T) {
	entries := []Entry{{Name: "A"}, {Name: "B", NeckSize: "18mm"}}

	e, ok := Find(entries, "B")
	require.True(t, ok)
	assert.Equal(t, "18mm", e.NeckSize)

	_, ok = Find(entries, "C")
	assert.False(t, ok)
}

func TestStaticCatalogsStartWithSentinel(t *testing.T) {
	s := NewSet(nil)
	ctx := context.Background()
	for _, c := range []string{enum.CategoryGlass, enum.CategoryCaps, enum.CategoryBoxes, enum.CategoryPumps} {
		entries := s.ByCategory(ctx, c)
		require.NotEmpty(t, entries, "category %s", c)
		assert.True(t, entries[0].IsSentinel(), "category %s", c)
	}
	assert.Nil(t, s.ByCategory(ctx, "labels"))
}

type stubAccessoryStore struct {
	names []string
	err   error
	calls int
}

func (s *stubAccessoryStore) ListAccessories(ctx context.Context) ([]string, error) {
	s.calls++
	return s.names, s.err
}

func TestAccessoriesLoadOnceAndCache(t *testing.T) {
	store := &stubAccessoryStore{names: []string{"Dropper Assembly 18mm", "Shrink Sleeve 30ml"}}
	s := NewSet(store)
	ctx := context.Background()

	got := s.ByCategory(ctx, enum.CategoryAccessories)
	require.Len(t, got, 3)
	assert.True(t, got[0].IsSentinel())
	assert.Equal(t, "Dropper Assembly 18mm", got[1].Name)

	s.ByCategory(ctx, enum.CategoryAccessories)
	assert.Equal(t, 1, store.calls, "successful load is cached")
}

// A failed load serves just the sentinel and retries next time.
func TestAccessoriesFailedLoadRetries(t *testing.T) {
	store := &stubAccessoryStore{err: errors.New("db down")}
	s := NewSet(store)
	ctx := context.Background()

	got := s.ByCategory(ctx, enum.CategoryAccessories)
	require.Len(t, got, 1)
	assert.True(t, got[0].IsSentinel())

	store.err = nil
	store.names = []string{"Brush Applicator"}
	got = s.ByCategory(ctx, enum.CategoryAccessories)
	require.Len(t, got, 2)
	assert.Equal(t, 2, store.calls)
}

// A stored "N/A" record must not duplicate the prepended sentinel.
func TestAccessoriesSkipStoredSentinel(t *testing.T) {
	store := &stubAccessoryStore{names: []string{enum.Sentinel, "Brush Applicator"}}
	s := NewSet(store)

	got := s.ByCategory(context.Background(), enum.CategoryAccessories)
	require.Len(t, got, 2)
	assert.True(t, got[0].IsSentinel())
	assert.Equal(t, "Brush Applicator", got[1].Name)
}
