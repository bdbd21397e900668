package draft

import (
	"testing"

	"github.com/glasspack/api/internal/enum"
	"github.com/stretchr/testify/assert"
)

func TestSearchKey(t *testing.T) {
	assert.Equal(t, "glass-0-2", SearchKey(enum.CategoryGlass, 0, 2))
	assert.Equal(t, "caps-3-0", SearchKey(enum.CategoryCaps, 3, 0))
}

// Focusing a second widget closes the first; only one dropdown is ever
// open.
func TestFocusMovesTheOpenDropdown(t *testing.T) {
	s := NewSearchState()
	s = s.Focus("glass-0-0")
	assert.Equal(t, "glass-0-0", s.OpenDropdown)

	s = s.Focus("caps-0-0")
	assert.Equal(t, "caps-0-0", s.OpenDropdown)

	s = s.Close()
	assert.Equal(t, "", s.OpenDropdown)
}

func TestSetTermKeepsDropdownOpen(t *testing.T) {
	s := NewSearchState().Focus("glass-0-0")
	s = s.SetTerm("glass-0-0", "gpr")
	assert.Equal(t, "gpr", s.Terms["glass-0-0"])
	assert.Equal(t, "glass-0-0", s.OpenDropdown)
}

func TestSelectedShowsNameAndCloses(t *testing.T) {
	s := NewSearchState().SetTerm("glass-0-0", "gpr")
	s = s.Selected("glass-0-0", "GPR-30-RND")
	assert.Equal(t, "GPR-30-RND", s.Terms["glass-0-0"])
	assert.Equal(t, "", s.OpenDropdown)
}

func TestSearchStateIsValueSemantics(t *testing.T) {
	s := NewSearchState()
	s2 := s.SetTerm("glass-0-0", "gpr")
	assert.Empty(t, s.Terms)
	assert.Equal(t, "gpr", s2.Terms["glass-0-0"])
}

// Rebuilding from a loaded draft fills the search boxes with the selected
// names and leaves sentinel rows blank.
func TestRebuildSearch(t *testing.T) {
	nd := Rehydrate(New(false), storedOrder())
	s := RebuildSearch(nd)

	assert.Equal(t, "GPR-30-RND", s.Terms[SearchKey(enum.CategoryGlass, 0, 0)])
	assert.Equal(t, "CAP-18-ALU", s.Terms[SearchKey(enum.CategoryCaps, 0, 0)])
	_, ok := s.Terms[SearchKey(enum.CategoryBoxes, 0, 0)]
	assert.False(t, ok, "sentinel rows stay blank")
	assert.Equal(t, "", s.OpenDropdown)
}
