package draft

import (
	"fmt"

	"github.com/glasspack/api/internal/enum"
)

// SearchState holds the per-row search box contents and the single open
// dropdown. Only one dropdown is open at a time across the whole form,
// identified by a composite "{category}-{item}-{row}" key.
type SearchState struct {
	Terms        map[string]string `json:"terms"`
	OpenDropdown string            `json:"open_dropdown"`
}

// NewSearchState returns an empty search state.
func NewSearchState() SearchState {
	return SearchState{Terms: map[string]string{}}
}

// SearchKey builds the composite key identifying one row's search widget.
func SearchKey(category string, itemIndex, rowIndex int) string {
	return fmt.Sprintf("%s-%d-%d", category, itemIndex, rowIndex)
}

func (s SearchState) clone() SearchState {
	out := SearchState{Terms: make(map[string]string, len(s.Terms)), OpenDropdown: s.OpenDropdown}
	for k, v := range s.Terms {
		out.Terms[k] = v
	}
	return out
}

// Focus opens the dropdown for a row, closing any other.
func (s SearchState) Focus(key string) SearchState {
	ns := s.clone()
	ns.OpenDropdown = key
	return ns
}

// Close closes whatever dropdown is open.
func (s SearchState) Close() SearchState {
	ns := s.clone()
	ns.OpenDropdown = ""
	return ns
}

// SetTerm records a keystroke in one row's search box and keeps its
// dropdown open.
func (s SearchState) SetTerm(key, text string) SearchState {
	ns := s.clone()
	ns.Terms[key] = text
	ns.OpenDropdown = key
	return ns
}

// Selected records a dropdown pick: the search box shows the chosen display
// value and the dropdown closes.
func (s SearchState) Selected(key, name string) SearchState {
	ns := s.clone()
	ns.Terms[key] = name
	ns.OpenDropdown = ""
	return ns
}

// RebuildSearch derives the search state for a freshly loaded draft so that
// previously selected names show up as search box content. Sentinel names
// stay blank.
func RebuildSearch(d Draft) SearchState {
	s := NewSearchState()
	for i, it := range d.Items {
		for _, c := range d.Categories() {
			for j, r := range it.Assignments[c] {
				if r.Name != "" && r.Name != enum.Sentinel {
					s.Terms[SearchKey(c, i, j)] = r.Name
				}
			}
		}
	}
	return s
}
