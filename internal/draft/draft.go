package draft

import (
	"errors"
	"fmt"

	"github.com/glasspack/api/internal/catalog"
	"github.com/glasspack/api/internal/enum"
)

// Errors returned by draft operations.
var (
	ErrBadCategory = errors.New("unknown component category")
	ErrBadIndex    = errors.New("index out of range")
	ErrBadField    = errors.New("unknown row field")
)

// Item is one order item: a free-text name and one ordered row list per
// component category. Every category list always holds at least one row.
type Item struct {
	Name        string           `json:"name"`
	Assignments map[string][]Row `json:"teamAssignments"`
}

// Draft is the in-progress order tree. All operations are value semantics:
// they deep-copy the draft and return a new snapshot, so a caller holding an
// old snapshot never observes a mutation.
type Draft struct {
	OrderNumber    string `json:"order_number"`
	DispatcherName string `json:"dispatcher_name"`
	CustomerName   string `json:"customer_name"`
	OrderStatus    string `json:"order_status"`
	Team           string `json:"team,omitempty"`
	CreatedBy      string `json:"created_by,omitempty"`
	TeamOrder      bool   `json:"team_order"`
	Items          []Item `json:"items"`
}

// New returns an empty draft with a single default item. teamOrder selects
// the team-order variant (accessories category, per-row rates, team
// identity required at submit).
func New(teamOrder bool) Draft {
	d := Draft{
		OrderStatus: enum.OrderStatusPending,
		TeamOrder:   teamOrder,
	}
	d.Items = []Item{newItem("Item 1", teamOrder)}
	return d
}

// variantCategories is the category set for a draft variant. The plain
// order form has no accessories section.
func variantCategories(teamOrder bool) []string {
	if teamOrder {
		return enum.Categories
	}
	out := make([]string, 0, len(enum.Categories)-1)
	for _, c := range enum.Categories {
		if c != enum.CategoryAccessories {
			out = append(out, c)
		}
	}
	return out
}

// Categories lists the component categories this draft carries.
func (d Draft) Categories() []string {
	return variantCategories(d.TeamOrder)
}

func (d Draft) hasCategory(category string) bool {
	return enum.IsCategory(category) && (d.TeamOrder || category != enum.CategoryAccessories)
}

func newItem(name string, teamOrder bool) Item {
	cats := variantCategories(teamOrder)
	it := Item{Name: name, Assignments: make(map[string][]Row, len(cats))}
	for _, c := range cats {
		it.Assignments[c] = []Row{NewRow(c)}
	}
	return it
}

// clone deep-copies the draft tree.
func (d Draft) clone() Draft {
	out := d
	out.Items = make([]Item, len(d.Items))
	for i, it := range d.Items {
		ni := Item{Name: it.Name, Assignments: make(map[string][]Row, len(it.Assignments))}
		for c, rows := range it.Assignments {
			nr := make([]Row, len(rows))
			for j, r := range rows {
				nr[j] = r.clone()
			}
			ni.Assignments[c] = nr
		}
		out.Items[i] = ni
	}
	return out
}

// Reset returns a fresh draft of the same variant. Used after a successful
// submit.
func (d Draft) Reset() Draft {
	nd := New(d.TeamOrder)
	nd.Team = d.Team
	nd.CreatedBy = d.CreatedBy
	return nd
}

// SetHeader writes one of the order header fields.
func (d Draft) SetHeader(field, value string) (Draft, error) {
	nd := d.clone()
	switch field {
	case "order_number":
		nd.OrderNumber = value
	case "dispatcher_name":
		nd.DispatcherName = value
	case "customer_name":
		nd.CustomerName = value
	default:
		return d, fmt.Errorf("%w: %s", ErrBadField, field)
	}
	return nd, nil
}

// AddItem appends a new item named after its position, with one default row
// in every category.
func (d Draft) AddItem() Draft {
	nd := d.clone()
	nd.Items = append(nd.Items, newItem(fmt.Sprintf("Item %d", len(nd.Items)+1), nd.TeamOrder))
	return nd
}

// RemoveItem deletes the item at index. Removing the only remaining item is
// a no-op; the draft always holds at least one item.
func (d Draft) RemoveItem(index int) (Draft, error) {
	if index < 0 || index >= len(d.Items) {
		return d, ErrBadIndex
	}
	if len(d.Items) == 1 {
		return d, nil
	}
	nd := d.clone()
	nd.Items = append(nd.Items[:index], nd.Items[index+1:]...)
	return nd, nil
}

// RenameItem sets the free-text name of the item at index.
func (d Draft) RenameItem(index int, name string) (Draft, error) {
	if index < 0 || index >= len(d.Items) {
		return d, ErrBadIndex
	}
	nd := d.clone()
	nd.Items[index].Name = name
	return nd, nil
}

// AddRow appends a default row to an item's category list.
func (d Draft) AddRow(itemIndex int, category string) (Draft, error) {
	if !d.hasCategory(category) {
		return d, ErrBadCategory
	}
	if itemIndex < 0 || itemIndex >= len(d.Items) {
		return d, ErrBadIndex
	}
	nd := d.clone()
	nd.Items[itemIndex].Assignments[category] = append(nd.Items[itemIndex].Assignments[category], NewRow(category))
	return nd, nil
}

// RemoveRow deletes a row from an item's category list. Removing the last
// remaining row of a category is a no-op; every category keeps at least one
// row.
func (d Draft) RemoveRow(itemIndex, rowIndex int, category string) (Draft, error) {
	if !d.hasCategory(category) {
		return d, ErrBadCategory
	}
	if itemIndex < 0 || itemIndex >= len(d.Items) {
		return d, ErrBadIndex
	}
	rows := d.Items[itemIndex].Assignments[category]
	if rowIndex < 0 || rowIndex >= len(rows) {
		return d, ErrBadIndex
	}
	if len(rows) == 1 {
		return d, nil
	}
	nd := d.clone()
	nr := nd.Items[itemIndex].Assignments[category]
	nd.Items[itemIndex].Assignments[category] = append(nr[:rowIndex], nr[rowIndex+1:]...)
	return nd, nil
}

// SetField writes a single field on a single row. Glass decoration updates
// also derive the row's printing_selected flag.
func (d Draft) SetField(itemIndex, rowIndex int, category, field, value string) (Draft, error) {
	if !d.hasCategory(category) {
		return d, ErrBadCategory
	}
	if itemIndex < 0 || itemIndex >= len(d.Items) {
		return d, ErrBadIndex
	}
	if rowIndex < 0 || rowIndex >= len(d.Items[itemIndex].Assignments[category]) {
		return d, ErrBadIndex
	}
	// Per-row rates exist only on the team-order form.
	if field == "rate" && !d.TeamOrder {
		return d, fmt.Errorf("%w: %s", ErrBadField, field)
	}
	nd := d.clone()
	row := &nd.Items[itemIndex].Assignments[category][rowIndex]
	if !row.setField(category, field, value) {
		return d, fmt.Errorf("%w: %s", ErrBadField, field)
	}
	return nd, nil
}

// Select copies a catalog entry into a row, the way picking a suggestion
// from the dropdown does.
func (d Draft) Select(itemIndex, rowIndex int, category string, e catalog.Entry) (Draft, error) {
	if !d.hasCategory(category) {
		return d, ErrBadCategory
	}
	if itemIndex < 0 || itemIndex >= len(d.Items) {
		return d, ErrBadIndex
	}
	if rowIndex < 0 || rowIndex >= len(d.Items[itemIndex].Assignments[category]) {
		return d, ErrBadIndex
	}
	nd := d.clone()
	nd.Items[itemIndex].Assignments[category][rowIndex].applySelection(category, e)
	return nd, nil
}
