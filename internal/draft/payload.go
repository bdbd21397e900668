package draft

import (
	"errors"
	"strconv"
	"strings"

	"github.com/glasspack/api/internal/enum"
)

// Validation errors surfaced to the user at submit time, in the order they
// are checked.
var (
	ErrMissingOrderNumber = errors.New("order number is required")
	ErrMissingDispatcher  = errors.New("dispatcher name is required")
	ErrMissingCustomer    = errors.New("customer name is required")
	ErrMissingIdentity    = errors.New("user team and username are required")
	ErrNoValidItems       = errors.New("no valid items: select a component and enter a quantity")
)

// Identity is the acting user, as carried by the auth collaborator. Team
// orders require both fields non-empty.
type Identity struct {
	Username string
	Team     string
}

// rowValid applies the per-row submit filter: a real (non-sentinel,
// non-empty) name and a truthy quantity. Rows failing it are silently
// dropped from the payload, never reported individually.
func rowValid(r Row) bool {
	if r.Name == "" || r.Name == enum.Sentinel {
		return false
	}
	return r.Quantity != ""
}

// BuildOrder validates the draft and reshapes it into the wire payload.
// Validation order: header fields first, then (team orders only) the acting
// identity, then at least one passing row anywhere in the tree. Emitted
// rows are reset to Pending status with fresh tracking, discarding any
// client-side tracking edits.
func BuildOrder(d Draft, user Identity) (WireOrder, error) {
	switch {
	case strings.TrimSpace(d.OrderNumber) == "":
		return WireOrder{}, ErrMissingOrderNumber
	case strings.TrimSpace(d.DispatcherName) == "":
		return WireOrder{}, ErrMissingDispatcher
	case strings.TrimSpace(d.CustomerName) == "":
		return WireOrder{}, ErrMissingCustomer
	}

	if d.TeamOrder && (user.Team == "" || user.Username == "") {
		return WireOrder{}, ErrMissingIdentity
	}

	order := WireOrder{
		OrderNumber:    d.OrderNumber,
		DispatcherName: d.DispatcherName,
		CustomerName:   d.CustomerName,
		OrderStatus:    enum.OrderStatusPending,
	}
	if d.TeamOrder {
		order.Team = user.Team
		order.CreatedBy = user.Username
	}

	anyRow := false
	for _, it := range d.Items {
		wi := WireItem{Name: it.Name}
		itemHasRow := false
		for _, c := range d.Categories() {
			var rows []WireRow
			for _, r := range it.Assignments[c] {
				if !rowValid(r) {
					continue
				}
				rows = append(rows, toWireRow(c, r, d.TeamOrder))
				itemHasRow = true
			}
			wi.setRows(c, rows)
		}
		if !itemHasRow {
			// Item with no surviving rows is dropped, not reported.
			continue
		}
		anyRow = true
		order.Items = append(order.Items, wi)
	}

	if !anyRow {
		return WireOrder{}, ErrNoValidItems
	}
	return order, nil
}

func toWireRow(category string, r Row, teamOrder bool) WireRow {
	wr := WireRow{
		Quantity: parseQuantity(r.Quantity),
		Team:     r.Team,
		Status:   enum.RowStatusPending,
		Tracking: NewTeamTracking(),
	}
	// Row-level rates belong to the team-order variant only.
	if teamOrder {
		wr.Rate = r.Rate
	}
	switch category {
	case enum.CategoryGlass:
		wr.GlassName = r.Name
		wr.Weight = r.Weight
		wr.NeckSize = r.NeckSize
		wr.Decoration = r.Decoration
		wr.DecorationNo = r.DecorationNo
		wr.DecorationDetails = deriveDecorationDetails(r.Decoration)
	case enum.CategoryCaps:
		wr.CapName = r.Name
		wr.NeckSize = r.NeckSize
		wr.Process = r.Process
		wr.Material = r.Material
	case enum.CategoryBoxes:
		wr.BoxName = r.Name
		wr.ApprovalCode = r.ApprovalCode
	case enum.CategoryPumps:
		wr.PumpName = r.Name
		wr.NeckType = r.NeckType
	case enum.CategoryAccessories:
		wr.AccessoriesName = r.Name
	}
	return wr
}

// parseQuantity converts the edited quantity text to an integer, falling
// back to 0 when it does not parse.
func parseQuantity(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// deriveDecorationDetails substring-tests the decoration key for each
// process flag. A key like "coating_printing_foiling" sets the first three.
func deriveDecorationDetails(key string) *DecorationDetails {
	k := strings.ToLower(key)
	return &DecorationDetails{
		Coating:  strings.Contains(k, enum.DecorationCoating),
		Printing: strings.Contains(k, enum.DecorationPrinting),
		Foiling:  strings.Contains(k, enum.DecorationFoiling),
		Frosting: strings.Contains(k, enum.DecorationFrosting),
	}
}
