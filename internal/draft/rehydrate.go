package draft

import (
	"strconv"

	"github.com/glasspack/api/internal/enum"
)

// Rehydrate rebuilds an editable draft from a stored order, the way the
// duplicate-order flow reconstructs the form. Header dispatcher and
// customer names are copied (the order number is left for the user to
// choose fresh), every stored row is merged over factory defaults so fields
// the server omitted keep safe values, quantities are coerced back to
// editable strings, and any category the stored item lacks gets a single
// default row. The caller swaps the whole tree at once, so a failed fetch
// never partially mutates a live draft.
func Rehydrate(current Draft, o WireOrder) Draft {
	nd := New(current.TeamOrder)
	nd.Team = current.Team
	nd.CreatedBy = current.CreatedBy
	nd.DispatcherName = o.DispatcherName
	nd.CustomerName = o.CustomerName

	if len(o.Items) == 0 {
		return nd
	}

	cats := nd.Categories()
	nd.Items = make([]Item, len(o.Items))
	for i, wi := range o.Items {
		name := wi.Name
		if name == "" {
			name = "Item " + strconv.Itoa(i+1)
		}
		it := Item{Name: name, Assignments: make(map[string][]Row, len(cats))}
		for _, c := range cats {
			stored := wi.Rows(c)
			if len(stored) == 0 {
				it.Assignments[c] = []Row{NewRow(c)}
				continue
			}
			rows := make([]Row, len(stored))
			for j, wr := range stored {
				rows[j] = mergeRow(c, wr, nd.TeamOrder)
			}
			it.Assignments[c] = rows
		}
		nd.Items[i] = it
	}
	return nd
}

// mergeRow lays stored fields over a fresh default row, so anything the
// server omitted keeps its sentinel or empty default. The stored quantity
// is always coerced back to editable text; rates only exist on the
// team-order form and are dropped when duplicating into a plain draft.
func mergeRow(category string, wr WireRow, teamOrder bool) Row {
	r := NewRow(category)
	if n := wr.Name(); n != "" {
		r.Name = n
	}
	if wr.Weight != "" {
		r.Weight = wr.Weight
	}
	if wr.NeckSize != "" {
		r.NeckSize = wr.NeckSize
	}
	if wr.Decoration != "" {
		r.Decoration = wr.Decoration
		if category == enum.CategoryGlass {
			r.PrintingSelected = wr.Decoration != enum.Sentinel
		}
	}
	if wr.DecorationNo != "" {
		r.DecorationNo = wr.DecorationNo
	}
	if wr.Process != "" {
		r.Process = wr.Process
	}
	if wr.Material != "" {
		r.Material = wr.Material
	}
	if wr.ApprovalCode != "" {
		r.ApprovalCode = wr.ApprovalCode
	}
	if wr.NeckType != "" {
		r.NeckType = wr.NeckType
	}
	r.Quantity = strconv.Itoa(wr.Quantity)
	if teamOrder && wr.Rate != "" {
		r.Rate = wr.Rate
	}
	if wr.Team != "" {
		r.Team = wr.Team
	}
	return r
}
