package draft

import (
	"strings"
	"time"

	"github.com/glasspack/api/internal/catalog"
	"github.com/glasspack/api/internal/enum"
)

// TeamTracking is the production-side progress record nested in every row.
// It is written once at row creation and stays inert until manufacturing
// teams report progress against the stored order.
type TeamTracking struct {
	TotalCompletedQty int              `json:"total_completed_qty"`
	CompletedEntries  []CompletedEntry `json:"completed_entries"`
	Status            string           `json:"status"`
}

// CompletedEntry is a single progress report from a production team.
type CompletedEntry struct {
	Qty         int       `json:"qty"`
	CompletedBy string    `json:"completed_by"`
	CompletedAt time.Time `json:"completed_at"`
}

// NewTeamTracking returns a zero-valued tracking record.
func NewTeamTracking() TeamTracking {
	return TeamTracking{
		TotalCompletedQty: 0,
		CompletedEntries:  []CompletedEntry{},
		Status:            enum.RowStatusPending,
	}
}

// Row is one component line within an item's category list. It is the
// superset of the per-category shapes; the wire layer maps Name onto the
// category-specific key (glass_name, cap_name, ...). Quantity and rate
// stay strings while editing and are parsed at pricing/submit time.
type Row struct {
	Name             string       `json:"name"`
	Weight           string       `json:"weight"`
	NeckSize         string       `json:"neck_size"`
	Decoration       string       `json:"decoration"`
	DecorationNo     string       `json:"decoration_no"`
	PrintingSelected bool         `json:"printing_selected"`
	Process          string       `json:"process"`
	Material         string       `json:"material"`
	ApprovalCode     string       `json:"approval_code"`
	NeckType         string       `json:"neck_type"`
	Quantity         string       `json:"quantity"`
	Rate             string       `json:"rate"`
	Team             string       `json:"team"`
	Status           string       `json:"status"`
	Tracking         TeamTracking `json:"team_tracking"`
}

// NewRow returns a fresh default row for a category. Every call produces an
// independent value; pushing N new rows never aliases state. Name and the
// category-specific fields start at the N/A sentinel or empty, matching the
// unselected form state.
func NewRow(category string) Row {
	r := Row{
		Name:     enum.Sentinel,
		Quantity: "",
		Rate:     "",
		Team:     enum.DefaultTeam(category),
		Status:   enum.RowStatusPending,
		Tracking: NewTeamTracking(),
	}
	switch category {
	case enum.CategoryGlass:
		r.Weight = enum.Sentinel
		r.NeckSize = enum.Sentinel
		r.Decoration = enum.Sentinel
		r.DecorationNo = ""
	case enum.CategoryCaps:
		r.NeckSize = enum.Sentinel
		r.Process = enum.Sentinel
		r.Material = enum.Sentinel
	case enum.CategoryBoxes:
		r.ApprovalCode = ""
	case enum.CategoryPumps:
		r.NeckType = enum.Sentinel
	}
	return r
}

// clone returns a deep copy of the row.
func (r Row) clone() Row {
	out := r
	out.Tracking.CompletedEntries = append([]CompletedEntry(nil), r.Tracking.CompletedEntries...)
	return out
}

// setField writes a single named field. Glass decoration changes also derive
// the printing_selected flag: any real, non-sentinel decoration counts.
func (r *Row) setField(category, field, value string) bool {
	switch field {
	case "glass_name", "cap_name", "box_name", "pump_name", "accessories_name", "name":
		r.Name = value
	case "weight":
		r.Weight = value
	case "neck_size":
		r.NeckSize = value
	case "decoration":
		r.Decoration = value
		if category == enum.CategoryGlass {
			r.PrintingSelected = value != enum.Sentinel && strings.TrimSpace(value) != ""
		}
	case "decoration_no":
		r.DecorationNo = value
	case "process":
		r.Process = value
	case "material":
		r.Material = value
	case "approval_code":
		r.ApprovalCode = value
	case "neck_type":
		r.NeckType = value
	case "quantity":
		r.Quantity = value
	case "rate":
		r.Rate = value
	case "team":
		r.Team = value
	case "status":
		r.Status = value
	default:
		return false
	}
	return true
}

// applySelection copies catalog fields into the row after a dropdown pick.
// Glass carries neck size and weight over from the catalog entry, caps only
// the neck size, the rest just the name.
func (r *Row) applySelection(category string, e catalog.Entry) {
	r.Name = e.Name
	switch category {
	case enum.CategoryGlass:
		r.NeckSize = e.NeckSize
		r.Weight = e.Weight
	case enum.CategoryCaps:
		r.NeckSize = e.NeckSize
	}
}
