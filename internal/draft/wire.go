package draft

// Wire shapes: the JSON an order is stored and fetched as. Every category
// uses its own name key, quantities are integers, and glass rows carry the
// derived decoration process flags.

// WireOrder is the order as accepted and returned by the orders API.
type WireOrder struct {
	OrderNumber    string     `json:"order_number"`
	DispatcherName string     `json:"dispatcher_name"`
	CustomerName   string     `json:"customer_name"`
	OrderStatus    string     `json:"order_status"`
	Team           string     `json:"team,omitempty"`
	CreatedBy      string     `json:"created_by,omitempty"`
	Items          []WireItem `json:"items"`
}

// WireItem is one order item with its per-category component rows.
type WireItem struct {
	Name        string    `json:"name"`
	Glass       []WireRow `json:"glass"`
	Caps        []WireRow `json:"caps"`
	Boxes       []WireRow `json:"boxes"`
	Pumps       []WireRow `json:"pumps"`
	Accessories []WireRow `json:"accessories"`
}

// Rows returns the category's row slice.
func (wi WireItem) Rows(category string) []WireRow {
	switch category {
	case "glass":
		return wi.Glass
	case "caps":
		return wi.Caps
	case "boxes":
		return wi.Boxes
	case "pumps":
		return wi.Pumps
	case "accessories":
		return wi.Accessories
	}
	return nil
}

func (wi *WireItem) setRows(category string, rows []WireRow) {
	switch category {
	case "glass":
		wi.Glass = rows
	case "caps":
		wi.Caps = rows
	case "boxes":
		wi.Boxes = rows
	case "pumps":
		wi.Pumps = rows
	case "accessories":
		wi.Accessories = rows
	}
}

// WireRow is a flattened component row. Exactly one of the *_name keys is
// populated, matching the row's category.
type WireRow struct {
	GlassName         string             `json:"glass_name,omitempty"`
	CapName           string             `json:"cap_name,omitempty"`
	BoxName           string             `json:"box_name,omitempty"`
	PumpName          string             `json:"pump_name,omitempty"`
	AccessoriesName   string             `json:"accessories_name,omitempty"`
	Weight            string             `json:"weight,omitempty"`
	NeckSize          string             `json:"neck_size,omitempty"`
	Decoration        string             `json:"decoration,omitempty"`
	DecorationNo      string             `json:"decoration_no,omitempty"`
	DecorationDetails *DecorationDetails `json:"decoration_details,omitempty"`
	Process           string             `json:"process,omitempty"`
	Material          string             `json:"material,omitempty"`
	ApprovalCode      string             `json:"approval_code,omitempty"`
	NeckType          string             `json:"neck_type,omitempty"`
	Quantity          int                `json:"quantity"`
	Rate              string             `json:"rate,omitempty"`
	Team              string             `json:"team"`
	Status            string             `json:"status"`
	Tracking          TeamTracking       `json:"team_tracking"`
}

// Name returns whichever category name key is populated.
func (wr WireRow) Name() string {
	for _, n := range []string{wr.GlassName, wr.CapName, wr.BoxName, wr.PumpName, wr.AccessoriesName} {
		if n != "" {
			return n
		}
	}
	return ""
}

// DecorationDetails are the process flags derived from a glass row's
// decoration key at submit time.
type DecorationDetails struct {
	Coating  bool `json:"coating"`
	Printing bool `json:"printing"`
	Foiling  bool `json:"foiling"`
	Frosting bool `json:"frosting"`
}
