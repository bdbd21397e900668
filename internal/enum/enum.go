package enum

// Sentinel is the placeholder value for unselected catalog fields.
// Rows carrying it are excluded from submission and suggestion lists.
const Sentinel = "N/A"

// ── Component categories (fixed keys of an item's assignment map) ──

const (
	CategoryGlass       = "glass"
	CategoryCaps        = "caps"
	CategoryBoxes       = "boxes"
	CategoryPumps       = "pumps"
	CategoryAccessories = "accessories"
)

// Categories lists every component category in its canonical order.
var Categories = []string{
	CategoryGlass,
	CategoryCaps,
	CategoryBoxes,
	CategoryPumps,
	CategoryAccessories,
}

// IsCategory reports whether s names a known component category.
func IsCategory(s string) bool {
	switch s {
	case CategoryGlass, CategoryCaps, CategoryBoxes, CategoryPumps, CategoryAccessories:
		return true
	}
	return false
}

// ── State machines ──

const (
	OrderStatusPending    = "Pending"
	OrderStatusInProgress = "In Progress"
	OrderStatusCompleted  = "Completed"
	OrderStatusCancelled  = "Cancelled"
)

const (
	RowStatusPending   = "Pending"
	RowStatusStarted   = "Started"
	RowStatusCompleted = "Completed"
)

// ── Configurable labels (no DB constraint) ──

// Default production team per component category.
const (
	TeamGlass       = "Glass Manufacturing - Mumbai"
	TeamCaps        = "Caps Production - Delhi"
	TeamBoxes       = "Box Packaging - Pune"
	TeamPumps       = "Pump Assembly - Chennai"
	TeamAccessories = "Accessories - Mumbai"
)

// DefaultTeam returns the production team label for a category.
func DefaultTeam(category string) string {
	switch category {
	case CategoryGlass:
		return TeamGlass
	case CategoryCaps:
		return TeamCaps
	case CategoryBoxes:
		return TeamBoxes
	case CategoryPumps:
		return TeamPumps
	case CategoryAccessories:
		return TeamAccessories
	}
	return ""
}

// Decoration process keywords tested against a glass row's decoration key.
const (
	DecorationCoating  = "coating"
	DecorationPrinting = "printing"
	DecorationFoiling  = "foiling"
	DecorationFrosting = "frosting"
)

// ── Currencies ──

const (
	CurrencyINR = "INR"
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
	CurrencyGBP = "GBP"
)
