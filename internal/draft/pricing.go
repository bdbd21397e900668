package draft

import (
	"strings"

	"github.com/glasspack/api/internal/enum"
	"github.com/shopspring/decimal"
)

// Rates are quoted per thousand units, so every row contributes
// (quantity × rate) / 1000 to the item price.
var perThousand = decimal.NewFromInt(1000)

// parseAmount reads a user-entered numeric string, treating anything
// unparsable (or blank) as zero rather than an error.
func parseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ItemPrice sums (quantity × rate)/1000 in INR across every row of every
// category of one item.
func ItemPrice(it Item) decimal.Decimal {
	total := decimal.Zero
	for _, c := range enum.Categories {
		for _, r := range it.Assignments[c] {
			q := parseAmount(r.Quantity)
			rate := parseAmount(r.Rate)
			total = total.Add(q.Mul(rate).Div(perThousand))
		}
	}
	return total
}

// TotalPrice sums ItemPrice across all items of the draft.
func TotalPrice(d Draft) decimal.Decimal {
	total := decimal.Zero
	for _, it := range d.Items {
		total = total.Add(ItemPrice(it))
	}
	return total
}
