package draft

import (
	"testing"

	"github.com/glasspack/api/internal/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowWith(category, qty, rate string) Row {
	r := NewRow(category)
	r.Name = "X"
	r.Quantity = qty
	r.Rate = rate
	return r
}

// A 100-unit row at rate 50 per thousand prices at exactly 5.00.
func TestItemPricePerThousand(t *testing.T) {
	d := New(false)
	d.Items[0].Assignments[enum.CategoryGlass] = []Row{rowWith(enum.CategoryGlass, "100", "50")}

	got := ItemPrice(d.Items[0])
	assert.True(t, got.Equal(decimal.NewFromInt(5)), "got %s", got)
}

func TestItemPriceSumsAcrossCategories(t *testing.T) {
	d := New(false)
	d.Items[0].Assignments[enum.CategoryGlass] = []Row{rowWith(enum.CategoryGlass, "1000", "12.5")}
	d.Items[0].Assignments[enum.CategoryCaps] = []Row{rowWith(enum.CategoryCaps, "2000", "3")}

	// 12.50 + 6.00
	got := ItemPrice(d.Items[0])
	want, err := decimal.NewFromString("18.5")
	require.NoError(t, err)
	assert.True(t, got.Equal(want), "got %s", got)
}

// Blank and unparsable amounts contribute zero instead of failing.
func TestItemPriceIgnoresUnparsableAmounts(t *testing.T) {
	d := New(false)
	d.Items[0].Assignments[enum.CategoryGlass] = []Row{
		rowWith(enum.CategoryGlass, "", ""),
		rowWith(enum.CategoryGlass, "abc", "50"),
		rowWith(enum.CategoryGlass, "100", "oops"),
	}

	got := ItemPrice(d.Items[0])
	assert.True(t, got.IsZero(), "got %s", got)
}

func TestTotalPriceSumsItems(t *testing.T) {
	d := New(false).AddItem()
	d.Items[0].Assignments[enum.CategoryGlass] = []Row{rowWith(enum.CategoryGlass, "100", "50")}
	d.Items[1].Assignments[enum.CategoryPumps] = []Row{rowWith(enum.CategoryPumps, "400", "25")}

	// 5 + 10
	got := TotalPrice(d)
	assert.True(t, got.Equal(decimal.NewFromInt(15)), "got %s", got)
}

// A fresh draft full of default rows totals zero.
func TestTotalPriceEmptyDraftIsZero(t *testing.T) {
	assert.True(t, TotalPrice(New(false)).IsZero())
}
