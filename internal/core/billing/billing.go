// Package billing derives invoice totals from line items.
package billing

import "github.com/shopspring/decimal"

// Places money is stored with
const Places = 2

// Line the part of an invoice item the totals depend on
type Line struct {
	Quantity decimal.Decimal
	Rate     decimal.Decimal
	Amount   decimal.Decimal
}

// Totals derived invoice amounts
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Rounded the line at the scale it is stored with
func (l Line) Rounded() Line {
	return Line{
		Quantity: l.Quantity.Round(Places),
		Rate:     l.Rate.Round(Places),
		Amount:   l.Amount.Round(Places),
	}
}

// ComputeTotals sums the stored (rounded) item amounts exactly, so the subtotal always equals
// the sum of the persisted items. A nil tax counts as zero.
func ComputeTotals(items []Line, tax *decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Rounded().Amount)
	}
	return WithTax(subtotal, tax)
}

// ExceedsScale reports whether d carries more decimal places than money is stored with
func ExceedsScale(d decimal.Decimal) bool {
	return !d.Equal(d.Round(Places))
}

// WithTax recomputes the total for an unchanged subtotal
func WithTax(subtotal decimal.Decimal, tax *decimal.Decimal) Totals {
	t := decimal.Zero
	if tax != nil {
		t = *tax
	}
	subtotal = subtotal.Round(Places)
	t = t.Round(Places)
	return Totals{
		Subtotal: subtotal,
		Tax:      t,
		Total:    subtotal.Add(t),
	}
}

// Mismatched returns the indexes of lines whose amount differs from quantity * rate
func Mismatched(items []Line) []int {
	var out []int
	for i, item := range items {
		if !item.Quantity.Mul(item.Rate).Round(Places).Equal(item.Amount.Round(Places)) {
			out = append(out, i)
		}
	}
	return out
}
