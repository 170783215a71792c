// Package gst computes GST line amounts and document totals.
//
// The full GST rate on a line is split evenly into a central (CGST) and a
// state (SGST) component. All values are kept at full precision; callers round
// to two decimals only when displaying or exporting.
package gst

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Rates lists the GST slabs accepted on a line item, in display order.
var Rates = []int{0, 5, 12, 18, 28}

// DefaultRate is the slab preselected on a new line item.
const DefaultRate = 18

// splitDivisor turns a full GST percentage into one half of it.
var splitDivisor = decimal.NewFromInt(200)

// ValidRate reports whether rate is one of the accepted GST slabs.
func ValidRate(rate int) bool {
	for _, r := range Rates {
		if r == rate {
			return true
		}
	}
	return false
}

// LineAmounts holds the derived amounts of a single line item.
type LineAmounts struct {
	Amount decimal.Decimal `json:"amount"`
	CGST   decimal.Decimal `json:"cgst"`
	SGST   decimal.Decimal `json:"sgst"`
	Total  decimal.Decimal `json:"total"`
}

// Rounded returns the amounts rounded to two decimals for display.
func (l LineAmounts) Rounded() LineAmounts {
	return LineAmounts{
		Amount: Round2(l.Amount),
		CGST:   Round2(l.CGST),
		SGST:   Round2(l.SGST),
		Total:  Round2(l.Total),
	}
}

// Totals holds the aggregated amounts of a document.
type Totals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	TotalCGST  decimal.Decimal `json:"total_cgst"`
	TotalSGST  decimal.Decimal `json:"total_sgst"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// Rounded returns the totals rounded to two decimals for display.
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal:   Round2(t.Subtotal),
		TotalCGST:  Round2(t.TotalCGST),
		TotalSGST:  Round2(t.TotalSGST),
		GrandTotal: Round2(t.GrandTotal),
	}
}

// ComputeLineItem derives amount, CGST, SGST and total for one line.
// SGST is the same value as CGST; it is never computed separately.
func ComputeLineItem(quantity, rate decimal.Decimal, gstRate int) LineAmounts {
	amount := quantity.Mul(rate)
	half := amount.Mul(decimal.NewFromInt(int64(gstRate))).Div(splitDivisor)
	return LineAmounts{
		Amount: amount,
		CGST:   half,
		SGST:   half,
		Total:  amount.Add(half).Add(half),
	}
}

// ComputeTotals sums the full-precision components of every line.
func ComputeTotals(lines []LineAmounts) Totals {
	var t Totals
	for i := range lines {
		t.Subtotal = t.Subtotal.Add(lines[i].Amount)
		t.TotalCGST = t.TotalCGST.Add(lines[i].CGST)
		t.TotalSGST = t.TotalSGST.Add(lines[i].SGST)
	}
	t.GrandTotal = t.Subtotal.Add(t.TotalCGST).Add(t.TotalSGST)
	return t
}

// AmountDue is the grand total less any advance received. A negative result
// means the client overpaid and is returned as is.
func AmountDue(grandTotal, advance decimal.Decimal) decimal.Decimal {
	return grandTotal.Sub(advance)
}

// Round2 rounds half away from zero to two decimals.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Format2 renders d with exactly two decimals.
func Format2(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Percent renders a GST slab the way it appears on documents, e.g. "18%".
func Percent(rate int) string {
	return strconv.Itoa(rate) + "%"
}
