package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"docdesk/internal/domain"
	"docdesk/internal/gst"
	"docdesk/internal/validator/document"
)

// RowAmounts holds the display amounts of one form row.
type RowAmounts struct {
	Amount string `json:"amount"`
	CGST   string `json:"cgst"`
	SGST   string `json:"sgst"`
	Total  string `json:"total"`
}

// Calculation is the live totals panel of a form being edited.
type Calculation struct {
	Rows       []RowAmounts `json:"rows"`
	Subtotal   string       `json:"subtotal"`
	TotalCGST  string       `json:"total_cgst"`
	TotalSGST  string       `json:"total_sgst"`
	GrandTotal string       `json:"grand_total"`

	// Set for invoices only.
	AdvanceAmount string `json:"advance_amount,omitempty"`
	AmountDue     string `json:"amount_due,omitempty"`
	ShowAdvance   bool   `json:"show_advance,omitempty"`
}

// Calculate computes row and document amounts for every row of the form as
// typed, without validating it. Unparseable numbers count as zero.
func (s *deskService) Calculate(kind domain.DocumentKind, form *domain.FormInput) (*Calculation, error) {
	if err := checkKind("Calculate", kind); err != nil {
		return nil, err
	}
	if form == nil {
		form = &domain.FormInput{}
	}
	return calculate(kind, form), nil
}

func calculate(kind domain.DocumentKind, form *domain.FormInput) *Calculation {
	lines := make([]gst.LineAmounts, len(form.Items))
	calc := &Calculation{Rows: make([]RowAmounts, len(form.Items))}

	for i := range form.Items {
		item := &form.Items[i]
		rate, err := document.ParseRate(item.GSTRate)
		if err != nil {
			rate = 0
		}
		lines[i] = gst.ComputeLineItem(document.ParseNumber(item.Quantity), document.ParseNumber(item.Rate), rate)
		r := lines[i].Rounded()
		calc.Rows[i] = RowAmounts{
			Amount: gst.Format2(r.Amount),
			CGST:   gst.Format2(r.CGST),
			SGST:   gst.Format2(r.SGST),
			Total:  gst.Format2(r.Total),
		}
	}

	totals := gst.ComputeTotals(lines)
	calc.Subtotal = gst.Format2(totals.Subtotal)
	calc.TotalCGST = gst.Format2(totals.TotalCGST)
	calc.TotalSGST = gst.Format2(totals.TotalSGST)
	calc.GrandTotal = gst.Format2(totals.GrandTotal)

	if kind == domain.KindInvoice {
		advance := decimal.Zero
		if strings.TrimSpace(form.AdvanceAmount) != "" {
			advance = document.ParseNumber(form.AdvanceAmount)
		}
		calc.AdvanceAmount = gst.Format2(advance)
		calc.AmountDue = gst.Format2(gst.AmountDue(totals.GrandTotal, advance))
		calc.ShowAdvance = advance.IsPositive()
	}
	return calc
}
