package xlsxexport

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"docdesk/internal/domain"
	"docdesk/internal/gst"
)

// ItemHeader is the header row of the items table on a detail sheet.
var ItemHeader = []string{
	"S.No", "Description", "GST Rate (%)", "Quantity", "Rate (₹)",
	"Amount (₹)", "CGST (₹)", "SGST (₹)", "Total (₹)",
}

var detailColumnWidths = []float64{8, 35, 12, 10, 12, 12, 12, 12, 12}

const summaryColumnWidth = 25

// row is one spreadsheet row; nil cells stay empty.
type row []interface{}

// totalsRow places a label in column F and its value in column G.
func totalsRow(label, value string) row {
	return row{nil, nil, nil, nil, nil, label, value}
}

// detailRows lays out a single document top to bottom.
func detailRows(doc *domain.Document, generatedAt time.Time) []row {
	title := doc.Kind.Title()
	rows := []row{
		{strings.ToUpper(doc.CompanyName)},
		{strings.ToUpper(title)},
		{},
		{"Company Information:"},
		{"Name:", doc.CompanyName},
		{"Address:", strings.ReplaceAll(doc.CompanyAddress, "\n", ", ")},
		{},
		{title + " Details:"},
		{title + " No:", doc.DocumentNo},
		{title + " Date:", formatDate(doc.DocumentDate)},
	}

	switch {
	case doc.Quotation != nil:
		rows = append(rows, row{"Valid Till:", formatDate(doc.Quotation.ValidTillDate)})
	case doc.Invoice != nil:
		rows = append(rows, row{"Due Date:", formatDate(doc.Invoice.DueDate)})
		if doc.Invoice.PaymentStatus != "" {
			rows = append(rows, row{"Payment Status:", capitalize(string(doc.Invoice.PaymentStatus))})
		}
		if doc.Invoice.PaymentTerms != "" {
			rows = append(rows, row{"Payment Terms:", doc.Invoice.PaymentTerms})
		}
	}

	rows = append(rows,
		row{},
		row{"Client Information:"},
		row{"Name:", doc.ClientName},
		row{"Email:", doc.ClientEmail},
		row{"Phone:", orNotProvided(doc.ClientPhone)},
		row{"Location:", orNotProvided(doc.ClientLocation)},
		row{},
		row{"ITEMS DETAILS"},
	)

	header := make(row, len(ItemHeader))
	for i, h := range ItemHeader {
		header[i] = h
	}
	rows = append(rows, header)

	for i := range doc.Items {
		item := &doc.Items[i]
		l := item.Amounts().Rounded()
		rows = append(rows, row{
			i + 1,
			item.Description,
			gst.Percent(item.GSTRate),
			item.Quantity.String(),
			money(item.Rate),
			money(l.Amount),
			money(l.CGST),
			money(l.SGST),
			money(l.Total),
		})
	}

	totals := doc.Totals()
	rows = append(rows,
		row{},
		totalsRow("Subtotal:", money(totals.Subtotal)),
		totalsRow("Total CGST:", money(totals.TotalCGST)),
		totalsRow("Total SGST:", money(totals.TotalSGST)),
	)
	if advance := doc.AdvanceAmount(); advance.IsPositive() {
		rows = append(rows,
			totalsRow("Advance Received:", money(advance)),
			totalsRow("AMOUNT DUE:", money(doc.AmountDue())),
		)
	} else {
		rows = append(rows, totalsRow("GRAND TOTAL:", money(totals.GrandTotal)))
	}

	rows = append(rows, row{}, row{"Terms & Conditions:"})
	for _, line := range termsLines(doc.TermsConditions) {
		rows = append(rows, row{line})
	}
	rows = append(rows, row{}, row{"Generated on:", formatTimestamp(generatedAt)})
	return rows
}

// summaryRows lays out the collection overview of a bulk export.
func summaryRows(kind domain.DocumentKind, docs []domain.Document, generatedAt time.Time) []row {
	title := kind.Title()

	total := decimal.Zero
	for i := range docs {
		total = total.Add(docs[i].Totals().GrandTotal)
	}

	header := row{
		title + " No", "Date", "Company", "Client Name", "Client Email", "Items Count",
		"Subtotal (₹)", "CGST (₹)", "SGST (₹)", "Grand Total (₹)",
	}
	if kind == domain.KindInvoice {
		header = append(header, "Payment Status", "Amount Due (₹)")
	}

	rows := []row{
		{strings.ToUpper(title) + " SUMMARY REPORT"},
		{"Generated on:", formatTimestamp(generatedAt)},
		{fmt.Sprintf("Total %ss:", title), len(docs)},
		{"Total Amount:", "₹" + money(total)},
		{},
		header,
	}

	for i := range docs {
		d := &docs[i]
		t := d.Totals()
		r := row{
			d.DocumentNo,
			d.DocumentDate.Format(domain.DateLayout),
			d.CompanyName,
			d.ClientName,
			d.ClientEmail,
			len(d.Items),
			money(t.Subtotal),
			money(t.TotalCGST),
			money(t.TotalSGST),
			money(t.GrandTotal),
		}
		if kind == domain.KindInvoice {
			status := string(domain.DefaultPaymentStatus)
			if d.Invoice != nil && d.Invoice.PaymentStatus != "" {
				status = string(d.Invoice.PaymentStatus)
			}
			r = append(r, status, money(d.AmountDue()))
		}
		rows = append(rows, r)
	}
	return rows
}

// writeRows writes rows from A1 downwards.
func writeRows(f *excelize.File, sheet string, rows []row) error {
	for i, r := range rows {
		if len(r) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := []interface{}(r)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("writing %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

func setColumnWidths(f *excelize.File, sheet string, widths []float64) error {
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return err
		}
	}
	return nil
}

func summaryColumnWidths(kind domain.DocumentKind) []float64 {
	n := 10
	if kind == domain.KindInvoice {
		n = 12
	}
	widths := make([]float64, n)
	for i := range widths {
		widths[i] = summaryColumnWidth
	}
	return widths
}
