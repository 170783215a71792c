// Package printout renders a document as a printable PDF.
package printout

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"docdesk/internal/domain"
	"docdesk/internal/gst"
)

const displayDateLayout = "02 Jan 2006"

var daysTerm = regexp.MustCompile(`(\d+)days`)

// Field is a labelled value on the printout.
type Field struct {
	Label string
	Value string
}

// ItemRow holds the display values of one item row.
type ItemRow struct {
	SNo         string
	Description string
	GSTRate     string
	Quantity    string
	Rate        string
	Amount      string
	CGST        string
	SGST        string
	Total       string
}

// View is the fully formatted content of a printout, independent of the
// output format.
type View struct {
	Title        string
	StatusBadge  string
	CompanyName  string
	AddressLines []string
	Meta         []Field
	FromHeading  string
	ToHeading    string
	ClientLines  []string
	Items        []ItemRow
	Totals       []Field
	PaymentInfo  []Field
	TermsLines   []string
}

// BuildView formats doc for printing.
func BuildView(doc *domain.Document) View {
	title := doc.Kind.Title()
	v := View{
		Title:        title,
		CompanyName:  doc.CompanyName,
		AddressLines: splitLines(doc.CompanyAddress),
		FromHeading:  title + " From",
		ToHeading:    title + " To",
		Meta: []Field{
			{Label: title + " No:", Value: doc.DocumentNo},
			{Label: title + " Date:", Value: displayDate(doc.DocumentDate)},
		},
		TermsLines: splitLines(doc.TermsConditions),
	}

	if doc.Invoice != nil {
		status := doc.Invoice.PaymentStatus
		if status == "" {
			status = domain.DefaultPaymentStatus
		}
		v.StatusBadge = capitalize(string(status))
		v.Meta = append(v.Meta, Field{Label: "Due Date:", Value: displayDate(doc.Invoice.DueDate)})
	} else {
		v.Meta = append(v.Meta, Field{Label: "Valid Till:", Value: displayDate(doc.KindDate())})
	}

	v.ClientLines = append(v.ClientLines, doc.ClientName, doc.ClientEmail)
	if strings.TrimSpace(doc.ClientPhone) != "" {
		v.ClientLines = append(v.ClientLines, doc.ClientPhone)
	}
	if strings.TrimSpace(doc.ClientLocation) != "" {
		v.ClientLines = append(v.ClientLines, doc.ClientLocation)
	}

	for i, item := range doc.Items {
		a := item.Amounts().Rounded()
		v.Items = append(v.Items, ItemRow{
			SNo:         strconv.Itoa(i + 1),
			Description: item.Description,
			GSTRate:     gst.Percent(item.GSTRate),
			Quantity:    item.Quantity.String(),
			Rate:        gst.Format2(item.Rate),
			Amount:      gst.Format2(a.Amount),
			CGST:        gst.Format2(a.CGST),
			SGST:        gst.Format2(a.SGST),
			Total:       gst.Format2(a.Total),
		})
	}

	totals := doc.Totals()
	v.Totals = []Field{
		{Label: "Subtotal", Value: gst.Format2(totals.Subtotal)},
		{Label: "CGST", Value: gst.Format2(totals.TotalCGST)},
		{Label: "SGST", Value: gst.Format2(totals.TotalSGST)},
	}
	if doc.Invoice != nil {
		if doc.AdvanceAmount().IsPositive() {
			v.Totals = append(v.Totals, Field{Label: "Advance Received", Value: gst.Format2(doc.AdvanceAmount())})
		}
		v.Totals = append(v.Totals, Field{Label: "Amount Due (INR)", Value: gst.Format2(doc.AmountDue())})

		if doc.Invoice.PaymentTerms != "" {
			v.PaymentInfo = []Field{
				{Label: "Payment Terms:", Value: paymentTerms(doc.Invoice.PaymentTerms)},
				{Label: "Payment Method:", Value: capitalize(doc.Invoice.PaymentMethod)},
			}
		}
	} else {
		v.Totals = append(v.Totals, Field{Label: "Grand Total (INR)", Value: gst.Format2(totals.GrandTotal)})
	}

	return v
}

// paymentTerms turns stored terms such as "30days" or "immediate" into
// readable text.
func paymentTerms(terms string) string {
	out := daysTerm.ReplaceAllString(terms, "$1 days")
	return strings.Replace(out, "immediate", "Due Immediately", 1)
}

func displayDate(t time.Time) string {
	if t.IsZero() {
		return "Not specified"
	}
	return t.Format(displayDateLayout)
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
