package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"docdesk/internal/gst"
)

// DateLayout is the calendar date format used by forms and storage.
const DateLayout = "2006-01-02"

// LineItem is one billed row. Amounts are derived through Amounts and are
// never stored.
type LineItem struct {
	Description string          `json:"description"`
	GSTRate     int             `json:"gst_rate"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
}

// Amounts computes the full-precision amount, CGST, SGST and total.
func (li LineItem) Amounts() gst.LineAmounts {
	return gst.ComputeLineItem(li.Quantity, li.Rate, li.GSTRate)
}

// QuotationDetails carries the quotation-only fields.
type QuotationDetails struct {
	ValidTillDate time.Time `json:"valid_till_date"`
}

// InvoiceDetails carries the invoice-only fields.
type InvoiceDetails struct {
	DueDate       time.Time       `json:"due_date"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	PaymentTerms  string          `json:"payment_terms"`
	PaymentMethod string          `json:"payment_method"`
	AdvanceAmount decimal.Decimal `json:"advance_amount"`
}

// Document is a validated quotation or invoice. Exactly one of Quotation and
// Invoice is set, matching Kind.
type Document struct {
	ID              uuid.UUID         `json:"id"`
	Kind            DocumentKind      `json:"kind"`
	DocumentNo      string            `json:"document_no"`
	DocumentDate    time.Time         `json:"document_date"`
	CompanyName     string            `json:"company_name"`
	CompanyAddress  string            `json:"company_address"`
	ClientName      string            `json:"client_name"`
	ClientEmail     string            `json:"client_email"`
	ClientPhone     string            `json:"client_phone,omitempty"`
	ClientLocation  string            `json:"client_location,omitempty"`
	TermsConditions string            `json:"terms_conditions"`
	Items           []LineItem        `json:"items"`
	Quotation       *QuotationDetails `json:"quotation,omitempty"`
	Invoice         *InvoiceDetails   `json:"invoice,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

// Lines returns the derived amounts of every item, in item order.
func (d *Document) Lines() []gst.LineAmounts {
	lines := make([]gst.LineAmounts, len(d.Items))
	for i := range d.Items {
		lines[i] = d.Items[i].Amounts()
	}
	return lines
}

// Totals recomputes the document totals from its items.
func (d *Document) Totals() gst.Totals {
	return gst.ComputeTotals(d.Lines())
}

// AdvanceAmount returns the advance received, zero for quotations.
func (d *Document) AdvanceAmount() decimal.Decimal {
	if d.Invoice == nil {
		return decimal.Zero
	}
	return d.Invoice.AdvanceAmount
}

// AmountDue returns the grand total less the advance. For quotations it is
// the grand total.
func (d *Document) AmountDue() decimal.Decimal {
	return gst.AmountDue(d.Totals().GrandTotal, d.AdvanceAmount())
}

// KindDate returns the valid-till date of a quotation or the due date of an
// invoice.
func (d *Document) KindDate() time.Time {
	switch {
	case d.Quotation != nil:
		return d.Quotation.ValidTillDate
	case d.Invoice != nil:
		return d.Invoice.DueDate
	}
	return time.Time{}
}

// Clone returns a deep copy so callers cannot mutate stored documents.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := *d
	out.Items = append([]LineItem(nil), d.Items...)
	if d.Quotation != nil {
		q := *d.Quotation
		out.Quotation = &q
	}
	if d.Invoice != nil {
		inv := *d.Invoice
		out.Invoice = &inv
	}
	return &out
}

// Form converts the document back into form input so it can be edited and
// resubmitted as a new candidate.
func (d *Document) Form() FormInput {
	f := FormInput{
		DocumentNo:      d.DocumentNo,
		DocumentDate:    formatDate(d.DocumentDate),
		CompanyName:     d.CompanyName,
		CompanyAddress:  d.CompanyAddress,
		ClientName:      d.ClientName,
		ClientEmail:     d.ClientEmail,
		ClientPhone:     d.ClientPhone,
		ClientLocation:  d.ClientLocation,
		TermsConditions: d.TermsConditions,
		Items:           make([]FormItem, 0, len(d.Items)),
	}
	for i := range d.Items {
		item := &d.Items[i]
		f.Items = append(f.Items, FormItem{
			Description: item.Description,
			GSTRate:     strconv.Itoa(item.GSTRate),
			Quantity:    item.Quantity.String(),
			Rate:        item.Rate.String(),
		})
	}
	if d.Quotation != nil {
		f.ValidTillDate = formatDate(d.Quotation.ValidTillDate)
	}
	if d.Invoice != nil {
		f.DueDate = formatDate(d.Invoice.DueDate)
		f.PaymentStatus = string(d.Invoice.PaymentStatus)
		f.PaymentTerms = d.Invoice.PaymentTerms
		f.PaymentMethod = d.Invoice.PaymentMethod
		f.AdvanceAmount = d.Invoice.AdvanceAmount.String()
	}
	return f
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// FormItem is one raw item row as typed into the form.
type FormItem struct {
	Description string `json:"description"`
	GSTRate     string `json:"gst_rate"`
	Quantity    string `json:"quantity"`
	Rate        string `json:"rate"`
}

// FormInput is the raw field-value bag the presentation layer submits. Every
// value is kept as typed; the validator parses and checks it.
type FormInput struct {
	DocumentNo      string     `json:"document_no"`
	DocumentDate    string     `json:"document_date"`
	ValidTillDate   string     `json:"valid_till_date,omitempty"`
	DueDate         string     `json:"due_date,omitempty"`
	CompanyName     string     `json:"company_name"`
	CompanyAddress  string     `json:"company_address"`
	ClientName      string     `json:"client_name"`
	ClientEmail     string     `json:"client_email"`
	ClientPhone     string     `json:"client_phone,omitempty"`
	ClientLocation  string     `json:"client_location,omitempty"`
	TermsConditions string     `json:"terms_conditions"`
	PaymentStatus   string     `json:"payment_status,omitempty"`
	PaymentTerms    string     `json:"payment_terms,omitempty"`
	PaymentMethod   string     `json:"payment_method,omitempty"`
	AdvanceAmount   string     `json:"advance_amount,omitempty"`
	Items           []FormItem `json:"items"`
}

// HasBasicData reports whether the form carries a company or client name,
// the minimum for a draft to be worth keeping.
func (f *FormInput) HasBasicData() bool {
	return strings.TrimSpace(f.CompanyName) != "" || strings.TrimSpace(f.ClientName) != ""
}

// Draft is the single autosaved snapshot of an unsaved form.
type Draft struct {
	Kind    DocumentKind `json:"kind"`
	Form    FormInput    `json:"form"`
	SavedAt time.Time    `json:"saved_at"`
}

// Stats summarizes a kind's collection.
type Stats struct {
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// Notice is a user-visible outcome message.
type Notice struct {
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
	At       time.Time `json:"at"`
}
