package domain

import "strings"

// DocumentKind selects one of the two supported business documents.
type DocumentKind string

const (
	KindQuotation DocumentKind = "quotation"
	KindInvoice   DocumentKind = "invoice"
)

// Kinds lists every supported kind.
var Kinds = []DocumentKind{KindQuotation, KindInvoice}

// Valid reports whether k is a supported kind.
func (k DocumentKind) Valid() bool {
	return k == KindQuotation || k == KindInvoice
}

// Title returns the capitalized kind name, e.g. "Quotation".
func (k DocumentKind) Title() string {
	s := string(k)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Initial returns the first letter of the title, used in sheet names.
func (k DocumentKind) Initial() string {
	t := k.Title()
	if t == "" {
		return ""
	}
	return t[:1]
}

// Prefix returns the document number prefix for the kind.
func (k DocumentKind) Prefix() string {
	if k == KindInvoice {
		return "INV"
	}
	return "QUO"
}

// PaymentStatus tracks how much of an invoice has been paid.
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
	PaymentOverdue PaymentStatus = "overdue"
)

// ValidPaymentStatuses maps each accepted status to true.
var ValidPaymentStatuses = map[PaymentStatus]bool{
	PaymentUnpaid:  true,
	PaymentPartial: true,
	PaymentPaid:    true,
	PaymentOverdue: true,
}

// Invoice payment defaults applied when the form leaves them empty.
const (
	DefaultPaymentStatus = PaymentUnpaid
	DefaultPaymentTerms  = "immediate"
	DefaultPaymentMethod = "bank"
)

// Severity tags a user-visible notice.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)
