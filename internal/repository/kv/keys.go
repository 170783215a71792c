// Package kv implements the document and draft repositories on top of a
// port.KeyValueStore. Each collection and the draft live under one key and
// are rewritten whole on every change.
package kv

import "docdesk/internal/domain"

// Slot names under which the collections and the draft are stored.
const (
	QuotationsKey = "quotations_data"
	InvoicesKey   = "invoices_data"
	DraftKey      = "document_form_draft"
)

// Keys maps each slot to its stored key name.
type Keys struct {
	Quotations string
	Invoices   string
	Draft      string
}

// DefaultKeys returns the slot names with prefix prepended to each.
func DefaultKeys(prefix string) Keys {
	return Keys{
		Quotations: prefix + QuotationsKey,
		Invoices:   prefix + InvoicesKey,
		Draft:      prefix + DraftKey,
	}
}

func (k Keys) collection(kind domain.DocumentKind) string {
	if kind == domain.KindInvoice {
		return k.Invoices
	}
	return k.Quotations
}
