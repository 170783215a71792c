package port

import "docdesk/internal/domain"

// Printer renders a document into a printable file.
type Printer interface {
	Print(doc *domain.Document) ([]byte, error)
}
