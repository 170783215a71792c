// Package docnum generates human-facing document numbers.
package docnum

import (
	"time"

	"docdesk/internal/domain"
)

const stampLayout = "200601021504"

// Generate returns the kind prefix followed by the local date and minute of
// now, e.g. QUO202610151430.
func Generate(kind domain.DocumentKind, now time.Time) string {
	return kind.Prefix() + now.Format(stampLayout)
}
