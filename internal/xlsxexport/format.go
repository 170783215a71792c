package xlsxexport

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"docdesk/internal/gst"
)

const (
	displayDateLayout = "02 Jan 2006"
	timestampLayout   = "2/1/2006, 3:04:05 pm"
	notProvided       = "Not provided"
	notSpecified      = "Not specified"
)

func formatDate(t time.Time) string {
	if t.IsZero() {
		return notSpecified
	}
	return t.Format(displayDateLayout)
}

func formatTimestamp(t time.Time) string {
	return t.Format(timestampLayout)
}

func money(d decimal.Decimal) string {
	return gst.Format2(d)
}

func orNotProvided(s string) string {
	if strings.TrimSpace(s) == "" {
		return notProvided
	}
	return s
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// termsLines splits terms text into trimmed lines, dropping blank ones.
func termsLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
