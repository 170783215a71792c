package xlsxexport

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"docdesk/internal/domain"
)

// ContentType is the MIME type of .xlsx files.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// nonFilename matches characters that are not alphanumeric, hyphen, or underscore.
var nonFilename = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename replaces anything but letters, digits, - and _ with _,
// collapses runs of underscores and truncates to 100 characters.
func SanitizeFilename(name string) string {
	s := nonFilename.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns the file name of a single-document export.
// Format: {Kind}_{document_no}_{YYYY-MM-DD}.xlsx
func BuildFilename(kind domain.DocumentKind, documentNo string, at time.Time) string {
	return fmt.Sprintf("%s_%s_%s.xlsx", kind.Title(), SanitizeFilename(documentNo), at.Format(domain.DateLayout))
}

// BuildBulkFilename returns the file name of a bulk export.
// Format: All_{Kind}s_{YYYY-MM-DD}.xlsx
func BuildBulkFilename(kind domain.DocumentKind, at time.Time) string {
	return fmt.Sprintf("All_%ss_%s.xlsx", kind.Title(), at.Format(domain.DateLayout))
}

// ObjectKey groups an exported file under a slug of group, e.g. the company
// name, so uploads from different businesses do not mix.
func ObjectKey(prefix, group, filename string) string {
	folder := slug.Make(group)
	if folder == "" {
		folder = "documents"
	}
	return prefix + folder + "/" + filename
}
