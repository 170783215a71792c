// Package xlsxexport renders quotations and invoices as Excel workbooks.
package xlsxexport

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"docdesk/internal/domain"
)

// SummarySheet is the name of the overview sheet in a bulk export.
const SummarySheet = "Summary"

// DefaultMaxDetailSheets caps how many documents get their own sheet in a
// bulk export. The rest appear on the summary only.
const DefaultMaxDetailSheets = 15

const defaultSheet = "Sheet1"

// Exporter builds workbooks.
type Exporter struct {
	maxDetailSheets int
}

// NewExporter creates an Exporter. A negative maxDetailSheets falls back to
// DefaultMaxDetailSheets.
func NewExporter(maxDetailSheets int) *Exporter {
	if maxDetailSheets < 0 {
		maxDetailSheets = DefaultMaxDetailSheets
	}
	return &Exporter{maxDetailSheets: maxDetailSheets}
}

// ExportOne builds a workbook with one sheet, named after the kind, holding
// the full document.
func (e *Exporter) ExportOne(doc *domain.Document, generatedAt time.Time) (*excelize.File, error) {
	if doc == nil {
		return nil, fmt.Errorf("xlsxexport.ExportOne: %w", domain.ErrNoCurrentDocument)
	}
	f := excelize.NewFile()
	sheet := doc.Kind.Title()
	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("xlsxexport.ExportOne: %w: %v", domain.ErrExport, err)
	}
	if err := writeDetailSheet(f, sheet, doc, generatedAt); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("xlsxexport.ExportOne: %w: %v", domain.ErrExport, err)
	}
	return f, nil
}

// ExportAll builds a workbook with a Summary sheet listing every document and
// one detail sheet for each of the first documents, up to the cap.
func (e *Exporter) ExportAll(kind domain.DocumentKind, docs []domain.Document, generatedAt time.Time) (*excelize.File, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("xlsxexport.ExportAll: %w: %q", domain.ErrInvalidKind, kind)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("xlsxexport.ExportAll: %w", domain.ErrNothingToExport)
	}

	f := excelize.NewFile()
	fail := func(err error) (*excelize.File, error) {
		_ = f.Close()
		return nil, fmt.Errorf("xlsxexport.ExportAll: %w: %v", domain.ErrExport, err)
	}

	if err := f.SetSheetName(defaultSheet, SummarySheet); err != nil {
		return fail(err)
	}
	if err := writeRows(f, SummarySheet, summaryRows(kind, docs, generatedAt)); err != nil {
		return fail(err)
	}
	if err := setColumnWidths(f, SummarySheet, summaryColumnWidths(kind)); err != nil {
		return fail(err)
	}

	n := e.DetailCount(len(docs))
	for i := 0; i < n; i++ {
		name := DetailSheetName(kind, i+1, docs[i].DocumentNo)
		if _, err := f.NewSheet(name); err != nil {
			return fail(err)
		}
		if err := writeDetailSheet(f, name, &docs[i], generatedAt); err != nil {
			return fail(err)
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

// DetailCount returns how many of total documents get a detail sheet.
func (e *Exporter) DetailCount(total int) int {
	if total > e.maxDetailSheets {
		return e.maxDetailSheets
	}
	return total
}

func writeDetailSheet(f *excelize.File, sheet string, doc *domain.Document, generatedAt time.Time) error {
	if err := writeRows(f, sheet, detailRows(doc, generatedAt)); err != nil {
		return err
	}
	return setColumnWidths(f, sheet, detailColumnWidths)
}

// DetailSheetName names the seq-th detail sheet: kind initial, sequence
// number and the last eight characters of the document number. Two document
// numbers sharing their last eight characters still get distinct names
// through the sequence number. A trailing apostrophe, which excelize does not
// allow at the end of a sheet name, becomes an underscore.
func DetailSheetName(kind domain.DocumentKind, seq int, documentNo string) string {
	tail := []rune(documentNo)
	if len(tail) > 8 {
		tail = tail[len(tail)-8:]
	}
	name := sheetNameReplacer.Replace(string(tail))
	if trimmed := strings.TrimRight(name, "'"); len(trimmed) != len(name) {
		name = trimmed + strings.Repeat("_", len(name)-len(trimmed))
	}
	return fmt.Sprintf("%s%d_%s", kind.Initial(), seq, name)
}

// Characters excelize rejects in sheet names.
var sheetNameReplacer = strings.NewReplacer(
	":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_",
)

// Bytes serializes a workbook.
func Bytes(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsxexport.Bytes: %w: %v", domain.ErrExport, err)
	}
	return bytes.Clone(buf.Bytes()), nil
}
