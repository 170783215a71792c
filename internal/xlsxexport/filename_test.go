package xlsxexport_test

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"docdesk/internal/domain"
	"docdesk/internal/xlsxexport"
)

func bytesReader(b []byte) io.Reader {
	return bytes.NewReader(b)
}

func TestBuildFilename(t *testing.T) {
	at := time.Date(2026, 3, 7, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "Quotation_QUO202603070905_2026-03-07.xlsx",
		xlsxexport.BuildFilename(domain.KindQuotation, "QUO202603070905", at))
	assert.Equal(t, "Invoice_INV_2026_01_2026-03-07.xlsx",
		xlsxexport.BuildFilename(domain.KindInvoice, "INV/2026/01", at))
	assert.Equal(t, "All_Invoices_2026-03-07.xlsx", xlsxexport.BuildBulkFilename(domain.KindInvoice, at))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "a_b-c", xlsxexport.SanitizeFilename("  a / b-c  "))
	assert.Len(t, xlsxexport.SanitizeFilename(string(bytes.Repeat([]byte("x"), 150))), 100)
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "exports/acme-traders/Quotation_Q1_2026-03-07.xlsx",
		xlsxexport.ObjectKey("exports/", "Acme Traders", "Quotation_Q1_2026-03-07.xlsx"))
	assert.Equal(t, "documents/x.xlsx", xlsxexport.ObjectKey("", "  ", "x.xlsx"))
}
