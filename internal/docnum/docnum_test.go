package docnum_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"docdesk/internal/docnum"
	"docdesk/internal/domain"
)

func TestGenerate(t *testing.T) {
	now := time.Date(2026, 3, 7, 9, 5, 59, 0, time.UTC)

	assert.Equal(t, "QUO202603070905", docnum.Generate(domain.KindQuotation, now))
	assert.Equal(t, "INV202603070905", docnum.Generate(domain.KindInvoice, now))
}
