package xlsxexport

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ItemRow is one row of the items table as read back from a detail sheet.
type ItemRow struct {
	No          int
	Description string
	GSTRate     int
	Quantity    decimal.Decimal
	Rate        decimal.Decimal
	Amount      decimal.Decimal
	CGST        decimal.Decimal
	SGST        decimal.Decimal
	Total       decimal.Decimal
}

// ReadItems parses the items table of a detail sheet. The table starts below
// the S.No header and ends at the first empty row.
func ReadItems(f *excelize.File, sheet string) ([]ItemRow, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsxexport.ReadItems: %w", err)
	}

	start := -1
	for i, r := range rows {
		if len(r) > 0 && r[0] == ItemHeader[0] {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil, fmt.Errorf("xlsxexport.ReadItems: no items table on sheet %q", sheet)
	}

	var items []ItemRow
	for i := start; i < len(rows); i++ {
		r := rows[i]
		if len(r) == 0 || strings.TrimSpace(r[0]) == "" {
			break
		}
		item, err := parseItemRow(r)
		if err != nil {
			return nil, fmt.Errorf("xlsxexport.ReadItems: row %d: %w", i+1, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func parseItemRow(r []string) (ItemRow, error) {
	if len(r) < len(ItemHeader) {
		return ItemRow{}, fmt.Errorf("expected %d cells, got %d", len(ItemHeader), len(r))
	}
	var (
		item ItemRow
		err  error
	)
	if item.No, err = strconv.Atoi(strings.TrimSpace(r[0])); err != nil {
		return ItemRow{}, fmt.Errorf("S.No: %w", err)
	}
	item.Description = r[1]
	if item.GSTRate, err = strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(r[2]), "%")); err != nil {
		return ItemRow{}, fmt.Errorf("GST rate: %w", err)
	}
	for idx, dst := range map[int]*decimal.Decimal{
		3: &item.Quantity, 4: &item.Rate, 5: &item.Amount,
		6: &item.CGST, 7: &item.SGST, 8: &item.Total,
	} {
		v, err := decimal.NewFromString(strings.TrimSpace(r[idx]))
		if err != nil {
			return ItemRow{}, fmt.Errorf("%s: %w", ItemHeader[idx], err)
		}
		*dst = v
	}
	return item, nil
}
