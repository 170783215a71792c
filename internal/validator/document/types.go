package document

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"docdesk/internal/domain"
)

// Field names reported in FieldError.Field. They match the FormInput JSON keys.
const (
	FieldDocumentDate   = "document_date"
	FieldValidTillDate  = "valid_till_date"
	FieldDueDate        = "due_date"
	FieldCompanyName    = "company_name"
	FieldCompanyAddress = "company_address"
	FieldClientName     = "client_name"
	FieldClientEmail    = "client_email"
	FieldItems          = "items"
	FieldAdvanceAmount  = "advance_amount"
	FieldPaymentStatus  = "payment_status"
)

// Input is what every rule inspects: the submitted form and the kind it is
// being validated as.
type Input struct {
	Kind domain.DocumentKind
	Form *domain.FormInput
}

// KindDate returns the field name and raw value of the kind-specific date.
func (in *Input) KindDate() (field, value string) {
	if in.Kind == domain.KindInvoice {
		return FieldDueDate, in.Form.DueDate
	}
	return FieldValidTillDate, in.Form.ValidTillDate
}

// KeptItems returns the indices of items that carry a description and a
// positive rate. All other rows are dropped before totals are computed.
func (in *Input) KeptItems() []int {
	var kept []int
	for i := range in.Form.Items {
		item := &in.Form.Items[i]
		if strings.TrimSpace(item.Description) != "" && ParseNumber(item.Rate).IsPositive() {
			kept = append(kept, i)
		}
	}
	return kept
}

// FieldError describes one invalid field.
type FieldError struct {
	Field   string `json:"field"`
	RuleKey string `json:"rule_key"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ItemField returns the field path of a property on item i.
func ItemField(i int, name string) string {
	return fmt.Sprintf("items[%d].%s", i, name)
}

// ParseNumber parses a form number. Blank or malformed input counts as zero,
// the same as an empty numeric field.
func ParseNumber(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseRate parses a GST slab. Blank input counts as 0%.
func ParseRate(s string) (int, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// ParseDate parses a YYYY-MM-DD calendar date in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(domain.DateLayout, strings.TrimSpace(s))
}
