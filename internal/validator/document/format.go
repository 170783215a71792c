package document

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"docdesk/internal/domain"
	"docdesk/internal/gst"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// formatRule checks the shape of field values. Blank values are left to the
// required rules.
type formatRule struct {
	ruleKey  string
	ruleName string
	check    func(*Input) []FieldError
}

func (r *formatRule) RuleKey() string  { return r.ruleKey }
func (r *formatRule) RuleName() string { return r.ruleName }

func (r *formatRule) Check(in *Input) []FieldError {
	return r.check(in)
}

func dateCheck(ruleKey, field, value, label string) []FieldError {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	if _, err := ParseDate(value); err != nil {
		return []FieldError{{
			Field: field, RuleKey: ruleKey,
			Message: fmt.Sprintf("%s must be a date in YYYY-MM-DD form", label),
		}}
	}
	return nil
}

// FormatRules returns the value-shape rules.
func FormatRules() []*formatRule {
	return []*formatRule{
		{
			ruleKey: "fmt.client_email", ruleName: "Format: Client Email",
			check: func(in *Input) []FieldError {
				email := strings.TrimSpace(in.Form.ClientEmail)
				if email == "" || emailPattern.MatchString(email) {
					return nil
				}
				return []FieldError{{
					Field: FieldClientEmail, RuleKey: "fmt.client_email",
					Message: "Please enter a valid email address",
				}}
			},
		},
		{
			ruleKey: "fmt.document_date", ruleName: "Format: Document Date",
			check: func(in *Input) []FieldError {
				return dateCheck("fmt.document_date", FieldDocumentDate, in.Form.DocumentDate, "Document date")
			},
		},
		{
			ruleKey: "fmt.kind_date", ruleName: "Format: Valid Till / Due Date",
			check: func(in *Input) []FieldError {
				field, value := in.KindDate()
				label := "Valid till date"
				if field == FieldDueDate {
					label = "Due date"
				}
				return dateCheck("fmt.kind_date", field, value, label)
			},
		},
		{
			ruleKey: "fmt.line_item.gst_rate", ruleName: "Format: Line Item GST Rate",
			check: func(in *Input) []FieldError {
				var errs []FieldError
				for _, i := range in.KeptItems() {
					rate, err := ParseRate(in.Form.Items[i].GSTRate)
					if err == nil && gst.ValidRate(rate) {
						continue
					}
					errs = append(errs, FieldError{
						Field: ItemField(i, "gst_rate"), RuleKey: "fmt.line_item.gst_rate",
						Message: fmt.Sprintf("GST rate must be one of %v percent", gst.Rates),
					})
				}
				return errs
			},
		},
		{
			ruleKey: "fmt.line_item.quantity", ruleName: "Format: Line Item Quantity",
			check: func(in *Input) []FieldError {
				var errs []FieldError
				for _, i := range in.KeptItems() {
					if ParseNumber(in.Form.Items[i].Quantity).IsPositive() {
						continue
					}
					errs = append(errs, FieldError{
						Field: ItemField(i, "quantity"), RuleKey: "fmt.line_item.quantity",
						Message: "Quantity must be greater than zero",
					})
				}
				return errs
			},
		},
		{
			ruleKey: "fmt.invoice.advance_amount", ruleName: "Format: Advance Amount",
			check: func(in *Input) []FieldError {
				raw := strings.TrimSpace(in.Form.AdvanceAmount)
				if in.Kind != domain.KindInvoice || raw == "" {
					return nil
				}
				d, err := decimal.NewFromString(raw)
				if err == nil && !d.IsNegative() {
					return nil
				}
				return []FieldError{{
					Field: FieldAdvanceAmount, RuleKey: "fmt.invoice.advance_amount",
					Message: "Advance amount must be a number of zero or more",
				}}
			},
		},
		{
			ruleKey: "fmt.invoice.payment_status", ruleName: "Format: Payment Status",
			check: func(in *Input) []FieldError {
				raw := strings.ToLower(strings.TrimSpace(in.Form.PaymentStatus))
				if in.Kind != domain.KindInvoice || raw == "" || domain.ValidPaymentStatuses[domain.PaymentStatus(raw)] {
					return nil
				}
				return []FieldError{{
					Field: FieldPaymentStatus, RuleKey: "fmt.invoice.payment_status",
					Message: fmt.Sprintf("Payment status %q is not recognised", raw),
				}}
			},
		},
	}
}
