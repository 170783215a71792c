package document

import (
	"fmt"
	"strings"

	"docdesk/internal/domain"
)

// requiredFieldRule checks that a field is not blank.
type requiredFieldRule struct {
	ruleKey  string
	ruleName string
	field    string
	kind     domain.DocumentKind // empty applies to both kinds
	extract  func(*domain.FormInput) string
}

func (r *requiredFieldRule) RuleKey() string  { return r.ruleKey }
func (r *requiredFieldRule) RuleName() string { return r.ruleName }

func (r *requiredFieldRule) Check(in *Input) []FieldError {
	if r.kind != "" && r.kind != in.Kind {
		return nil
	}
	if strings.TrimSpace(r.extract(in.Form)) != "" {
		return nil
	}
	return []FieldError{{
		Field:   r.field,
		RuleKey: r.ruleKey,
		Message: fmt.Sprintf("%s is required", r.ruleName),
	}}
}

// RequiredFieldRules returns the required-field rules in form order.
func RequiredFieldRules() []*requiredFieldRule {
	return []*requiredFieldRule{
		{
			ruleKey: "req.document_date", ruleName: "Document date", field: FieldDocumentDate,
			extract: func(f *domain.FormInput) string { return f.DocumentDate },
		},
		{
			ruleKey: "req.company_name", ruleName: "Company name", field: FieldCompanyName,
			extract: func(f *domain.FormInput) string { return f.CompanyName },
		},
		{
			ruleKey: "req.company_address", ruleName: "Company address", field: FieldCompanyAddress,
			extract: func(f *domain.FormInput) string { return f.CompanyAddress },
		},
		{
			ruleKey: "req.client_name", ruleName: "Client name", field: FieldClientName,
			extract: func(f *domain.FormInput) string { return f.ClientName },
		},
		{
			ruleKey: "req.client_email", ruleName: "Client email", field: FieldClientEmail,
			extract: func(f *domain.FormInput) string { return f.ClientEmail },
		},
		{
			ruleKey: "req.quotation.valid_till_date", ruleName: "Valid till date", field: FieldValidTillDate,
			kind:    domain.KindQuotation,
			extract: func(f *domain.FormInput) string { return f.ValidTillDate },
		},
		{
			ruleKey: "req.invoice.due_date", ruleName: "Due date", field: FieldDueDate,
			kind:    domain.KindInvoice,
			extract: func(f *domain.FormInput) string { return f.DueDate },
		},
	}
}
