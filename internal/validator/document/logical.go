package document

import (
	"fmt"
)

// logicalRule checks relationships between fields.
type logicalRule struct {
	ruleKey  string
	ruleName string
	check    func(*Input) []FieldError
}

func (r *logicalRule) RuleKey() string  { return r.ruleKey }
func (r *logicalRule) RuleName() string { return r.ruleName }

func (r *logicalRule) Check(in *Input) []FieldError {
	return r.check(in)
}

// LogicalRules returns the cross-field rules.
func LogicalRules() []*logicalRule {
	return []*logicalRule{
		{
			ruleKey: "logic.items.at_least_one", ruleName: "Logical: At Least One Item",
			check: func(in *Input) []FieldError {
				if len(in.KeptItems()) > 0 {
					return nil
				}
				return []FieldError{{
					Field: FieldItems, RuleKey: "logic.items.at_least_one",
					Message: "Please add at least one valid item with description and rate",
				}}
			},
		},
		{
			ruleKey: "logic.kind_date.after_document_date", ruleName: "Logical: Date Order",
			check: func(in *Input) []FieldError {
				docDate, err := ParseDate(in.Form.DocumentDate)
				if err != nil {
					return nil
				}
				field, value := in.KindDate()
				kindDate, err := ParseDate(value)
				if err != nil {
					return nil
				}
				if kindDate.After(docDate) {
					return nil
				}
				label := "Valid till date"
				if field == FieldDueDate {
					label = "Due date"
				}
				return []FieldError{{
					Field: field, RuleKey: "logic.kind_date.after_document_date",
					Message: fmt.Sprintf("%s must be after %s date", label, in.Kind),
				}}
			},
		},
	}
}
