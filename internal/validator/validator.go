package validator

import (
	"docdesk/internal/validator/document"
)

// Rule is the interface for a single built-in validation rule.
type Rule interface {
	Check(in *document.Input) []document.FieldError
	RuleKey() string
	RuleName() string
}

// DefaultRules returns every built-in rule in evaluation order: required
// fields, then value formats, then cross-field checks.
func DefaultRules() []Rule {
	var rules []Rule
	for _, r := range document.RequiredFieldRules() {
		rules = append(rules, r)
	}
	for _, r := range document.FormatRules() {
		rules = append(rules, r)
	}
	for _, r := range document.LogicalRules() {
		rules = append(rules, r)
	}
	return rules
}
