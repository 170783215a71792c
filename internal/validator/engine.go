package validator

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"docdesk/internal/docnum"
	"docdesk/internal/domain"
	"docdesk/internal/validator/document"
)

// ValidationError carries every failed field in rule order.
type ValidationError struct {
	Errors []document.FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.String())
	}
	return fmt.Sprintf("%s: %s", domain.ErrValidation.Error(), strings.Join(msgs, "; "))
}

// Unwrap lets errors.Is match domain.ErrValidation.
func (e *ValidationError) Unwrap() error {
	return domain.ErrValidation
}

// FirstInvalid returns the first failed field, the one the form should focus.
func (e *ValidationError) FirstInvalid() *document.FieldError {
	if len(e.Errors) == 0 {
		return nil
	}
	return &e.Errors[0]
}

// HasField reports whether any error was raised for field.
func (e *ValidationError) HasField(field string) bool {
	for _, fe := range e.Errors {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Engine checks form input against the registered rules and builds the
// candidate document.
type Engine struct {
	registry *Registry
	newID    func() uuid.UUID
	now      func() time.Time
}

// Option customizes an Engine.
type Option func(*Engine)

// WithIDGenerator overrides the document ID source.
func WithIDGenerator(fn func() uuid.UUID) Option {
	return func(e *Engine) { e.newID = fn }
}

// WithClock overrides the creation-time source.
func WithClock(fn func() time.Time) Option {
	return func(e *Engine) { e.now = fn }
}

// NewEngine creates a new validation engine.
func NewEngine(registry *Registry, opts ...Option) *Engine {
	e := &Engine{
		registry: registry,
		newID:    uuid.New,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Check runs every rule and returns the failed fields without building a
// document.
func (e *Engine) Check(kind domain.DocumentKind, form *domain.FormInput) []document.FieldError {
	in := &document.Input{Kind: kind, Form: form}
	var errs []document.FieldError
	for _, rule := range e.registry.All() {
		errs = append(errs, rule.Check(in)...)
	}
	return errs
}

// Validate checks form as a document of the given kind. On success it returns
// a candidate document with a fresh ID; on failure a *ValidationError.
func (e *Engine) Validate(kind domain.DocumentKind, form *domain.FormInput) (*domain.Document, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("validator.Validate: %w: %q", domain.ErrInvalidKind, kind)
	}
	if form == nil {
		form = &domain.FormInput{}
	}
	if errs := e.Check(kind, form); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return e.build(kind, form)
}

func (e *Engine) build(kind domain.DocumentKind, form *domain.FormInput) (*domain.Document, error) {
	in := &document.Input{Kind: kind, Form: form}
	now := e.now()

	docDate, err := document.ParseDate(form.DocumentDate)
	if err != nil {
		return nil, fmt.Errorf("validator.build: document date: %w", err)
	}
	_, rawKindDate := in.KindDate()
	kindDate, err := document.ParseDate(rawKindDate)
	if err != nil {
		return nil, fmt.Errorf("validator.build: %s date: %w", kind, err)
	}

	docNo := strings.TrimSpace(form.DocumentNo)
	if docNo == "" {
		docNo = docnum.Generate(kind, now)
	}

	doc := &domain.Document{
		ID:              e.newID(),
		Kind:            kind,
		DocumentNo:      docNo,
		DocumentDate:    docDate,
		CompanyName:     strings.TrimSpace(form.CompanyName),
		CompanyAddress:  strings.TrimSpace(form.CompanyAddress),
		ClientName:      strings.TrimSpace(form.ClientName),
		ClientEmail:     strings.TrimSpace(form.ClientEmail),
		ClientPhone:     strings.TrimSpace(form.ClientPhone),
		ClientLocation:  strings.TrimSpace(form.ClientLocation),
		TermsConditions: form.TermsConditions,
		CreatedAt:       now.UTC(),
	}

	for _, i := range in.KeptItems() {
		item := &form.Items[i]
		rate, err := document.ParseRate(item.GSTRate)
		if err != nil {
			return nil, fmt.Errorf("validator.build: item %d gst rate: %w", i, err)
		}
		doc.Items = append(doc.Items, domain.LineItem{
			Description: strings.TrimSpace(item.Description),
			GSTRate:     rate,
			Quantity:    document.ParseNumber(item.Quantity),
			Rate:        document.ParseNumber(item.Rate),
		})
	}

	switch kind {
	case domain.KindQuotation:
		doc.Quotation = &domain.QuotationDetails{ValidTillDate: kindDate}
	case domain.KindInvoice:
		doc.Invoice = &domain.InvoiceDetails{
			DueDate:       kindDate,
			PaymentStatus: domain.PaymentStatus(defaultString(strings.ToLower(form.PaymentStatus), string(domain.DefaultPaymentStatus))),
			PaymentTerms:  defaultString(form.PaymentTerms, domain.DefaultPaymentTerms),
			PaymentMethod: defaultString(form.PaymentMethod, domain.DefaultPaymentMethod),
			AdvanceAmount: document.ParseNumber(form.AdvanceAmount),
		}
	}
	return doc, nil
}

func defaultString(v, def string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	return v
}
