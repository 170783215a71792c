package validator_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docdesk/internal/domain"
	"docdesk/internal/validator"
	"docdesk/internal/validator/document"
)

var (
	fixedID  = uuid.MustParse("8d0f4c1e-2b7a-4c59-9a55-1f7d3e2b6c01")
	fixedNow = time.Date(2026, 3, 7, 9, 5, 0, 0, time.UTC)
)

func setupEngine() *validator.Engine {
	return validator.NewEngine(
		validator.NewDefaultRegistry(),
		validator.WithIDGenerator(func() uuid.UUID { return fixedID }),
		validator.WithClock(func() time.Time { return fixedNow }),
	)
}

func quotationForm() *domain.FormInput {
	return &domain.FormInput{
		DocumentDate:    "2026-03-07",
		ValidTillDate:   "2026-04-06",
		CompanyName:     " Acme Traders ",
		CompanyAddress:  "12 MG Road\nBengaluru",
		ClientName:      "Ravi Kumar",
		ClientEmail:     "ravi@example.com",
		TermsConditions: "Payment within 30 days",
		Items: []domain.FormItem{
			{Description: "Widget", GSTRate: "18", Quantity: "2", Rate: "100"},
			{Description: "", GSTRate: "18", Quantity: "1", Rate: ""},
		},
	}
}

func invoiceForm() *domain.FormInput {
	f := quotationForm()
	f.ValidTillDate = ""
	f.DueDate = "2026-04-06"
	return f
}

func TestRegistry_OrderAndReplace(t *testing.T) {
	reg := validator.NewDefaultRegistry()
	all := reg.All()
	require.NotEmpty(t, all)
	assert.Equal(t, "req.document_date", all[0].RuleKey())
	assert.Equal(t, "logic.kind_date.after_document_date", all[len(all)-1].RuleKey())

	reg.Register(reg.Get("req.company_name"))
	assert.Len(t, reg.All(), len(all))
	assert.Nil(t, reg.Get("missing"))
}

func TestValidate_Quotation(t *testing.T) {
	doc, err := setupEngine().Validate(domain.KindQuotation, quotationForm())
	require.NoError(t, err)

	assert.Equal(t, fixedID, doc.ID)
	assert.Equal(t, domain.KindQuotation, doc.Kind)
	assert.Equal(t, "QUO202603070905", doc.DocumentNo)
	assert.Equal(t, "Acme Traders", doc.CompanyName)
	assert.Equal(t, fixedNow, doc.CreatedAt)
	require.NotNil(t, doc.Quotation)
	assert.Nil(t, doc.Invoice)
	assert.Equal(t, time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC), doc.Quotation.ValidTillDate)

	// The blank second row is dropped.
	require.Len(t, doc.Items, 1)
	assert.Equal(t, "236.00", doc.Totals().Rounded().GrandTotal.StringFixed(2))
}

func TestValidate_KeepsGivenDocumentNo(t *testing.T) {
	f := quotationForm()
	f.DocumentNo = "QUO-CUSTOM-1"
	doc, err := setupEngine().Validate(domain.KindQuotation, f)
	require.NoError(t, err)
	assert.Equal(t, "QUO-CUSTOM-1", doc.DocumentNo)
}

func TestValidate_InvoiceDefaults(t *testing.T) {
	doc, err := setupEngine().Validate(domain.KindInvoice, invoiceForm())
	require.NoError(t, err)

	require.NotNil(t, doc.Invoice)
	assert.Nil(t, doc.Quotation)
	assert.Equal(t, "INV202603070905", doc.DocumentNo)
	assert.Equal(t, domain.PaymentUnpaid, doc.Invoice.PaymentStatus)
	assert.Equal(t, "immediate", doc.Invoice.PaymentTerms)
	assert.Equal(t, "bank", doc.Invoice.PaymentMethod)
	assert.True(t, doc.Invoice.AdvanceAmount.IsZero())
}

func TestValidate_InvoiceAmountDue(t *testing.T) {
	f := invoiceForm()
	f.Items = []domain.FormItem{{Description: "Service", GSTRate: "0", Quantity: "1", Rate: "1000"}}

	f.AdvanceAmount = "300"
	doc, err := setupEngine().Validate(domain.KindInvoice, f)
	require.NoError(t, err)
	assert.Equal(t, "700.00", doc.AmountDue().StringFixed(2))

	f.AdvanceAmount = "1200"
	f.PaymentStatus = "PAID"
	doc, err = setupEngine().Validate(domain.KindInvoice, f)
	require.NoError(t, err)
	assert.Equal(t, "-200.00", doc.AmountDue().StringFixed(2))
	assert.Equal(t, domain.PaymentPaid, doc.Invoice.PaymentStatus)
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	f := &domain.FormInput{
		DocumentDate: "2026-03-07",
		ClientEmail:  "not-an-email",
	}
	_, err := setupEngine().Validate(domain.KindQuotation, f)
	require.Error(t, err)

	var verr *validator.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, errors.Is(err, domain.ErrValidation))

	for _, field := range []string{
		document.FieldCompanyName,
		document.FieldCompanyAddress,
		document.FieldClientName,
		document.FieldValidTillDate,
		document.FieldClientEmail,
		document.FieldItems,
	} {
		assert.True(t, verr.HasField(field), field)
	}
	require.NotNil(t, verr.FirstInvalid())
	assert.Equal(t, document.FieldCompanyName, verr.FirstInvalid().Field)
	assert.Contains(t, err.Error(), "company_name")
}

func TestValidate_ValidTillBoundary(t *testing.T) {
	f := quotationForm()
	f.ValidTillDate = f.DocumentDate
	_, err := setupEngine().Validate(domain.KindQuotation, f)
	var verr *validator.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.HasField(document.FieldValidTillDate))

	f.ValidTillDate = "2026-03-08"
	_, err = setupEngine().Validate(domain.KindQuotation, f)
	assert.NoError(t, err)
}

func TestValidate_InvalidKind(t *testing.T) {
	_, err := setupEngine().Validate(domain.DocumentKind("receipt"), quotationForm())
	assert.ErrorIs(t, err, domain.ErrInvalidKind)
}

func TestValidate_DoesNotMutateForm(t *testing.T) {
	f := quotationForm()
	before := *f
	before.Items = append([]domain.FormItem(nil), f.Items...)

	_, err := setupEngine().Validate(domain.KindQuotation, f)
	require.NoError(t, err)
	assert.Equal(t, before, *f)
}
