package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"docdesk/internal/docnum"
	"docdesk/internal/domain"
	"docdesk/internal/metrics"
	"docdesk/internal/port"
	"docdesk/internal/validator"
	"docdesk/internal/xlsxexport"
)

// Defaults for new forms.
const (
	DefaultValidityDays = 30
	DefaultDueDays      = 30
	DefaultRecentLimit  = 5
	DefaultItemGSTRate  = "18"
	DefaultItemQuantity = "1"
)

// Settings tunes form defaults and export placement.
type Settings struct {
	ValidityDays    int
	DueDays         int
	RecentLimit     int
	ExportKeyPrefix string
	Now             func() time.Time
}

func (s Settings) withDefaults() Settings {
	if s.ValidityDays <= 0 {
		s.ValidityDays = DefaultValidityDays
	}
	if s.DueDays <= 0 {
		s.DueDays = DefaultDueDays
	}
	if s.RecentLimit <= 0 {
		s.RecentLimit = DefaultRecentLimit
	}
	if s.Now == nil {
		s.Now = time.Now
	}
	return s
}

// DeskService is everything the presentation layer can ask of the core.
// Every user-visible outcome is also reported through the notifier.
type DeskService interface {
	NewForm(kind domain.DocumentKind) (*domain.FormInput, error)
	Calculate(kind domain.DocumentKind, form *domain.FormInput) (*Calculation, error)
	Generate(ctx context.Context, kind domain.DocumentKind, form *domain.FormInput) (*domain.Document, error)
	Save(ctx context.Context, doc *domain.Document) (*domain.Stats, error)
	View(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	All(ctx context.Context, kind domain.DocumentKind) ([]domain.Document, error)
	Search(ctx context.Context, kind domain.DocumentKind, term string) ([]domain.Document, error)
	Recent(ctx context.Context, kind domain.DocumentKind) ([]domain.Document, error)
	Stats(ctx context.Context, kind domain.DocumentKind) (*domain.Stats, error)
	ClearAll(ctx context.Context, kind domain.DocumentKind) error
	Reopen(doc *domain.Document) (*domain.FormInput, error)

	AutosaveDraft(ctx context.Context, kind domain.DocumentKind, form *domain.FormInput) error
	RestoreDraft(ctx context.Context, kind domain.DocumentKind) (*domain.Draft, error)
	ClearForm(ctx context.Context, kind domain.DocumentKind) (*domain.FormInput, error)

	ExportDocument(ctx context.Context, doc *domain.Document) (*ExportResult, error)
	ExportAll(ctx context.Context, kind domain.DocumentKind) (*ExportResult, error)
	Print(doc *domain.Document) ([]byte, error)
}

type deskService struct {
	docRepo   port.DocumentRepository
	draftRepo port.DraftRepository
	validator *validator.Engine
	exporter  *xlsxexport.Exporter
	printer   port.Printer
	sink      port.ObjectStorage
	notifier  port.Notifier
	metrics   *metrics.DeskMetrics
	log       *zap.Logger
	settings  Settings
}

// NewDeskService creates a new DeskService implementation. deskMetrics may
// be nil.
func NewDeskService(
	docRepo port.DocumentRepository,
	draftRepo port.DraftRepository,
	validationEngine *validator.Engine,
	exporter *xlsxexport.Exporter,
	printer port.Printer,
	sink port.ObjectStorage,
	notifier port.Notifier,
	deskMetrics *metrics.DeskMetrics,
	log *zap.Logger,
	settings Settings,
) DeskService {
	return &deskService{
		docRepo:   docRepo,
		draftRepo: draftRepo,
		validator: validationEngine,
		exporter:  exporter,
		printer:   printer,
		sink:      sink,
		notifier:  notifier,
		metrics:   deskMetrics,
		log:       log,
		settings:  settings.withDefaults(),
	}
}

func (s *deskService) notify(severity domain.Severity, format string, args ...interface{}) {
	s.notifier.Notify(domain.Notice{
		Severity: severity,
		Message:  fmt.Sprintf(format, args...),
		At:       s.settings.Now(),
	})
}

func checkKind(op string, kind domain.DocumentKind) error {
	if !kind.Valid() {
		return fmt.Errorf("deskService.%s: %w: %q", op, domain.ErrInvalidKind, kind)
	}
	return nil
}

func (s *deskService) NewForm(kind domain.DocumentKind) (*domain.FormInput, error) {
	if err := checkKind("NewForm", kind); err != nil {
		return nil, err
	}
	now := s.settings.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	form := &domain.FormInput{
		DocumentNo:   docnum.Generate(kind, now),
		DocumentDate: today.Format(domain.DateLayout),
		Items: []domain.FormItem{
			{GSTRate: DefaultItemGSTRate, Quantity: DefaultItemQuantity},
		},
	}
	switch kind {
	case domain.KindQuotation:
		form.ValidTillDate = today.AddDate(0, 0, s.settings.ValidityDays).Format(domain.DateLayout)
	case domain.KindInvoice:
		form.DueDate = today.AddDate(0, 0, s.settings.DueDays).Format(domain.DateLayout)
		form.PaymentStatus = string(domain.DefaultPaymentStatus)
		form.PaymentTerms = domain.DefaultPaymentTerms
		form.PaymentMethod = domain.DefaultPaymentMethod
		form.AdvanceAmount = "0"
	}
	return form, nil
}

// Generate validates the form and checks it against saved documents. The
// returned candidate is not persisted until Save.
func (s *deskService) Generate(ctx context.Context, kind domain.DocumentKind, form *domain.FormInput) (*domain.Document, error) {
	if err := checkKind("Generate", kind); err != nil {
		s.notify(domain.SeverityError, "Unsupported document type %q", kind)
		return nil, err
	}
	doc, err := s.validator.Validate(kind, form)
	if err != nil {
		var verr *validator.ValidationError
		if errors.As(err, &verr) {
			s.metrics.Observe("generate", kind, metrics.OutcomeInvalid)
			s.notify(domain.SeverityError, "%s", validationMessage(verr))
		}
		return nil, err
	}

	existing, err := s.docRepo.FindDuplicate(ctx, kind, doc.ClientEmail, doc.CompanyName)
	switch {
	case err == nil:
		s.metrics.Observe("generate", kind, metrics.OutcomeDuplicate)
		s.notify(domain.SeverityWarning, "A %s with this client email already exists. Please check existing records.", kind)
		return nil, &domain.DuplicateError{Existing: existing}
	case !errors.Is(err, domain.ErrDocumentNotFound):
		s.metrics.Observe("generate", kind, metrics.OutcomeError)
		s.notify(domain.SeverityError, "Error reading saved %ss", kind)
		return nil, fmt.Errorf("deskService.Generate: %w", err)
	}

	s.metrics.Observe("generate", kind, metrics.OutcomeOK)
	s.notify(domain.SeveritySuccess, "%s generated successfully! Use \"Save to Storage\" to save it.", kind.Title())
	return doc, nil
}

// validationMessage picks the message shown for a failed form: the specific
// one when a single field is wrong, a general one otherwise.
func validationMessage(verr *validator.ValidationError) string {
	if len(verr.Errors) == 1 {
		return verr.Errors[0].Message
	}
	return "Please fill in all required fields correctly"
}

// Save appends doc to its kind's collection and clears the draft. It
// returns the collection stats after the save.
func (s *deskService) Save(ctx context.Context, doc *domain.Document) (*domain.Stats, error) {
	if doc == nil {
		s.notify(domain.SeverityWarning, "Please generate a document first")
		return nil, domain.ErrNoCurrentDocument
	}
	kind := doc.Kind

	if _, err := s.docRepo.Save(ctx, doc); err != nil {
		var dup *domain.DuplicateError
		if errors.As(err, &dup) {
			s.metrics.Observe("save", kind, metrics.OutcomeDuplicate)
			s.notify(domain.SeverityWarning, "A %s with this client email already exists. Please check existing records.", kind)
			return nil, err
		}
		s.metrics.Observe("save", kind, metrics.OutcomeError)
		s.log.Error("deskService.Save: saving document failed",
			zap.String("kind", string(kind)), zap.String("document_no", doc.DocumentNo), zap.Error(err))
		s.notify(domain.SeverityError, "Error saving %s data", kind)
		return nil, fmt.Errorf("deskService.Save: %w", err)
	}

	if err := s.draftRepo.Clear(ctx); err != nil {
		s.log.Warn("deskService.Save: clearing draft failed", zap.Error(err))
	}

	stats, err := s.docRepo.Stats(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("deskService.Save: %w", err)
	}
	s.metrics.Observe("save", kind, metrics.OutcomeOK)
	s.notify(domain.SeveritySuccess, "%s saved! Total: %d %ss stored", kind.Title(), stats.Count, kind)
	return stats, nil
}

func (s *deskService) View(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	doc, err := s.docRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			s.notify(domain.SeverityWarning, "Document not found")
		}
		return nil, err
	}
	return doc, nil
}

func (s *deskService) All(ctx context.Context, kind domain.DocumentKind) ([]domain.Document, error) {
	return s.docRepo.All(ctx, kind)
}

func (s *deskService) Search(ctx context.Context, kind domain.DocumentKind, term string) ([]domain.Document, error) {
	return s.docRepo.Search(ctx, kind, strings.TrimSpace(term))
}

func (s *deskService) Recent(ctx context.Context, kind domain.DocumentKind) ([]domain.Document, error) {
	return s.docRepo.Recent(ctx, kind, s.settings.RecentLimit)
}

func (s *deskService) Stats(ctx context.Context, kind domain.DocumentKind) (*domain.Stats, error) {
	return s.docRepo.Stats(ctx, kind)
}

// ClearAll empties the kind's collection and drops the draft.
func (s *deskService) ClearAll(ctx context.Context, kind domain.DocumentKind) error {
	if err := checkKind("ClearAll", kind); err != nil {
		return err
	}
	if err := s.docRepo.ClearAll(ctx, kind); err != nil {
		s.notify(domain.SeverityError, "Error clearing data")
		return fmt.Errorf("deskService.ClearAll: %w", err)
	}
	if err := s.draftRepo.Clear(ctx); err != nil {
		s.notify(domain.SeverityError, "Error clearing data")
		return fmt.Errorf("deskService.ClearAll: %w", err)
	}
	s.metrics.Observe("clear_all", kind, metrics.OutcomeOK)
	s.notify(domain.SeveritySuccess, "All %s data cleared successfully", kind)
	return nil
}

// Reopen turns a document back into an editable form. Submitting it again
// produces a new candidate; the saved document is untouched.
func (s *deskService) Reopen(doc *domain.Document) (*domain.FormInput, error) {
	if doc == nil {
		return nil, domain.ErrNoCurrentDocument
	}
	form := doc.Form()
	return &form, nil
}
