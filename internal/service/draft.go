package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"docdesk/internal/domain"
)

// AutosaveDraft snapshots the form into the draft slot when it carries at
// least a company or client name. Otherwise it returns domain.ErrDraftEmpty
// and leaves the slot alone.
func (s *deskService) AutosaveDraft(ctx context.Context, kind domain.DocumentKind, form *domain.FormInput) error {
	if err := checkKind("AutosaveDraft", kind); err != nil {
		return err
	}
	if form == nil || !form.HasBasicData() {
		return domain.ErrDraftEmpty
	}
	draft := &domain.Draft{
		Kind:    kind,
		Form:    *form,
		SavedAt: s.settings.Now().UTC(),
	}
	if err := s.draftRepo.Snapshot(ctx, draft); err != nil {
		s.log.Warn("deskService.AutosaveDraft: snapshot failed", zap.String("kind", string(kind)), zap.Error(err))
		return fmt.Errorf("deskService.AutosaveDraft: %w", err)
	}
	return nil
}

// RestoreDraft returns the draft for kind, or domain.ErrDraftNotFound. A
// draft is raw form data and must go through Generate before it is saved.
func (s *deskService) RestoreDraft(ctx context.Context, kind domain.DocumentKind) (*domain.Draft, error) {
	if err := checkKind("RestoreDraft", kind); err != nil {
		return nil, err
	}
	draft, err := s.draftRepo.Load(ctx, kind)
	if err != nil {
		if !errors.Is(err, domain.ErrDraftNotFound) {
			s.log.Warn("deskService.RestoreDraft: loading draft failed", zap.Error(err))
		}
		return nil, domain.ErrDraftNotFound
	}
	s.notify(domain.SeverityInfo, "Draft data restored")
	return draft, nil
}

// ClearForm drops the draft and returns a fresh form.
func (s *deskService) ClearForm(ctx context.Context, kind domain.DocumentKind) (*domain.FormInput, error) {
	form, err := s.NewForm(kind)
	if err != nil {
		return nil, err
	}
	if err := s.draftRepo.Clear(ctx); err != nil {
		s.notify(domain.SeverityError, "Error clearing form")
		return nil, fmt.Errorf("deskService.ClearForm: %w", err)
	}
	s.notify(domain.SeverityInfo, "Form cleared successfully")
	return form, nil
}
