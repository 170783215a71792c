package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"docdesk/internal/domain"
	"docdesk/internal/port"
)

type draftRepo struct {
	store port.KeyValueStore
	key   string
	log   *zap.Logger
}

// NewDraftRepo creates a DraftRepository for the single draft slot.
func NewDraftRepo(store port.KeyValueStore, keys Keys, log *zap.Logger) port.DraftRepository {
	return &draftRepo{store: store, key: keys.Draft, log: log}
}

func (r *draftRepo) Snapshot(ctx context.Context, draft *domain.Draft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("draftRepo.Snapshot: %w: %v", domain.ErrStorage, err)
	}
	if err := r.store.Put(ctx, r.key, raw); err != nil {
		return fmt.Errorf("draftRepo.Snapshot: %w: %v", domain.ErrStorage, err)
	}
	return nil
}

// Load returns the draft only when it was saved for activeKind. A draft of
// the other kind stays in the slot. Unreadable drafts are logged and treated
// as absent.
func (r *draftRepo) Load(ctx context.Context, activeKind domain.DocumentKind) (*domain.Draft, error) {
	raw, err := r.store.Get(ctx, r.key)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			r.log.Warn("loading draft failed", zap.String("key", r.key), zap.Error(err))
		}
		return nil, domain.ErrDraftNotFound
	}

	var draft domain.Draft
	if err := json.Unmarshal(raw, &draft); err != nil {
		r.log.Warn("discarding unreadable draft", zap.String("key", r.key), zap.Error(err))
		return nil, domain.ErrDraftNotFound
	}
	if draft.Kind != activeKind {
		return nil, domain.ErrDraftNotFound
	}
	return &draft, nil
}

func (r *draftRepo) Clear(ctx context.Context) error {
	if err := r.store.Delete(ctx, r.key); err != nil {
		return fmt.Errorf("draftRepo.Clear: %w: %v", domain.ErrStorage, err)
	}
	return nil
}
