package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"docdesk/internal/domain"
	"docdesk/internal/port"
)

type documentRepo struct {
	store port.KeyValueStore
	keys  Keys
	log   *zap.Logger
	cache map[domain.DocumentKind][]domain.Document
}

// NewDocumentRepo creates a DocumentRepository holding both kinds'
// collections in store.
func NewDocumentRepo(store port.KeyValueStore, keys Keys, log *zap.Logger) port.DocumentRepository {
	return &documentRepo{
		store: store,
		keys:  keys,
		log:   log,
		cache: make(map[domain.DocumentKind][]domain.Document, len(domain.Kinds)),
	}
}

// load returns the cached collection, reading it from the store on first use.
// A missing key is an empty collection.
func (r *documentRepo) load(ctx context.Context, kind domain.DocumentKind) ([]domain.Document, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidKind, kind)
	}
	if docs, ok := r.cache[kind]; ok {
		return docs, nil
	}

	key := r.keys.collection(kind)
	raw, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			r.cache[kind] = []domain.Document{}
			return r.cache[kind], nil
		}
		return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrStorage, key, err)
	}

	var docs []domain.Document
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", domain.ErrStorage, key, err)
	}
	if docs == nil {
		docs = []domain.Document{}
	}
	r.cache[kind] = docs
	return docs, nil
}

// persist writes docs as the kind's whole collection and only then swaps the
// cache, so a failed write leaves the previous state in place.
func (r *documentRepo) persist(ctx context.Context, kind domain.DocumentKind, docs []domain.Document) error {
	key := r.keys.collection(kind)
	raw, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("%w: encoding %s: %v", domain.ErrStorage, key, err)
	}
	if err := r.store.Put(ctx, key, raw); err != nil {
		r.log.Error("persisting collection failed",
			zap.String("key", key), zap.Int("documents", len(docs)), zap.Error(err))
		return fmt.Errorf("%w: writing %s: %v", domain.ErrStorage, key, err)
	}
	r.cache[kind] = docs
	return nil
}

func clones(docs []domain.Document) []domain.Document {
	out := make([]domain.Document, len(docs))
	for i := range docs {
		out[i] = *docs[i].Clone()
	}
	return out
}

func (r *documentRepo) FindDuplicate(ctx context.Context, kind domain.DocumentKind, clientEmail, companyName string) (*domain.Document, error) {
	docs, err := r.load(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.FindDuplicate: %w", err)
	}
	if d := findDuplicate(docs, clientEmail, companyName); d != nil {
		return d.Clone(), nil
	}
	return nil, domain.ErrDocumentNotFound
}

func findDuplicate(docs []domain.Document, clientEmail, companyName string) *domain.Document {
	email := strings.TrimSpace(clientEmail)
	company := strings.TrimSpace(companyName)
	for i := range docs {
		if strings.EqualFold(strings.TrimSpace(docs[i].ClientEmail), email) &&
			strings.EqualFold(strings.TrimSpace(docs[i].CompanyName), company) {
			return &docs[i]
		}
	}
	return nil
}

func (r *documentRepo) Save(ctx context.Context, doc *domain.Document) (uuid.UUID, error) {
	docs, err := r.load(ctx, doc.Kind)
	if err != nil {
		return uuid.Nil, fmt.Errorf("documentRepo.Save: %w", err)
	}
	if existing := findDuplicate(docs, doc.ClientEmail, doc.CompanyName); existing != nil {
		return uuid.Nil, &domain.DuplicateError{Existing: existing.Clone()}
	}
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}

	next := make([]domain.Document, len(docs), len(docs)+1)
	copy(next, docs)
	next = append(next, *doc.Clone())
	if err := r.persist(ctx, doc.Kind, next); err != nil {
		return uuid.Nil, fmt.Errorf("documentRepo.Save: %w", err)
	}
	return doc.ID, nil
}

func (r *documentRepo) All(ctx context.Context, kind domain.DocumentKind) ([]domain.Document, error) {
	docs, err := r.load(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.All: %w", err)
	}
	return clones(docs), nil
}

func (r *documentRepo) Recent(ctx context.Context, kind domain.DocumentKind, n int) ([]domain.Document, error) {
	docs, err := r.load(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.Recent: %w", err)
	}
	if n <= 0 {
		return []domain.Document{}, nil
	}
	if n > len(docs) {
		n = len(docs)
	}
	out := make([]domain.Document, 0, n)
	for i := len(docs) - 1; i >= len(docs)-n; i-- {
		out = append(out, *docs[i].Clone())
	}
	return out, nil
}

func (r *documentRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	for _, kind := range domain.Kinds {
		docs, err := r.load(ctx, kind)
		if err != nil {
			return nil, fmt.Errorf("documentRepo.FindByID: %w", err)
		}
		for i := range docs {
			if docs[i].ID == id {
				return docs[i].Clone(), nil
			}
		}
	}
	return nil, domain.ErrDocumentNotFound
}

func (r *documentRepo) Search(ctx context.Context, kind domain.DocumentKind, term string) ([]domain.Document, error) {
	docs, err := r.load(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.Search: %w", err)
	}
	needle := strings.ToLower(strings.TrimSpace(term))
	out := []domain.Document{}
	if needle == "" {
		return out, nil
	}
	for i := range docs {
		d := &docs[i]
		for _, field := range []string{d.DocumentNo, d.ClientName, d.ClientEmail, d.CompanyName} {
			if strings.Contains(strings.ToLower(field), needle) {
				out = append(out, *d.Clone())
				break
			}
		}
	}
	return out, nil
}

func (r *documentRepo) ClearAll(ctx context.Context, kind domain.DocumentKind) error {
	if !kind.Valid() {
		return fmt.Errorf("documentRepo.ClearAll: %w: %q", domain.ErrInvalidKind, kind)
	}
	if err := r.persist(ctx, kind, []domain.Document{}); err != nil {
		return fmt.Errorf("documentRepo.ClearAll: %w", err)
	}
	return nil
}

func (r *documentRepo) Stats(ctx context.Context, kind domain.DocumentKind) (*domain.Stats, error) {
	docs, err := r.load(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.Stats: %w", err)
	}
	total := decimal.Zero
	for i := range docs {
		total = total.Add(docs[i].Totals().GrandTotal)
	}
	return &domain.Stats{Count: len(docs), TotalAmount: total}, nil
}
