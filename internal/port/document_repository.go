package port

import (
	"context"

	"github.com/google/uuid"

	"docdesk/internal/domain"
)

// DocumentRepository defines the contract for saved-document persistence.
// Every operation takes the kind explicitly; the two collections never mix.
type DocumentRepository interface {
	FindDuplicate(ctx context.Context, kind domain.DocumentKind, clientEmail, companyName string) (*domain.Document, error)
	Save(ctx context.Context, doc *domain.Document) (uuid.UUID, error)
	All(ctx context.Context, kind domain.DocumentKind) ([]domain.Document, error)
	Recent(ctx context.Context, kind domain.DocumentKind, n int) ([]domain.Document, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	Search(ctx context.Context, kind domain.DocumentKind, term string) ([]domain.Document, error)
	ClearAll(ctx context.Context, kind domain.DocumentKind) error
	Stats(ctx context.Context, kind domain.DocumentKind) (*domain.Stats, error)
}

// DraftRepository defines the contract for the single autosave slot.
type DraftRepository interface {
	Snapshot(ctx context.Context, draft *domain.Draft) error
	Load(ctx context.Context, activeKind domain.DocumentKind) (*domain.Draft, error)
	Clear(ctx context.Context) error
}
