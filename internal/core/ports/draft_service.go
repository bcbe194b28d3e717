package ports

import (
	"context"

	"github.com/glcplatform/portal/internal/core/domain"
)

// DraftService fronts the draft store with page validation. Only pages that
// carry a form accept drafts.
type DraftService interface {
	Save(ctx context.Context, sess domain.Session, page domain.PageID, draft domain.Draft) error
	// Load returns domain.ErrDraftNotFound when nothing is saved.
	Load(ctx context.Context, sess domain.Session, page domain.PageID) (domain.Draft, error)
	Delete(ctx context.Context, sess domain.Session, page domain.PageID) error
}
