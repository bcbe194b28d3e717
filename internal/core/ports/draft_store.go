package ports

import (
	"context"

	"github.com/glcplatform/portal/internal/core/domain"
)

// DraftStore persists per-user form drafts. A draft is an opaque blob to
// the store; one key per user and page.
type DraftStore interface {
	Save(ctx context.Context, userID int, page domain.PageID, draft domain.Draft) error
	// Load returns domain.ErrDraftNotFound when no draft is saved.
	Load(ctx context.Context, userID int, page domain.PageID) (domain.Draft, error)
	Delete(ctx context.Context, userID int, page domain.PageID) error
	// Ping reports store reachability, for readiness probes.
	Ping(ctx context.Context) error
}
