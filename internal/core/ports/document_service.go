package ports

import (
	"context"

	"github.com/glcplatform/portal/internal/core/domain"
)

// DocumentService assembles document previews and proxies file bytes.
type DocumentService interface {
	// Fetch returns the raw bytes, with the backend's download semantics
	// when attachment is true and its inline semantics otherwise.
	Fetch(ctx context.Context, sess domain.Session, docID int, attachment bool) (domain.DocumentContent, error)
	// PreviewOverlay builds the viewer overlay; the filename hint saves a
	// fetch when the preview embeds by URL.
	PreviewOverlay(ctx context.Context, sess domain.Session, docID int, filenameHint string) (RenderedOverlay, error)
	// TrailOverlay builds the audit-trail overlay for an application.
	TrailOverlay(ctx context.Context, sess domain.Session, loanID int, subject string) (RenderedOverlay, error)
}
