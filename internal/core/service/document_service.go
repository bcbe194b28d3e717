package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/rs/zerolog"

	"github.com/glcplatform/portal/internal/core/domain"
	"github.com/glcplatform/portal/internal/core/ports"
	"github.com/glcplatform/portal/internal/core/views"
)

// DocumentService assembles document previews and proxies file bytes. The
// backend stores the files; the portal never keeps a copy.
type DocumentService struct {
	backend ports.BackendGateway
	logger  zerolog.Logger
}

func NewDocumentService(backend ports.BackendGateway, logger zerolog.Logger) *DocumentService {
	return &DocumentService{backend: backend, logger: logger}
}

// Fetch returns the raw document bytes for streaming, inline or as an
// attachment.
func (s *DocumentService) Fetch(ctx context.Context, sess domain.Session, docID int, attachment bool) (domain.DocumentContent, error) {
	if attachment {
		return s.backend.DownloadDocument(ctx, sess, docID)
	}
	return s.backend.ViewDocument(ctx, sess, docID)
}

// PreviewOverlay builds the viewer overlay for a document. The filename
// hint comes from the listing the user clicked; when it is missing, or the
// preview needs the bytes inline, the document is fetched to fill the gap.
func (s *DocumentService) PreviewOverlay(ctx context.Context, sess domain.Session, docID int, filenameHint string) (ports.RenderedOverlay, error) {
	filename := filenameHint
	kind := domain.PreviewKindFor(filename)

	var content *domain.DocumentContent
	if filename == "" || kind == domain.PreviewJSON || kind == domain.PreviewText {
		fetched, err := s.backend.ViewDocument(ctx, sess, docID)
		if err != nil {
			return ports.RenderedOverlay{}, err
		}
		content = &fetched
		if filename == "" {
			filename = fetched.Filename
		}
	}

	doc := domain.Document{ID: docID, Filename: filename, FileType: fileTypeOf(filename)}
	if content != nil {
		doc.FileSize = int64(len(content.Data))
	}

	return views.DocumentOverlay(doc, content,
		fmt.Sprintf("/portal/documents/%d/view", docID),
		fmt.Sprintf("/portal/documents/%d/download", docID))
}

// TrailOverlay builds the audit-trail overlay for one application.
func (s *DocumentService) TrailOverlay(ctx context.Context, sess domain.Session, loanID int, subject string) (ports.RenderedOverlay, error) {
	entries, err := s.backend.AuditTrail(ctx, sess, "LoanApplication", loanID)
	if err != nil {
		return ports.RenderedOverlay{}, err
	}
	if subject == "" {
		subject = fmt.Sprintf("application #%d", loanID)
	}
	return views.AuditTrailOverlay(subject, entries)
}

func fileTypeOf(filename string) string {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
	return ext
}
