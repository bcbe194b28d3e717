package views

import (
	"bytes"
	"encoding/json"
	"html/template"
	"strings"

	"github.com/glcplatform/portal/internal/core/domain"
	"github.com/glcplatform/portal/internal/core/ports"
)

type documentOverlayData struct {
	Doc         domain.Document
	Kind        domain.PreviewKind
	Meta        string
	ViewURL     string
	DownloadURL string
	Body        template.HTML
}

// DocumentOverlay builds the preview overlay for a document. PDFs and
// images embed the proxied view URL; JSON and plain text render inline from
// the fetched content; any other type gets a download affordance.
func DocumentOverlay(doc domain.Document, content *domain.DocumentContent, viewURL, downloadURL string) (ports.RenderedOverlay, error) {
	kind := domain.PreviewKindFor(doc.Filename)
	data := documentOverlayData{
		Doc:         doc,
		Kind:        kind,
		Meta:        docMeta(doc),
		ViewURL:     viewURL,
		DownloadURL: downloadURL,
	}

	switch kind {
	case domain.PreviewJSON:
		if content != nil {
			var pretty bytes.Buffer
			if err := json.Indent(&pretty, content.Data, "", "  "); err != nil {
				// malformed JSON still previews, just unformatted
				data.Body = preBlock(string(content.Data))
			} else {
				data.Body = preBlock(pretty.String())
			}
		}
	case domain.PreviewText:
		if content != nil {
			data.Body = preBlock(string(content.Data))
		}
	}

	html, err := render("overlay_document.tmpl", data)
	if err != nil {
		return ports.RenderedOverlay{}, err
	}
	return ports.RenderedOverlay{Title: doc.Filename, HTML: html}, nil
}

// AuditTrailOverlay builds the timeline overlay for an entity's audit log.
func AuditTrailOverlay(subject string, entries []domain.AuditLogEntry) (ports.RenderedOverlay, error) {
	html, err := render("overlay_trail.tmpl", struct {
		Subject string
		Entries []domain.AuditLogEntry
	}{subject, entries})
	if err != nil {
		return ports.RenderedOverlay{}, err
	}
	return ports.RenderedOverlay{Title: "Audit Trail: " + subject, HTML: html}, nil
}

func preBlock(s string) template.HTML {
	return template.HTML("<pre class=\"doc-preview\">" + template.HTMLEscapeString(s) + "</pre>")
}

// docMeta joins whatever metadata the caller actually had. Overlays opened
// from a listing know everything; ones assembled from a bare fetch may only
// know the filename.
func docMeta(doc domain.Document) string {
	var parts []string
	if doc.FileType != "" {
		parts = append(parts, doc.FileType)
	}
	if doc.FileSize > 0 {
		parts = append(parts, domain.FormatFileSize(doc.FileSize))
	}
	if !doc.UploadedAt.IsZero() {
		parts = append(parts, "uploaded "+doc.UploadedAt.Format("Jan 2, 2006"))
	}
	return strings.Join(parts, " · ")
}
