package ports

import (
	"context"
	"html/template"

	"github.com/glcplatform/portal/internal/core/domain"
)

// MenuEntry is a menu item plus its per-render active flag. Every render of
// a known page marks exactly one entry active; the not-found fallback marks
// none.
type MenuEntry struct {
	Item   domain.MenuItem
	Active bool
}

// RenderedPage is what one navigation produces: everything the shell needs
// to swap the content region and update the chrome.
type RenderedPage struct {
	Seq   uint64
	Page  domain.PageID
	Title string
	HTML  template.HTML
	Menu  []MenuEntry
	// Stale marks a render that lost the race against a newer navigation in
	// the same visit; the shell discards it instead of swapping it in.
	Stale bool
}

// RenderedTab is a tab switch inside the audit page: only the tab content
// region is replaced, the rest of the page stays as rendered.
type RenderedTab struct {
	Tab  domain.AuditTab
	HTML template.HTML
}

// RenderedOverlay is a modal fragment for the shell's single overlay host.
// Showing a new overlay replaces whatever is currently displayed rather
// than stacking.
type RenderedOverlay struct {
	Title string
	HTML  template.HTML
}

// NavService is the navigation core. It is the only way a visit moves
// between pages, and it never returns an error: unknown pages become the
// not-found fragment and view failures become inline error fragments.
type NavService interface {
	Navigate(ctx context.Context, sess domain.Session, page domain.PageID, params domain.NavParams) RenderedPage
	SwitchAuditTab(ctx context.Context, sess domain.Session, subjectID int, tab domain.AuditTab) RenderedTab
	// DefaultPage is the configured landing page for a role.
	DefaultPage(role string) domain.PageID
	// EndVisit drops the server-side navigation state for a visit.
	EndVisit(visitID string)
}
