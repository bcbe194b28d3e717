package views

import (
	"context"
	"html/template"
)

// NotFoundView is the fallback for every unknown or inaccessible page id.
// Reaching it is an expected outcome, never an error.
type NotFoundView struct{}

func (NotFoundView) Title() string { return "Page Not Found" }

func (NotFoundView) Render(ctx context.Context, rc Context) (template.HTML, error) {
	return render("not_found.tmpl", nil)
}
