package views

import (
	"context"
	"errors"
	"html/template"

	"github.com/glcplatform/portal/internal/core/domain"
)

// DocumentCategories are the upload categories offered alongside the
// application form and in the document center.
var DocumentCategories = []string{
	"general",
	"project_plan",
	"esg_report",
	"financial_statement",
	"technical_report",
	"permit",
}

// Currencies offered in the application form.
var Currencies = []string{"USD", "EUR", "GBP", "CHF", "INR", "BRL"}

// ApplyView is the borrower's multi-section application form. A previously
// saved draft pre-fills text and select fields and restores checkbox state;
// file inputs always start empty.
type ApplyView struct{}

func (ApplyView) Title() string { return "New Loan Application" }

type applyData struct {
	Sectors    []string
	Currencies []string
	Categories []string
	Draft      domain.Draft
	HasDraft   bool
}

func (ApplyView) Render(ctx context.Context, rc Context) (template.HTML, error) {
	data := applyData{
		Sectors:    domain.GLPSectors,
		Currencies: Currencies,
		Categories: DocumentCategories,
		Draft:      domain.Draft{},
	}

	draft, err := rc.Drafts.Load(ctx, rc.Session.UserID, domain.PageApply)
	switch {
	case err == nil:
		data.Draft = draft
		data.HasDraft = true
	case errors.Is(err, domain.ErrDraftNotFound):
		// no draft saved, render the empty form
	default:
		// a broken draft store must not block applying
		rc.Log.Warn().Err(err).Int("user_id", rc.Session.UserID).Msg("draft load failed, rendering empty form")
	}

	return render("apply.tmpl", data)
}
