package views

import (
	"context"
	"html/template"

	"github.com/glcplatform/portal/internal/core/domain"
)

// LoanAssetsView is the borrower's document center: every uploaded file
// across all applications, plus upload and processing controls.
type LoanAssetsView struct{}

func (LoanAssetsView) Title() string { return "Loan Assets" }

type loanAssetsData struct {
	Apps       []domain.LoanApplication
	Docs       []domain.Document
	Categories []string
	// AppNames maps application ids to project names for document grouping.
	AppNames map[int]string
}

func (LoanAssetsView) Render(ctx context.Context, rc Context) (template.HTML, error) {
	apps, err := rc.Backend.MyApplications(ctx, rc.Session)
	if err != nil {
		return "", err
	}

	docs, err := rc.Backend.AllMyDocuments(ctx, rc.Session)
	if err != nil {
		return "", err
	}

	names := make(map[int]string, len(apps))
	for _, app := range apps {
		names[app.ID] = app.ProjectName
	}

	return render("loan_assets.tmpl", loanAssetsData{
		Apps:       apps,
		Docs:       docs,
		Categories: DocumentCategories,
		AppNames:   names,
	})
}
