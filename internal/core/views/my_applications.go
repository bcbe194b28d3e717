package views

import (
	"context"
	"html/template"

	"github.com/glcplatform/portal/internal/core/domain"
)

// MyApplicationsView is the borrower's own application list with scoring
// state and audit entry points.
type MyApplicationsView struct{}

func (MyApplicationsView) Title() string { return "My Applications" }

type myApplicationsData struct {
	Name string
	Apps []domain.LoanApplication
}

func (MyApplicationsView) Render(ctx context.Context, rc Context) (template.HTML, error) {
	apps, err := rc.Backend.MyApplications(ctx, rc.Session)
	if err != nil {
		return "", err
	}
	return render("my_applications.tmpl", myApplicationsData{
		Name: rc.Session.Name,
		Apps: apps,
	})
}
