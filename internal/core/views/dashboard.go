package views

import (
	"context"
	"html/template"

	"github.com/glcplatform/portal/internal/core/domain"
)

const recentApplicationsLimit = 5

// DashboardView is the lender landing page: headline portfolio numbers and
// the most recent applications.
type DashboardView struct{}

func (DashboardView) Title() string { return "Lender Dashboard" }

type dashboardData struct {
	Name    string
	Summary domain.PortfolioSummary
	Recent  []domain.ApplicationListItem
}

func (DashboardView) Render(ctx context.Context, rc Context) (template.HTML, error) {
	summary, err := rc.Backend.PortfolioSummary(ctx, rc.Session)
	if err != nil {
		return "", err
	}

	items, err := rc.Backend.Applications(ctx, rc.Session, domain.ApplicationFilter{})
	if err != nil {
		return "", err
	}
	if len(items) > recentApplicationsLimit {
		items = items[:recentApplicationsLimit]
	}

	return render("dashboard.tmpl", dashboardData{
		Name:    rc.Session.Name,
		Summary: summary,
		Recent:  items,
	})
}
