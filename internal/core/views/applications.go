package views

import (
	"context"
	"html/template"

	"github.com/glcplatform/portal/internal/core/domain"
)

// ApplicationStatuses are the filter options of the lender list view.
var ApplicationStatuses = []domain.ApplicationStatus{
	domain.StatusDraft,
	domain.StatusSubmitted,
	domain.StatusUnderReview,
	domain.StatusNeedsInfo,
	domain.StatusApproved,
	domain.StatusRejected,
}

// VerificationChoices are the outcomes a lender can record on a row.
var VerificationChoices = []domain.VerificationResult{
	domain.VerificationPass,
	domain.VerificationFail,
	domain.VerificationUnclear,
}

// ApplicationsView is the lender's pipeline: every application, filterable
// by status and sector, with verification and audit entry points per row.
type ApplicationsView struct{}

func (ApplicationsView) Title() string { return "Loan Applications" }

type applicationsData struct {
	Items    []domain.ApplicationListItem
	Filter   domain.ApplicationFilter
	Statuses []domain.ApplicationStatus
	Sectors  []string
	Choices  []domain.VerificationResult
	Filtered bool
}

func (ApplicationsView) Render(ctx context.Context, rc Context) (template.HTML, error) {
	filter := domain.ApplicationFilter{
		Status: rc.Params.StatusFilter,
		Sector: rc.Params.SectorFilter,
	}

	items, err := rc.Backend.Applications(ctx, rc.Session, filter)
	if err != nil {
		return "", err
	}

	return render("applications.tmpl", applicationsData{
		Items:    items,
		Filter:   filter,
		Statuses: ApplicationStatuses,
		Sectors:  domain.GLPSectors,
		Choices:  VerificationChoices,
		Filtered: filter.Status != "" || filter.Sector != "",
	})
}
