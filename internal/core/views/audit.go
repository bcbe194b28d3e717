package views

import (
	"context"
	"html/template"

	"github.com/glcplatform/portal/internal/core/domain"
)

// auditEntityType is the backend's audit-log entity name for applications.
const auditEntityType = "LoanApplication"

// AuditView is the tabbed ESG audit report for one application. Without a
// subject it renders a picker over the session's applications; with one it
// fetches the report bundle once per visit and renders the current tab.
type AuditView struct{}

func (AuditView) Title() string { return "ESG Audit" }

type auditPickerItem struct {
	ID      int
	Project string
	Org     string
	Status  domain.ApplicationStatus
	Score   *float64
}

type auditPickerData struct {
	Role  string
	Items []auditPickerItem
}

type auditPageData struct {
	SubjectID int
	Bundle    *domain.AuditBundle
	Tabs      []domain.AuditTab
	Current   domain.AuditTab
	TabHTML   template.HTML
}

func (AuditView) Render(ctx context.Context, rc Context) (template.HTML, error) {
	if rc.Params.AuditSubjectID == 0 {
		return renderAuditPicker(ctx, rc)
	}

	bundle, err := EnsureAuditBundle(ctx, rc, rc.Params.AuditSubjectID)
	if err != nil {
		return "", err
	}

	tab := rc.Tab
	if tab == "" {
		tab = domain.TabGeneral
	}
	tabHTML, err := RenderAuditTab(bundle, tab)
	if err != nil {
		return "", err
	}

	return render("audit.tmpl", auditPageData{
		SubjectID: rc.Params.AuditSubjectID,
		Bundle:    bundle,
		Tabs:      domain.AuditTabs,
		Current:   tab,
		TabHTML:   tabHTML,
	})
}

// EnsureAuditBundle returns the visit's cached bundle for the subject, or
// fetches and caches it. Within one audit-page visit the backend is hit at
// most once; the navigation core clears the cache when the visit leaves
// the page.
func EnsureAuditBundle(ctx context.Context, rc Context, subjectID int) (*domain.AuditBundle, error) {
	if rc.Visit != nil {
		if bundle, ok := rc.Visit.AuditBundle(subjectID); ok {
			return bundle, nil
		}
	}

	bundle, err := fetchAuditBundle(ctx, rc, subjectID)
	if err != nil {
		return nil, err
	}
	if rc.Visit != nil {
		rc.Visit.StoreAuditBundle(subjectID, bundle)
	}
	return bundle, nil
}

func fetchAuditBundle(ctx context.Context, rc Context, subjectID int) (*domain.AuditBundle, error) {
	bundle := &domain.AuditBundle{}

	if rc.Session.Role == domain.RoleLender {
		full, err := rc.Backend.ApplicationDetail(ctx, rc.Session, subjectID)
		if err != nil {
			return nil, err
		}
		bundle.Full = &full
		bundle.Detail = full.LoanApp
		bundle.Docs = full.Documents
	} else {
		app, err := rc.Backend.MyApplication(ctx, rc.Session, subjectID)
		if err != nil {
			return nil, err
		}
		bundle.Detail = app

		docs, err := rc.Backend.ApplicationDocuments(ctx, rc.Session, subjectID)
		if err != nil {
			return nil, err
		}
		bundle.Docs = docs
	}

	trail, err := rc.Backend.AuditTrail(ctx, rc.Session, auditEntityType, subjectID)
	if err != nil {
		// the report is still useful without its trail
		rc.Log.Warn().Err(err).Int("loan_id", subjectID).Msg("audit trail unavailable")
		bundle.TrailNote = "The audit trail could not be loaded."
		return bundle, nil
	}
	bundle.Trail = trail
	return bundle, nil
}

// RenderAuditTab renders only the tab content region. Tab switches go
// through here without touching the rest of the page.
func RenderAuditTab(bundle *domain.AuditBundle, tab domain.AuditTab) (template.HTML, error) {
	switch tab {
	case domain.TabESG:
		return render("audit_esg.tmpl", bundle)
	case domain.TabDocuments:
		return render("audit_documents.tmpl", bundle)
	case domain.TabTrail:
		return render("audit_trail.tmpl", bundle)
	default:
		return render("audit_general.tmpl", bundle)
	}
}

func renderAuditPicker(ctx context.Context, rc Context) (template.HTML, error) {
	data := auditPickerData{Role: rc.Session.Role}

	if rc.Session.Role == domain.RoleLender {
		items, err := rc.Backend.Applications(ctx, rc.Session, domain.ApplicationFilter{})
		if err != nil {
			return "", err
		}
		for _, it := range items {
			data.Items = append(data.Items, auditPickerItem{
				ID:      it.ID,
				Project: it.ProjectName,
				Org:     it.OrgName,
				Status:  it.Status,
				Score:   it.ESGScore,
			})
		}
	} else {
		apps, err := rc.Backend.MyApplications(ctx, rc.Session)
		if err != nil {
			return "", err
		}
		for _, app := range apps {
			data.Items = append(data.Items, auditPickerItem{
				ID:      app.ID,
				Project: app.ProjectName,
				Status:  app.Status,
				Score:   app.ESGScore,
			})
		}
	}

	return render("audit_picker.tmpl", data)
}
