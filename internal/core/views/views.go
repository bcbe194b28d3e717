// Package views builds the HTML fragments of the portal pages. A view
// renders one page's content region only; chrome (menu, title, overlay
// host) belongs to the shell and is managed by the navigation core.
//
// Views share one contract: expected conditions such as empty lists or
// missing optional data render explanatory fragments, never errors. Only
// unexpected failures (backend down, malformed payloads) may be returned,
// and the navigation core turns those into inline error fragments.
package views

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/glcplatform/portal/internal/core/domain"
	"github.com/glcplatform/portal/internal/core/ports"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var funcs = template.FuncMap{
	"money":    money,
	"score":    score,
	"pct":      pct,
	"date":     func(t time.Time) string { return t.Format("Jan 2, 2006") },
	"datetime": func(t time.Time) string { return t.Format("Jan 2, 2006 15:04") },
	"filesize": domain.FormatFileSize,
	"eligible": eligible,
	"conf":     conf,
	"deref": func(v *bool) bool {
		return v != nil && *v
	},
	"statusClass": func(s domain.ApplicationStatus) string {
		return "status-" + strings.ReplaceAll(string(s), "_", "-")
	},
}

var tmpl = template.Must(template.New("views").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl"))

// VisitCache is per-visit state a view may keep for the duration of one
// page visit. The audit view parks its fetched bundle here so tab switches
// do not re-fetch; the navigation core clears it when the visit leaves the
// page.
type VisitCache interface {
	AuditBundle(subjectID int) (*domain.AuditBundle, bool)
	StoreAuditBundle(subjectID int, bundle *domain.AuditBundle)
}

// Context carries everything a view may draw on during one render.
type Context struct {
	Session domain.Session
	Params  domain.NavParams
	Backend ports.BackendGateway
	Drafts  ports.DraftStore
	Visit   VisitCache
	Tab     domain.AuditTab
	Log     zerolog.Logger
}

// View is one page module.
type View interface {
	// Title is the static page title shown in the shell chrome.
	Title() string
	Render(ctx context.Context, rc Context) (template.HTML, error)
}

// Registry maps every page id to its view.
type Registry map[domain.PageID]View

// NewRegistry wires one instance of every page view, keyed by page id.
// The not-found fallback is part of the registry like any other page.
func NewRegistry() Registry {
	return Registry{
		domain.PageDashboard:      DashboardView{},
		domain.PageApply:          ApplyView{},
		domain.PageApplications:   ApplicationsView{},
		domain.PageMyApplications: MyApplicationsView{},
		domain.PageLoanAssets:     LoanAssetsView{},
		domain.PagePortfolio:      PortfolioView{},
		domain.PageAudit:          AuditView{},
		domain.PageDocs:           DocsView{},
		domain.PageLearn:          LearnView{},
		domain.PageNotFound:       NotFoundView{},
	}
}

func render(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// ErrorFragment renders the inline failure notice shown in place of a page
// that could not load. It never fails: if the template itself breaks, a
// minimal escaped fallback is produced.
func ErrorFragment(message string, retry bool) template.HTML {
	out, err := render("error.tmpl", struct {
		Message string
		Retry   bool
	}{message, retry})
	if err != nil {
		return template.HTML("<div class=\"error-box\">" + template.HTMLEscapeString(message) + "</div>")
	}
	return out
}

// Loading is the placeholder the shell shows synchronously while a page
// fragment is being fetched.
func Loading() template.HTML {
	out, err := render("loading.tmpl", nil)
	if err != nil {
		return template.HTML("<div class=\"loading\">Loading…</div>")
	}
	return out
}

// UserMessage maps an error onto the text a fragment shows to the user.
// Transport failures get actionable wording; anything else surfaces its
// message as-is.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case domain.BackendDown(err):
		return "The lending service is not responding. Please try again in a moment."
	default:
		if status, ok := domain.APIStatus(err); ok {
			return fmt.Sprintf("The lending service reported a problem (status %d).", status)
		}
		return err.Error()
	}
}

func money(amount float64, currency string) string {
	whole := int64(amount)
	neg := whole < 0
	if neg {
		whole = -whole
	}
	s := strconv.FormatInt(whole, 10)
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	out := b.String()
	if neg {
		out = "-" + out
	}
	if currency == "" {
		return out
	}
	return currency + " " + out
}

// score formats a nilable ESG score; absent scores show as pending.
func score(v *float64) string {
	if v == nil {
		return "—"
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}

func pct(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

// conf renders a 0..1 confidence as a whole percentage.
func conf(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 0, 64) + "%"
}

func eligible(v *bool) string {
	switch {
	case v == nil:
		return "Pending"
	case *v:
		return "Eligible"
	default:
		return "Not Eligible"
	}
}
