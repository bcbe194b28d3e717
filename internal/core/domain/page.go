package domain

// PageID names one screen of the portal. Navigation only ever targets a
// value from the enumerated set; anything else resolves to the not-found
// page rather than an error.
type PageID string

const (
	PageDashboard      PageID = "dashboard"
	PageApply          PageID = "apply"
	PageApplications   PageID = "applications"
	PageMyApplications PageID = "my-applications"
	PageLoanAssets     PageID = "loan-assets"
	PagePortfolio      PageID = "portfolio"
	PageAudit          PageID = "audit"
	PageDocs           PageID = "docs"
	PageLearn          PageID = "learn"
	PageNotFound       PageID = "not-found"
)

var pageSet = map[PageID]struct{}{
	PageDashboard:      {},
	PageApply:          {},
	PageApplications:   {},
	PageMyApplications: {},
	PageLoanAssets:     {},
	PagePortfolio:      {},
	PageAudit:          {},
	PageDocs:           {},
	PageLearn:          {},
}

// ParsePageID maps a raw identifier onto the page set. Unknown identifiers
// come back as PageNotFound: a stale or mistyped id is expected input.
func ParsePageID(raw string) PageID {
	p := PageID(raw)
	if _, ok := pageSet[p]; ok {
		return p
	}
	return PageNotFound
}

// KnownPage reports whether p is a navigable page (not the fallback).
func KnownPage(p PageID) bool {
	_, ok := pageSet[p]
	return ok
}

// NavParams carries the typed inputs of a single navigation. Parameters
// travel with the Navigate call itself, never through shared mutable state.
type NavParams struct {
	// AuditSubjectID selects the loan application the audit page reports on.
	// Zero means no subject was chosen yet.
	AuditSubjectID int
	// StatusFilter and SectorFilter narrow the lender applications list.
	StatusFilter string
	SectorFilter string
}

// MenuItem is one entry in a role's navigation menu.
type MenuItem struct {
	Page  PageID
	Label string
	Icon  string
}

// Menus are fixed at compile time and shared between requests; callers must
// treat the returned slices as read-only. Which entry is active is decided
// per render, not stored here.
var lenderMenu = []MenuItem{
	{Page: PageDashboard, Label: "Dashboard", Icon: "home"},
	{Page: PageApplications, Label: "Applications", Icon: "inbox"},
	{Page: PagePortfolio, Label: "Portfolio", Icon: "chart"},
	{Page: PageAudit, Label: "ESG Audit", Icon: "shield"},
	{Page: PageDocs, Label: "Documentation", Icon: "book"},
	{Page: PageLearn, Label: "Learn", Icon: "bulb"},
}

var borrowerMenu = []MenuItem{
	{Page: PageMyApplications, Label: "My Applications", Icon: "inbox"},
	{Page: PageApply, Label: "New Application", Icon: "plus"},
	{Page: PageLoanAssets, Label: "Loan Assets", Icon: "folder"},
	{Page: PageAudit, Label: "ESG Audit", Icon: "shield"},
	{Page: PageDocs, Label: "Documentation", Icon: "book"},
	{Page: PageLearn, Label: "Learn", Icon: "bulb"},
}

// MenuFor returns the fixed menu for a role, or nil for an unknown role.
func MenuFor(role string) []MenuItem {
	switch role {
	case RoleLender:
		return lenderMenu
	case RoleBorrower:
		return borrowerMenu
	default:
		return nil
	}
}

// RoleCanView reports whether a role's menu contains the page. The
// not-found fallback is viewable by everyone.
func RoleCanView(role string, page PageID) bool {
	if page == PageNotFound {
		return true
	}
	for _, item := range MenuFor(role) {
		if item.Page == page {
			return true
		}
	}
	return false
}
