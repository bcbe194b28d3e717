package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/glcplatform/portal/internal/core/domain"
	"github.com/glcplatform/portal/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub gateway
// ---------------------------------------------------------------------------

// stubGateway is a scripted BackendGateway shared by the service tests in
// this package. Zero values answer every call with empty data; tests set
// the fields they care about.
type stubGateway struct {
	mu sync.Mutex

	session  domain.Session
	loginErr error

	myApps  []domain.LoanApplication
	apps    []domain.ApplicationListItem
	detail  domain.ApplicationDetail
	summary domain.PortfolioSummary
	docs    []domain.Document
	myDocs  []domain.Document
	trail   []domain.AuditLogEntry

	receipt   domain.ApplicationReceipt
	createErr error
	uploadErr map[string]error // per-filename failures
	job       domain.IngestionJob
	ingestErr error
	verified  domain.Verification
	verifyErr error
	content   domain.DocumentContent
	dataErr   error // when set, every read fails with it
	trailErr  error

	// onApplications runs inside Applications before it returns, letting a
	// test overlap a second navigation with an in-flight render.
	onApplications func()

	detailCalls int
	myAppCalls  int
	uploaded    []ports.UploadFile
	ingested    []int
	lastFilter  domain.ApplicationFilter
	lastVerify  domain.VerificationInput
}

func (g *stubGateway) Login(_ context.Context, role string) (domain.Session, error) {
	if g.loginErr != nil {
		return domain.Session{}, g.loginErr
	}
	sess := g.session
	if sess.UserID == 0 {
		sess = domain.Session{UserID: 1, Name: "Stub User", Role: role, Token: "tok-" + role}
	}
	return sess, nil
}

func (g *stubGateway) MyApplications(_ context.Context, _ domain.Session) ([]domain.LoanApplication, error) {
	if g.dataErr != nil {
		return nil, g.dataErr
	}
	return g.myApps, nil
}

func (g *stubGateway) MyApplication(_ context.Context, _ domain.Session, loanID int) (domain.LoanApplication, error) {
	g.mu.Lock()
	g.myAppCalls++
	g.mu.Unlock()
	if g.dataErr != nil {
		return domain.LoanApplication{}, g.dataErr
	}
	for _, app := range g.myApps {
		if app.ID == loanID {
			return app, nil
		}
	}
	return domain.LoanApplication{}, &domain.APIError{Status: 404}
}

func (g *stubGateway) CreateApplication(_ context.Context, _ domain.Session, _ domain.ApplicationForm) (domain.ApplicationReceipt, error) {
	if g.createErr != nil {
		return domain.ApplicationReceipt{}, g.createErr
	}
	return g.receipt, nil
}

func (g *stubGateway) UploadDocument(_ context.Context, _ domain.Session, _ int, file ports.UploadFile) (domain.UploadReceipt, error) {
	if err, ok := g.uploadErr[file.Filename]; ok {
		return domain.UploadReceipt{}, err
	}
	g.mu.Lock()
	g.uploaded = append(g.uploaded, file)
	g.mu.Unlock()
	return domain.UploadReceipt{Filename: file.Filename, Status: "uploaded"}, nil
}

func (g *stubGateway) SubmitForIngestion(_ context.Context, _ domain.Session, loanID int) (domain.IngestionJob, error) {
	if g.ingestErr != nil {
		return domain.IngestionJob{}, g.ingestErr
	}
	g.mu.Lock()
	g.ingested = append(g.ingested, loanID)
	g.mu.Unlock()
	job := g.job
	job.LoanAppID = loanID
	return job, nil
}

func (g *stubGateway) AllMyDocuments(_ context.Context, _ domain.Session) ([]domain.Document, error) {
	if g.dataErr != nil {
		return nil, g.dataErr
	}
	return g.myDocs, nil
}

func (g *stubGateway) Applications(_ context.Context, _ domain.Session, filter domain.ApplicationFilter) ([]domain.ApplicationListItem, error) {
	g.mu.Lock()
	g.lastFilter = filter
	g.mu.Unlock()
	if g.onApplications != nil {
		g.onApplications()
	}
	if g.dataErr != nil {
		return nil, g.dataErr
	}
	return g.apps, nil
}

func (g *stubGateway) ApplicationDetail(_ context.Context, _ domain.Session, _ int) (domain.ApplicationDetail, error) {
	g.mu.Lock()
	g.detailCalls++
	g.mu.Unlock()
	if g.dataErr != nil {
		return domain.ApplicationDetail{}, g.dataErr
	}
	return g.detail, nil
}

func (g *stubGateway) Verify(_ context.Context, _ domain.Session, _ int, input domain.VerificationInput) (domain.Verification, error) {
	g.mu.Lock()
	g.lastVerify = input
	g.mu.Unlock()
	if g.verifyErr != nil {
		return domain.Verification{}, g.verifyErr
	}
	return g.verified, nil
}

func (g *stubGateway) PortfolioSummary(_ context.Context, _ domain.Session) (domain.PortfolioSummary, error) {
	if g.dataErr != nil {
		return domain.PortfolioSummary{}, g.dataErr
	}
	return g.summary, nil
}

func (g *stubGateway) ApplicationDocuments(_ context.Context, _ domain.Session, _ int) ([]domain.Document, error) {
	if g.dataErr != nil {
		return nil, g.dataErr
	}
	return g.docs, nil
}

func (g *stubGateway) ViewDocument(_ context.Context, _ domain.Session, _ int) (domain.DocumentContent, error) {
	if g.dataErr != nil {
		return domain.DocumentContent{}, g.dataErr
	}
	return g.content, nil
}

func (g *stubGateway) DownloadDocument(_ context.Context, _ domain.Session, _ int) (domain.DocumentContent, error) {
	if g.dataErr != nil {
		return domain.DocumentContent{}, g.dataErr
	}
	return g.content, nil
}

func (g *stubGateway) AuditTrail(_ context.Context, _ domain.Session, _ string, _ int) ([]domain.AuditLogEntry, error) {
	if g.trailErr != nil {
		return nil, g.trailErr
	}
	if g.dataErr != nil {
		return nil, g.dataErr
	}
	return g.trail, nil
}

func (g *stubGateway) Health(_ context.Context) error { return nil }

// ---------------------------------------------------------------------------
// Stub draft store
// ---------------------------------------------------------------------------

type stubDraftStore struct {
	mu      sync.Mutex
	drafts  map[string]domain.Draft
	saveErr error
}

func newStubDraftStore() *stubDraftStore {
	return &stubDraftStore{drafts: make(map[string]domain.Draft)}
}

func draftKey(userID int, page domain.PageID) string {
	return fmt.Sprintf("%d/%s", userID, page)
}

func (s *stubDraftStore) Save(_ context.Context, userID int, page domain.PageID, draft domain.Draft) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[draftKey(userID, page)] = draft
	return nil
}

func (s *stubDraftStore) Load(_ context.Context, userID int, page domain.PageID) (domain.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[draftKey(userID, page)]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}
	return d, nil
}

func (s *stubDraftStore) Delete(_ context.Context, userID int, page domain.PageID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, draftKey(userID, page))
	return nil
}

func (s *stubDraftStore) Ping(_ context.Context) error { return nil }

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func lenderSession() domain.Session {
	return domain.Session{UserID: 3, Name: "Laura Lender", Role: domain.RoleLender, Token: "tok-l", VisitID: "V-LENDER000001"}
}

func borrowerSession() domain.Session {
	return domain.Session{UserID: 2, Name: "Ben Borrower", Role: domain.RoleBorrower, Token: "tok-b", VisitID: "V-BORROWER0001"}
}

func newNavForTest(t *testing.T, gw *stubGateway) *NavService {
	t.Helper()
	svc, err := NewNavService(gw, newStubDraftStore(), "dashboard", "my-applications", time.Hour, discardLogger)
	if err != nil {
		t.Fatalf("NewNavService returned error: %v", err)
	}
	return svc
}

func sampleDetail(id int) domain.ApplicationDetail {
	esg := 82.5
	return domain.ApplicationDetail{
		LoanApp: domain.LoanApplication{
			ID:          id,
			ProjectName: "Solar Farm Extension",
			Sector:      "Renewable Energy",
			Currency:    "EUR",
			Status:      domain.StatusUnderReview,
			ESGScore:    &esg,
		},
		Borrower: domain.Borrower{ID: 9, OrgName: "Helios Energy"},
		Documents: []domain.Document{
			{ID: 41, LoanAppID: id, Filename: "framework.pdf", FileType: "pdf", FileSize: 120_000},
		},
		ESGScore:         esg,
		CarbonLockinRisk: "low",
		Verification:     domain.VerificationSummary{Conclusion: "supported", Confidence: 0.8},
	}
}

// ---------------------------------------------------------------------------
// Navigate tests
// ---------------------------------------------------------------------------

func TestNavService_Navigate_SequenceIncrements(t *testing.T) {
	svc := newNavForTest(t, &stubGateway{})
	sess := lenderSession()

	first := svc.Navigate(context.Background(), sess, domain.PagePortfolio, domain.NavParams{})
	second := svc.Navigate(context.Background(), sess, domain.PageApplications, domain.NavParams{})

	if first.Seq != 1 || second.Seq != 2 {
		t.Errorf("expected seq 1 then 2, got %d then %d", first.Seq, second.Seq)
	}
	if first.Stale || second.Stale {
		t.Error("sequential navigations must not be stale")
	}
}

func TestNavService_Navigate_SequencesArePerVisit(t *testing.T) {
	svc := newNavForTest(t, &stubGateway{})
	a := lenderSession()
	b := lenderSession()
	b.VisitID = "V-OTHERVISIT01"

	svc.Navigate(context.Background(), a, domain.PagePortfolio, domain.NavParams{})
	got := svc.Navigate(context.Background(), b, domain.PagePortfolio, domain.NavParams{})

	if got.Seq != 1 {
		t.Errorf("expected fresh visit to start at seq 1, got %d", got.Seq)
	}
}

func TestNavService_Navigate_OvertakenRenderIsStale(t *testing.T) {
	gw := &stubGateway{}
	svc := newNavForTest(t, gw)
	sess := lenderSession()

	// While the applications render is mid-flight, a second navigation for
	// the same visit completes. The first result must come back stale.
	var second ports.RenderedPage
	gw.onApplications = func() {
		second = svc.Navigate(context.Background(), sess, domain.PagePortfolio, domain.NavParams{})
	}

	first := svc.Navigate(context.Background(), sess, domain.PageApplications, domain.NavParams{})

	if !first.Stale {
		t.Error("expected the overtaken navigation to be flagged stale")
	}
	if second.Stale {
		t.Error("the overtaking navigation must commit")
	}
	if first.Seq >= second.Seq {
		t.Errorf("expected the overtaken seq to be older, got %d and %d", first.Seq, second.Seq)
	}
}

func TestNavService_Navigate_UnknownPageFallsBack(t *testing.T) {
	svc := newNavForTest(t, &stubGateway{})

	got := svc.Navigate(context.Background(), lenderSession(), domain.ParsePageID("bogus"), domain.NavParams{})

	if got.Page != domain.PageNotFound {
		t.Fatalf("expected not-found page, got %q", got.Page)
	}
	for _, entry := range got.Menu {
		if entry.Active {
			t.Errorf("not-found render must not mark %q active", entry.Item.Page)
		}
	}
}

func TestNavService_Navigate_RoleGate(t *testing.T) {
	svc := newNavForTest(t, &stubGateway{})

	// dashboard is a lender page; a borrower asking for it gets not-found
	got := svc.Navigate(context.Background(), borrowerSession(), domain.PageDashboard, domain.NavParams{})

	if got.Page != domain.PageNotFound {
		t.Errorf("expected not-found for out-of-role page, got %q", got.Page)
	}
}

func TestNavService_Navigate_MarksExactlyOneMenuEntryActive(t *testing.T) {
	svc := newNavForTest(t, &stubGateway{})

	got := svc.Navigate(context.Background(), lenderSession(), domain.PageApplications, domain.NavParams{})

	active := 0
	for _, entry := range got.Menu {
		if entry.Active {
			active++
			if entry.Item.Page != domain.PageApplications {
				t.Errorf("wrong entry active: %q", entry.Item.Page)
			}
		}
	}
	if active != 1 {
		t.Errorf("expected exactly one active menu entry, got %d", active)
	}
}

func TestNavService_Navigate_ViewFailureRendersErrorFragment(t *testing.T) {
	gw := &stubGateway{dataErr: &domain.APIError{Status: 500}}
	svc := newNavForTest(t, gw)

	got := svc.Navigate(context.Background(), lenderSession(), domain.PagePortfolio, domain.NavParams{})

	if got.Page != domain.PagePortfolio {
		t.Errorf("failed render keeps its page id, got %q", got.Page)
	}
	if !strings.Contains(string(got.HTML), "error-box") {
		t.Errorf("expected inline error fragment, got: %s", got.HTML)
	}
	if !strings.Contains(string(got.HTML), "status 500") {
		t.Errorf("expected backend status in message, got: %s", got.HTML)
	}
}

func TestNavService_Navigate_PassesFiltersToBackend(t *testing.T) {
	gw := &stubGateway{}
	svc := newNavForTest(t, gw)

	svc.Navigate(context.Background(), lenderSession(), domain.PageApplications, domain.NavParams{
		StatusFilter: "approved",
		SectorFilter: "Green Buildings",
	})

	if gw.lastFilter.Status != "approved" || gw.lastFilter.Sector != "Green Buildings" {
		t.Errorf("filter not passed through, got %+v", gw.lastFilter)
	}
}

func TestNavService_Navigate_RendersListContent(t *testing.T) {
	gw := &stubGateway{apps: []domain.ApplicationListItem{
		{ID: 7, ProjectName: "Wind Repowering", OrgName: "Vento SA", Currency: "EUR", Status: domain.StatusSubmitted},
	}}
	svc := newNavForTest(t, gw)

	got := svc.Navigate(context.Background(), lenderSession(), domain.PageApplications, domain.NavParams{})

	if !strings.Contains(string(got.HTML), "Wind Repowering") {
		t.Errorf("expected list row in fragment, got: %s", got.HTML)
	}
	if got.Title != "Loan Applications" {
		t.Errorf("unexpected title %q", got.Title)
	}
}

func TestNavService_Navigate_ApplyRestoresDraft(t *testing.T) {
	store := newStubDraftStore()
	svc, err := NewNavService(&stubGateway{}, store, "dashboard", "my-applications", time.Hour, discardLogger)
	if err != nil {
		t.Fatalf("NewNavService returned error: %v", err)
	}
	sess := borrowerSession()

	draft := domain.Draft{
		"org_name":         "Verdant Energy Co",
		"sector":           "Renewable Energy",
		"confirm_accuracy": "on",
	}
	if err := store.Save(context.Background(), sess.UserID, domain.PageApply, draft); err != nil {
		t.Fatalf("seeding draft: %v", err)
	}

	got := svc.Navigate(context.Background(), sess, domain.PageApply, domain.NavParams{})

	html := string(got.HTML)
	if !strings.Contains(html, "A saved draft was restored") {
		t.Error("expected the restored-draft notice")
	}
	if !strings.Contains(html, `value="Verdant Energy Co"`) {
		t.Error("expected org_name input to carry the saved value")
	}
	if !strings.Contains(html, `value="Renewable Energy" selected`) {
		t.Error("expected the saved sector option to be selected")
	}
	if !strings.Contains(html, `name="confirm_accuracy" value="true" checked`) {
		t.Error("expected the saved checkbox to come back checked")
	}
	if strings.Contains(html, `name="has_external_review" value="true" checked`) {
		t.Error("a checkbox absent from the draft must not come back checked")
	}
	if !strings.Contains(html, `<input type="file" name="documents" multiple>`) {
		t.Error("the file input must render without any restored value")
	}
}

// ---------------------------------------------------------------------------
// Audit bundle caching
// ---------------------------------------------------------------------------

func TestNavService_AuditBundle_FetchedOncePerVisit(t *testing.T) {
	gw := &stubGateway{detail: sampleDetail(7)}
	svc := newNavForTest(t, gw)
	sess := lenderSession()

	svc.Navigate(context.Background(), sess, domain.PageAudit, domain.NavParams{AuditSubjectID: 7})
	svc.SwitchAuditTab(context.Background(), sess, 7, domain.TabESG)
	svc.SwitchAuditTab(context.Background(), sess, 7, domain.TabDocuments)

	if gw.detailCalls != 1 {
		t.Errorf("expected a single detail fetch for the visit, got %d", gw.detailCalls)
	}
}

func TestNavService_AuditBundle_DroppedOnLeavingPage(t *testing.T) {
	gw := &stubGateway{detail: sampleDetail(7)}
	svc := newNavForTest(t, gw)
	sess := lenderSession()

	svc.Navigate(context.Background(), sess, domain.PageAudit, domain.NavParams{AuditSubjectID: 7})
	svc.Navigate(context.Background(), sess, domain.PageApplications, domain.NavParams{})
	svc.Navigate(context.Background(), sess, domain.PageAudit, domain.NavParams{AuditSubjectID: 7})

	if gw.detailCalls != 2 {
		t.Errorf("expected re-fetch after leaving the audit page, got %d calls", gw.detailCalls)
	}
}

func TestNavService_SwitchAuditTab_RendersRequestedTab(t *testing.T) {
	gw := &stubGateway{detail: sampleDetail(7)}
	svc := newNavForTest(t, gw)

	got := svc.SwitchAuditTab(context.Background(), lenderSession(), 7, domain.TabDocuments)

	if got.Tab != domain.TabDocuments {
		t.Errorf("expected documents tab, got %q", got.Tab)
	}
	if !strings.Contains(string(got.HTML), "framework.pdf") {
		t.Errorf("expected document row, got: %s", got.HTML)
	}
}

func TestNavService_SwitchAuditTab_FetchFailureRendersErrorFragment(t *testing.T) {
	gw := &stubGateway{dataErr: domain.ErrBackendUnreachable}
	svc := newNavForTest(t, gw)

	got := svc.SwitchAuditTab(context.Background(), lenderSession(), 7, domain.TabESG)

	if !strings.Contains(string(got.HTML), "error-box") {
		t.Errorf("expected inline error fragment, got: %s", got.HTML)
	}
}

func TestNavService_AuditBundle_TrailFailureKeepsReport(t *testing.T) {
	gw := &stubGateway{detail: sampleDetail(7), trailErr: domain.ErrTimeout}
	svc := newNavForTest(t, gw)

	got := svc.Navigate(context.Background(), lenderSession(), domain.PageAudit, domain.NavParams{AuditSubjectID: 7})

	if !strings.Contains(string(got.HTML), "Solar Farm Extension") {
		t.Errorf("report should render without its trail, got: %s", got.HTML)
	}
}

// ---------------------------------------------------------------------------
// Visit lifecycle
// ---------------------------------------------------------------------------

func TestNavService_DefaultPage(t *testing.T) {
	svc := newNavForTest(t, &stubGateway{})

	if got := svc.DefaultPage(domain.RoleLender); got != domain.PageDashboard {
		t.Errorf("lender home: expected dashboard, got %q", got)
	}
	if got := svc.DefaultPage(domain.RoleBorrower); got != domain.PageMyApplications {
		t.Errorf("borrower home: expected my-applications, got %q", got)
	}
	if got := svc.DefaultPage("reviewer"); got != domain.PageNotFound {
		t.Errorf("unknown role: expected not-found, got %q", got)
	}
}

func TestNewNavService_RejectsInvalidHome(t *testing.T) {
	if _, err := NewNavService(&stubGateway{}, newStubDraftStore(), "apply", "my-applications", time.Hour, discardLogger); err == nil {
		t.Error("expected error for a lender home outside the lender menu")
	}
	if _, err := NewNavService(&stubGateway{}, newStubDraftStore(), "dashboard", "nonsense", time.Hour, discardLogger); err == nil {
		t.Error("expected error for an unknown borrower home")
	}
}

func TestNavService_EndVisit_DropsState(t *testing.T) {
	svc := newNavForTest(t, &stubGateway{})
	sess := lenderSession()

	svc.Navigate(context.Background(), sess, domain.PagePortfolio, domain.NavParams{})
	svc.EndVisit(sess.VisitID)

	// a navigation after EndVisit starts a fresh sequence
	got := svc.Navigate(context.Background(), sess, domain.PagePortfolio, domain.NavParams{})
	if got.Seq != 1 {
		t.Errorf("expected fresh state after EndVisit, got seq %d", got.Seq)
	}
}

func TestNavService_SweepDropsIdleVisits(t *testing.T) {
	svc := newNavForTest(t, &stubGateway{})
	sess := lenderSession()

	svc.Navigate(context.Background(), sess, domain.PagePortfolio, domain.NavParams{})
	svc.sweepVisits(time.Now().Add(2 * time.Hour))

	svc.mu.Lock()
	remaining := len(svc.visits)
	svc.mu.Unlock()
	if remaining != 0 {
		t.Errorf("expected idle visit to be swept, %d remain", remaining)
	}
}

func TestNavService_SweepKeepsActiveVisits(t *testing.T) {
	svc := newNavForTest(t, &stubGateway{})
	sess := lenderSession()

	svc.Navigate(context.Background(), sess, domain.PagePortfolio, domain.NavParams{})
	svc.sweepVisits(time.Now().Add(time.Minute))

	svc.mu.Lock()
	remaining := len(svc.visits)
	svc.mu.Unlock()
	if remaining != 1 {
		t.Errorf("expected active visit to survive the sweep, %d remain", remaining)
	}
}
