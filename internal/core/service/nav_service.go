package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/glcplatform/portal/internal/api/metrics"
	"github.com/glcplatform/portal/internal/core/domain"
	"github.com/glcplatform/portal/internal/core/ports"
	"github.com/glcplatform/portal/internal/core/views"
)

const visitSweepInterval = 5 * time.Minute

// visitState is the server-side navigation state of one browser visit. The
// sequence number increases with every navigation; a render that finishes
// after a newer navigation has bumped it is reported stale.
type visitState struct {
	mu       sync.Mutex
	seq      uint64
	page     domain.PageID
	tab      domain.AuditTab
	bundles  map[int]*domain.AuditBundle
	lastSeen time.Time
}

// AuditBundle implements views.VisitCache.
func (v *visitState) AuditBundle(subjectID int) (*domain.AuditBundle, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	b, ok := v.bundles[subjectID]
	return b, ok
}

// StoreAuditBundle implements views.VisitCache.
func (v *visitState) StoreAuditBundle(subjectID int, bundle *domain.AuditBundle) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.bundles == nil {
		v.bundles = make(map[int]*domain.AuditBundle)
	}
	v.bundles[subjectID] = bundle
}

// NavService is the navigation core: it resolves page ids, renders view
// fragments and tracks per-visit state. It never returns errors to callers;
// every failure ends as a renderable fragment.
type NavService struct {
	registry views.Registry
	backend  ports.BackendGateway
	drafts   ports.DraftStore
	homes    map[string]domain.PageID
	visitTTL time.Duration
	logger   zerolog.Logger

	mu     sync.Mutex
	visits map[string]*visitState
}

// NewNavService validates the configured landing pages and builds the
// navigation core. A home page that is unknown or not viewable by its role
// is a deployment mistake and fails construction.
func NewNavService(backend ports.BackendGateway, drafts ports.DraftStore, lenderHome, borrowerHome string, visitTTL time.Duration, logger zerolog.Logger) (*NavService, error) {
	homes := map[string]domain.PageID{
		domain.RoleLender:   domain.ParsePageID(lenderHome),
		domain.RoleBorrower: domain.ParsePageID(borrowerHome),
	}
	for role, page := range homes {
		if !domain.KnownPage(page) || !domain.RoleCanView(role, page) {
			return nil, fmt.Errorf("invalid home page %q for role %s", page, role)
		}
	}
	if visitTTL <= 0 {
		visitTTL = 2 * time.Hour
	}
	return &NavService{
		registry: views.NewRegistry(),
		backend:  backend,
		drafts:   drafts,
		homes:    homes,
		visitTTL: visitTTL,
		logger:   logger,
		visits:   make(map[string]*visitState),
	}, nil
}

// Navigate resolves and renders one page for a visit. Unknown pages and
// pages outside the role's menu resolve to the not-found fragment; view
// failures render as inline error fragments. The result carries the visit's
// sequence number, and Stale is set when a newer navigation overtook this
// one while its view was rendering.
func (s *NavService) Navigate(ctx context.Context, sess domain.Session, page domain.PageID, params domain.NavParams) ports.RenderedPage {
	resolved := page
	if !domain.KnownPage(resolved) || !domain.RoleCanView(sess.Role, resolved) {
		resolved = domain.PageNotFound
	}

	st := s.visit(sess.VisitID)
	st.mu.Lock()
	st.seq++
	seq := st.seq
	if st.page == domain.PageAudit && resolved != domain.PageAudit {
		// leaving the audit page invalidates its per-visit bundle cache
		st.bundles = nil
	}
	st.page = resolved
	st.tab = domain.TabGeneral
	st.lastSeen = time.Now()
	st.mu.Unlock()

	view := s.registry[resolved]
	rc := views.Context{
		Session: sess,
		Params:  params,
		Backend: s.backend,
		Drafts:  s.drafts,
		Visit:   st,
		Tab:     domain.TabGeneral,
		Log:     s.logger,
	}

	html, err := view.Render(ctx, rc)
	if err != nil {
		metrics.ViewErrorsTotal.WithLabelValues(string(resolved)).Inc()
		s.logger.Warn().Err(err).Str("page", string(resolved)).Str("visit_id", sess.VisitID).Msg("view render failed")
		html = views.ErrorFragment(views.UserMessage(err), true)
	}

	st.mu.Lock()
	stale := st.seq != seq
	st.mu.Unlock()
	if stale {
		metrics.StaleRendersTotal.Inc()
	}

	metrics.NavigationsTotal.WithLabelValues(string(resolved), sess.Role).Inc()

	return ports.RenderedPage{
		Seq:   seq,
		Page:  resolved,
		Title: view.Title(),
		HTML:  html,
		Menu:  menuEntries(sess.Role, resolved),
		Stale: stale,
	}
}

// SwitchAuditTab renders one audit tab for the visit's cached bundle. The
// page frame is untouched; only the tab content region is produced. A
// subject the visit has not loaded yet is fetched and cached exactly as a
// full audit navigation would.
func (s *NavService) SwitchAuditTab(ctx context.Context, sess domain.Session, subjectID int, tab domain.AuditTab) ports.RenderedTab {
	st := s.visit(sess.VisitID)
	st.mu.Lock()
	st.tab = tab
	st.lastSeen = time.Now()
	st.mu.Unlock()

	rc := views.Context{
		Session: sess,
		Backend: s.backend,
		Drafts:  s.drafts,
		Visit:   st,
		Tab:     tab,
		Log:     s.logger,
	}

	bundle, err := views.EnsureAuditBundle(ctx, rc, subjectID)
	if err != nil {
		metrics.ViewErrorsTotal.WithLabelValues(string(domain.PageAudit)).Inc()
		s.logger.Warn().Err(err).Int("loan_id", subjectID).Msg("audit bundle fetch failed")
		return ports.RenderedTab{Tab: tab, HTML: views.ErrorFragment(views.UserMessage(err), true)}
	}

	html, err := views.RenderAuditTab(bundle, tab)
	if err != nil {
		metrics.ViewErrorsTotal.WithLabelValues(string(domain.PageAudit)).Inc()
		s.logger.Warn().Err(err).Str("tab", string(tab)).Msg("audit tab render failed")
		return ports.RenderedTab{Tab: tab, HTML: views.ErrorFragment(views.UserMessage(err), false)}
	}
	return ports.RenderedTab{Tab: tab, HTML: html}
}

// DefaultPage returns the configured landing page for a role.
func (s *NavService) DefaultPage(role string) domain.PageID {
	if page, ok := s.homes[role]; ok {
		return page
	}
	return domain.PageNotFound
}

// EndVisit drops a visit's navigation state. Called on logout; idle visits
// are also collected by the janitor.
func (s *NavService) EndVisit(visitID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.visits[visitID]; ok {
		delete(s.visits, visitID)
		metrics.ActiveVisits.Dec()
	}
}

// Start launches the visit janitor. It stops when ctx is cancelled.
func (s *NavService) Start(ctx context.Context) {
	go s.runJanitor(ctx)
}

func (s *NavService) runJanitor(ctx context.Context) {
	ticker := time.NewTicker(visitSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepVisits(time.Now())
		}
	}
}

// sweepVisits drops visits idle longer than the visit TTL.
func (s *NavService) sweepVisits(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	purged := 0
	for id, st := range s.visits {
		st.mu.Lock()
		idle := now.Sub(st.lastSeen)
		st.mu.Unlock()
		if idle > s.visitTTL {
			delete(s.visits, id)
			metrics.ActiveVisits.Dec()
			purged++
		}
	}
	if purged > 0 {
		s.logger.Debug().Int("purged", purged).Msg("idle visits dropped")
	}
}

// visit returns the state for a visit id, creating it on first touch.
func (s *NavService) visit(visitID string) *visitState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.visits[visitID]
	if !ok {
		st = &visitState{lastSeen: time.Now()}
		s.visits[visitID] = st
		metrics.ActiveVisits.Inc()
	}
	return st
}

// menuEntries stamps the active flag onto the role's menu for one render.
func menuEntries(role string, active domain.PageID) []ports.MenuEntry {
	items := domain.MenuFor(role)
	entries := make([]ports.MenuEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, ports.MenuEntry{Item: item, Active: item.Page == active})
	}
	return entries
}
