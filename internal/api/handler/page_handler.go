package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/glcplatform/portal/internal/core/domain"
	"github.com/glcplatform/portal/internal/core/ports"
	"github.com/glcplatform/portal/internal/core/views"
)

// PageHandler serves the shell document and the page fragments it swaps
// in. The address bar always shows /portal; which page is visible lives in
// the navigation core, not the URL.
type PageHandler struct {
	nav ports.NavService
}

func NewPageHandler(nav ports.NavService) *PageHandler {
	return &PageHandler{nav: nav}
}

// Shell handles GET /portal: the single full-document render. The content
// region starts as a loading placeholder; the shell script fetches the
// initial fragment immediately after load.
func (h *PageHandler) Shell(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	initial := h.nav.DefaultPage(sess.Role)
	menu := make([]ports.MenuEntry, 0)
	for _, item := range domain.MenuFor(sess.Role) {
		menu = append(menu, ports.MenuEntry{Item: item, Active: item.Page == initial})
	}

	return c.Render(http.StatusOK, "shell.tmpl", shellData{
		Name:        sess.Name,
		Role:        sess.Role,
		Menu:        menu,
		InitialPage: string(initial),
		Loading:     views.Loading(),
	})
}

// Fragment handles GET /portal/fragment/:page.
func (h *PageHandler) Fragment(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	page := domain.ParsePageID(c.Param("page"))
	params := domain.NavParams{
		AuditSubjectID: intQuery(c, "app"),
		StatusFilter:   c.QueryParam("status"),
		SectorFilter:   c.QueryParam("sector"),
	}

	rendered := h.nav.Navigate(c.Request().Context(), sess, page, params)
	return c.JSON(http.StatusOK, toFragmentResponse(rendered))
}

// AuditTab handles GET /portal/fragment/audit/:tab. Only the audit page's
// tab content region is produced; the surrounding page is untouched.
func (h *PageHandler) AuditTab(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	subjectID := intQuery(c, "app")
	if subjectID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "app parameter required")
	}
	tab := domain.ParseAuditTab(c.Param("tab"))

	rendered := h.nav.SwitchAuditTab(c.Request().Context(), sess, subjectID, tab)
	return c.JSON(http.StatusOK, tabResponse{Tab: string(rendered.Tab), HTML: string(rendered.HTML)})
}

// intQuery reads an integer query parameter; absent or malformed values
// come back as zero.
func intQuery(c echo.Context, name string) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return v
}
