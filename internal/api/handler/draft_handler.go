package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/glcplatform/portal/internal/core/domain"
	"github.com/glcplatform/portal/internal/core/ports"
)

// DraftHandler persists form drafts across sessions. The draft body is an
// opaque field map; the server only checks that the page accepts drafts.
type DraftHandler struct {
	drafts ports.DraftService
}

func NewDraftHandler(drafts ports.DraftService) *DraftHandler {
	return &DraftHandler{drafts: drafts}
}

// Get handles GET /portal/drafts/:page.
func (h *DraftHandler) Get(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	draft, err := h.drafts.Load(c.Request().Context(), sess, domain.PageID(c.Param("page")))
	if err != nil {
		if errors.Is(err, domain.ErrDraftNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "no draft saved"})
		}
		return err
	}
	return c.JSON(http.StatusOK, draft)
}

// Put handles PUT /portal/drafts/:page.
func (h *DraftHandler) Put(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var draft domain.Draft
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid draft payload")
	}

	if err := h.drafts.Save(c.Request().Context(), sess, domain.PageID(c.Param("page")), draft); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /portal/drafts/:page.
func (h *DraftHandler) Delete(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.drafts.Delete(c.Request().Context(), sess, domain.PageID(c.Param("page"))); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
