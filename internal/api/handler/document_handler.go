package handler

import (
	"mime"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/glcplatform/portal/internal/core/ports"
)

// DocumentHandler proxies document bytes from the backend and serves the
// preview overlays. Files stream through the portal so the browser never
// needs backend credentials.
type DocumentHandler struct {
	docs ports.DocumentService
}

func NewDocumentHandler(docs ports.DocumentService) *DocumentHandler {
	return &DocumentHandler{docs: docs}
}

// Download handles GET /portal/documents/:id/download.
func (h *DocumentHandler) Download(c echo.Context) error {
	return h.stream(c, true)
}

// View handles GET /portal/documents/:id/view. PDF and image previews
// embed this URL directly.
func (h *DocumentHandler) View(c echo.Context) error {
	return h.stream(c, false)
}

func (h *DocumentHandler) stream(c echo.Context, attachment bool) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	docID, err := pathID(c)
	if err != nil {
		return err
	}

	content, err := h.docs.Fetch(c.Request().Context(), sess, docID, attachment)
	if err != nil {
		return err
	}

	disposition := "inline"
	if attachment {
		disposition = "attachment"
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		mime.FormatMediaType(disposition, map[string]string{"filename": content.Filename}))

	contentType := content.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	return c.Blob(http.StatusOK, contentType, content.Data)
}

// Overlay handles GET /portal/documents/:id/overlay.
func (h *DocumentHandler) Overlay(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	docID, err := pathID(c)
	if err != nil {
		return err
	}

	overlay, err := h.docs.PreviewOverlay(c.Request().Context(), sess, docID, c.QueryParam("filename"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, overlayResponse{Title: overlay.Title, HTML: string(overlay.HTML)})
}

// Trail handles GET /portal/applications/:id/trail.
func (h *DocumentHandler) Trail(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	loanID, err := pathID(c)
	if err != nil {
		return err
	}

	overlay, err := h.docs.TrailOverlay(c.Request().Context(), sess, loanID, c.QueryParam("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, overlayResponse{Title: overlay.Title, HTML: string(overlay.HTML)})
}
