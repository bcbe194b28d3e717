package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/glcplatform/portal/internal/core/domain"
	"github.com/glcplatform/portal/internal/core/ports"
	"github.com/glcplatform/portal/internal/core/views"
)

// documentsField is the file input name of the apply and upload forms.
const documentsField = "documents"

// ApplicationHandler handles the form actions of the portal: submitting an
// application, adding documents, requesting analysis and recording
// verifications. Every action answers with a result fragment the shell
// swaps into the content region.
type ApplicationHandler struct {
	apply  ports.ApplyService
	review ports.ReviewService
}

func NewApplicationHandler(apply ports.ApplyService, review ports.ReviewService) *ApplicationHandler {
	return &ApplicationHandler{apply: apply, review: review}
}

// Submit handles POST /portal/applications.
func (h *ApplicationHandler) Submit(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req applicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	form, err := req.toForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	files, err := formFiles(c, req.Category)
	if err != nil {
		return err
	}

	report, err := h.apply.Submit(c.Request().Context(), sess, form, files)
	if err != nil {
		return err
	}

	html, err := views.SubmissionReportFragment(report)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, actionResponse{HTML: string(html)})
}

// Upload handles POST /portal/applications/:id/documents.
func (h *ApplicationHandler) Upload(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	loanID, err := pathID(c)
	if err != nil {
		return err
	}

	files, err := formFiles(c, c.FormValue("category"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no files selected")
	}

	report := h.apply.UploadMore(c.Request().Context(), sess, loanID, files)
	html, err := views.UploadReportFragment(report)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, actionResponse{HTML: string(html)})
}

// Ingest handles POST /portal/applications/:id/ingest.
func (h *ApplicationHandler) Ingest(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	loanID, err := pathID(c)
	if err != nil {
		return err
	}

	job, err := h.apply.RequestIngestion(c.Request().Context(), sess, loanID)
	if err != nil {
		return err
	}

	html, err := views.IngestResultFragment(job)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, actionResponse{HTML: string(html)})
}

// Verify handles POST /portal/applications/:id/verify.
func (h *ApplicationHandler) Verify(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	loanID, err := pathID(c)
	if err != nil {
		return err
	}

	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	v, err := h.review.Verify(c.Request().Context(), sess, loanID, domain.VerificationResult(req.Result), req.Notes)
	if err != nil {
		return err
	}

	html, err := views.VerifyResultFragment(v)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, actionResponse{HTML: string(html)})
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid application id")
	}
	return id, nil
}

// formFiles reads every uploaded file of the request into memory, tagged
// with the shared category. A request without files is fine; the apply form
// allows document-less submissions.
func formFiles(c echo.Context, category string) ([]ports.UploadFile, error) {
	mf, err := c.MultipartForm()
	if err != nil {
		if err == http.ErrNotMultipart {
			return nil, nil
		}
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid multipart form")
	}

	headers := mf.File[documentsField]
	files := make([]ports.UploadFile, 0, len(headers))
	for _, fh := range headers {
		data, err := readFile(fh)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "could not read "+fh.Filename)
		}
		files = append(files, ports.UploadFile{
			Filename:    fh.Filename,
			Category:    category,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return files, nil
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
