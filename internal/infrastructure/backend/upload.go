package backend

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/glcplatform/portal/internal/core/domain"
	"github.com/glcplatform/portal/internal/core/ports"
)

// UploadDocument sends one file to the backend as multipart/form-data with
// the backend's expected "file" and "category" fields. The content type is
// the multipart writer's boundary type; the JSON content type must never be
// set here or the backend rejects the body.
func (c *Client) UploadDocument(ctx context.Context, sess domain.Session, loanID int, file ports.UploadFile) (domain.UploadReceipt, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(file.Filename)))
	partType := file.ContentType
	if partType == "" {
		partType = "application/octet-stream"
	}
	h.Set("Content-Type", partType)

	part, err := w.CreatePart(h)
	if err != nil {
		return domain.UploadReceipt{}, fmt.Errorf("backend: build upload body: %w", err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return domain.UploadReceipt{}, fmt.Errorf("backend: build upload body: %w", err)
	}

	category := file.Category
	if category == "" {
		category = "general"
	}
	if err := w.WriteField("category", category); err != nil {
		return domain.UploadReceipt{}, fmt.Errorf("backend: build upload body: %w", err)
	}
	if err := w.Close(); err != nil {
		return domain.UploadReceipt{}, fmt.Errorf("backend: build upload body: %w", err)
	}

	path := fmt.Sprintf("%s/borrower/%d/documents", apiPrefix, loanID)
	_, _, data, err := c.call(ctx, sess, "upload_document", http.MethodPost, path, nil, &buf, w.FormDataContentType())
	if err != nil {
		return domain.UploadReceipt{}, err
	}

	var receipt domain.UploadReceipt
	if err := decode("upload_document", data, &receipt); err != nil {
		return domain.UploadReceipt{}, err
	}
	return receipt, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
