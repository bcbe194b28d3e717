package backend

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"net/url"

	"github.com/glcplatform/portal/internal/core/domain"
)

// Login exchanges a role for a backend identity and bearer token. It is the
// only unauthenticated JSON call; a 4xx here means the credentials were
// rejected, which callers detect via the APIError status.
func (c *Client) Login(ctx context.Context, role string) (domain.Session, error) {
	var sess domain.Session
	q := url.Values{"role": {role}}
	if err := c.getJSON(ctx, domain.Session{}, "login", apiPrefix+"/auth/login", q, &sess); err != nil {
		return domain.Session{}, err
	}
	return sess, nil
}

func (c *Client) MyApplications(ctx context.Context, sess domain.Session) ([]domain.LoanApplication, error) {
	var apps []domain.LoanApplication
	err := c.getJSON(ctx, sess, "my_applications", apiPrefix+"/borrower/applications", nil, &apps)
	return apps, err
}

func (c *Client) MyApplication(ctx context.Context, sess domain.Session, loanID int) (domain.LoanApplication, error) {
	var app domain.LoanApplication
	path := fmt.Sprintf("%s/borrower/application/%d", apiPrefix, loanID)
	err := c.getJSON(ctx, sess, "my_application", path, nil, &app)
	return app, err
}

func (c *Client) CreateApplication(ctx context.Context, sess domain.Session, form domain.ApplicationForm) (domain.ApplicationReceipt, error) {
	var receipt domain.ApplicationReceipt
	err := c.postJSON(ctx, sess, "create_application", apiPrefix+"/borrower/apply", form, &receipt)
	return receipt, err
}

func (c *Client) SubmitForIngestion(ctx context.Context, sess domain.Session, loanID int) (domain.IngestionJob, error) {
	var job domain.IngestionJob
	path := fmt.Sprintf("%s/borrower/%d/submit_for_ingestion", apiPrefix, loanID)
	err := c.postJSON(ctx, sess, "submit_for_ingestion", path, nil, &job)
	return job, err
}

func (c *Client) AllMyDocuments(ctx context.Context, sess domain.Session) ([]domain.Document, error) {
	var docs []domain.Document
	err := c.getJSON(ctx, sess, "all_my_documents", apiPrefix+"/borrower/all_documents", nil, &docs)
	return docs, err
}

func (c *Client) Applications(ctx context.Context, sess domain.Session, filter domain.ApplicationFilter) ([]domain.ApplicationListItem, error) {
	q := url.Values{}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}
	if filter.Sector != "" {
		q.Set("sector", filter.Sector)
	}
	var items []domain.ApplicationListItem
	err := c.getJSON(ctx, sess, "applications", apiPrefix+"/lender/applications", q, &items)
	return items, err
}

func (c *Client) ApplicationDetail(ctx context.Context, sess domain.Session, loanID int) (domain.ApplicationDetail, error) {
	var detail domain.ApplicationDetail
	path := fmt.Sprintf("%s/lender/application/%d", apiPrefix, loanID)
	err := c.getJSON(ctx, sess, "application_detail", path, nil, &detail)
	return detail, err
}

func (c *Client) Verify(ctx context.Context, sess domain.Session, loanID int, input domain.VerificationInput) (domain.Verification, error) {
	var ver domain.Verification
	path := fmt.Sprintf("%s/lender/application/%d/verify", apiPrefix, loanID)
	err := c.postJSON(ctx, sess, "verify", path, input, &ver)
	return ver, err
}

func (c *Client) PortfolioSummary(ctx context.Context, sess domain.Session) (domain.PortfolioSummary, error) {
	var summary domain.PortfolioSummary
	err := c.getJSON(ctx, sess, "portfolio_summary", apiPrefix+"/lender/portfolio/summary", nil, &summary)
	return summary, err
}

func (c *Client) ApplicationDocuments(ctx context.Context, sess domain.Session, loanID int) ([]domain.Document, error) {
	path := fmt.Sprintf("%s/borrower/%d/documents", apiPrefix, loanID)
	if sess.Role == domain.RoleLender {
		path = fmt.Sprintf("%s/lender/application/%d/documents", apiPrefix, loanID)
	}
	var docs []domain.Document
	err := c.getJSON(ctx, sess, "application_documents", path, nil, &docs)
	return docs, err
}

// ViewDocument fetches a document body for inline preview. The content type
// comes from the backend's media-type mapping.
func (c *Client) ViewDocument(ctx context.Context, sess domain.Session, docID int) (domain.DocumentContent, error) {
	path := fmt.Sprintf("%s/%s/document/%d/view", apiPrefix, rolePathSegment(sess.Role), docID)
	_, header, data, err := c.call(ctx, sess, "view_document", http.MethodGet, path, nil, nil, "")
	if err != nil {
		return domain.DocumentContent{}, err
	}
	return domain.DocumentContent{
		ContentType: header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// DownloadDocument fetches a document body with its suggested filename.
func (c *Client) DownloadDocument(ctx context.Context, sess domain.Session, docID int) (domain.DocumentContent, error) {
	path := fmt.Sprintf("%s/%s/document/%d/download", apiPrefix, rolePathSegment(sess.Role), docID)
	_, header, data, err := c.call(ctx, sess, "download_document", http.MethodGet, path, nil, nil, "")
	if err != nil {
		return domain.DocumentContent{}, err
	}
	return domain.DocumentContent{
		Filename:    dispositionFilename(header.Get("Content-Disposition")),
		ContentType: header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func (c *Client) AuditTrail(ctx context.Context, sess domain.Session, entityType string, entityID int) ([]domain.AuditLogEntry, error) {
	var entries []domain.AuditLogEntry
	path := fmt.Sprintf("%s/audit/%s/%d", apiPrefix, url.PathEscape(entityType), entityID)
	err := c.getJSON(ctx, sess, "audit_trail", path, nil, &entries)
	return entries, err
}

// Health probes the backend's root health endpoint (outside the API
// prefix). Any error, including non-2xx, means not ready.
func (c *Client) Health(ctx context.Context) error {
	_, _, _, err := c.call(ctx, domain.Session{}, "health", http.MethodGet, "/health", nil, nil, "")
	return err
}

// rolePathSegment picks the backend path family for document access.
func rolePathSegment(role string) string {
	if role == domain.RoleLender {
		return "lender"
	}
	return "borrower"
}

func dispositionFilename(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return params["filename"]
}
