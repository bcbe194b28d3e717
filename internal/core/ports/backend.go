package ports

import (
	"context"

	"github.com/glcplatform/portal/internal/core/domain"
)

// UploadFile is one file queued for upload to the backend.
type UploadFile struct {
	Filename    string
	Category    string // backend document category, e.g. "general"
	ContentType string
	Data        []byte
}

// BackendGateway is the portal's client for the green-lending REST API.
// Every call is scoped to the given session (bearer token plus the
// current_user_id parameter the backend expects) and bounded by the
// configured request timeout.
type BackendGateway interface {
	// Login performs the credential exchange for a role and returns the
	// backend's user identity plus its bearer token.
	Login(ctx context.Context, role string) (domain.Session, error)

	// Borrower surface.
	MyApplications(ctx context.Context, sess domain.Session) ([]domain.LoanApplication, error)
	MyApplication(ctx context.Context, sess domain.Session, loanID int) (domain.LoanApplication, error)
	CreateApplication(ctx context.Context, sess domain.Session, form domain.ApplicationForm) (domain.ApplicationReceipt, error)
	UploadDocument(ctx context.Context, sess domain.Session, loanID int, file UploadFile) (domain.UploadReceipt, error)
	SubmitForIngestion(ctx context.Context, sess domain.Session, loanID int) (domain.IngestionJob, error)
	AllMyDocuments(ctx context.Context, sess domain.Session) ([]domain.Document, error)

	// Lender surface.
	Applications(ctx context.Context, sess domain.Session, filter domain.ApplicationFilter) ([]domain.ApplicationListItem, error)
	ApplicationDetail(ctx context.Context, sess domain.Session, loanID int) (domain.ApplicationDetail, error)
	Verify(ctx context.Context, sess domain.Session, loanID int, input domain.VerificationInput) (domain.Verification, error)
	PortfolioSummary(ctx context.Context, sess domain.Session) (domain.PortfolioSummary, error)

	// Shared surface. The backend exposes these under role-specific paths;
	// the gateway picks the path from sess.Role.
	ApplicationDocuments(ctx context.Context, sess domain.Session, loanID int) ([]domain.Document, error)
	ViewDocument(ctx context.Context, sess domain.Session, docID int) (domain.DocumentContent, error)
	DownloadDocument(ctx context.Context, sess domain.Session, docID int) (domain.DocumentContent, error)
	AuditTrail(ctx context.Context, sess domain.Session, entityType string, entityID int) ([]domain.AuditLogEntry, error)

	// Health reports backend reachability, for readiness probes.
	Health(ctx context.Context) error
}
