package ports

import (
	"context"

	"github.com/glcplatform/portal/internal/core/domain"
)

// ApplyService defines the borrower submission use-cases.
type ApplyService interface {
	// Submit creates the application, uploads its documents one at a time
	// and requests ingestion. Per-file upload failures end up in the report,
	// not in the error.
	Submit(ctx context.Context, sess domain.Session, form domain.ApplicationForm, files []UploadFile) (domain.SubmissionReport, error)
	// UploadMore pushes additional documents to an existing application.
	UploadMore(ctx context.Context, sess domain.Session, loanID int, files []UploadFile) domain.UploadReport
	// RequestIngestion asks the backend to (re)run analysis.
	RequestIngestion(ctx context.Context, sess domain.Session, loanID int) (domain.IngestionJob, error)
}
