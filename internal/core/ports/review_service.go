package ports

import (
	"context"

	"github.com/glcplatform/portal/internal/core/domain"
)

// ReviewService records lender verification outcomes.
type ReviewService interface {
	Verify(ctx context.Context, sess domain.Session, loanID int, result domain.VerificationResult, notes string) (domain.Verification, error)
}
