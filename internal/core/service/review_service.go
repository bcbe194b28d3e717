package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/glcplatform/portal/internal/core/domain"
	"github.com/glcplatform/portal/internal/core/ports"
)

// ReviewService records lender verifications against applications.
type ReviewService struct {
	backend ports.BackendGateway
	logger  zerolog.Logger
}

func NewReviewService(backend ports.BackendGateway, logger zerolog.Logger) *ReviewService {
	return &ReviewService{backend: backend, logger: logger}
}

// Verify records a manual verification outcome. The verifier role is the
// session's role; the backend appends the outcome to the application's
// audit trail.
func (s *ReviewService) Verify(ctx context.Context, sess domain.Session, loanID int, result domain.VerificationResult, notes string) (domain.Verification, error) {
	input := domain.VerificationInput{
		VerifierRole: sess.Role,
		Result:       result,
		Notes:        notes,
	}
	v, err := s.backend.Verify(ctx, sess, loanID, input)
	if err != nil {
		s.logger.Error().Err(err).Int("loan_id", loanID).Str("result", string(result)).Msg("verification failed")
		return domain.Verification{}, err
	}
	s.logger.Info().Int("loan_id", loanID).Str("result", string(result)).Int("user_id", sess.UserID).Msg("verification recorded")
	return v, nil
}
