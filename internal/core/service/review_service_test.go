package service

import (
	"context"
	"errors"
	"testing"

	"github.com/glcplatform/portal/internal/core/domain"
)

func TestReviewService_Verify_RecordsSessionRole(t *testing.T) {
	gw := &stubGateway{verified: domain.Verification{ID: 1, LoanAppID: 7, Result: domain.VerificationPass}}
	svc := NewReviewService(gw, discardLogger)

	got, err := svc.Verify(context.Background(), lenderSession(), 7, domain.VerificationPass, "framework checks out")
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}

	if got.Result != domain.VerificationPass {
		t.Errorf("expected pass, got %q", got.Result)
	}
	if gw.lastVerify.VerifierRole != domain.RoleLender {
		t.Errorf("expected verifier role from the session, got %q", gw.lastVerify.VerifierRole)
	}
	if gw.lastVerify.Notes != "framework checks out" {
		t.Errorf("notes not passed through: %q", gw.lastVerify.Notes)
	}
}

func TestReviewService_Verify_BackendFailurePropagates(t *testing.T) {
	gw := &stubGateway{verifyErr: &domain.APIError{Status: 409}}
	svc := NewReviewService(gw, discardLogger)

	_, err := svc.Verify(context.Background(), lenderSession(), 7, domain.VerificationFail, "")
	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 409 {
		t.Errorf("expected status 409 APIError, got %v", err)
	}
}
