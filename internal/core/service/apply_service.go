package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/glcplatform/portal/internal/api/metrics"
	"github.com/glcplatform/portal/internal/core/domain"
	"github.com/glcplatform/portal/internal/core/ports"
)

// ApplyService runs the borrower submission flow: create the application,
// push its documents one at a time, then hand it to the analysis pipeline.
type ApplyService struct {
	backend ports.BackendGateway
	drafts  ports.DraftStore
	logger  zerolog.Logger
}

func NewApplyService(backend ports.BackendGateway, drafts ports.DraftStore, logger zerolog.Logger) *ApplyService {
	return &ApplyService{backend: backend, drafts: drafts, logger: logger}
}

// Submit creates the application and uploads its documents. Uploads run
// strictly one at a time and a failed file never aborts the rest; the
// report names every file that needs a retry. Ingestion is requested only
// when at least one document made it, and an ingestion failure downgrades
// to a note because the application itself already exists.
func (s *ApplyService) Submit(ctx context.Context, sess domain.Session, form domain.ApplicationForm, files []ports.UploadFile) (domain.SubmissionReport, error) {
	receipt, err := s.backend.CreateApplication(ctx, sess, form)
	if err != nil {
		s.logger.Error().Err(err).Int("user_id", sess.UserID).Msg("application create failed")
		return domain.SubmissionReport{}, err
	}

	report := domain.SubmissionReport{
		LoanID:  receipt.ID,
		Receipt: receipt,
		Uploads: s.uploadAll(ctx, sess, receipt.ID, files),
	}

	if report.Uploads.Succeeded() > 0 {
		job, err := s.backend.SubmitForIngestion(ctx, sess, receipt.ID)
		if err != nil {
			s.logger.Warn().Err(err).Int("loan_id", receipt.ID).Msg("ingestion request failed")
			report.IngestionErr = uploadFailureReason(err)
		} else {
			report.Ingestion = &job
		}
	}

	// the submitted form is no longer a draft
	if err := s.drafts.Delete(ctx, sess.UserID, domain.PageApply); err != nil {
		s.logger.Warn().Err(err).Int("user_id", sess.UserID).Msg("draft cleanup failed")
	}

	s.logger.Info().
		Int("loan_id", receipt.ID).
		Int("files", report.Uploads.Total).
		Int("uploaded", report.Uploads.Succeeded()).
		Msg("application submitted")
	return report, nil
}

// UploadMore pushes additional documents to an existing application.
func (s *ApplyService) UploadMore(ctx context.Context, sess domain.Session, loanID int, files []ports.UploadFile) domain.UploadReport {
	return s.uploadAll(ctx, sess, loanID, files)
}

// RequestIngestion asks the backend to (re)run analysis for an application.
func (s *ApplyService) RequestIngestion(ctx context.Context, sess domain.Session, loanID int) (domain.IngestionJob, error) {
	job, err := s.backend.SubmitForIngestion(ctx, sess, loanID)
	if err != nil {
		s.logger.Warn().Err(err).Int("loan_id", loanID).Msg("ingestion request failed")
		return domain.IngestionJob{}, err
	}
	return job, nil
}

// uploadAll runs the sequential upload queue. Order is the caller's file
// order; every file ends up either uploaded or reported failed.
func (s *ApplyService) uploadAll(ctx context.Context, sess domain.Session, loanID int, files []ports.UploadFile) domain.UploadReport {
	report := domain.UploadReport{Total: len(files)}
	for _, f := range files {
		if _, err := s.backend.UploadDocument(ctx, sess, loanID, f); err != nil {
			metrics.DocumentUploadsTotal.WithLabelValues("failed").Inc()
			s.logger.Warn().Err(err).Int("loan_id", loanID).Str("filename", f.Filename).Msg("document upload failed")
			report.Failures = append(report.Failures, domain.UploadFailure{
				Filename: f.Filename,
				Reason:   uploadFailureReason(err),
			})
			continue
		}
		metrics.DocumentUploadsTotal.WithLabelValues("uploaded").Inc()
		report.Uploaded = append(report.Uploaded, f.Filename)
	}
	return report
}

func uploadFailureReason(err error) string {
	switch {
	case domain.BackendDown(err):
		return "the lending service did not respond"
	default:
		if status, ok := domain.APIStatus(err); ok {
			return fmt.Sprintf("rejected by the lending service (status %d)", status)
		}
		return err.Error()
	}
}
