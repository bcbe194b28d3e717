package service

import (
	"context"
	"testing"

	"github.com/glcplatform/portal/internal/core/domain"
	"github.com/glcplatform/portal/internal/core/ports"
)

func uploadFiles(names ...string) []ports.UploadFile {
	files := make([]ports.UploadFile, 0, len(names))
	for _, n := range names {
		files = append(files, ports.UploadFile{
			Filename:    n,
			Category:    "general",
			ContentType: "application/pdf",
			Data:        []byte("content of " + n),
		})
	}
	return files
}

func TestApplyService_Submit_Success(t *testing.T) {
	gw := &stubGateway{
		receipt: domain.ApplicationReceipt{ID: 12, Status: "submitted"},
		job:     domain.IngestionJob{JobID: 5, Status: "queued"},
	}
	svc := NewApplyService(gw, newStubDraftStore(), discardLogger)

	report, err := svc.Submit(context.Background(), borrowerSession(), domain.ApplicationForm{ProjectName: "Solar"}, uploadFiles("a.pdf", "b.pdf"))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if report.LoanID != 12 {
		t.Errorf("expected loan id 12, got %d", report.LoanID)
	}
	if report.Uploads.Succeeded() != 2 || len(report.Uploads.Failures) != 0 {
		t.Errorf("expected 2 clean uploads, got %+v", report.Uploads)
	}
	if report.Ingestion == nil || report.Ingestion.LoanAppID != 12 {
		t.Errorf("expected ingestion hand-off for loan 12, got %+v", report.Ingestion)
	}
}

func TestApplyService_Submit_FailedFileDoesNotAbortQueue(t *testing.T) {
	gw := &stubGateway{
		receipt:   domain.ApplicationReceipt{ID: 12},
		uploadErr: map[string]error{"b.pdf": &domain.APIError{Status: 415}},
	}
	svc := NewApplyService(gw, newStubDraftStore(), discardLogger)

	report, err := svc.Submit(context.Background(), borrowerSession(), domain.ApplicationForm{}, uploadFiles("a.pdf", "b.pdf", "c.pdf"))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if got := report.Uploads.Succeeded(); got != 2 {
		t.Errorf("expected 2 successful uploads, got %d", got)
	}
	if len(report.Uploads.Failures) != 1 || report.Uploads.Failures[0].Filename != "b.pdf" {
		t.Fatalf("expected b.pdf in failures, got %+v", report.Uploads.Failures)
	}
	if report.Uploads.Failures[0].Reason != "rejected by the lending service (status 415)" {
		t.Errorf("unexpected failure reason %q", report.Uploads.Failures[0].Reason)
	}
	// queue order preserved for the survivors
	if report.Uploads.Uploaded[0] != "a.pdf" || report.Uploads.Uploaded[1] != "c.pdf" {
		t.Errorf("upload order not preserved: %v", report.Uploads.Uploaded)
	}
}

func TestApplyService_Submit_NoUploadsSkipsIngestion(t *testing.T) {
	gw := &stubGateway{receipt: domain.ApplicationReceipt{ID: 12}}
	svc := NewApplyService(gw, newStubDraftStore(), discardLogger)

	report, err := svc.Submit(context.Background(), borrowerSession(), domain.ApplicationForm{}, nil)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if report.Ingestion != nil {
		t.Error("ingestion must not be requested without uploaded documents")
	}
	if len(gw.ingested) != 0 {
		t.Errorf("backend ingestion was called: %v", gw.ingested)
	}
}

func TestApplyService_Submit_IngestionFailureDowngradesToNote(t *testing.T) {
	gw := &stubGateway{
		receipt:   domain.ApplicationReceipt{ID: 12},
		ingestErr: domain.ErrTimeout,
	}
	svc := NewApplyService(gw, newStubDraftStore(), discardLogger)

	report, err := svc.Submit(context.Background(), borrowerSession(), domain.ApplicationForm{}, uploadFiles("a.pdf"))
	if err != nil {
		t.Fatalf("an ingestion failure must not fail the submission: %v", err)
	}

	if report.Ingestion != nil {
		t.Error("expected no ingestion job on failure")
	}
	if report.IngestionErr != "the lending service did not respond" {
		t.Errorf("unexpected ingestion note %q", report.IngestionErr)
	}
}

func TestApplyService_Submit_CreateFailurePropagates(t *testing.T) {
	gw := &stubGateway{createErr: domain.ErrBackendUnreachable}
	svc := NewApplyService(gw, newStubDraftStore(), discardLogger)

	if _, err := svc.Submit(context.Background(), borrowerSession(), domain.ApplicationForm{}, nil); err == nil {
		t.Fatal("expected create failure to propagate")
	}
	if len(gw.uploaded) != 0 {
		t.Error("no upload may run when the application was not created")
	}
}

func TestApplyService_Submit_ClearsDraft(t *testing.T) {
	gw := &stubGateway{receipt: domain.ApplicationReceipt{ID: 12}}
	drafts := newStubDraftStore()
	sess := borrowerSession()
	_ = drafts.Save(context.Background(), sess.UserID, domain.PageApply, domain.Draft{"org_name": "Helios"})

	svc := NewApplyService(gw, drafts, discardLogger)
	if _, err := svc.Submit(context.Background(), sess, domain.ApplicationForm{}, nil); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if _, err := drafts.Load(context.Background(), sess.UserID, domain.PageApply); err != domain.ErrDraftNotFound {
		t.Errorf("expected draft to be cleared, got %v", err)
	}
}

func TestApplyService_UploadMore_ReportsEveryFile(t *testing.T) {
	gw := &stubGateway{uploadErr: map[string]error{"bad.pdf": domain.ErrTimeout}}
	svc := NewApplyService(gw, newStubDraftStore(), discardLogger)

	report := svc.UploadMore(context.Background(), borrowerSession(), 9, uploadFiles("ok.pdf", "bad.pdf"))

	if report.Total != 2 {
		t.Errorf("expected total 2, got %d", report.Total)
	}
	if report.Succeeded() != 1 || len(report.Failures) != 1 {
		t.Errorf("expected one success and one failure, got %+v", report)
	}
}

func TestApplyService_RequestIngestion(t *testing.T) {
	gw := &stubGateway{job: domain.IngestionJob{JobID: 3, Status: "queued"}}
	svc := NewApplyService(gw, newStubDraftStore(), discardLogger)

	job, err := svc.RequestIngestion(context.Background(), borrowerSession(), 9)
	if err != nil {
		t.Fatalf("RequestIngestion returned error: %v", err)
	}
	if job.LoanAppID != 9 {
		t.Errorf("expected job for loan 9, got %+v", job)
	}
}
