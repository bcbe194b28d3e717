package views

import (
	"html/template"

	"github.com/glcplatform/portal/internal/core/domain"
)

// SubmissionReportFragment renders the post-submission summary: the new
// application, how many documents made it, and what failed. Partial upload
// failure is reported, never hidden.
func SubmissionReportFragment(r domain.SubmissionReport) (template.HTML, error) {
	return render("submission_report.tmpl", r)
}

// UploadReportFragment renders the outcome of a standalone document upload
// batch.
func UploadReportFragment(r domain.UploadReport) (template.HTML, error) {
	return render("upload_report.tmpl", r)
}

// VerifyResultFragment renders the acknowledgement after a lender records
// a verification.
func VerifyResultFragment(v domain.Verification) (template.HTML, error) {
	return render("verify_result.tmpl", v)
}

// IngestResultFragment renders the acknowledgement after an analysis run
// was requested.
func IngestResultFragment(job domain.IngestionJob) (template.HTML, error) {
	return render("ingest_result.tmpl", job)
}
