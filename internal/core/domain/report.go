package domain

// UploadFailure records one file that could not be uploaded.
type UploadFailure struct {
	Filename string
	Reason   string
}

// UploadReport summarises a sequential multi-file upload. A failure never
// aborts the queue: every file ends up either in Uploaded or in Failures.
type UploadReport struct {
	Total    int
	Uploaded []string
	Failures []UploadFailure
}

func (r UploadReport) Succeeded() int { return len(r.Uploaded) }

// SubmissionReport is the outcome of a full application submission: the
// created application, the per-file upload results and the ingestion
// hand-off.
type SubmissionReport struct {
	LoanID       int
	Receipt      ApplicationReceipt
	Uploads      UploadReport
	Ingestion    *IngestionJob
	IngestionErr string
}
