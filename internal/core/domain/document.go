package domain

import (
	"path"
	"strconv"
	"strings"
	"time"
)

// Document describes an uploaded file as the backend reports it. The bytes
// themselves stay with the backend; the portal only previews and proxies.
type Document struct {
	ID               int       `json:"id"`
	LoanAppID        int       `json:"loan_app_id"`
	Filename         string    `json:"filename"`
	FileType         string    `json:"file_type"`
	FileSize         int64     `json:"file_size"`
	ExtractionStatus string    `json:"extraction_status"`
	TextExtracted    string    `json:"text_extracted"`
	UploadedAt       time.Time `json:"uploaded_at"`
}

// UploadReceipt acknowledges a single document upload.
type UploadReceipt struct {
	ID            int    `json:"id"`
	Filename      string `json:"filename"`
	TextExtracted string `json:"text_extracted"`
	Status        string `json:"status"`
	Message       string `json:"message"`
}

// IngestionJob acknowledges a submit-for-ingestion request.
type IngestionJob struct {
	JobID     int    `json:"job_id"`
	LoanAppID int    `json:"loan_app_id"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

// DocumentContent is a fetched document body, ready to stream or preview.
type DocumentContent struct {
	Filename    string
	ContentType string
	Data        []byte
}

// PreviewKind classifies how the viewer overlay should present a document.
type PreviewKind string

const (
	PreviewPDF      PreviewKind = "pdf"
	PreviewJSON     PreviewKind = "json"
	PreviewImage    PreviewKind = "image"
	PreviewText     PreviewKind = "text"
	PreviewDownload PreviewKind = "download"
)

// PreviewKindFor picks a presentation for a filename. Anything without an
// inline rendering falls back to a download affordance.
func PreviewKindFor(filename string) PreviewKind {
	switch strings.ToLower(path.Ext(filename)) {
	case ".pdf":
		return PreviewPDF
	case ".json":
		return PreviewJSON
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return PreviewImage
	case ".txt", ".md", ".csv":
		return PreviewText
	default:
		return PreviewDownload
	}
}

// FormatFileSize renders a byte count for humans.
func FormatFileSize(n int64) string {
	switch {
	case n >= 1<<20:
		return strconv.FormatFloat(float64(n)/(1<<20), 'f', 1, 64) + " MB"
	case n >= 1<<10:
		return strconv.FormatFloat(float64(n)/(1<<10), 'f', 1, 64) + " KB"
	default:
		return strconv.FormatInt(n, 10) + " B"
	}
}
