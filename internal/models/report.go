package models

import "time"

// ReportType selects the dataset a report is generated from.
type ReportType string

const (
	ReportTeachers ReportType = "professores"
	ReportStudents ReportType = "alunos"
	ReportEvents   ReportType = "eventos"
	ReportFull     ReportType = "completo"
)

// Valid reports whether the type is a known dataset.
func (t ReportType) Valid() bool {
	switch t {
	case ReportTeachers, ReportStudents, ReportEvents, ReportFull:
		return true
	}
	return false
}

// ReportFormat selects the output encoding.
type ReportFormat string

const (
	FormatPDF ReportFormat = "pdf"
	FormatCSV ReportFormat = "csv"
)

// ReportJobStatus tracks asynchronous report generation.
type ReportJobStatus string

const (
	ReportQueued     ReportJobStatus = "queued"
	ReportProcessing ReportJobStatus = "processing"
	ReportCompleted  ReportJobStatus = "completed"
	ReportFailed     ReportJobStatus = "failed"
)

// ReportJob is the bookkeeping record for one requested report.
type ReportJob struct {
	ID          string          `json:"id"`
	Type        ReportType      `json:"type"`
	Format      ReportFormat    `json:"format"`
	RecordID    string          `json:"record_id,omitempty"`
	Status      ReportJobStatus `json:"status"`
	FileName    string          `json:"file_name,omitempty"`
	DownloadURL string          `json:"download_url,omitempty"`
	Error       string          `json:"error,omitempty"`
	RequestedAt time.Time       `json:"requested_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}
