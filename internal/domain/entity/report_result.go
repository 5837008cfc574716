package entity

type ReportStatus string

const (
	StatusProcessing ReportStatus = "processing"
	StatusCompleted  ReportStatus = "completed"
	StatusFailed     ReportStatus = "failed"
)

// ReportResult is the terminal outcome of one job, delivered once to the
// callback endpoint.
type ReportResult struct {
	ReportID         string           `json:"reportId"`
	Status           ReportStatus     `json:"status"`
	RedactionSummary RedactionSummary `json:"redactionSummary"`
	ProcessedFiles   []FileResult     `json:"processedFiles"`
	Error            string           `json:"error,omitempty"`
}

type RedactionSummary struct {
	FacesRedacted  int `json:"facesRedacted"`
	PIIRedacted    int `json:"piiRedacted"`
	FilesProcessed int `json:"filesProcessed"`
}

// FileResult is the normalized outcome of attempting one file. Failure is
// data here: Processed=false plus Error, never a propagated panic/err.
type FileResult struct {
	OriginalName  string `json:"originalName"`
	FileKey       string `json:"fileKey"`
	FacesRedacted int    `json:"facesRedacted"`
	PIIRedacted   int    `json:"piiRedacted"`
	Processed     bool   `json:"processed"`
	RedactedKey   string `json:"redactedKey,omitempty"`
	RedactedText  string `json:"redactedText,omitempty"`
	Transcript    string `json:"transcript,omitempty"`
	Error         string `json:"error,omitempty"`
}
