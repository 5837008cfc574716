package entity

// Job is one report-processing request as delivered on the queue.
type Job struct {
	ReportID   string    `json:"reportId"`
	WrappedKey string    `json:"wrappedKey"`
	Files      []FileRef `json:"files"`
}

// FileRef points at one attached file in the blob store.
type FileRef struct {
	Key          string `json:"key"`
	OriginalName string `json:"originalName"`
}
