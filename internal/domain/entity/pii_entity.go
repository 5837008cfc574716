package entity

// PIIEntity is one detected sensitive span. Start and End are byte offsets
// into the UTF-8 text, half-open [Start, End).
type PIIEntity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}
