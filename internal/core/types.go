package core

// LabelItem is one label payload. The key names the markup language
// (callers typically use "zpl") and the value carries the raw printer
// commands. The markup is opaque to this system: it is stored and
// relayed exactly as submitted.
type LabelItem map[string]string

// Submission is the envelope persisted for a job, matching the shape of
// the create request body.
type Submission struct {
	Data []LabelItem `json:"data"`
}
