package db

import "time"

// PrintJob is the only persisted entity. DataJSON holds the submission
// envelope exactly as received; the payload is never parsed or rewritten
// after creation.
type PrintJob struct {
	ID        string    `json:"id"`
	DataJSON  string    `json:"data_json"`
	CreatedAt time.Time `json:"created_at"`
}
