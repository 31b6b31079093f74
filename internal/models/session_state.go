package models

import "time"

// SessionState is one persisted session record as stored in the database.
// Payload is the JSON encoding of a SessionRecord.
type SessionState struct {
	LearnerID string
	Key       string
	Day       string // YYYY-MM-DD
	Word      string
	Payload   string
	UpdatedAt time.Time
}
