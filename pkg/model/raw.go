package model

import (
	"time"

	"github.com/google/uuid"
)

type RawRecordID string

// NewRawRecordID generates a new unique RawRecordID
func NewRawRecordID() RawRecordID {
	return RawRecordID(uuid.New().String())
}

// RawRecord is an unprocessed ingested unit. The payload is either a single
// decoded JSON value or a list of such values. A record is consumed (deleted)
// exactly once by batch processing and is never mutated.
type RawRecord struct {
	ID        RawRecordID `firestore:"id"`
	Source    string      `firestore:"source"`
	Payload   any         `firestore:"payload"`
	CreatedAt time.Time   `firestore:"created_at"`
}

// Elements normalizes the payload to a sequence: a list payload is returned
// as-is, any other value becomes a one-element sequence.
func (r *RawRecord) Elements() []any {
	if list, ok := r.Payload.([]any); ok {
		return list
	}
	return []any{r.Payload}
}
