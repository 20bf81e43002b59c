package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Record is the persisted shape of one user's trip: the document as a
// JSON string plus the time of the last write. Exactly one Record exists
// per identity, stored under the key path built by the gateway.
//
// The document is kept as an embedded JSON string rather than a nested
// object so the stored payload is byte-for-byte what the application
// serialized, independent of how the store itself encodes records.
type Record struct {
	ItineraryData string    `json:"itineraryData"`
	LastUpdated   time.Time `json:"lastUpdated"`
}

// EncodeRecord serializes doc into a Record stamped with now.
func EncodeRecord(doc TripDocument, now time.Time) (Record, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return Record{}, fmt.Errorf("domain.EncodeRecord: %w", err)
	}
	return Record{ItineraryData: string(data), LastUpdated: now.UTC()}, nil
}

// Document deserializes the record's payload back into a TripDocument.
// An empty or unparsable payload returns ErrCorruptRecord; callers
// substitute the default document rather than surfacing the error.
func (r Record) Document() (TripDocument, error) {
	if r.ItineraryData == "" {
		return TripDocument{}, fmt.Errorf("domain.Record.Document: empty payload: %w", ErrCorruptRecord)
	}
	var doc TripDocument
	if err := json.Unmarshal([]byte(r.ItineraryData), &doc); err != nil {
		return TripDocument{}, fmt.Errorf("domain.Record.Document: %v: %w", err, ErrCorruptRecord)
	}
	return doc, nil
}
