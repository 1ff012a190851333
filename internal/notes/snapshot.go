package notes

import (
	"encoding/json"
	"fmt"
)

// Snapshot is the persisted form of the collection.
//
//	{"count": 2, "listNotes": [{"id": 1700000000000, "text": "milk"}, ...]}
type Snapshot struct {
	Count     int    `json:"count"`
	ListNotes []Note `json:"listNotes"`
}

// EmptySnapshot returns the state used when nothing was persisted yet.
func EmptySnapshot() Snapshot {
	return Snapshot{Count: 0, ListNotes: []Note{}}
}

// Encode serializes the snapshot. A nil list is written as [] and the
// written count is always the length of the list.
func (s Snapshot) Encode() (string, error) {
	if s.ListNotes == nil {
		s.ListNotes = []Note{}
	}
	s.Count = len(s.ListNotes)
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return string(data), nil
}

// DecodeSnapshot parses a persisted snapshot. The stored count is
// replaced by the length of the list.
func DecodeSnapshot(raw string) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.ListNotes == nil {
		s.ListNotes = []Note{}
	}
	s.Count = len(s.ListNotes)
	return s, nil
}
