// Package history keeps past assessments in a local badger database so
// runs on the same machine can be listed and compared.
package history

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/jamesainslie/rigcheck/pkg/rigcheck/types"
)

// FormatVersion is incremented when the record encoding changes.
const FormatVersion = 1

// Record is one stored assessment.
type Record struct {
	Version   int                     `json:"version"`
	ID        string                  `json:"id"`
	Timestamp time.Time               `json:"timestamp"`
	Hostname  string                  `json:"hostname,omitempty"`
	Inventory types.HardwareInventory `json:"inventory"`
	Result    types.AssessmentResult  `json:"result"`
}

// Encode serializes the record as JSON.
func (r *Record) Encode() ([]byte, error) {
	return json.Marshal(r)
}

// Decode deserializes JSON into the record.
func (r *Record) Decode(data []byte) error {
	return json.Unmarshal(data, r)
}

// Key prefixes. Records are keyed by timestamp so iteration order is
// chronological; the id index maps an ID to its record key.
var (
	recordPrefix = []byte("rec\x00")
	idPrefix     = []byte("id\x00")
)

// recordKey is rec\x00<unix nanos, big endian><id>.
func recordKey(ts time.Time, id string) []byte {
	key := make([]byte, 0, len(recordPrefix)+8+len(id))
	key = append(key, recordPrefix...)
	key = binary.BigEndian.AppendUint64(key, uint64(ts.UnixNano()))
	return append(key, id...)
}

// recordTime extracts the timestamp from a record key.
func recordTime(key []byte) (time.Time, bool) {
	if !bytes.HasPrefix(key, recordPrefix) || len(key) < len(recordPrefix)+8 {
		return time.Time{}, false
	}
	nanos := binary.BigEndian.Uint64(key[len(recordPrefix):])
	return time.Unix(0, int64(nanos)).UTC(), true
}

func idKey(id string) []byte {
	return append(bytes.Clone(idPrefix), id...)
}
