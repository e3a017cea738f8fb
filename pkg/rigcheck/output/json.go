package output

import (
	"bytes"
	"encoding/json"
)

// JSONFormatter writes one indented JSON document.
type JSONFormatter struct{}

// Format writes the report.
func (f *JSONFormatter) Format(w *bytes.Buffer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newDocument(r))
}

func init() {
	Register("json", func() Formatter { return &JSONFormatter{} })
}

var _ Formatter = (*JSONFormatter)(nil)
