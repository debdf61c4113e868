package output

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gnomegl/ulpdb/pkg/store"
)

// NDJSONWriter emits one JSON document per line, with a stable doc_id
// derived from the credential so downstream indexers can upsert.
type NDJSONWriter struct {
	writer *bufio.Writer
}

func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	return &NDJSONWriter{writer: bufio.NewWriter(w)}
}

func generateDocID(username, url, password string) string {
	data := fmt.Sprintf("%s:%s:%s", username, url, password)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

func (w *NDJSONWriter) WriteEntries(entries []store.Entry) error {
	enc := json.NewEncoder(w.writer)
	for _, e := range entries {
		doc := map[string]any{
			"doc_id":   generateDocID(e.Username, e.URL, e.Password),
			"url":      e.URL,
			"username": e.Username,
			"password": e.Password,
		}
		if e.Notes != "" {
			doc["notes"] = e.Notes
		}
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to write NDJSON record: %w", err)
		}
	}
	return w.writer.Flush()
}

// NewEntryWriter picks a writer by format name.
func NewEntryWriter(w io.Writer, format string) (EntryWriter, error) {
	switch format {
	case FormatText:
		return NewTextWriter(w), nil
	case FormatCSV:
		return NewCSVWriter(w), nil
	case FormatNDJSON:
		return NewNDJSONWriter(w), nil
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}
