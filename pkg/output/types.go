// Package output renders stored data for download or piping: credential
// entries as text, CSV or NDJSON, and website/technology associations as
// bracketed list lines. Formatting only; the writers never filter or
// validate.
package output

import (
	"github.com/gnomegl/ulpdb/pkg/store"
	"github.com/gnomegl/ulpdb/pkg/webtech"
)

type EntryWriter interface {
	WriteEntries(entries []store.Entry) error
}

type WebsiteWriter interface {
	WriteWebsites(sites []webtech.Website) error
}

// Formats supported by NewEntryWriter.
const (
	FormatText   = "txt"
	FormatCSV    = "csv"
	FormatNDJSON = "ndjson"
)
