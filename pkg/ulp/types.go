package ulp

import "fmt"

// RawRecord is a single url/username/password candidate as produced by the
// format parsers, before any validation. Line is 1-based (array index + 1
// for JSON input).
type RawRecord struct {
	URL      string
	Username string
	Password string
	Line     int
}

// Record is a validated, sanitized credential ready for storage.
type Record struct {
	URL      string `json:"url"`
	Username string `json:"username"`
	Password string `json:"password"`
	Notes    string `json:"notes"`
}

type RejectKind int

const (
	RejectMissingField RejectKind = iota
	RejectInvalidURL
	RejectInvalidUsername
	RejectEmptyPassword
	RejectParseError
)

// Rejection explains why a single raw record was dropped. Line 0 marks a
// file-level problem (unparseable JSON, unsupported extension).
type Rejection struct {
	Line   int
	Kind   RejectKind
	Detail string
}

func (r Rejection) String() string {
	if r.Line == 0 {
		return r.Detail
	}
	return fmt.Sprintf("Line %d: %s", r.Line, r.Detail)
}

// Report summarizes one Extract call. Added counts records accepted at
// extraction time; the store reports its own authoritative count on insert.
// Speed is input bytes per second, not records per second.
type Report struct {
	FileName       string   `json:"fileName"`
	Added          int      `json:"added"`
	Duplicates     int      `json:"duplicates"`
	Invalid        int      `json:"invalid"`
	ProcessingTime float64  `json:"processingTime"`
	Speed          float64  `json:"speed"`
	InvalidDetails []string `json:"invalidDetails,omitempty"`
}

type Validator interface {
	Validate(raw RawRecord) (Record, *Rejection)
}

type Extractor interface {
	Extract(content []byte, fileName string) ([]Record, Report)
}
