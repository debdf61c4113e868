package ulp

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Format is the input shape, resolved once from the file extension.
type Format int

const (
	FormatJSON Format = iota
	FormatText
	FormatCSV
	FormatUnsupported
)

var (
	textLineRe = regexp.MustCompile(`^((?:https?://)?[^:]+):([^:]+):(.+)$`)
	csvTokenRe = regexp.MustCompile(`(?:^|,)("(?:[^"]+|"")*"|[^,]*)`)
	csvCleanRe = regexp.MustCompile(`^,|"|'`)
)

// DetectFormat maps a file name to its input format.
func DetectFormat(fileName string) Format {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".json":
		return FormatJSON
	case ".txt":
		return FormatText
	case ".csv":
		return FormatCSV
	default:
		return FormatUnsupported
	}
}

// Parse extracts raw records from file content. Malformed lines become
// per-line ParseError rejections; file-level failures (unparseable JSON,
// unsupported extension) become a single rejection with line 0.
func Parse(content []byte, fileName string) ([]RawRecord, []Rejection) {
	switch DetectFormat(fileName) {
	case FormatJSON:
		return parseJSON(content)
	case FormatText:
		return parseText(content)
	case FormatCSV:
		return parseCSV(content)
	default:
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileName)), ".")
		return nil, []Rejection{{
			Kind:   RejectParseError,
			Detail: fmt.Sprintf("Unsupported file format: %s", ext),
		}}
	}
}

func parseJSON(content []byte) ([]RawRecord, []Rejection) {
	var items []json.RawMessage
	if err := json.Unmarshal(content, &items); err != nil {
		var probe any
		if json.Unmarshal(content, &probe) == nil {
			return nil, []Rejection{{Kind: RejectParseError, Detail: "Error: JSON must be an array of objects"}}
		}
		return nil, []Rejection{{Kind: RejectParseError, Detail: fmt.Sprintf("JSON parsing error: %v", err)}}
	}
	// A top-level null unmarshals into a nil slice without an error.
	if items == nil {
		return nil, []Rejection{{Kind: RejectParseError, Detail: "Error: JSON must be an array of objects"}}
	}

	records := make([]RawRecord, 0, len(items))
	for i, item := range items {
		var obj map[string]any
		// Non-object elements yield an empty record, rejected later as
		// missing fields.
		_ = json.Unmarshal(item, &obj)
		records = append(records, RawRecord{
			URL:      jsonField(obj, "URL", "url"),
			Username: jsonField(obj, "Username", "username"),
			Password: jsonField(obj, "Password", "password"),
			Line:     i + 1,
		})
	}
	return records, nil
}

// jsonField returns the first key holding a non-empty string, trimmed.
func jsonField(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := obj[key]; ok {
			if s, ok := v.(string); ok {
				if trimmed := strings.TrimSpace(s); trimmed != "" {
					return trimmed
				}
			}
		}
	}
	return ""
}

func parseText(content []byte) ([]RawRecord, []Rejection) {
	var records []RawRecord
	var rejections []Rejection
	for lineNo, line := range nonBlankLines(content) {
		m := textLineRe.FindStringSubmatch(line)
		if m == nil {
			rejections = append(rejections, Rejection{
				Line:   lineNo + 1,
				Kind:   RejectParseError,
				Detail: "Invalid format, expected URL:username:password",
			})
			continue
		}
		records = append(records, RawRecord{
			URL:      strings.TrimSpace(m[1]),
			Username: strings.TrimSpace(m[2]),
			Password: strings.TrimSpace(m[3]),
			Line:     lineNo + 1,
		})
	}
	return records, rejections
}

func parseCSV(content []byte) ([]RawRecord, []Rejection) {
	var records []RawRecord
	var rejections []Rejection
	for lineNo, line := range nonBlankLines(content) {
		tokens := csvTokenRe.FindAllString(line, -1)
		if len(tokens) < 3 {
			rejections = append(rejections, Rejection{
				Line:   lineNo + 1,
				Kind:   RejectParseError,
				Detail: "Invalid CSV format",
			})
			continue
		}
		cleaned := make([]string, len(tokens))
		for i, token := range tokens {
			cleaned[i] = strings.TrimSpace(csvCleanRe.ReplaceAllString(token, ""))
		}
		records = append(records, RawRecord{
			URL:      cleaned[0],
			Username: cleaned[1],
			Password: cleaned[2],
			Line:     lineNo + 1,
		})
	}
	return records, rejections
}

// nonBlankLines splits on line breaks and drops blank lines, keeping the
// original trimmed text. Line numbers are assigned after the blank lines are
// dropped, matching how the extraction counts input records.
func nonBlankLines(content []byte) []string {
	var lines []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
