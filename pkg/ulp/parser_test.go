package ulp

import (
	"strings"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		fileName string
		expected Format
	}{
		{"dump.json", FormatJSON},
		{"dump.JSON", FormatJSON},
		{"dump.txt", FormatText},
		{"dump.csv", FormatCSV},
		{"dump.xlsx", FormatUnsupported},
		{"dump", FormatUnsupported},
	}

	for _, tt := range tests {
		if got := DetectFormat(tt.fileName); got != tt.expected {
			t.Errorf("DetectFormat(%q) = %d, want %d", tt.fileName, got, tt.expected)
		}
	}
}

func TestParseJSON(t *testing.T) {
	content := []byte(`[
		{"URL": "a.com", "Username": "bob", "Password": "pw1"},
		{"url": " b.com ", "username": "alice", "password": "pw2"},
		{"URL": "", "url": "c.com", "Username": "carol", "Password": "pw3"},
		{"Username": "dave"}
	]`)

	records, rejections := Parse(content, "dump.json")
	if len(rejections) != 0 {
		t.Fatalf("Unexpected rejections: %v", rejections)
	}
	if len(records) != 4 {
		t.Fatalf("Expected 4 records, got %d", len(records))
	}

	if records[0].URL != "a.com" || records[0].Username != "bob" || records[0].Password != "pw1" {
		t.Errorf("Unexpected first record: %+v", records[0])
	}
	if records[1].URL != "b.com" {
		t.Errorf("Expected lowercase key value trimmed, got %q", records[1].URL)
	}
	if records[2].URL != "c.com" {
		t.Errorf("Expected fallback to lowercase key on empty value, got %q", records[2].URL)
	}
	if records[3].URL != "" || records[3].Password != "" {
		t.Errorf("Expected empty fields for sparse object: %+v", records[3])
	}
	for i, rec := range records {
		if rec.Line != i+1 {
			t.Errorf("Expected line %d, got %d", i+1, rec.Line)
		}
	}
}

func TestParseJSONNotArray(t *testing.T) {
	records, rejections := Parse([]byte(`{"URL": "a.com"}`), "dump.json")
	if len(records) != 0 {
		t.Fatalf("Expected no records, got %d", len(records))
	}
	if len(rejections) != 1 {
		t.Fatalf("Expected one rejection, got %d", len(rejections))
	}
	if rejections[0].Detail != "Error: JSON must be an array of objects" {
		t.Errorf("Unexpected detail: %q", rejections[0].Detail)
	}
	if rejections[0].Line != 0 {
		t.Errorf("File-level rejection should have line 0, got %d", rejections[0].Line)
	}
}

func TestParseJSONNull(t *testing.T) {
	records, rejections := Parse([]byte(`null`), "dump.json")
	if len(records) != 0 {
		t.Fatalf("Expected no records, got %d", len(records))
	}
	if len(rejections) != 1 {
		t.Fatalf("Expected one rejection, got %d", len(rejections))
	}
	if rejections[0].Detail != "Error: JSON must be an array of objects" {
		t.Errorf("Unexpected detail: %q", rejections[0].Detail)
	}
	if rejections[0].Line != 0 {
		t.Errorf("File-level rejection should have line 0, got %d", rejections[0].Line)
	}
}

func TestParseJSONMalformed(t *testing.T) {
	records, rejections := Parse([]byte(`[{"URL": `), "dump.json")
	if len(records) != 0 || len(rejections) != 1 {
		t.Fatalf("Expected single rejection, got %d records %d rejections", len(records), len(rejections))
	}
	if !strings.HasPrefix(rejections[0].Detail, "JSON parsing error") {
		t.Errorf("Unexpected detail: %q", rejections[0].Detail)
	}
}

func TestParseText(t *testing.T) {
	content := []byte("https://a.com:bob:pw1\n\nb.com/path:alice:pw:with:colons\nnot a credential line\n")

	records, rejections := Parse(content, "dump.txt")
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if len(rejections) != 1 {
		t.Fatalf("Expected 1 rejection, got %d", len(rejections))
	}

	if records[0].URL != "https://a.com" || records[0].Username != "bob" || records[0].Password != "pw1" {
		t.Errorf("Unexpected first record: %+v", records[0])
	}
	if records[1].Password != "pw:with:colons" {
		t.Errorf("Password should keep embedded colons, got %q", records[1].Password)
	}
	// Blank lines are dropped before numbering.
	if records[1].Line != 2 {
		t.Errorf("Expected line 2, got %d", records[1].Line)
	}
	if rejections[0].Line != 3 {
		t.Errorf("Expected rejection on line 3, got %d", rejections[0].Line)
	}
	if rejections[0].Detail != "Invalid format, expected URL:username:password" {
		t.Errorf("Unexpected detail: %q", rejections[0].Detail)
	}
}

func TestParseCSV(t *testing.T) {
	content := []byte("a.com,bob,pw1\n\"b.com\",\"user name\",\"pw,with,commas\"\nonly-two,fields\n")

	records, rejections := Parse(content, "dump.csv")
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d: %+v", len(records), records)
	}
	if len(rejections) != 1 {
		t.Fatalf("Expected 1 rejection, got %d", len(rejections))
	}

	if records[0].URL != "a.com" || records[0].Username != "bob" || records[0].Password != "pw1" {
		t.Errorf("Unexpected first record: %+v", records[0])
	}
	if records[1].Username != "user name" {
		t.Errorf("Quoted field should survive, got %q", records[1].Username)
	}
	if rejections[0].Kind != RejectParseError || rejections[0].Detail != "Invalid CSV format" {
		t.Errorf("Unexpected rejection: %+v", rejections[0])
	}
	if rejections[0].Line != 3 {
		t.Errorf("Expected rejection on line 3, got %d", rejections[0].Line)
	}
}

func TestParseUnsupported(t *testing.T) {
	records, rejections := Parse([]byte("whatever"), "dump.xlsx")
	if len(records) != 0 {
		t.Fatalf("Expected no records, got %d", len(records))
	}
	if len(rejections) != 1 {
		t.Fatalf("Expected one rejection, got %d", len(rejections))
	}
	if rejections[0].Detail != "Unsupported file format: xlsx" {
		t.Errorf("Unexpected detail: %q", rejections[0].Detail)
	}
}
