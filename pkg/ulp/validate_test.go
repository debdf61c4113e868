package ulp

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	validator := NewDefaultValidator()

	tests := []struct {
		name         string
		raw          RawRecord
		expectKind   RejectKind
		expectReject bool
		expectDetail string
		expected     Record
	}{
		{
			name: "Valid record",
			raw:  RawRecord{URL: "Example.com/login/", Username: "bob", Password: "hunter2", Line: 1},
			expected: Record{
				URL:      "https://example.com/login",
				Username: "bob",
				Password: "hunter2",
			},
		},
		{
			name:         "Missing url and password",
			raw:          RawRecord{Username: "bob", Line: 2},
			expectReject: true,
			expectKind:   RejectMissingField,
			expectDetail: "Missing required fields (URL) (password)",
		},
		{
			name:         "Missing username",
			raw:          RawRecord{URL: "example.com", Password: "x", Line: 3},
			expectReject: true,
			expectKind:   RejectMissingField,
			expectDetail: "Missing required fields (username)",
		},
		{
			name:         "Raw IP url",
			raw:          RawRecord{URL: "http://192.168.0.1/login", Username: "bob", Password: "hunter2", Line: 4},
			expectReject: true,
			expectKind:   RejectInvalidURL,
			expectDetail: "Invalid URL format - http://192.168.0.1/login",
		},
		{
			name:         "Reserved username",
			raw:          RawRecord{URL: "example.com", Username: "admin", Password: "hunter2", Line: 5},
			expectReject: true,
			expectKind:   RejectInvalidUsername,
		},
		{
			name:         "Password reduced to nothing",
			raw:          RawRecord{URL: "example.com", Username: "bob", Password: `"{}"`, Line: 6},
			expectReject: true,
			expectKind:   RejectEmptyPassword,
			expectDetail: "Empty password",
		},
		{
			name: "Pre-encoded password preserved",
			raw:  RawRecord{URL: "a.com", Username: "bob", Password: "Zm9vYmFyYmF6cXV1eA==", Line: 7},
			expected: Record{
				URL:      "https://a.com/",
				Username: "bob",
				Password: "Zm9vYmFyYmF6cXV1eA==",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, rej := validator.Validate(tt.raw)

			if tt.expectReject {
				if rej == nil {
					t.Fatalf("Expected rejection but record was accepted: %+v", record)
				}
				if rej.Kind != tt.expectKind {
					t.Errorf("Expected kind %d, got %d", tt.expectKind, rej.Kind)
				}
				if rej.Line != tt.raw.Line {
					t.Errorf("Expected line %d, got %d", tt.raw.Line, rej.Line)
				}
				if tt.expectDetail != "" && rej.Detail != tt.expectDetail {
					t.Errorf("Expected detail %q, got %q", tt.expectDetail, rej.Detail)
				}
				return
			}

			if rej != nil {
				t.Fatalf("Unexpected rejection: %s", rej)
			}
			if record.URL != tt.expected.URL {
				t.Errorf("Expected URL %q, got %q", tt.expected.URL, record.URL)
			}
			if record.Username != tt.expected.Username {
				t.Errorf("Expected username %q, got %q", tt.expected.Username, record.Username)
			}
			if record.Password != tt.expected.Password {
				t.Errorf("Expected password %q, got %q", tt.expected.Password, record.Password)
			}
			if record.Notes != "" {
				t.Errorf("Expected empty notes, got %q", record.Notes)
			}
		})
	}
}

func TestRejectionString(t *testing.T) {
	withLine := Rejection{Line: 3, Kind: RejectParseError, Detail: "Invalid CSV format"}
	if got := withLine.String(); got != "Line 3: Invalid CSV format" {
		t.Errorf("Unexpected formatted rejection: %q", got)
	}

	fileLevel := Rejection{Kind: RejectParseError, Detail: "Error: JSON must be an array of objects"}
	if got := fileLevel.String(); strings.HasPrefix(got, "Line") {
		t.Errorf("File-level rejection should not carry a line prefix: %q", got)
	}
}
