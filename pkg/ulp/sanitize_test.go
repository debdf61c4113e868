package ulp

import "testing"

func TestSanitizeFieldUsername(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Plain username",
			input:    "bob.smith",
			expected: "bob.smith",
		},
		{
			name:     "Whitespace collapsed and trimmed",
			input:    "  bob   smith  ",
			expected: "bob smith",
		},
		{
			name:     "JSON symbols stripped",
			input:    `{"bob"}`,
			expected: "bob",
		},
		{
			name:     "Trailing comma stripped",
			input:    "bob,",
			expected: "bob",
		},
		{
			name:     "Escaped newline literals stripped",
			input:    `bob\nsmith`,
			expected: "bobsmith",
		},
		{
			name:     "Non printable bytes stripped",
			input:    "bob\x01smith",
			expected: "bobsmith",
		},
		{
			name:     "Reserved placeholder admin",
			input:    "admin",
			expected: "",
		},
		{
			name:     "Reserved placeholder mixed case",
			input:    "Anonymous",
			expected: "",
		},
		{
			name:     "Too short",
			input:    "a",
			expected: "",
		},
		{
			name:     "Contains scheme",
			input:    "https://bob",
			expected: "",
		},
		{
			name:     "Contains www",
			input:    "www.bob",
			expected: "",
		},
		{
			name:     "Contains slash",
			input:    "bob/smith",
			expected: "",
		},
		{
			name:     "Empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeField(tt.input, true); got != tt.expected {
				t.Errorf("SanitizeField(%q, true) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSanitizeFieldPassword(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Plaintext cleaned",
			input:    ` "hunter two!" `,
			expected: "hunter two!",
		},
		{
			name: "Base64 password untouched",
			// Pre-encoded values skip cleanup entirely, padding included.
			input:    "Zm9vYmFyYmF6cXV1eA==",
			expected: "Zm9vYmFyYmF6cXV1eA==",
		},
		{
			name:     "Bcrypt hash untouched",
			input:    "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
			expected: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		},
		{
			name:     "Symbols outside base64 alphabet cleaned",
			input:    `pass!word{1}`,
			expected: "pass!word1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeField(tt.input, false); got != tt.expected {
				t.Errorf("SanitizeField(%q, false) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// IsLikelyEncrypted is a heuristic; the false-positive cases below are
// accepted behavior, not bugs.
func TestIsLikelyEncrypted(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{
			name:     "Standard base64",
			input:    "Zm9vYmFyYmF6cXV1eHF1dXhxdXV4",
			expected: true,
		},
		{
			name:     "Padded base64",
			input:    "Zm9vYmFyYmF6cXV1eA==",
			expected: true,
		},
		{
			name:     "Long hex",
			input:    "5f4dcc3b5aa765d61d8327deb882cf99",
			expected: true,
		},
		{
			name:     "Ethereum style hex",
			input:    "0xdeadbeef",
			expected: true,
		},
		{
			name:     "Escaped hex sequence",
			input:    `pa\x73\x73word`,
			expected: true,
		},
		{
			name:     "Unix crypt format",
			input:    "$6$saltsalt$hashhashhashhash",
			expected: true,
		},
		{
			name:     "Bcrypt format",
			input:    "$2b$12$C6UzMDM.H6dfI/f/IKcEeO1bs7kfnrFbn0zv8pKnrVpWpWlXMq4cG",
			expected: true,
		},
		{
			name:     "High entropy long string",
			input:    "kJ8!mQ2@xR5#vT9$wY3^zA6&",
			expected: true,
		},
		{
			name:     "False positive: base64 alphabet multiple of four",
			input:    "password",
			expected: true,
		},
		{
			name:     "False positive: short bare hex word",
			input:    "decade",
			expected: true,
		},
		{
			name:     "Plaintext with space",
			input:    "hello world",
			expected: false,
		},
		{
			name:     "Short plaintext with symbol",
			input:    "pass123!",
			expected: false,
		},
		{
			name:     "Repetitive low entropy",
			input:    "aaaaaaaaaaaaaaaaaaaaaaaa!",
			expected: false,
		},
		{
			name:     "Empty string",
			input:    "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLikelyEncrypted(tt.input); got != tt.expected {
				t.Errorf("IsLikelyEncrypted(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
