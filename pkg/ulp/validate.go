package ulp

import (
	"fmt"
	"strings"
)

// DefaultValidator turns raw records into sanitized ones, producing a typed
// rejection on the first rule that fails. Checks run in a fixed order so
// that rejection messages are reproducible: missing fields, URL, username,
// password.
type DefaultValidator struct{}

func NewDefaultValidator() *DefaultValidator {
	return &DefaultValidator{}
}

func (v *DefaultValidator) Validate(raw RawRecord) (Record, *Rejection) {
	if raw.URL == "" || raw.Username == "" || raw.Password == "" {
		var missing strings.Builder
		missing.WriteString("Missing required fields")
		if raw.URL == "" {
			missing.WriteString(" (URL)")
		}
		if raw.Username == "" {
			missing.WriteString(" (username)")
		}
		if raw.Password == "" {
			missing.WriteString(" (password)")
		}
		return Record{}, &Rejection{Line: raw.Line, Kind: RejectMissingField, Detail: missing.String()}
	}

	normalized, err := NormalizeURL(raw.URL)
	if err != nil {
		return Record{}, &Rejection{
			Line:   raw.Line,
			Kind:   RejectInvalidURL,
			Detail: fmt.Sprintf("Invalid URL format - %s", raw.URL),
		}
	}

	username := SanitizeField(raw.Username, true)
	if username == "" {
		return Record{}, &Rejection{
			Line:   raw.Line,
			Kind:   RejectInvalidUsername,
			Detail: fmt.Sprintf("Username cannot be empty or invalid for URL: %s", raw.URL),
		}
	}

	password := SanitizeField(raw.Password, false)
	if password == "" {
		return Record{}, &Rejection{Line: raw.Line, Kind: RejectEmptyPassword, Detail: "Empty password"}
	}

	return Record{
		URL:      normalized,
		Username: username,
		Password: password,
		Notes:    "",
	}, nil
}
