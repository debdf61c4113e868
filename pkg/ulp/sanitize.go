package ulp

import (
	"math"
	"regexp"
	"strings"
)

var (
	whitespaceRe    = regexp.MustCompile(`\s+`)
	jsonSymbolRe    = regexp.MustCompile(`['"{}\[\]]`)
	escNewlineRe    = regexp.MustCompile(`\\n|\\r`)
	nonPrintableRe  = regexp.MustCompile(`[^\x20-\x7E]`)
	trailingCommaRe = regexp.MustCompile(`,$`)
	edgeQuoteRe     = regexp.MustCompile(`^"|"$`)
)

// likelyEncryptedRes are signatures of already-hashed or encoded secrets:
// standard base64, strict base64 grammar, long hex, 0x/bare hex, escaped
// hex bytes, unix crypt and bcrypt.
var likelyEncryptedRes = []*regexp.Regexp{
	regexp.MustCompile(`^[A-Za-z0-9+/=]{24,}$`),
	regexp.MustCompile(`^(?:[A-Za-z0-9+/]{4})*(?:[A-Za-z0-9+/]{2}==|[A-Za-z0-9+/]{3}=)?$`),
	regexp.MustCompile(`^[0-9a-fA-F]{32,}$`),
	regexp.MustCompile(`^(?:0x)?[0-9a-fA-F]+$`),
	regexp.MustCompile(`(?i)\\x[0-9a-fA-F]{2}`),
	regexp.MustCompile(`\$[1-6]\$[a-zA-Z0-9./]+\$[a-zA-Z0-9./]+`),
	regexp.MustCompile(`\$2[ayb]\$[0-9]{2}\$[A-Za-z0-9./]{53}`),
}

// reservedUsernames are placeholder values that show up in dumps in place of
// a real account name.
var reservedUsernames = map[string]bool{
	"android":   true,
	"user":      true,
	"username":  true,
	"login":     true,
	"email":     true,
	"admin":     true,
	"test":      true,
	"guest":     true,
	"anonymous": true,
	"system":    true,
	"root":      true,
}

// IsLikelyEncrypted reports whether a value already looks hashed, encrypted
// or encoded. This is a heuristic classification, not a proof: short
// plaintext over the base64 or hex alphabet can match, and unusual cipher
// output can miss. Callers must tolerate both directions.
func IsLikelyEncrypted(s string) bool {
	if s == "" {
		return false
	}
	for _, re := range likelyEncryptedRes {
		if re.MatchString(s) {
			return true
		}
	}
	return len(s) >= 20 && shannonEntropy(s) > 3.5
}

// shannonEntropy is bits per character over the rune frequency distribution.
func shannonEntropy(s string) float64 {
	freq := make(map[rune]int)
	total := 0
	for _, r := range s {
		freq[r]++
		total++
	}
	var entropy float64
	for _, count := range freq {
		p := float64(count) / float64(total)
		entropy -= p * math.Log2(p)
	}
	return entropy
}

// SanitizeField cleans a username or password taken from a dump. Passwords
// that look pre-encoded are returned untouched so that hash and cipher
// values survive byte-for-byte. Usernames additionally go through a
// plausibility filter; an empty result means the value was rejected.
func SanitizeField(field string, isUsername bool) string {
	if field == "" {
		return ""
	}

	if !isUsername && IsLikelyEncrypted(field) {
		return field
	}

	cleaned := strings.TrimSpace(field)
	cleaned = whitespaceRe.ReplaceAllString(cleaned, " ")
	cleaned = jsonSymbolRe.ReplaceAllString(cleaned, "")
	cleaned = escNewlineRe.ReplaceAllString(cleaned, "")
	cleaned = nonPrintableRe.ReplaceAllString(cleaned, "")
	cleaned = trailingCommaRe.ReplaceAllString(cleaned, "")
	cleaned = edgeQuoteRe.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	if isUsername {
		if reservedUsernames[strings.ToLower(cleaned)] {
			return ""
		}
		if len(cleaned) < 2 || len(cleaned) > 100 ||
			strings.Contains(cleaned, "://") ||
			strings.Contains(cleaned, "www.") ||
			strings.Contains(cleaned, "/") {
			return ""
		}
	}

	return cleaned
}
