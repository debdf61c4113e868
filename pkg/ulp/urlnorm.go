package ulp

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	schemeRe     = regexp.MustCompile(`(?i)^https?://`)
	dottedQuadRe = regexp.MustCompile(`^(\d{1,3}\.){3}\d{1,3}$`)
)

// NormalizeURL validates a raw URL and returns its canonical form: scheme and
// host lower-cased, "www." stripped, default ports removed, trailing slashes
// trimmed down to a minimum path of "/", query kept verbatim, fragment
// dropped. A missing scheme defaults to https. The result is idempotent:
// normalizing an already-normalized URL returns it unchanged.
func NormalizeURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("empty URL")
	}

	candidate := trimmed
	if !schemeRe.MatchString(candidate) {
		candidate = "https://" + candidate
	}
	if strings.Contains(candidate, "javascript:") {
		return "", fmt.Errorf("javascript URL")
	}

	u, err := url.Parse(candidate)
	if err != nil {
		return "", fmt.Errorf("unparseable URL: %w", err)
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	host := strings.ToLower(u.Hostname())
	switch {
	case host == "":
		return "", fmt.Errorf("missing hostname")
	case host == "localhost":
		return "", fmt.Errorf("localhost is not allowed")
	case dottedQuadRe.MatchString(host):
		return "", fmt.Errorf("raw IP addresses are not allowed")
	case strings.Contains(host, ".."):
		return "", fmt.Errorf("hostname contains consecutive dots")
	case !strings.Contains(host, "."):
		return "", fmt.Errorf("hostname has no dot")
	case len(host) > 255:
		return "", fmt.Errorf("hostname too long")
	}
	if tld := host[strings.LastIndex(host, ".")+1:]; len(tld) < 2 {
		return "", fmt.Errorf("TLD too short")
	}

	host = strings.TrimPrefix(host, "www.")

	port := u.Port()
	if (scheme == "http" && port == "80") || (scheme == "https" && port == "443") {
		port = ""
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	for len(path) > 1 && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}

	var b strings.Builder
	b.WriteString(scheme)
	b.WriteString("://")
	b.WriteString(host)
	if port != "" {
		b.WriteString(":")
		b.WriteString(port)
	}
	b.WriteString(path)
	if u.RawQuery != "" {
		b.WriteString("?")
		b.WriteString(u.RawQuery)
	}
	return b.String(), nil
}
