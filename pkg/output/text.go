package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/gnomegl/ulpdb/pkg/store"
	"github.com/gnomegl/ulpdb/pkg/webtech"
)

// TextWriter emits entries as url:username:password lines, the interchange
// format most dump tooling expects. The scheme prefix is stripped.
type TextWriter struct {
	writer *bufio.Writer
}

func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{writer: bufio.NewWriter(w)}
}

func (w *TextWriter) WriteEntries(entries []store.Entry) error {
	for _, e := range entries {
		line := fmt.Sprintf("%s:%s:%s\n", stripScheme(e.URL), e.Username, e.Password)
		if _, err := w.writer.WriteString(line); err != nil {
			return fmt.Errorf("failed to write text record: %w", err)
		}
	}
	return w.writer.Flush()
}

func stripScheme(url string) string {
	if strings.HasPrefix(url, "https://") {
		return url[8:]
	}
	if strings.HasPrefix(url, "http://") {
		return url[7:]
	}
	return url
}

// WebsiteListWriter emits one "url [tech1, tech2]" line per website, the
// same shape the association-list parser accepts.
type WebsiteListWriter struct {
	writer *bufio.Writer
}

func NewWebsiteListWriter(w io.Writer) *WebsiteListWriter {
	return &WebsiteListWriter{writer: bufio.NewWriter(w)}
}

func (w *WebsiteListWriter) WriteWebsites(sites []webtech.Website) error {
	for _, site := range sites {
		line := site.URL
		if len(site.Technologies) > 0 {
			line += " [" + strings.Join(site.Technologies, ", ") + "]"
		}
		if _, err := w.writer.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("failed to write website record: %w", err)
		}
	}
	return w.writer.Flush()
}
