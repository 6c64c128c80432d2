// Package content renders user-supplied text into HTML that is safe to
// hand to every connected viewer. The same pipeline is applied to
// user-authored, bot-authored and system-authored text.
package content

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

var (
	policy   = bluemonday.StrictPolicy()
	markdown = goldmark.New()
)

// Render sanitizes raw text and converts it to HTML. Markup in the input
// is stripped before conversion, trailing whitespace is removed from each
// line, and linebreaks are preserved by joining lines with the markdown
// hard-break marker (two spaces and a newline).
func Render(raw string) string {
	clean := policy.Sanitize(raw)

	lines := strings.Split(clean, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t\r")
	}
	joined := strings.Join(lines, "  \n")

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(joined), &buf); err != nil {
		// Convert only fails when the writer does, which a bytes.Buffer
		// never does. Fall back to the sanitized text just in case.
		return clean
	}
	return buf.String()
}
