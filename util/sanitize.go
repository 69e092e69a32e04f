// util/sanitize.go

package util

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// StripTags drops all markup from s and keeps its text. Script and style
// bodies are dropped entirely. Entities come back decoded.
func StripTags(s string) string {
	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	hidden := 0

	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF, or unterminated markup: keep what was read so far.
			return b.String()
		case html.TextToken:
			if hidden == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken:
			if isHiddenElement(z) {
				hidden++
			}
		case html.EndTagToken:
			if isHiddenElement(z) && hidden > 0 {
				hidden--
			}
		}
	}
}

func isHiddenElement(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	switch atom.Lookup(name) {
	case atom.Script, atom.Style:
		return true
	}
	return false
}

// SanitizeTextarea strips markup, normalises line endings and trims the
// result. Line breaks inside the text are kept.
func SanitizeTextarea(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = StripTags(s)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// SanitizeText strips markup and collapses all whitespace, line breaks
// included, to single spaces.
func SanitizeText(s string) string {
	return strings.Join(strings.Fields(StripTags(s)), " ")
}
