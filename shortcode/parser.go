// shortcode/parser.go
package shortcode

import (
	"html"
	"strconv"
	"strings"
)

// Tag is one parsed markup tag occurrence.
type Tag struct {
	Name        string
	Attrs       map[string]string
	Inner       string
	SelfClosing bool
}

// Attr returns the attribute value, or "" when absent.
func (t Tag) Attr(name string) string {
	return t.Attrs[strings.ToLower(name)]
}

// span is a parsed tag plus where it sits in the source.
type span struct {
	tag        Tag
	start, end int
}

func isNameByte(b byte) bool {
	return b == '_' || b == '-' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

// parseAt parses a tag opening at s[i] == '['. known filters the tag names
// that are recognised; anything else is left as text.
func parseAt(s string, i int, known func(string) bool) (span, bool) {
	j := i + 1
	for j < len(s) && isNameByte(s[j]) {
		j++
	}
	name := s[i+1 : j]
	if name == "" || !known(name) {
		return span{}, false
	}
	if j < len(s) && !isSpace(s[j]) && s[j] != ']' && s[j] != '/' {
		return span{}, false
	}

	attrs, close, selfClosing, ok := parseAttrs(s, j)
	if !ok {
		return span{}, false
	}

	tag := Tag{Name: name, Attrs: attrs, SelfClosing: selfClosing}
	if selfClosing {
		return span{tag: tag, start: i, end: close + 1}, true
	}

	// Same-name tags pair up by depth. When they do not balance, the first
	// closing tag ends the span. A tag without a closing tag stands alone.
	closing := "[/" + name + "]"
	rel := matchClosing(s[close+1:], name)
	if rel < 0 {
		rel = strings.Index(s[close+1:], closing)
	}
	if rel < 0 {
		tag.SelfClosing = true
		return span{tag: tag, start: i, end: close + 1}, true
	}
	tag.Inner = s[close+1 : close+1+rel]
	return span{tag: tag, start: i, end: close + 1 + rel + len(closing)}, true
}

// openingEnd returns the index of the ']' ending a tag opened at s[i], or
// -1 when s[i:] does not start an opening tag of a known name.
func openingEnd(s string, i int, known func(string) bool) int {
	j := i + 1
	for j < len(s) && isNameByte(s[j]) {
		j++
	}
	name := s[i+1 : j]
	if name == "" || !known(name) {
		return -1
	}
	if j < len(s) && !isSpace(s[j]) && s[j] != ']' && s[j] != '/' {
		return -1
	}
	_, close, _, ok := parseAttrs(s, j)
	if !ok {
		return -1
	}
	return close
}

// matchClosing finds the "[/name]" that balances an already opened name
// tag in body, counting nested openings of the same name. Explicitly
// self-closed and escaped openings do not count. It returns -1 when the
// tags never balance.
func matchClosing(body, name string) int {
	closing := "[/" + name + "]"
	same := func(n string) bool { return n == name }
	depth := 1

	for k := strings.IndexByte(body, '['); k >= 0; {
		if strings.HasPrefix(body[k:], closing) {
			depth--
			if depth == 0 {
				return k
			}
			k = nextBracket(body, k+len(closing))
			continue
		}
		if k == 0 || body[k-1] != '[' {
			if end := openingEnd(body, k, same); end >= 0 {
				if body[end-1] != '/' {
					depth++
				}
				k = nextBracket(body, end+1)
				continue
			}
		}
		k = nextBracket(body, k+1)
	}
	return -1
}

func nextBracket(s string, from int) int {
	if from >= len(s) {
		return -1
	}
	rel := strings.IndexByte(s[from:], '[')
	if rel < 0 {
		return -1
	}
	return from + rel
}

// parseAttrs reads attributes from s[j:] up to the tag's closing ']'. It
// returns the attributes, the index of ']' and whether the tag ended in "/]".
func parseAttrs(s string, j int) (map[string]string, int, bool, bool) {
	attrs := map[string]string{}
	positional := 0

	for j < len(s) {
		for j < len(s) && isSpace(s[j]) {
			j++
		}
		if j >= len(s) {
			break
		}
		switch s[j] {
		case ']':
			return attrs, j, false, true
		case '/':
			if j+1 < len(s) && s[j+1] == ']' {
				return attrs, j + 1, true, true
			}
			j++
			continue
		case '[':
			return nil, 0, false, false
		}

		start := j
		for j < len(s) && isNameByte(s[j]) {
			j++
		}
		key := strings.ToLower(s[start:j])

		if key != "" && j < len(s) && s[j] == '=' {
			value, next, ok := parseValue(s, j+1)
			if !ok {
				return nil, 0, false, false
			}
			attrs[key] = html.UnescapeString(value)
			j = next
			continue
		}

		// A bare word or quoted value is stored positionally.
		if key == "" {
			value, next, ok := parseValue(s, j)
			if !ok {
				return nil, 0, false, false
			}
			j = next
			attrs[positionalKey(positional)] = html.UnescapeString(value)
		} else {
			attrs[positionalKey(positional)] = key
		}
		positional++
	}
	return nil, 0, false, false
}

func parseValue(s string, j int) (string, int, bool) {
	if j >= len(s) {
		return "", j, false
	}
	if q := s[j]; q == '"' || q == '\'' {
		end := strings.IndexByte(s[j+1:], q)
		if end < 0 {
			return "", j, false
		}
		return s[j+1 : j+1+end], j + end + 2, true
	}
	start := j
	for j < len(s) && !isSpace(s[j]) && s[j] != ']' && s[j] != '[' {
		if s[j] == '/' && j+1 < len(s) && s[j+1] == ']' {
			break
		}
		j++
	}
	if j == start {
		return "", j, false
	}
	return s[start:j], j, true
}

func positionalKey(n int) string {
	return strconv.Itoa(n)
}
