// shortcode/processor.go
package shortcode

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// HandlerFunc renders one tag occurrence. Handlers that want nested tags
// expanded call Process on tag.Inner themselves.
type HandlerFunc func(ctx context.Context, tag Tag) (string, error)

// Processor expands registered tags in a body of text. Unregistered tags
// and malformed markup are left as written.
type Processor struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

func NewProcessor() *Processor {
	return &Processor{handlers: make(map[string]HandlerFunc)}
}

// Register binds name to handler, replacing any previous binding.
func (p *Processor) Register(name string, handler HandlerFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers[name] = handler
}

// Tags lists the registered tag names in sorted order.
func (p *Processor) Tags() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]string, 0, len(p.handlers))
	for name := range p.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p *Processor) handler(name string) (HandlerFunc, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	h, ok := p.handlers[name]
	return h, ok
}

func (p *Processor) known(name string) bool {
	_, ok := p.handler(name)
	return ok
}

// HasTags reports whether content contains at least one registered tag.
func (p *Processor) HasTags(content string) bool {
	for i := strings.IndexByte(content, '['); i >= 0; {
		if _, ok := parseAt(content, i, p.known); ok {
			return true
		}
		next := strings.IndexByte(content[i+1:], '[')
		if next < 0 {
			break
		}
		i += next + 1
	}
	return false
}

// Process replaces every registered tag in content with its handler's
// output. "[[tag]]" is an escape and comes out as the literal "[tag]",
// as does "[[tag]...[/tag]]" for the whole enclosed span.
// The first handler error aborts processing.
func (p *Processor) Process(ctx context.Context, content string) (string, error) {
	if !strings.Contains(content, "[") {
		return content, nil
	}

	var b strings.Builder
	b.Grow(len(content))
	i := 0

	for i < len(content) {
		open := strings.IndexByte(content[i:], '[')
		if open < 0 {
			b.WriteString(content[i:])
			break
		}
		open += i
		b.WriteString(content[i:open])

		if open+1 < len(content) && content[open+1] == '[' {
			// "[[tag attrs]]" escapes only the opening tag.
			if end := openingEnd(content, open+1, p.known); end >= 0 && end+1 < len(content) && content[end+1] == ']' {
				b.WriteString(content[open+1 : end+1])
				i = end + 2
				continue
			}
			if sp, ok := parseAt(content, open+1, p.known); ok && sp.end < len(content) && content[sp.end] == ']' {
				b.WriteString(content[open+1 : sp.end])
				i = sp.end + 1
				continue
			}
		}

		sp, ok := parseAt(content, open, p.known)
		if !ok {
			b.WriteByte('[')
			i = open + 1
			continue
		}

		h, _ := p.handler(sp.tag.Name)
		out, err := h(ctx, sp.tag)
		if err != nil {
			return "", fmt.Errorf("rendering [%s]: %w", sp.tag.Name, err)
		}
		b.WriteString(out)
		i = sp.end
	}
	return b.String(), nil
}
