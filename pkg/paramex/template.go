package paramex

import (
	"fmt"
	"strconv"
	"strings"
)

// ExceptionErrors supplies message templates for exceptions. The source may
// inspect the instance's error code, category, or type to pick a template.
// Returning ok == false means no template exists and the exception falls back
// to its base message.
//
// Implementations are host-supplied; TemplateMap is a minimal in-memory one.
type ExceptionErrors interface {
	MessageTemplate(ex *Exception) (string, bool)
}

// TemplateKey addresses a message template by category and error code.
type TemplateKey struct {
	Category  int
	ErrorCode int
}

// TemplateMap is an in-memory ExceptionErrors keyed by (category, error code).
type TemplateMap map[TemplateKey]string

// MessageTemplate implements ExceptionErrors.
func (m TemplateMap) MessageTemplate(ex *Exception) (string, bool) {
	tmpl, ok := m[TemplateKey{Category: ex.Category(), ErrorCode: ex.ErrorCode()}]
	return tmpl, ok
}

// Substitute renders a message template against named and indexed variables.
//
// Placeholder syntax:
//   - {}      consumes the next indexed variable
//   - {2}     addresses indexed variable 2
//   - {name}  addresses the named variable "name"
//   - \{      emits a literal brace
//
// Substitution is fail-soft: placeholders that cannot be resolved (index out
// of range, unknown name, missing closing brace) are emitted verbatim, so
// rendering never fails at runtime.
func Substitute(template string, named map[string]any, indexed []any) string {
	if !strings.ContainsRune(template, '{') {
		return template
	}

	var b strings.Builder
	b.Grow(len(template) + 16)
	next := 0 // auto-increment position for {} placeholders
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c == '\\' && i+1 < len(template) && template[i+1] == '{' {
			b.WriteByte('{')
			i++
			continue
		}
		if c != '{' {
			b.WriteByte(c)
			continue
		}
		end := strings.IndexByte(template[i:], '}')
		if end < 0 {
			b.WriteString(template[i:])
			break
		}
		token := template[i+1 : i+end]
		val, ok := resolve(token, named, indexed, &next)
		if !ok {
			b.WriteString(template[i : i+end+1])
		} else {
			fmt.Fprintf(&b, "%v", val)
		}
		i += end
	}
	return b.String()
}

func resolve(token string, named map[string]any, indexed []any, next *int) (any, bool) {
	if token == "" {
		if *next >= len(indexed) {
			return nil, false
		}
		val := indexed[*next]
		*next++
		return val, true
	}
	if idx, err := strconv.Atoi(token); err == nil {
		if idx < 0 || idx >= len(indexed) {
			return nil, false
		}
		return indexed[idx], true
	}
	val, ok := named[token]
	return val, ok
}
