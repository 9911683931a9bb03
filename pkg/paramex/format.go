package paramex

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// UserString returns a user-safe message for err. For an Exception it prefers
// the rendered message over the code/category summary; for other errors it
// returns the standard error message.
func UserString(err error) string {
	if err == nil {
		return ""
	}
	var ex *Exception
	if errors.As(err, &ex) {
		if msg := ex.Message(); msg != "" {
			return msg
		}
	}
	return err.Error()
}

// IsException checks if the given error is (or wraps) an Exception.
func IsException(err error) bool {
	if err == nil {
		return false
	}
	var ex *Exception
	return errors.As(err, &ex)
}

// DebugString returns a verbose error string with codes, categories,
// variables, and the wrap chain.
func DebugString(err error) string {
	if err == nil {
		return ""
	}
	chain := flattenChain(err)
	var b strings.Builder
	for i, item := range chain {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch typed := item.(type) {
		case *Exception:
			b.WriteString(fmt.Sprintf("%d: %T: %s", i+1, typed, typed.Error()))
			b.WriteString(fmt.Sprintf(" | code=%d", typed.ErrorCode()))
			b.WriteString(fmt.Sprintf(" | category=%d", typed.Category()))
			if typed.ExceptionType() != nil {
				b.WriteString(fmt.Sprintf(" | type=%s", typed.ExceptionType().Name()))
			}
			if vars := typed.IndexedVariables(); len(vars) > 0 {
				b.WriteString(" | indexed=[")
				b.WriteString(formatIndexed(vars))
				b.WriteByte(']')
			}
			if vars := typed.NamedVariables(); len(vars) > 0 {
				b.WriteString(" | named={")
				b.WriteString(formatNamed(vars))
				b.WriteByte('}')
			}
		default:
			b.WriteString(fmt.Sprintf("%d: %T: %s", i+1, item, item.Error()))
		}
	}
	return b.String()
}

func flattenChain(err error) []error {
	var out []error
	queue := []error{err}
	const maxEntries = 64
	for len(queue) > 0 && len(out) < maxEntries {
		current := queue[0]
		queue = queue[1:]
		if current == nil {
			continue
		}
		out = append(out, current)
		queue = append(queue, unwrapAll(current)...)
	}
	return out
}

func unwrapAll(err error) []error {
	switch unwrapped := err.(type) {
	case interface{ Unwrap() []error }:
		return unwrapped.Unwrap()
	case interface{ Unwrap() error }:
		if next := unwrapped.Unwrap(); next != nil {
			return []error{next}
		}
	}
	return nil
}

func formatIndexed(vars []any) string {
	parts := make([]string, 0, len(vars))
	for _, value := range vars {
		parts = append(parts, fmt.Sprintf("%v", value))
	}
	return strings.Join(parts, ", ")
}

func formatNamed(vars map[string]any) string {
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, vars[key]))
	}
	return strings.Join(parts, ", ")
}
