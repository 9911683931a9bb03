package paramex

import "fmt"

// Exception is an immutable parameterized exception instance. It is created
// through a Builder, after the category registry check has passed, and holds
// no resources beyond its variable snapshots.
type Exception struct {
	typ      *Type
	code     int
	category int
	indexed  []any
	named    map[string]any
	errors   ExceptionErrors
	baseMsg  string
	cause    error
}

// ErrorCode returns the numeric error code.
func (e *Exception) ErrorCode() int {
	return e.code
}

// Category returns the category id.
func (e *Exception) Category() int {
	return e.category
}

// ExceptionType returns the type descriptor the exception was built as.
func (e *Exception) ExceptionType() *Type {
	return e.typ
}

// IndexedVariables returns a copy of the positional substitution variables.
func (e *Exception) IndexedVariables() []any {
	if len(e.indexed) == 0 {
		return nil
	}
	return cloneIndexed(e.indexed)
}

// NamedVariables returns a copy of the named substitution variables.
func (e *Exception) NamedVariables() map[string]any {
	if len(e.named) == 0 {
		return nil
	}
	return cloneNamed(e.named)
}

// Message renders the human-readable message. The template source is consulted
// on every call; when it yields a template, named and indexed variables are
// substituted into it. When no template is found, the base message supplied at
// build time is returned instead.
func (e *Exception) Message() string {
	if tmpl, ok := e.errors.MessageTemplate(e); ok {
		return Substitute(tmpl, e.named, e.indexed)
	}
	return e.baseMsg
}

// Error implements the error interface. It falls back to a code/category
// summary when neither a template nor a base message yields text, so an
// Exception never renders as an empty string.
func (e *Exception) Error() string {
	if msg := e.Message(); msg != "" {
		return msg
	}
	return fmt.Sprintf("exception code=%d category=%d", e.code, e.category)
}

// Unwrap returns the wrapped cause, if any, so errors.Is and errors.As
// traverse through the exception.
func (e *Exception) Unwrap() error {
	return e.cause
}

// Cause returns the wrapped cause, if any.
func (e *Exception) Cause() error {
	return e.cause
}

func cloneIndexed(vars []any) []any {
	clone := make([]any, len(vars))
	copy(clone, vars)
	return clone
}

func cloneNamed(vars map[string]any) map[string]any {
	clone := make(map[string]any, len(vars))
	for key, value := range vars {
		clone[key] = value
	}
	return clone
}
