package paramex

// Type identifies one concrete exception kind. Types form a single-inheritance
// hierarchy: each Type has at most one parent, and a category registered by a
// Type may be shared by its subtypes.
//
// Types are compared by identity, not by name. Two Types created with the same
// name are distinct and unrelated.
type Type struct {
	name   string
	parent *Type
}

// NewType creates a root exception type with no supertype.
func NewType(name string) *Type {
	return &Type{name: name}
}

// Derive creates a subtype of t.
func (t *Type) Derive(name string) *Type {
	return &Type{name: name, parent: t}
}

// Name returns the type name.
func (t *Type) Name() string {
	if t == nil {
		return ""
	}
	return t.name
}

// Parent returns the immediate supertype, or nil for a root type.
func (t *Type) Parent() *Type {
	if t == nil {
		return nil
	}
	return t.parent
}

// AssignableFrom reports whether other is t or a subtype of t. This is the
// "is-assignable-from" relation: it walks other's parent chain looking for t.
func (t *Type) AssignableFrom(other *Type) bool {
	if t == nil || other == nil {
		return false
	}
	for cur := other; cur != nil; cur = cur.parent {
		if cur == t {
			return true
		}
	}
	return false
}

// String returns the full hierarchy path for diagnostics, outermost supertype
// first (e.g. "OrderError/OrderTimeoutError").
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	if t.parent == nil {
		return t.name
	}
	return t.parent.String() + "/" + t.name
}
