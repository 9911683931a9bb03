package paramex

import (
	"sort"
	"sync"

	"github.com/go-logr/logr"
)

// FrameworkCategoryMax is the upper bound of the category range reserved for
// framework use (0x0000 ~ 0xFFFF). Applications should pick category ids above
// this value.
const FrameworkCategoryMax = 0xFFFF

// IsFrameworkCategory reports whether category falls in the framework-reserved
// range.
func IsFrameworkCategory(category int) bool {
	return category >= 0 && category <= FrameworkCategoryMax
}

// CategoryRegistry maps category ids to the exception type family that owns
// them. It guarantees that a category id is never shared by two unrelated
// exception types, while allowing a type hierarchy to share one category
// across levels: the registry always stores the most general type seen so far
// for a category.
//
// A registry is safe for concurrent use. Entries live for the lifetime of the
// registry; there is no eviction. Production code normally uses the shared
// DefaultRegistry; tests construct a fresh instance per case.
type CategoryRegistry struct {
	mu      sync.Mutex
	entries map[int]*Type
	logger  logr.Logger
}

// RegistryOption configures a CategoryRegistry.
type RegistryOption func(*CategoryRegistry)

// WithLogger sets the logger used to record registrations at verbosity 1.
// Conflicts are returned as errors, never logged by the registry itself.
func WithLogger(logger logr.Logger) RegistryOption {
	return func(r *CategoryRegistry) {
		r.logger = logger
	}
}

// NewCategoryRegistry creates an empty registry.
func NewCategoryRegistry(opts ...RegistryOption) *CategoryRegistry {
	r := &CategoryRegistry{
		entries: make(map[int]*Type),
		logger:  logr.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultRegistry = NewCategoryRegistry()

// DefaultRegistry returns the process-wide registry used by builders that were
// not given an explicit one.
func DefaultRegistry() *CategoryRegistry {
	return defaultRegistry
}

// CheckAndRegister records typ as a holder of category, enforcing single
// ownership per unrelated type. It is called once per exception construction,
// before the instance becomes usable.
//
// The lookup-compare-update sequence runs atomically under the registry lock:
//   - no entry for category: typ is registered
//   - same type already registered: no-op
//   - typ is an ancestor of the registered type: the entry is re-registered to
//     typ, so the registry converges on the most general type of the family
//   - typ is a subtype of the registered type: no-op
//   - the types are unrelated: fails with a CategoryConflictError naming the
//     already-registered type; the entry is left unchanged
//
// A nil typ fails with a PreconditionError.
func (r *CategoryRegistry) CheckAndRegister(category int, typ *Type) error {
	if typ == nil {
		return &PreconditionError{Arg: "exceptionType"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	registered, ok := r.entries[category]
	if !ok {
		r.entries[category] = typ
		r.logger.V(1).Info("category registered",
			"category", category, "type", typ.Name())
		return nil
	}
	if registered == typ {
		return nil
	}
	if typ.AssignableFrom(registered) {
		// Re-register under the more general type so any future subtype
		// check against the entry succeeds.
		r.entries[category] = typ
		r.logger.V(1).Info("category re-registered to supertype",
			"category", category, "type", typ.Name(), "previous", registered.Name())
		return nil
	}
	if registered.AssignableFrom(typ) {
		return nil
	}
	return &CategoryConflictError{
		Category:   category,
		Registered: registered,
		Attempted:  typ,
	}
}

// RegisteredType returns the type currently holding category, if any.
func (r *CategoryRegistry) RegisteredType(category int) (*Type, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	typ, ok := r.entries[category]
	return typ, ok
}

// Categories returns the registered category ids in ascending order.
func (r *CategoryRegistry) Categories() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, 0, len(r.entries))
	for category := range r.entries {
		out = append(out, category)
	}
	sort.Ints(out)
	return out
}
