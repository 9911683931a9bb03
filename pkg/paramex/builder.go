package paramex

// unset marks a numeric builder field that was never provided. There is no
// default error code; the caller must set one explicitly.
const unset = -1

// Params is the tagged-union form of substitution variables. A supplying
// collaborator that already knows whether its variables are positional or
// named should construct one via IndexedParams or NamedParams instead of
// going through the runtime-inspected ParameterSource adapter.
type Params struct {
	indexed []any
	named   map[string]any
}

// IndexedParams wraps positional substitution variables.
func IndexedParams(vars ...any) Params {
	return Params{indexed: vars}
}

// NamedParams wraps named substitution variables.
func NamedParams(vars map[string]any) Params {
	return Params{named: vars}
}

// ParameterSource is an opaque variable supplier whose underlying value is
// only known at runtime. Get must return either a []any (indexed variables)
// or a map[string]any (named variables); anything else fails the build with
// an UnsupportedTypeError.
type ParameterSource interface {
	Get() any
}

// Builder collects the inputs of one Exception and finalizes it via Build.
// The category is fixed at creation time; the error code and variables are
// supplied through fluent setters. A Builder is not safe for concurrent use
// and must not be reused after Build.
type Builder struct {
	typ      *Type
	category int
	code     int
	errors   ExceptionErrors
	indexed  []any
	named    map[string]any
	baseMsg  string
	cause    error
	registry *CategoryRegistry
	before   func() error
	after    func(*Exception) error
	err      error // first setter failure, surfaced at Build
}

// NewBuilder creates a builder for an exception of type typ under the given
// category, with errors as the message-template source.
//
// It fails immediately with a PreconditionError when typ or errors is nil,
// and with an InvalidArgumentError when category is negative.
func NewBuilder(typ *Type, category int, errors ExceptionErrors) (*Builder, error) {
	if typ == nil {
		return nil, &PreconditionError{Arg: "exceptionType"}
	}
	if errors == nil {
		return nil, &PreconditionError{Arg: "exceptionErrors"}
	}
	if category < 0 {
		return nil, &InvalidArgumentError{Reason: "the exception category cannot be negative"}
	}
	return &Builder{
		typ:      typ,
		category: category,
		code:     unset,
		errors:   errors,
	}, nil
}

// ErrorCode sets the numeric error code.
func (b *Builder) ErrorCode(code int) *Builder {
	b.code = code
	return b
}

// Variables sets the positional substitution variables. Indexed and named
// variables are stored independently; both may be set on one builder, and the
// template decides which it consumes.
func (b *Builder) Variables(vars ...any) *Builder {
	b.indexed = vars
	return b
}

// NamedVariables sets the named substitution variables.
func (b *Builder) NamedVariables(vars map[string]any) *Builder {
	b.named = vars
	return b
}

// Params applies a tagged-union variable set. Whichever slot the Params
// carries overwrites the corresponding slot on the builder.
func (b *Builder) Params(p Params) *Builder {
	if p.indexed != nil {
		b.indexed = p.indexed
	}
	if p.named != nil {
		b.named = p.named
	}
	return b
}

// ParamsFrom adapts an opaque parameter source. A []any value becomes the
// indexed variables, a map[string]any value becomes the named variables;
// any other value records an UnsupportedTypeError that Build will return.
func (b *Builder) ParamsFrom(src ParameterSource) *Builder {
	if src == nil {
		b.fail(&PreconditionError{Arg: "parameterSource"})
		return b
	}
	switch v := src.Get().(type) {
	case []any:
		b.indexed = v
	case map[string]any:
		b.named = v
	default:
		b.fail(&UnsupportedTypeError{Value: v})
	}
	return b
}

// BaseMessage sets the fallback message returned when the template source has
// no template for the exception.
func (b *Builder) BaseMessage(msg string) *Builder {
	b.baseMsg = msg
	return b
}

// Cause attaches an underlying error the exception wraps.
func (b *Builder) Cause(err error) *Builder {
	b.cause = err
	return b
}

// Registry directs the build to a specific category registry instead of the
// process-wide default.
func (b *Builder) Registry(r *CategoryRegistry) *Builder {
	b.registry = r
	return b
}

// BeforeCreate installs a hook invoked after validation and before the
// registry check. A hook error aborts the build.
func (b *Builder) BeforeCreate(fn func() error) *Builder {
	b.before = fn
	return b
}

// AfterCreate installs a hook invoked with the finished instance just before
// Build returns it. A hook error aborts the build; the registry entry made
// for the instance is kept, as the category legitimately belongs to the type.
func (b *Builder) AfterCreate(fn func(*Exception) error) *Builder {
	b.after = fn
	return b
}

// Build validates the collected inputs, runs the registry check for
// (category, type), and produces the immutable exception instance.
//
// Failures are returned in order of detection: a setter failure recorded
// earlier, then validation (unset category or error code), then the
// BeforeCreate hook, then the registry check, then the AfterCreate hook. No
// partial instance is ever returned; the registry is either fully updated or
// left unchanged.
func (b *Builder) Build() (*Exception, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	if b.before != nil {
		if err := b.before(); err != nil {
			return nil, err
		}
	}
	registry := b.registry
	if registry == nil {
		registry = DefaultRegistry()
	}
	if err := registry.CheckAndRegister(b.category, b.typ); err != nil {
		return nil, err
	}
	ex := &Exception{
		typ:      b.typ,
		code:     b.code,
		category: b.category,
		errors:   b.errors,
		baseMsg:  b.baseMsg,
		cause:    b.cause,
	}
	// Snapshot the variables so later mutation of the caller's slice or map
	// cannot reach the instance.
	if len(b.indexed) > 0 {
		ex.indexed = cloneIndexed(b.indexed)
	}
	if len(b.named) > 0 {
		ex.named = cloneNamed(b.named)
	}
	if b.after != nil {
		if err := b.after(ex); err != nil {
			return nil, err
		}
	}
	return ex, nil
}

func (b *Builder) validate() error {
	if b.category == unset {
		return &InvalidArgumentError{Reason: "the category must be provided"}
	}
	if b.code == unset {
		return &InvalidArgumentError{Reason: "the error code must be provided"}
	}
	return nil
}

// fail records the first setter failure; later failures do not overwrite it.
func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}
