package composex

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
)

// Constructor builds a Constructible from a descriptor. A constructor either
// returns a fully-initialized entity or an error, never a partial one. A
// constructor registered for a family tag may resolve sub-kinds carried in
// the descriptor's params, including a documented fallback to a generic
// default; the registry itself never falls back for an unknown top-level tag.
type Constructor func(Descriptor) (Constructible, error)

// Registry maps kind tags to constructors. The mapping is resolved on every
// Create call; nothing is cached.
type Registry struct {
	ctors map[string]Constructor
	log   zerolog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger installs a structured logger. The registry is silent by default.
func WithLogger(l zerolog.Logger) RegistryOption {
	return func(r *Registry) {
		r.log = l
	}
}

// NewRegistry creates an empty factory registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		ctors: make(map[string]Constructor),
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register binds a kind tag to a constructor. Registering an existing kind
// replaces its constructor.
func (r *Registry) Register(kind string, ctor Constructor) error {
	if kind == "" {
		return errors.New("empty kind")
	}
	if ctor == nil {
		return fmt.Errorf("nil constructor for kind %q", kind)
	}
	r.ctors[kind] = ctor
	r.log.Debug().Str("kind", kind).Msg("constructor registered")
	return nil
}

// Create resolves the descriptor's kind and runs its constructor.
// Fails with ErrUnknownKind when no constructor is registered for the tag.
func (r *Registry) Create(desc Descriptor) (Constructible, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	ctor, ok := r.ctors[desc.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %v)", ErrUnknownKind, desc.Kind, r.Kinds())
	}
	c, err := ctor(desc)
	if err != nil {
		return nil, fmt.Errorf("construct %q: %w", desc.Kind, err)
	}
	if c == nil {
		return nil, fmt.Errorf("construct %q: constructor returned nil", desc.Kind)
	}
	r.log.Debug().Str("kind", desc.Kind).Str("name", c.Name()).Msg("constructed")
	return c, nil
}

// Kinds returns all registered kind tags, sorted.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.ctors))
	for k := range r.ctors {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
