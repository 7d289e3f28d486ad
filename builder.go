package composex

import "fmt"

// DescriptorBuilder provides a fluent API for assembling a Descriptor. The
// descriptor is only observable through Build, which validates first, so a
// factory never sees a partially-built configuration.
type DescriptorBuilder struct {
	kind   string
	params map[string]any
}

// Describe starts a descriptor for the given kind.
func Describe(kind string) *DescriptorBuilder {
	return &DescriptorBuilder{kind: kind, params: make(map[string]any)}
}

// Param sets a single named parameter.
func (b *DescriptorBuilder) Param(key string, value any) *DescriptorBuilder {
	b.params[key] = value
	return b
}

// Params merges a parameter map into the builder.
func (b *DescriptorBuilder) Params(m map[string]any) *DescriptorBuilder {
	for k, v := range m {
		b.params[k] = v
	}
	return b
}

// Build validates and yields the immutable Descriptor.
func (b *DescriptorBuilder) Build() (Descriptor, error) {
	d := NewDescriptor(b.kind, b.params)
	if err := d.Validate(); err != nil {
		return Descriptor{}, err
	}
	return d, nil
}

// ChainBuilder provides a fluent API for composing a wrapper chain around
// one base. Wrappers are applied inside-out in the order added, so the last
// added wrapper is outermost.
type ChainBuilder struct {
	base  Constructible
	specs []wrapperSpec
}

type wrapperSpec struct {
	name   string
	order  EffectOrder
	effect Effect
}

// NewChain starts a chain on the given base.
func NewChain(base Constructible) *ChainBuilder {
	return &ChainBuilder{base: base}
}

// Post adds a post-effect wrapper (inner first, effect after).
func (b *ChainBuilder) Post(name string, effect Effect) *ChainBuilder {
	b.specs = append(b.specs, wrapperSpec{name: name, order: PostEffect, effect: effect})
	return b
}

// Pre adds a pre-effect wrapper (effect first, then inner).
func (b *ChainBuilder) Pre(name string, effect Effect) *ChainBuilder {
	b.specs = append(b.specs, wrapperSpec{name: name, order: PreEffect, effect: effect})
	return b
}

// Build validates the composition and constructs the chain, returning the
// outermost entity. A chain with no wrappers yields the base itself.
func (b *ChainBuilder) Build() (Constructible, error) {
	if b.base == nil {
		return nil, fmt.Errorf("%w: chain has no base", ErrInvalidComposition)
	}
	cur := b.base
	for _, spec := range b.specs {
		w, err := Wrap(cur, spec.name, spec.order, spec.effect)
		if err != nil {
			return nil, err
		}
		cur = w
	}
	return cur, nil
}

// MustBuild is Build for static compositions known to be valid.
func (b *ChainBuilder) MustBuild() Constructible {
	c, err := b.Build()
	if err != nil {
		panic(err)
	}
	return c
}
