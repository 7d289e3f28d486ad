package primitives

import (
	"errors"
	"fmt"
)

// Effect ordering strings accepted in configuration files.
const (
	OrderPost = "post"
	OrderPre  = "pre"
)

// DescriptorConfig selects and parameterizes the base construction.
type DescriptorConfig struct {
	Kind   string         `json:"kind" yaml:"kind" toml:"kind"`
	Params map[string]any `json:"params,omitempty" yaml:"params,omitempty" toml:"params,omitempty"`
}

// WrapperConfig describes one wrapper in the chain. Effect names a
// registered effect; Order is "post" (default when empty) or "pre".
type WrapperConfig struct {
	Name   string `json:"name" yaml:"name" toml:"name"`
	Order  string `json:"order,omitempty" yaml:"order,omitempty" toml:"order,omitempty"`
	Effect string `json:"effect" yaml:"effect" toml:"effect"`
}

// CompositionConfig is a declarative chain: one base, wrappers inside-out.
// The first wrapper listed is innermost, the last outermost.
type CompositionConfig struct {
	Base     DescriptorConfig `json:"base" yaml:"base" toml:"base"`
	Wrappers []WrapperConfig  `json:"wrappers,omitempty" yaml:"wrappers,omitempty" toml:"wrappers,omitempty"`
}

// NewComposition creates a CompositionConfig with the given base kind.
func NewComposition(kind string) *CompositionConfig {
	return &CompositionConfig{Base: DescriptorConfig{Kind: kind}}
}

// WithParam sets a base construction parameter.
func (c *CompositionConfig) WithParam(key string, value any) *CompositionConfig {
	if c.Base.Params == nil {
		c.Base.Params = make(map[string]any)
	}
	c.Base.Params[key] = value
	return c
}

// AddWrapper appends a wrapper to the chain (outermost last).
func (c *CompositionConfig) AddWrapper(name, order, effect string) *CompositionConfig {
	c.Wrappers = append(c.Wrappers, WrapperConfig{Name: name, Order: order, Effect: effect})
	return c
}

// Validate checks the composition is realizable: a base kind, named
// wrappers with unique names, known order strings, and named effects.
func (c *CompositionConfig) Validate() error {
	if c.Base.Kind == "" {
		return errors.New("composition base kind is required")
	}

	seen := make(map[string]struct{}, len(c.Wrappers))
	for i, w := range c.Wrappers {
		if w.Name == "" {
			return fmt.Errorf("wrapper %d: name is required", i)
		}
		if _, dup := seen[w.Name]; dup {
			return fmt.Errorf("wrapper %d: duplicate name %q", i, w.Name)
		}
		seen[w.Name] = struct{}{}

		switch w.Order {
		case "", OrderPost, OrderPre:
		default:
			return fmt.Errorf("wrapper %q: invalid order %q (want %q or %q)", w.Name, w.Order, OrderPost, OrderPre)
		}

		if w.Effect == "" {
			return fmt.Errorf("wrapper %q: effect is required", w.Name)
		}
	}

	return nil
}
