package composex

import (
	"context"
	"fmt"
)

// EffectOrder fixes when a wrapper's own effect runs relative to the inner
// invocation. The order is set at construction and never changes; chain
// composition order is observable, so the policy of each wrapper type must
// be stated, not inferred.
type EffectOrder int

const (
	// PostEffect delegates inward first; the wrapper's effect runs on the
	// inner result after the inner call returns. This is the default.
	PostEffect EffectOrder = iota

	// PreEffect runs the wrapper's effect on the input first, then delegates
	// the (possibly transformed) value inward.
	PreEffect
)

func (o EffectOrder) String() string {
	switch o {
	case PostEffect:
		return "post"
	case PreEffect:
		return "pre"
	default:
		return fmt.Sprintf("EffectOrder(%d)", int(o))
	}
}

// Effect is a wrapper's contribution: value in, value out. Keeping the shape
// identical to the invocation signature is what lets chains compose to
// arbitrary depth.
type Effect func(ctx context.Context, value any) (any, error)

// Wrapper decorates exactly one inner behavior. The inner reference is fixed
// at construction, so chains are strictly nested and cycle-free. A Wrapper
// is itself a Constructible and can be wrapped again.
type Wrapper struct {
	name   string
	order  EffectOrder
	effect Effect
	inner  Constructible
}

// Wrap composes a new wrapper around inner. Fails with ErrInvalidComposition
// for a nil inner or nil effect; a chain that cannot be formed is rejected
// at wrap time, not at invocation time.
func Wrap(inner Constructible, name string, order EffectOrder, effect Effect) (*Wrapper, error) {
	if inner == nil {
		return nil, fmt.Errorf("%w: wrapper %q has no inner behavior", ErrInvalidComposition, name)
	}
	if effect == nil {
		return nil, fmt.Errorf("%w: wrapper %q has no effect", ErrInvalidComposition, name)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: wrapper name is required", ErrInvalidComposition)
	}
	return &Wrapper{name: name, order: order, effect: effect, inner: inner}, nil
}

// Name returns the wrapper's own identity, not the chain's.
func (w *Wrapper) Name() string { return w.name }

// Order returns the wrapper's effect ordering policy.
func (w *Wrapper) Order() EffectOrder { return w.order }

// Inner returns the directly wrapped entity.
func (w *Wrapper) Inner() Constructible { return w.inner }

// Invoke runs the chain. Post-effect: inner first, then this wrapper's
// effect on the inner result. Pre-effect: this wrapper's effect on the
// input, then inner. Errors stop the chain where they occur.
func (w *Wrapper) Invoke(ctx context.Context, input any) (any, error) {
	switch w.order {
	case PreEffect:
		v, err := w.effect(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("wrapper %q: %w", w.name, err)
		}
		return w.inner.Invoke(ctx, v)
	default:
		out, err := w.inner.Invoke(ctx, input)
		if err != nil {
			return nil, err
		}
		v, err := w.effect(ctx, out)
		if err != nil {
			return nil, fmt.Errorf("wrapper %q: %w", w.name, err)
		}
		return v, nil
	}
}

// Base walks the chain to its terminal Constructible. Every chain terminates
// in exactly one base.
func (w *Wrapper) Base() Constructible {
	inner := w.inner
	for {
		next, ok := inner.(*Wrapper)
		if !ok {
			return inner
		}
		inner = next.inner
	}
}

// Depth returns the number of wrappers around the base.
func (w *Wrapper) Depth() int {
	depth := 1
	inner := w.inner
	for {
		next, ok := inner.(*Wrapper)
		if !ok {
			return depth
		}
		depth++
		inner = next.inner
	}
}

// Describe lists chain identities outermost-in, ending with the base.
func (w *Wrapper) Describe() []string {
	names := []string{w.name}
	inner := w.inner
	for {
		next, ok := inner.(*Wrapper)
		if !ok {
			return append(names, inner.Name())
		}
		names = append(names, next.name)
		inner = next.inner
	}
}
