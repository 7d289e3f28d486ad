package composex

import "errors"

// Descriptor selects and configures a construction: an opaque kind tag plus
// optional named parameters. Descriptors are immutable once built; the
// parameter map is copied on the way in and on the way out.
type Descriptor struct {
	Kind   string         `json:"kind" yaml:"kind" toml:"kind"`
	Params map[string]any `json:"params,omitempty" yaml:"params,omitempty" toml:"params,omitempty"`
}

// NewDescriptor creates a Descriptor, defensively copying params.
func NewDescriptor(kind string, params map[string]any) Descriptor {
	return Descriptor{Kind: kind, Params: copyParams(params)}
}

// Validate checks the descriptor is usable for construction.
func (d Descriptor) Validate() error {
	if d.Kind == "" {
		return errors.New("descriptor kind is required")
	}
	return nil
}

// Param retrieves a named parameter.
func (d Descriptor) Param(key string) (any, bool) {
	v, ok := d.Params[key]
	return v, ok
}

// StringParam retrieves a named parameter as a string.
func (d Descriptor) StringParam(key string) (string, bool) {
	s, ok := d.Params[key].(string)
	return s, ok
}

// IntParam retrieves a named parameter as an int. YAML and JSON decoders
// produce differing numeric types, so common widths are normalized.
func (d Descriptor) IntParam(key string) (int, bool) {
	switch v := d.Params[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// BoolParam retrieves a named parameter as a bool.
func (d Descriptor) BoolParam(key string) (bool, bool) {
	b, ok := d.Params[key].(bool)
	return b, ok
}

// ParamsCopy returns a snapshot copy of all parameters. Modifications to the
// returned map do not affect the descriptor.
func (d Descriptor) ParamsCopy() map[string]any {
	return copyParams(d.Params)
}

func copyParams(params map[string]any) map[string]any {
	if params == nil {
		return nil
	}
	cp := make(map[string]any, len(params))
	for k, v := range params {
		cp[k] = v
	}
	return cp
}
