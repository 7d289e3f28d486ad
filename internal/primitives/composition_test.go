package primitives

import "testing"

func TestCompositionValidate(t *testing.T) {
	cfg := NewComposition("plain").
		WithParam("style", "formal").
		AddWrapper("FancyHat", OrderPost, "fancy-hat").
		AddWrapper("Gate", OrderPre, "greet")

	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid composition, got %v", err)
	}
	if cfg.Base.Params["style"] != "formal" {
		t.Errorf("expected base param set, got %v", cfg.Base.Params)
	}
	if len(cfg.Wrappers) != 2 {
		t.Fatalf("expected 2 wrappers, got %d", len(cfg.Wrappers))
	}
}

func TestCompositionValidateEmptyOrderDefaults(t *testing.T) {
	cfg := NewComposition("plain").AddWrapper("Hat", "", "fancy-hat")
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected empty order to be accepted as post, got %v", err)
	}
}

func TestCompositionValidateRejects(t *testing.T) {
	cases := []struct {
		name string
		cfg  *CompositionConfig
	}{
		{"missing base kind", &CompositionConfig{}},
		{"unnamed wrapper", NewComposition("plain").AddWrapper("", OrderPost, "e")},
		{"duplicate wrapper name", NewComposition("plain").
			AddWrapper("Hat", OrderPost, "e").
			AddWrapper("Hat", OrderPost, "e")},
		{"invalid order", NewComposition("plain").AddWrapper("Hat", "sideways", "e")},
		{"missing effect", NewComposition("plain").AddWrapper("Hat", OrderPost, "")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
