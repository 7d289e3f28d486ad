package main

import (
	"context"
	"fmt"

	"github.com/comalice/composex"
)

// butlerFor builds a butler whose serving style differs only by name;
// behavior variants are data, not types.
func butlerFor(name string) composex.Constructible {
	return composex.NewConstructible(name, func(ctx context.Context, input any) (any, error) {
		return fmt.Sprintf("%s serves %v", name, input), nil
	})
}

// registerButlers populates the demo registry. The "butler" family
// constructor resolves a "style" parameter to a concrete butler and falls
// back to the plain one for unrecognized styles; that fallback applies only
// within the family — an unknown top-level kind still fails.
func registerButlers(reg *composex.Registry) error {
	styles := map[string]string{
		"plain":   "PlainButler",
		"french":  "FrenchButler",
		"italian": "ItalianButler",
	}

	for kind, name := range styles {
		name := name
		if err := reg.Register(kind, func(d composex.Descriptor) (composex.Constructible, error) {
			return butlerFor(name), nil
		}); err != nil {
			return err
		}
	}

	return reg.Register("butler", func(d composex.Descriptor) (composex.Constructible, error) {
		style, _ := d.StringParam("style")
		name, ok := styles[style]
		if !ok {
			name = styles["plain"]
		}
		return butlerFor(name), nil
	})
}

// demoEffects is the effect table for composition files and the built-in
// scenario. Hat effects are post-order; the greeting is pre-order.
func demoEffects() map[string]composex.Effect {
	return map[string]composex.Effect{
		"fancy-hat": func(ctx context.Context, value any) (any, error) {
			return fmt.Sprintf("%v, wearing a fancy hat", value), nil
		},
		"chef-hat": func(ctx context.Context, value any) (any, error) {
			return fmt.Sprintf("%v, topped with a chef hat", value), nil
		},
		"greet": func(ctx context.Context, value any) (any, error) {
			return fmt.Sprintf("(after a deep bow) %v", value), nil
		},
	}
}
