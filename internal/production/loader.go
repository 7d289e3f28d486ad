// Package production provides production integrations for composex:
// composition loading, subject persistence, and logging/metrics listeners.
package production

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/comalice/composex"
	"github.com/comalice/composex/internal/primitives"
)

// LoadComposition reads a composition config file based on its extension.
// Supports: .yaml/.yml, .json, .toml. The config is validated before return.
func LoadComposition(path string) (primitives.CompositionConfig, error) {
	var cfg primitives.CompositionConfig
	if path == "" {
		return cfg, fmt.Errorf("empty composition path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("yaml unmarshal %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("json unmarshal %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("toml unmarshal %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported composition extension: %s", ext)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validate %s: %w", path, err)
	}
	return cfg, nil
}

// BuildComposition realizes a validated config into a live chain: the base
// is created through the registry, then wrapped inside-out with effects
// resolved from the provided table. An effect name with no entry fails at
// build time, not at invocation time.
func BuildComposition(reg *composex.Registry, cfg primitives.CompositionConfig, effects map[string]composex.Effect) (composex.Constructible, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base, err := reg.Create(composex.NewDescriptor(cfg.Base.Kind, cfg.Base.Params))
	if err != nil {
		return nil, err
	}

	chain := composex.NewChain(base)
	for _, w := range cfg.Wrappers {
		effect, ok := effects[w.Effect]
		if !ok {
			return nil, fmt.Errorf("wrapper %q: no effect named %q", w.Name, w.Effect)
		}
		if w.Order == primitives.OrderPre {
			chain.Pre(w.Name, effect)
		} else {
			chain.Post(w.Name, effect)
		}
	}
	return chain.Build()
}
