package platform

import (
	"github.com/aretw0/formpost/internal/config"
	"github.com/aretw0/formpost/pkg/core"
)

func defaultSettings() settings {
	return settings{
		mapper: core.DefaultConfig(),
		store: config.StoreConfig{
			Kind: config.StoreFS,
			Path: ".",
		},
		log: config.LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// resolve layers the configuration: built-in defaults, then the config
// file and environment (when requested), then the options in order.
func resolve(o *options) (settings, error) {
	s := defaultSettings()

	if o.loadConfig {
		cfg, err := config.Load(o.configPath)
		if err != nil {
			return settings{}, err
		}
		s.mapper = cfg.Mapper.Core()
		s.store = cfg.Store
		s.log = cfg.Log
	}

	for _, fn := range o.edits {
		fn(&s)
	}
	return s, nil
}
