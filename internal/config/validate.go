package config

import (
	"fmt"
	"strings"
)

// Validate checks the loaded configuration. Load calls it automatically.
func (c *Config) Validate() error {
	switch c.Store.Kind {
	case StoreFS:
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for the fs store")
		}
	case StorePostgres:
		if c.Store.DSN == "" {
			return fmt.Errorf("store.dsn is required for the postgres store")
		}
	default:
		return fmt.Errorf("store.kind must be %q or %q (got %q)", StoreFS, StorePostgres, c.Store.Kind)
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json (got %q)", c.Log.Format)
	}

	if strings.TrimSpace(c.Mapper.TitleName) == "" {
		return fmt.Errorf("mapper.title_name must not be empty")
	}
	if strings.TrimSpace(c.Mapper.ContentName) == "" {
		return fmt.Errorf("mapper.content_name must not be empty")
	}
	return nil
}
