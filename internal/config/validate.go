package config

import "fmt"

var validLogFormats = map[string]struct{}{"console": {}, "json": {}}

var validLogLevels = map[string]struct{}{
	"debug": {}, "info": {}, "warn": {}, "error": {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if _, ok := validLogFormats[c.Logging.Format]; !ok {
		return fmt.Errorf("logging.format: unsupported value %q (console or json)", c.Logging.Format)
	}
	if _, ok := validLogLevels[c.Logging.Level]; !ok {
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	if c.Beet.ContainerUser != "" && c.Beet.Container == "" {
		return fmt.Errorf("beet.container_user requires beet.container to be set")
	}
	return nil
}
