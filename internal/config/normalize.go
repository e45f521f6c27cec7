package config

import "strings"

// normalize expands path fields and backfills empty values with defaults.
func (c *Config) normalize() error {
	defaults := Default()

	c.Paths.ImportDir = strings.TrimSpace(c.Paths.ImportDir)
	c.Paths.SessionDir = strings.TrimSpace(c.Paths.SessionDir)
	c.Paths.LogDir = strings.TrimSpace(c.Paths.LogDir)
	if c.Paths.ImportDir == "" {
		c.Paths.ImportDir = defaults.Paths.ImportDir
	}
	if c.Paths.SessionDir == "" {
		c.Paths.SessionDir = defaults.Paths.SessionDir
	}
	if c.Paths.LogDir == "" {
		c.Paths.LogDir = defaults.Paths.LogDir
	}

	for _, field := range []*string{&c.Paths.ImportDir, &c.Paths.SessionDir, &c.Paths.LogDir} {
		expanded, err := expandPath(*field)
		if err != nil {
			return err
		}
		*field = expanded
	}

	c.Beet.Container = strings.TrimSpace(c.Beet.Container)
	c.Beet.ContainerUser = strings.TrimSpace(c.Beet.ContainerUser)
	if c.Beet.CommandTimeout <= 0 {
		c.Beet.CommandTimeout = defaults.Beet.CommandTimeout
	}

	if c.Plugins.CacheTTLSeconds <= 0 {
		c.Plugins.CacheTTLSeconds = defaults.Plugins.CacheTTLSeconds
	}
	if c.Diff.CharThreshold <= 0 {
		c.Diff.CharThreshold = defaults.Diff.CharThreshold
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Format == "" {
		c.Logging.Format = defaults.Logging.Format
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}

	return nil
}
