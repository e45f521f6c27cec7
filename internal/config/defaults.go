package config

const (
	defaultImportDir       = "~/import"
	defaultSessionDir      = "~/.local/share/beetbridge"
	defaultLogDir          = "~/.local/share/beetbridge/logs"
	defaultCommandTimeout  = 300
	defaultPluginsCacheTTL = 300
	defaultDiffThreshold   = 40
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ImportDir:  defaultImportDir,
			SessionDir: defaultSessionDir,
			LogDir:     defaultLogDir,
		},
		Beet: Beet{
			CommandTimeout: defaultCommandTimeout,
		},
		Plugins: Plugins{
			CacheTTLSeconds: defaultPluginsCacheTTL,
		},
		Diff: Diff{
			CharThreshold: defaultDiffThreshold,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
