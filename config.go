package kiln

import "github.com/hakula139/kiln/internal/runtimeconfig"

type (
	Config        = runtimeconfig.Config
	LoggingConfig = runtimeconfig.LoggingConfig
)

// DefaultConfig returns a configuration with working defaults.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads and validates a TOML configuration file.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.Load(path)
}
