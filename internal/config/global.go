package config

import "sync"

var (
	globalConfig   *Config      //nolint:gochecknoglobals // Singleton pattern for configuration
	globalConfigMu sync.RWMutex //nolint:gochecknoglobals // Protects globalConfig
)

// SetGlobalConfig installs cfg as the process-wide configuration.
func SetGlobalConfig(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// GetGlobalConfig returns the process-wide configuration, or defaults when
// none has been installed.
func GetGlobalConfig() *Config {
	globalConfigMu.RLock()
	cfg := globalConfig
	globalConfigMu.RUnlock()
	if cfg != nil {
		return cfg
	}

	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	if globalConfig == nil {
		globalConfig = New()
	}
	return globalConfig
}

// ResetGlobalConfigForTest clears the process-wide configuration.
func ResetGlobalConfigForTest() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
}
