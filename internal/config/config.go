package config

// Config represents the full application configuration.
type Config struct {
	HTTP          HTTPConfig          `yaml:"http"`
	Cache         CacheConfig         `yaml:"cache"`
	Output        OutputConfig        `yaml:"output"`
	Profiles      ProfilesConfig      `yaml:"profiles"`
	Git           GitConfig           `yaml:"git"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// HTTPConfig holds GitHub API client settings.
type HTTPConfig struct {
	Timeout string `yaml:"timeout"`
}

// CacheConfig configures the API response cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	TTL     string `yaml:"ttl"`
}

// OutputConfig configures where generated documents land.
type OutputConfig struct {
	Directory string `yaml:"directory"`
}

// ProfilesConfig configures where redaction profiles are stored.
type ProfilesConfig struct {
	Directory string `yaml:"directory"`
}

// GitConfig configures the local-repository source.
type GitConfig struct {
	RepositoryDir string `yaml:"repositoryDir"`
}

// ObservabilityConfig configures logging.
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures request/response logging.
type LoggingConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Level        string `yaml:"level"`        // debug, info, error
	Format       string `yaml:"format"`       // json, human
	RedactTokens bool   `yaml:"redactTokens"` // Redact API tokens in logs
}
