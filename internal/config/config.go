package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied when neither flags, environment, nor file supply a value.
const (
	DefaultRemote       = "origin"
	DefaultFetchTimeout = 5 * time.Minute
)

// Config is the fully resolved configuration for one invocation. It is built
// exactly once, before the pipeline runs, and treated as immutable afterwards.
type Config struct {
	Path         string
	Remote       string
	Branch       string // empty means "use the repository's current HEAD branch"
	FetchTimeout time.Duration
	Auth         *AuthConfig
}

// Options carries the raw CLI flag values into Resolve. Zero values mean
// "not supplied", letting lower-precedence sources fill them in.
type Options struct {
	Path         string
	Remote       string
	Branch       string
	SSHKey       string
	FetchTimeout string
	EnvFile      string
	ConfigFile   string
}

// fileConfig is the YAML config file schema.
type fileConfig struct {
	Path         string      `yaml:"path"`
	Remote       string      `yaml:"remote"`
	Branch       string      `yaml:"branch,omitempty"`
	FetchTimeout string      `yaml:"fetch_timeout,omitempty"`
	Auth         *AuthConfig `yaml:"auth,omitempty"`
}

// Resolve merges configuration sources in precedence order (flags, process
// environment, .env file, YAML config file, defaults) and validates the result.
func Resolve(opts Options) (*Config, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	var file fileConfig
	if opts.ConfigFile != "" {
		loaded, err := loadConfigFile(opts.ConfigFile)
		if err != nil {
			return nil, err
		}
		file = *loaded
	}

	cfg := &Config{
		Path:   firstNonEmpty(opts.Path, os.Getenv(EnvPath), file.Path),
		Remote: firstNonEmpty(opts.Remote, os.Getenv(EnvRemote), file.Remote, DefaultRemote),
		Branch: firstNonEmpty(opts.Branch, os.Getenv(EnvBranch), file.Branch),
	}

	timeout, err := resolveTimeout(firstNonEmpty(opts.FetchTimeout, os.Getenv(EnvFetchTimeout), file.FetchTimeout))
	if err != nil {
		return nil, err
	}
	cfg.FetchTimeout = timeout

	cfg.Auth = resolveAuth(opts, file.Auth)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadConfigFile reads and unmarshals the YAML config file, expanding
// environment variable references in its content first.
func loadConfigFile(path string) (*fileConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	expanded := os.ExpandEnv(string(data))
	var file fileConfig
	if err := yaml.Unmarshal([]byte(expanded), &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &file, nil
}

// resolveAuth builds the credential configuration, preferring the flag-supplied
// SSH key, then environment credentials, then the config file's auth block.
func resolveAuth(opts Options, fileAuth *AuthConfig) *AuthConfig {
	if opts.SSHKey != "" {
		return &AuthConfig{Type: AuthTypeSSH, KeyPath: opts.SSHKey}
	}
	if key := os.Getenv(EnvSSHKey); key != "" {
		return &AuthConfig{Type: AuthTypeSSH, KeyPath: key}
	}
	if token := os.Getenv(EnvToken); token != "" {
		return &AuthConfig{Type: AuthTypeToken, Token: token}
	}
	if user := os.Getenv(EnvUsername); user != "" {
		return &AuthConfig{Type: AuthTypeBasic, Username: user, Password: os.Getenv(EnvPassword)}
	}
	if !fileAuth.IsZero() {
		return fileAuth
	}
	return nil
}

func resolveTimeout(raw string) (time.Duration, error) {
	if raw == "" {
		return DefaultFetchTimeout, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid fetch timeout %q: %w", raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("fetch timeout must be positive, got %s", d)
	}
	return d, nil
}

func (c *Config) validate() error {
	if c.Path == "" {
		return fmt.Errorf("local repository path is required (flag --path, %s, or config file)", EnvPath)
	}
	if c.Remote == "" {
		return fmt.Errorf("remote name must not be empty")
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
