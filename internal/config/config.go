// Package config provides configuration management for switchtrace.
//
// Config file locations (priority order):
//  1. $SWITCHTRACE_CONFIG
//  2. ./switchtrace.yaml
//  3. ~/.config/switchtrace/config.yaml
//  4. /etc/switchtrace/config.yaml
//
// Secrets can stay out of the file: SWITCHTRACE_USERNAME,
// SWITCHTRACE_PASSWORD and SWITCHTRACE_ENABLE_SECRET override it.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"switchtrace/internal/domain"
	"switchtrace/internal/logging"
)

// Environment overrides for credentials
const (
	EnvUsername     = "SWITCHTRACE_USERNAME"
	EnvPassword     = "SWITCHTRACE_PASSWORD"
	EnvEnableSecret = "SWITCHTRACE_ENABLE_SECRET"
)

var (
	ErrNoEntryDevice  = errors.New("entry_device is required")
	ErrNoUsername     = errors.New("credentials.username is required")
	ErrNoAuthMethod   = errors.New("credentials need a password or a private_key_path")
	ErrInvalidSSHPort = errors.New("ssh.port must be between 1 and 65535")
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		cfg := DefaultConfig()
		cfg.applyEnv()
		return cfg, "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.expandPaths()
	cfg.applyEnv()

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	return &Config{
		Version:     1,
		EntryDevice: "192.168.1.1",
		Credentials: CredentialsConfig{Username: "cisco"},
		SSH: SSHConfig{
			Port:           22,
			ConnectTimeout: Duration(10 * time.Second),
			CommandTimeout: Duration(30 * time.Second),
		},
		Output: OutputConfig{
			CSVPath:      "./switchtrace_results.csv",
			DatabasePath: "./switchtrace.db",
		},
		Logging: logging.DefaultConfig(),
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Version == 0 {
		c.Version = defaults.Version
	}
	if c.SSH.Port == 0 {
		c.SSH.Port = defaults.SSH.Port
	}
	if c.SSH.ConnectTimeout == 0 {
		c.SSH.ConnectTimeout = defaults.SSH.ConnectTimeout
	}
	if c.SSH.CommandTimeout == 0 {
		c.SSH.CommandTimeout = defaults.SSH.CommandTimeout
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
	if c.Logging.Output == "" {
		c.Logging.Output = defaults.Logging.Output
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaults.Logging.Format
	}
}

// applyEnv lets the environment override credentials
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvUsername); v != "" {
		c.Credentials.Username = v
	}
	if v := os.Getenv(EnvPassword); v != "" {
		c.Credentials.Password = v
	}
	if v := os.Getenv(EnvEnableSecret); v != "" {
		c.Credentials.EnableSecret = v
	}
}

// Validate checks the settings needed before any device is contacted.
// A lab run needs no credentials.
func (c *Config) Validate() error {
	var errs []error

	if c.EntryDevice == "" {
		errs = append(errs, ErrNoEntryDevice)
	}

	if c.LabPath == "" {
		if c.Credentials.Username == "" {
			errs = append(errs, ErrNoUsername)
		}
		if c.Credentials.Password == "" && c.Credentials.PrivateKeyPath == "" {
			errs = append(errs, ErrNoAuthMethod)
		}
		if c.SSH.Port < 1 || c.SSH.Port > 65535 {
			errs = append(errs, ErrInvalidSSHPort)
		}
	}

	return errors.Join(errs...)
}

// Entry returns the entry device address
func (c *Config) Entry() domain.DeviceAddress {
	return domain.DeviceAddress(c.EntryDevice)
}

// DomainCredentials converts the credential section for the transport
func (c *Config) DomainCredentials() domain.Credentials {
	return domain.Credentials{
		Username:             c.Credentials.Username,
		Password:             c.Credentials.Password,
		EnableSecret:         c.Credentials.EnableSecret,
		PrivateKeyPath:       c.Credentials.PrivateKeyPath,
		PrivateKeyPassphrase: c.Credentials.PrivateKeyPassphrase,
	}
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	mode := "ssh"
	if c.LabPath != "" {
		mode = "lab:" + c.LabPath
	}

	summary := fmt.Sprintf("Entry device: %s, transport: %s\n", c.EntryDevice, mode)
	summary += fmt.Sprintf("Timeouts: connect %s, command %s\n",
		c.SSH.ConnectTimeout.Duration(), c.SSH.CommandTimeout.Duration())
	summary += fmt.Sprintf("Results: csv=%q db=%q", c.Output.CSVPath, c.Output.DatabasePath)

	return summary
}
