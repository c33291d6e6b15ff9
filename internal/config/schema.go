package config

import (
	"time"

	"switchtrace/internal/logging"
)

// Config is the root configuration structure
type Config struct {
	Version int `yaml:"version"`
	// EntryDevice is the gateway whose ARP table starts every search
	EntryDevice string            `yaml:"entry_device"`
	Credentials CredentialsConfig `yaml:"credentials"`
	SSH         SSHConfig         `yaml:"ssh"`
	Output      OutputConfig      `yaml:"output"`
	Logging     logging.Config    `yaml:"logging"`
	// LabPath points at a simulated topology; when set no SSH session is opened
	LabPath string `yaml:"lab_path,omitempty"`
}

// CredentialsConfig holds device login settings. Password and enable secret
// may be left empty here and supplied through the environment.
type CredentialsConfig struct {
	Username             string `yaml:"username"`
	Password             string `yaml:"password,omitempty"`
	EnableSecret         string `yaml:"enable_secret,omitempty"`
	PrivateKeyPath       string `yaml:"private_key_path,omitempty"`
	PrivateKeyPassphrase string `yaml:"private_key_passphrase,omitempty"`
}

// SSHConfig holds transport settings
type SSHConfig struct {
	Port           int      `yaml:"port"`
	ConnectTimeout Duration `yaml:"connect_timeout"`
	CommandTimeout Duration `yaml:"command_timeout"`
	// KnownHostsPath enables host key checking; empty accepts any key
	KnownHostsPath string `yaml:"known_hosts_path,omitempty"`
	// Preflight runs an nmap scan of the SSH port before each login
	Preflight bool `yaml:"preflight"`
}

// OutputConfig holds result sink settings
type OutputConfig struct {
	// CSVPath is the flat results table; empty disables it
	CSVPath string `yaml:"csv_path"`
	// DatabasePath is the SQLite history; empty disables it
	DatabasePath string `yaml:"database_path"`
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
