package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// EnvConfigPath names an explicit config file
	EnvConfigPath = "SWITCHTRACE_CONFIG"
	// ConfigFileName is looked for in the working directory
	ConfigFileName = "switchtrace.yaml"
	// ConfigDirName is the directory under XDG and /etc
	ConfigDirName = "switchtrace"
)

// SearchPaths lists the places FindConfigPath looks, highest priority first:
// $SWITCHTRACE_CONFIG, ./switchtrace.yaml, $XDG_CONFIG_HOME/switchtrace,
// ~/.config/switchtrace and /etc/switchtrace.
func SearchPaths() []string {
	var paths []string

	if explicit := os.Getenv(EnvConfigPath); explicit != "" {
		paths = append(paths, explicit)
	}

	local := ConfigFileName
	if abs, err := filepath.Abs(local); err == nil {
		local = abs
	}
	paths = append(paths, local)

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, ConfigDirName, "config.yaml"))
	}
	if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", ConfigDirName, "config.yaml"))
	}

	return append(paths, filepath.Join("/etc", ConfigDirName, "config.yaml"))
}

// FindConfigPath returns the first existing file from SearchPaths, or ""
func FindConfigPath() string {
	for _, path := range SearchPaths() {
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// DefaultConfigPath is where `config init` writes when given no path
func DefaultConfigPath() string {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, ConfigDirName, "config.yaml")
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", ConfigDirName, "config.yaml")
	}
	return ConfigFileName
}

// EnsureConfigDir creates the directory holding configPath
func EnsureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0755)
}

// ExpandHome replaces a leading ~ with the user's home directory. Key and
// known_hosts paths are usually written that way.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// expandPaths applies ExpandHome to every file path in the config
func (c *Config) expandPaths() {
	for _, p := range []*string{
		&c.LabPath,
		&c.Credentials.PrivateKeyPath,
		&c.SSH.KnownHostsPath,
		&c.Output.CSVPath,
		&c.Output.DatabasePath,
	} {
		*p = ExpandHome(*p)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
