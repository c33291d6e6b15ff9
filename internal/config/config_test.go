package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"switchtrace/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, 22, cfg.SSH.Port)
	assert.Equal(t, 10*time.Second, cfg.SSH.ConnectTimeout.Duration())
	assert.Equal(t, 30*time.Second, cfg.SSH.CommandTimeout.Duration())
	assert.NotEmpty(t, cfg.Output.CSVPath)
	assert.NotEmpty(t, cfg.Output.DatabasePath)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestSaveAndLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.EntryDevice = "10.0.0.1"
	cfg.Credentials.Password = "secret"
	cfg.SSH.CommandTimeout = Duration(45 * time.Second)
	cfg.Output.DatabasePath = ""

	require.NoError(t, cfg.Save(configPath))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "config may hold credentials")

	loaded, path, err := LoadFromPath(configPath)
	require.NoError(t, err)
	assert.Equal(t, configPath, path)
	assert.Equal(t, "10.0.0.1", loaded.EntryDevice)
	assert.Equal(t, "secret", loaded.Credentials.Password)
	assert.Equal(t, 45*time.Second, loaded.SSH.CommandTimeout.Duration())
	assert.Empty(t, loaded.Output.DatabasePath)
}

func TestLoadFromPathAppliesDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
entry_device: 192.168.1.1
credentials:
  username: netops
ssh:
  connect_timeout: 3s
`), 0600))

	cfg, _, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, 22, cfg.SSH.Port)
	assert.Equal(t, 3*time.Second, cfg.SSH.ConnectTimeout.Duration())
	assert.Equal(t, 30*time.Second, cfg.SSH.CommandTimeout.Duration())
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadFromPathErrors(t *testing.T) {
	_, _, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("ssh:\n  connect_timeout: soon\n"), 0600))
	_, _, err = LoadFromPath(bad)
	assert.Error(t, err)
}

func TestEnvironmentOverridesCredentials(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
entry_device: 192.168.1.1
credentials:
  username: cisco
  password: from-file
`), 0600))

	t.Setenv(EnvPassword, "from-env")
	t.Setenv(EnvEnableSecret, "enable-env")

	cfg, _, err := LoadFromPath(configPath)
	require.NoError(t, err)

	creds := cfg.DomainCredentials()
	assert.Equal(t, "cisco", creds.Username)
	assert.Equal(t, "from-env", creds.Password)
	assert.Equal(t, "enable-env", creds.EnableSecret)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr []error
	}{
		{
			name:   "valid password login",
			mutate: func(c *Config) { c.Credentials.Password = "pw" },
		},
		{
			name:   "valid key login",
			mutate: func(c *Config) { c.Credentials.PrivateKeyPath = "/tmp/id_ed25519" },
		},
		{
			name:    "missing entry device",
			mutate:  func(c *Config) { c.EntryDevice = ""; c.Credentials.Password = "pw" },
			wantErr: []error{ErrNoEntryDevice},
		},
		{
			name:    "missing auth",
			mutate:  func(c *Config) {},
			wantErr: []error{ErrNoAuthMethod},
		},
		{
			name: "several problems reported together",
			mutate: func(c *Config) {
				c.Credentials.Username = ""
				c.SSH.Port = 70000
			},
			wantErr: []error{ErrNoUsername, ErrNoAuthMethod, ErrInvalidSSHPort},
		},
		{
			name:   "lab needs no credentials",
			mutate: func(c *Config) { c.LabPath = "lab.yaml"; c.Credentials.Username = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			for _, want := range tt.wantErr {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestFindConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)
	require.NoError(t, DefaultConfig().Save(configPath))

	chdir(t, tmpDir)
	t.Setenv("XDG_CONFIG_HOME", "")

	// Should find config in working directory
	assert.NotEmpty(t, FindConfigPath())

	// Explicit path doesn't exist, should fall back
	t.Setenv(EnvConfigPath, "/nonexistent/path.yaml")
	assert.NotEmpty(t, FindConfigPath())

	// Explicit path wins when it exists
	explicit := filepath.Join(t.TempDir(), "explicit.yaml")
	require.NoError(t, DefaultConfig().Save(explicit))
	t.Setenv(EnvConfigPath, explicit)
	assert.Equal(t, explicit, FindConfigPath())
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", ConfigDirName, "config.yaml"), DefaultConfigPath())
}

func TestDuration(t *testing.T) {
	d := Duration(5 * time.Minute)
	assert.Equal(t, 5*time.Minute, d.Duration())

	marshaled, err := d.MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, "5m0s", marshaled)
}

func TestConfigHelpers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EntryDevice = "10.0.0.1"

	assert.Equal(t, domain.DeviceAddress("10.0.0.1"), cfg.Entry())
	assert.Contains(t, cfg.Summary(), "10.0.0.1")
	assert.Contains(t, cfg.Summary(), "ssh")

	cfg.LabPath = "lab.yaml"
	assert.Contains(t, cfg.Summary(), "lab:lab.yaml")
}

func TestSearchPathsOrder(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv(EnvConfigPath, "/explicit/switchtrace.yaml")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	t.Setenv("HOME", "/home/netops")

	paths := SearchPaths()
	require.Len(t, paths, 5)
	assert.Equal(t, "/explicit/switchtrace.yaml", paths[0])
	assert.Equal(t, ConfigFileName, filepath.Base(paths[1]))
	assert.True(t, filepath.IsAbs(paths[1]))
	assert.Equal(t, filepath.Join("/xdg", ConfigDirName, "config.yaml"), paths[2])
	assert.Equal(t, filepath.Join("/home/netops", ".config", ConfigDirName, "config.yaml"), paths[3])
	assert.Equal(t, filepath.Join("/etc", ConfigDirName, "config.yaml"), paths[4])
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, ".ssh", "id_ed25519"), ExpandHome("~/.ssh/id_ed25519"))
	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, "/abs/key", ExpandHome("/abs/key"))
	assert.Equal(t, "~other/key", ExpandHome("~other/key"))
}

func TestLoadFromPathExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
entry_device: 10.0.0.1
credentials:
  username: netops
  private_key_path: ~/.ssh/id_ed25519
ssh:
  known_hosts_path: ~/.ssh/known_hosts
output:
  csv_path: ./results.csv
  database_path: ~/switchtrace.db
`), 0600))

	cfg, _, err := LoadFromPath(configPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".ssh", "id_ed25519"), cfg.Credentials.PrivateKeyPath)
	assert.Equal(t, filepath.Join(home, ".ssh", "known_hosts"), cfg.SSH.KnownHostsPath)
	assert.Equal(t, filepath.Join(home, "switchtrace.db"), cfg.Output.DatabasePath)
	assert.Equal(t, "./results.csv", cfg.Output.CSVPath)
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
