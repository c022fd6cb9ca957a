package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xolan/timelog/internal/osutil"
	"github.com/xolan/timelog/internal/timeutil"
)

// Helper to create a temporary config file
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))
	return tmpFile
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "02:00", cfg.VirtualMidnight)
	assert.Equal(t, 8.0, cfg.Hours)
	assert.Equal(t, "Local", cfg.Timezone)
	assert.Equal(t, 500, cfg.HistorySize)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.False(t, cfg.EmailHeaders)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_ValidConfig(t *testing.T) {
	tmpFile := createTempConfigFile(t, `timelog_file = "/tmp/work.txt"
virtual_midnight = "03:30"
hours = 7.5
timezone = "Europe/London"
name = "  Ada  "
sender = "ada@example.com"
recipient = "team@example.com"
email_headers = true
theme = "Dracula"
history_size = 50
log_level = "DEBUG"`)

	cfg, err := Load(tmpFile)
	require.NoError(t, err)

	assert.Equal(t, Config{
		TimelogFile:     "/tmp/work.txt",
		VirtualMidnight: "03:30",
		Hours:           7.5,
		Timezone:        "Europe/London",
		Name:            "Ada",
		Sender:          "ada@example.com",
		Recipient:       "team@example.com",
		EmailHeaders:    true,
		Theme:           "dracula",
		HistorySize:     50,
		LogLevel:        "debug",
	}, cfg)

	vm, err := cfg.Midnight()
	require.NoError(t, err)
	assert.Equal(t, timeutil.VirtualMidnight{Hour: 3, Minute: 30}, vm)
	assert.Equal(t, 7*time.Hour+30*time.Minute, cfg.DailyTarget())
}

func TestLoad_PartialConfigMergesDefaults(t *testing.T) {
	tmpFile := createTempConfigFile(t, `hours = 6.0`)

	cfg, err := Load(tmpFile)
	require.NoError(t, err)

	want := DefaultConfig()
	want.Hours = 6
	assert.Equal(t, want, cfg)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(createTempConfigFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does_not_exist.toml"))

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_InvalidTOML(t *testing.T) {
	tests := []struct {
		name          string
		configContent string
	}{
		{name: "malformed TOML", configContent: `virtual_midnight = "02:00`},
		{name: "invalid syntax", configContent: `this is not valid TOML at all`},
		{name: "missing quotes", configContent: `virtual_midnight = 02:00`},
		{name: "wrong type", configContent: `hours = "eight"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(createTempConfigFile(t, tt.configContent))

			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Contains(t, err.Error(), "failed to parse config file")
		})
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name          string
		configContent string
		key           string
	}{
		{name: "virtual midnight garbage", configContent: `virtual_midnight = "noon"`, key: "virtual_midnight"},
		{name: "virtual midnight hour", configContent: `virtual_midnight = "25:00"`, key: "virtual_midnight"},
		{name: "empty virtual midnight", configContent: `virtual_midnight = ""`, key: "virtual_midnight"},
		{name: "timezone", configContent: `timezone = "Mars/Olympus"`, key: "timezone"},
		{name: "negative hours", configContent: `hours = -1.0`, key: "hours"},
		{name: "too many hours", configContent: `hours = 25.0`, key: "hours"},
		{name: "negative history", configContent: `history_size = -3`, key: "history_size"},
		{name: "log level", configContent: `log_level = "verbose"`, key: "log_level"},
		{name: "unknown key", configContent: `virtual_midnite = "02:00"`, key: "virtual_midnite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(createTempConfigFile(t, tt.configContent))

			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.key, cfgErr.Key)
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "does_not_exist.toml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("existing valid file", func(t *testing.T) {
		cfg, err := LoadOrDefault(createTempConfigFile(t, `virtual_midnight = "04:00"`))
		require.NoError(t, err)
		assert.Equal(t, "04:00", cfg.VirtualMidnight)
	})

	t.Run("existing invalid file", func(t *testing.T) {
		_, err := LoadOrDefault(createTempConfigFile(t, `hours = 99.0`))
		assert.Error(t, err, "an invalid file must not silently fall back to defaults")
	})
}

func TestLocation(t *testing.T) {
	for _, tz := range []string{"", "Local"} {
		loc, err := Config{Timezone: tz}.Location()
		require.NoError(t, err)
		assert.Equal(t, time.Local, loc)
	}

	loc, err := Config{Timezone: "UTC"}.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestLevel(t *testing.T) {
	level, err := Config{}.Level()
	require.NoError(t, err)
	assert.Equal(t, "warn", level)

	level, err = Config{LogLevel: "info"}.Level()
	require.NoError(t, err)
	assert.Equal(t, "info", level)
}

func TestResolveTimelogFile(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name string
		file string
		want string
	}{
		{name: "unset uses default", file: "", want: "/default/timelog.txt"},
		{name: "absolute path", file: "/var/log/work.txt", want: "/var/log/work.txt"},
		{name: "home relative", file: "~/work.txt", want: filepath.Join(home, "work.txt")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Config{TimelogFile: tt.file}.ResolveTimelogFile("/default/timelog.txt")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateSampleConfig(t *testing.T) {
	sample := GenerateSampleConfig()

	var cfg Config
	_, err := toml.Decode(sample, &cfg)
	require.NoError(t, err)
	cfg.Normalize()
	assert.Equal(t, DefaultConfig(), cfg, "sample must decode to the defaults")
}

type tempDirProvider struct {
	dir string
}

func (p tempDirProvider) UserConfigDir() (string, error) { return p.dir, nil }

func (p tempDirProvider) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (p tempDirProvider) Getenv(string) string { return "" }

func TestGetConfigPath(t *testing.T) {
	dir := t.TempDir()
	osutil.SetProvider(tempDirProvider{dir: dir})
	t.Cleanup(osutil.ResetProvider)

	path, err := GetConfigPath()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, osutil.AppName, ConfigFile), path)
	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
