// Package osutil resolves the application directory through a swappable
// provider so tests never touch the real user configuration.
package osutil

import (
	"os"
	"path/filepath"
)

const (
	// AppName is the name of the application directory
	AppName = "timelog"
	// HomeEnv overrides the application directory when set
	HomeEnv = "TIMELOG_HOME"
)

// PathProvider abstracts OS-level operations for path resolution.
type PathProvider interface {
	UserConfigDir() (string, error)
	MkdirAll(path string, perm os.FileMode) error
	Getenv(key string) string
}

// DefaultPathProvider uses real OS functions.
type DefaultPathProvider struct{}

// UserConfigDir returns the default root directory for user-specific configuration data.
func (DefaultPathProvider) UserConfigDir() (string, error) {
	return os.UserConfigDir()
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (DefaultPathProvider) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Getenv returns the value of the environment variable key.
func (DefaultPathProvider) Getenv(key string) string {
	return os.Getenv(key)
}

// Provider is the package-level path provider instance.
// In production, this is DefaultPathProvider. Tests can replace it.
var Provider PathProvider = DefaultPathProvider{}

// SetProvider sets a custom provider (for testing).
func SetProvider(p PathProvider) {
	Provider = p
}

// ResetProvider resets to the default provider.
func ResetProvider() {
	Provider = DefaultPathProvider{}
}

// AppDir returns the directory holding the time log and config file:
// $TIMELOG_HOME if set, otherwise <user config dir>/timelog.
// Creates the directory if it doesn't exist.
func AppDir() (string, error) {
	dir := Provider.Getenv(HomeEnv)
	if dir == "" {
		configDir, err := Provider.UserConfigDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(configDir, AppName)
	}

	if err := Provider.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
