package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppName names the per-user application directory.
const AppName = "mininotes"

// AppDir returns the per-OS application data directory, e.g.
// ~/.config/mininotes on Linux or %AppData%\mininotes on Windows.
func AppDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}
	return filepath.Join(base, AppName), nil
}

// DefaultDataDir returns the directory notes are stored in when no path is given.
func DefaultDataDir() (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "notes"), nil
}

// DefaultConfigPath returns the location of the YAML configuration file.
func DefaultConfigPath() (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}
