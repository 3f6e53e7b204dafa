// Package paths provides directory paths for ridgeline.
//
// Directory priority order for content lookups (first found wins):
//  1. ./.config/ridgeline/content (local project override)
//  2. ~/.config/ridgeline/content (user override)
//  3. the content embedded in the binary
//
// Logs are written under the data directory, ~/.local/share/ridgeline.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "ridgeline"

// DataDir returns the data directory for ridgeline.
//
// Unix: $XDG_DATA_HOME/ridgeline or ~/.local/share/ridgeline
// Windows: %LOCALAPPDATA%\ridgeline
func DataDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(localAppData(), appName)
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", appName)
}

// ConfigDir returns the config directory for ridgeline.
//
// Unix: $XDG_CONFIG_HOME/ridgeline or ~/.config/ridgeline
// Windows: %LOCALAPPDATA%\ridgeline
func ConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(localAppData(), appName)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// ConfigFile returns the path to the main config file.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// LogFile returns the log file used while the interactive shell owns the
// terminal.
func LogFile() string {
	return filepath.Join(DataDir(), "logs", appName+".log")
}

// LocalConfigDir returns the local project config directory
// (./.config/ridgeline). Returns empty string on Windows or without a
// working directory.
func LocalConfigDir() string {
	if runtime.GOOS == "windows" {
		return ""
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(wd, ".config", appName)
}

// ContentDirs returns existing content override directories in lookup
// priority order.
func ContentDirs() []string {
	var dirs []string
	check := func(base string) {
		if base == "" {
			return
		}
		dir := filepath.Join(base, "content")
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}

	check(LocalConfigDir())
	check(ConfigDir())

	return dirs
}

// ContentDir returns the highest priority content override directory, or
// empty string when the embedded content should be used.
func ContentDir() string {
	if dirs := ContentDirs(); len(dirs) > 0 {
		return dirs[0]
	}
	return ""
}

func localAppData() string {
	dir := os.Getenv("LOCALAPPDATA")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, "AppData", "Local")
	}
	return dir
}
