package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Directory names under the user's config/data roots
const (
	appDirName     = "coteditor-terminal"
	profilesFile   = "profiles"
	transcriptsDir = "transcripts"
)

// ProfileExtensions lists the profile file extensions the loader accepts,
// in discovery order.
var ProfileExtensions = []string{".yaml", ".yml", ".toml"}

// ConfigDir returns the engine's configuration directory
// ($XDG_CONFIG_HOME/coteditor-terminal, falling back to ~/.config).
func ConfigDir() string {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, appDirName)
	}
	return filepath.Join(homeDir(), ".config", appDirName)
}

// DataDir returns the engine's data directory
// ($XDG_DATA_HOME/coteditor-terminal, falling back to ~/.local/share).
func DataDir() string {
	if base := os.Getenv("XDG_DATA_HOME"); base != "" {
		return filepath.Join(base, appDirName)
	}
	return filepath.Join(homeDir(), ".local", "share", appDirName)
}

// TranscriptDir returns the default directory for session transcripts.
func TranscriptDir() string {
	return filepath.Join(DataDir(), transcriptsDir)
}

// DefaultProfilesPath returns the first profiles file that exists under
// ConfigDir, or "" when none does.
func DefaultProfilesPath() string {
	for _, ext := range ProfileExtensions {
		p := filepath.Join(ConfigDir(), profilesFile+ext)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// DefaultWorkingDir returns the directory new sessions start in when the
// caller gives none: the user's home, or the process cwd as a last resort.
func DefaultWorkingDir() string {
	if home := homeDir(); home != "" {
		return home
	}
	if cwd, err := os.Getwd(); err == nil {
		return cwd
	}
	return "/"
}

// Expand resolves a leading "~" or "~/" to the user's home directory.
// Other paths are returned unchanged.
func Expand(path string) string {
	if path == "~" {
		return homeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}

// EnsureDir creates dir (and parents) if it does not exist.
func EnsureDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("directory path cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return os.Getenv("HOME")
}
