// Package paths resolves configuration and model directory locations.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appDirName names the per-user configuration directory.
const appDirName = "voice-changer"

// DefaultModelDirName is the CWD-relative model directory used when nothing
// else is configured.
const DefaultModelDirName = "model_dir"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "SLOTS_CONFIG_DIR"
	EnvModelDir  = "SLOTS_MODEL_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/voice-changer (fallback ~/.config/voice-changer)
// macOS:   ~/Library/Application Support/voice-changer
// Windows: %APPDATA%/voice-changer
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appDirName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appDirName), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appDirName), nil
	}
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > SLOTS_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveModelDir returns the model directory following the precedence chain:
// flag > configYAMLValue > SLOTS_MODEL_DIR env > $(CWD)/model_dir.
func ResolveModelDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvModelDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultModelDirName), nil
}
