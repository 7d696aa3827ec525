package configs

import (
	"fmt"
	"os"
	"path/filepath"
)

// Settings are the organizer's persisted defaults for a draw. Flags and
// the configuration menu override them per run.
type Settings struct {
	Reveal RevealSettings `toml:"reveal"`
	Backup BackupSettings `toml:"backup"`
}

type RevealSettings struct {
	// AllowRepeat disables one-shot viewing.
	AllowRepeat bool `toml:"allow_repeat"`
	// ManualClear waits for Enter after each reveal instead of a timer.
	ManualClear bool `toml:"manual_clear"`
	// TimeoutSeconds is the auto-clear delay when ManualClear is false.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

type BackupSettings struct {
	// Disabled skips creating the sealed backup artifact.
	Disabled bool `toml:"disabled"`
}

// DefaultSettings mirrors the built-in behavior: one-shot reveals,
// manual clearing, sealed backup enabled.
func DefaultSettings() Settings {
	return Settings{
		Reveal: RevealSettings{
			AllowRepeat:    false,
			ManualClear:    true,
			TimeoutSeconds: 0,
		},
		Backup: BackupSettings{Disabled: false},
	}
}

// ConfigPath returns the location of the defaults file under the
// platform config directory.
func ConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(configDir, "trustee", "config.toml"), nil
}

// Load reads the persisted defaults. A missing file yields
// DefaultSettings without error.
func Load() (Settings, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultSettings(), err
	}

	settings := DefaultSettings()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return settings, nil
	}

	if err := LoadTOML(path, &settings); err != nil {
		return DefaultSettings(), fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

// Save persists the defaults for future runs.
func Save(settings Settings) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := SaveTOML(path, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
