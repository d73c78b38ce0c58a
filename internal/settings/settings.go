package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Font sizes for the Arabic text; only these two values are valid.
const (
	FontNormal = "normal"
	FontLarge  = "large"
)

// Settings holds the cosmetic reading preferences. Everything else lives
// in memory for the session.
type Settings struct {
	ShowTranslation bool   `json:"show_translation"`
	FontSize        string `json:"font_size"`
	CurrentTheme    string `json:"current_theme"`
}

func Default() Settings {
	return Settings{
		ShowTranslation: true,
		FontSize:        FontNormal,
	}
}

func configPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(configDir, "quran-tui")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	return filepath.Join(dir, "config.json"), nil
}

func Load() (Settings, error) {
	s := Default()

	path, err := configPath()
	if err != nil {
		return s, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// No config = just return defaults, no error
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, err
	}

	if err := json.Unmarshal(data, &s); err != nil {
		return Default(), err
	}
	if s.FontSize != FontLarge {
		s.FontSize = FontNormal
	}

	return s, nil
}

func Save(s Settings) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
