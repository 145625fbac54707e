package pygmenu

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrNoMenu is returned when no menu file could be found.
var ErrNoMenu = errors.New("no menu file found")

/* file extensions tried when searching for a default file, in order */
var extensions = []string{".json", ".toml", ".yaml", ".yml"}

// Locator finds settings, menu and font files. A path is used as given if
// it exists, otherwise it is looked up in each of Dirs.
type Locator struct {
	Dirs []string
}

// DefaultLocator searches the directory of the executable and the user
// configuration directory.
func DefaultLocator() Locator {
	var loc Locator
	if exe, err := os.Executable(); err == nil {
		loc.Dirs = append(loc.Dirs, filepath.Dir(exe))
	}
	if dir := ConfigDir(); dir != "" {
		loc.Dirs = append(loc.Dirs, dir)
	}
	return loc
}

// ConfigDir returns $XDG_CONFIG_HOME/pyg-menu, falling back to
// ~/.config/pyg-menu.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "pyg-menu")
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

// Resolve returns the first existing file among name and name inside each
// search directory.
func (loc Locator) Resolve(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	if fileExists(name) {
		return name, true
	}
	if filepath.IsAbs(name) {
		return "", false
	}
	for _, dir := range loc.Dirs {
		if p := filepath.Join(dir, name); fileExists(p) {
			return p, true
		}
	}
	return "", false
}

// Find searches each directory for base with one of the supported
// extensions.
func (loc Locator) Find(base string) (string, bool) {
	for _, dir := range loc.Dirs {
		for _, ext := range extensions {
			if p := filepath.Join(dir, base+ext); fileExists(p) {
				return p, true
			}
		}
	}
	return "", false
}

// Decode parses a json, toml or yaml document into v, chosen by the file
// extension ext. Anything but .toml, .yaml and .yml is read as json. Keys
// missing from the document leave the fields of v untouched.
func Decode(data []byte, ext string, v any) error {
	switch strings.ToLower(ext) {
	case ".toml":
		return toml.NewDecoder(bytes.NewReader(data)).EnableUnmarshalerInterface().Decode(v)
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, v)
	default:
		return json.Unmarshal(data, v)
	}
}

// ParseSettings decodes a settings document over the defaults.
func ParseSettings(data []byte, ext string) (Settings, error) {
	s := DefaultSettings()
	if err := Decode(data, ext, &s); err != nil {
		return Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// LoadSettings loads the settings file at path, or the first settings.* in
// the search directories if path is empty or does not exist. Without any
// settings file the defaults are returned.
func LoadSettings(path string, loc Locator, logger *slog.Logger) (Settings, error) {
	if logger == nil {
		logger = slog.Default()
	}

	file, ok := loc.Resolve(path)
	if !ok {
		if path != "" {
			logger.Warn("settings file not found", "path", path)
		}
		file, ok = loc.Find("settings")
	}
	if !ok {
		logger.Info("no settings file, using defaults")
		return DefaultSettings(), nil
	}

	logger.Debug("loading settings", "path", file)
	data, err := os.ReadFile(file)
	if err != nil {
		return Settings{}, err
	}
	s, err := ParseSettings(data, filepath.Ext(file))
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", file, err)
	}
	return s, nil
}

// LoadMenu loads the menu file at path, or the first menu-base.* in the
// search directories if path is empty or does not exist.
func LoadMenu(path string, loc Locator, logger *slog.Logger) ([]MenuItem, error) {
	if logger == nil {
		logger = slog.Default()
	}

	file, ok := loc.Resolve(path)
	if !ok {
		if path != "" {
			logger.Warn("menu file not found", "path", path)
		}
		file, ok = loc.Find("menu-base")
	}
	if !ok {
		return nil, ErrNoMenu
	}

	logger.Debug("loading menu", "path", file)
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	items, err := ParseMenu(data, filepath.Ext(file))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return items, nil
}
