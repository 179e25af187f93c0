package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/keyline/internal/config/loader"
	"github.com/dshills/keyline/internal/engine/history"
	"github.com/dshills/keyline/internal/logging"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "KEYLINE_"

// Config holds every keyline setting.
type Config struct {
	Editor  EditorConfig
	Logging LoggingConfig
	Macro   MacroConfig

	// Path is the file the config was loaded from, if any.
	Path string
}

// EditorConfig holds editing behavior.
type EditorConfig struct {
	// HistorySize bounds the undo history.
	HistorySize history.Limit

	// TabWidth is the display width of a tab character.
	TabWidth int

	// Overwrite allows saving over an existing file other than the one
	// that was opened.
	Overwrite bool
}

// LoggingConfig controls the log output.
type LoggingConfig struct {
	Level logging.Level

	// File receives log output. Empty disables logging in interactive mode.
	File string
}

// MacroConfig controls macro persistence.
type MacroConfig struct {
	// File stores macro registers between sessions. Empty disables it.
	File string
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			HistorySize: history.Infinite(),
			TabWidth:    4,
		},
		Logging: LoggingConfig{
			Level: logging.LevelInfo,
		},
	}
}

// DefaultPath returns the user config file location.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "keyline", "config.toml")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "keyline", "config.toml")
	}
	return ""
}

// Load resolves the settings from defaults, the TOML file at path and the
// environment. A missing file is not an error.
func Load(path string) (*Config, error) {
	var layers []loader.Loader
	if path != "" {
		layers = append(layers, loader.NewTOMLLoader(path))
	}
	layers = append(layers, loader.NewEnvLoader(EnvPrefix))

	cfg, err := LoadFrom(layers...)
	if err != nil {
		return nil, err
	}
	cfg.Path = path
	return cfg, nil
}

// LoadFrom merges the given layers over the defaults, later layers
// winning.
func LoadFrom(layers ...loader.Loader) (*Config, error) {
	merged := make(map[string]any)
	for _, l := range layers {
		m, err := l.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, m)
	}

	cfg := Default()
	if err := cfg.apply(merged); err != nil {
		return nil, err
	}
	return cfg, nil
}

// apply decodes m over c. Unknown keys are ignored; every invalid value is
// reported.
func (c *Config) apply(m map[string]any) error {
	var errs []error
	check := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	if editor, ok := section(m, "editor", check); ok {
		if v, ok := editor["history_size"]; ok {
			l, err := parseHistorySize(v)
			check(err)
			if err == nil {
				c.Editor.HistorySize = l
			}
		}
		if v, ok := editor["tab_width"]; ok {
			n, err := asInt("editor.tab_width", v)
			switch {
			case err != nil:
				check(err)
			case n < 1 || n > 16:
				check(rangeError("editor.tab_width", "must be between 1 and 16", v))
			default:
				c.Editor.TabWidth = n
			}
		}
		if v, ok := editor["overwrite"]; ok {
			b, err := asBool("editor.overwrite", v)
			check(err)
			if err == nil {
				c.Editor.Overwrite = b
			}
		}
	}

	if lg, ok := section(m, "logging", check); ok {
		if v, ok := lg["level"]; ok {
			s, err := asString("logging.level", v)
			check(err)
			if err == nil {
				level, known := logging.ParseLevel(s)
				if !known {
					check(rangeError("logging.level", "must be debug, info, warn or error", v))
				} else {
					c.Logging.Level = level
				}
			}
		}
		if v, ok := lg["file"]; ok {
			s, err := asString("logging.file", v)
			check(err)
			c.Logging.File = expandHome(s)
		}
	}

	if mc, ok := section(m, "macro", check); ok {
		if v, ok := mc["file"]; ok {
			s, err := asString("macro.file", v)
			check(err)
			c.Macro.File = expandHome(s)
		}
	}

	return errors.Join(errs...)
}

func section(m map[string]any, name string, check func(error)) (map[string]any, bool) {
	v, ok := m[name]
	if !ok {
		return nil, false
	}
	s, ok := v.(map[string]any)
	if !ok {
		check(typeError(name, "table", v))
		return nil, false
	}
	return s, true
}

func parseHistorySize(v any) (history.Limit, error) {
	const path = "editor.history_size"
	switch x := v.(type) {
	case string:
		l, err := history.ParseLimit(x)
		if err != nil {
			return history.Limit{}, rangeError(path, `must be "infinite", "none" or an entry count`, v)
		}
		return l, nil
	case int64:
		if x < 0 {
			return history.Limit{}, rangeError(path, "must not be negative", v)
		}
		return history.Bounded(int(x)), nil
	case bool:
		if !x {
			return history.Disabled(), nil
		}
		return history.Infinite(), nil
	default:
		return history.Limit{}, typeError(path, "string or integer", v)
	}
}

func asInt(path string, v any) (int, error) {
	switch x := v.(type) {
	case int64:
		return int(x), nil
	case float64:
		if x == float64(int(x)) {
			return int(x), nil
		}
	}
	return 0, typeError(path, "integer", v)
}

func asBool(path string, v any) (bool, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case int64:
		if x == 0 || x == 1 {
			return x == 1, nil
		}
	}
	return false, typeError(path, "boolean", v)
}

func asString(path string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", typeError(path, "string", v)
	}
	return s, nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
