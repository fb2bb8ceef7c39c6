// Package confloader provides configuration loading mechanism.
package confloader

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/knadh/koanf/maps"
	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Loader loads configuration from multiple sources.
type Loader struct {
	k        *koanf.Koanf
	envKeys  map[string]string
	aliases  map[string]string
	envFile  string
	filePath string
	loaded   bool
}

// Option is a function that configures the Loader.
type Option func(*Loader)

// WithEnvMapping sets the accepted environment variables. keys maps a
// variable name to a dotted config key; aliases do the same but lose to
// the primary variable when both are set.
func WithEnvMapping(keys, aliases map[string]string) Option {
	return func(l *Loader) {
		l.envKeys = keys
		l.aliases = aliases
	}
}

// WithEnvFile sets a dotenv file whose variables are read with the same
// mapping as the process environment.
func WithEnvFile(path string) Option {
	return func(l *Loader) {
		l.envFile = path
	}
}

// WithConfigFile sets the configuration file path.
func WithConfigFile(path string) Option {
	return func(l *Loader) {
		l.filePath = path
	}
}

// NewLoader creates a new configuration loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		k: koanf.New("."),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load loads configuration from all sources and unmarshals into target.
// Fields of target that no source sets keep their current value, so a
// struct filled with defaults yields defaults for unset keys.
func (l *Loader) Load(target any) error {
	if l.filePath != "" {
		if err := l.LoadFile(l.filePath); err != nil {
			return fmt.Errorf("load config file: %w", err)
		}
	}

	if err := l.LoadEnvFile(l.envFile); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}

	if err := l.LoadEnv(); err != nil {
		return fmt.Errorf("load env: %w", err)
	}

	if err := l.Unmarshal(target); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	l.loaded = true
	return nil
}

// LoadFile loads configuration from a YAML file.
func (l *Loader) LoadFile(path string) error {
	if path == "" {
		return nil
	}

	if err := l.k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("load file %s: %w", path, err)
	}

	return nil
}

// LoadEnvFile loads a dotenv file. A missing file is not an error.
func (l *Loader) LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}

	raw, err := file.Provider(path).ReadBytes()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	vars, err := dotenv.Parser().Unmarshal(raw)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	flat := make(map[string]any)
	for _, mapping := range []map[string]string{l.aliases, l.envKeys} {
		for name, key := range mapping {
			if v, ok := vars[name]; ok {
				flat[key] = v
			}
		}
	}

	return l.LoadMap(flat)
}

// LoadEnv loads the mapped variables from the process environment.
// Aliases are loaded first so the primary variable wins.
func (l *Loader) LoadEnv() error {
	for _, mapping := range []map[string]string{l.aliases, l.envKeys} {
		if len(mapping) == 0 {
			continue
		}
		provider := env.Provider("", ".", func(s string) string {
			// Unknown variables map to "" and are skipped.
			return mapping[s]
		})
		if err := l.k.Load(provider, nil); err != nil {
			return err
		}
	}

	return nil
}

// LoadMap loads configuration from a map with dotted keys.
func (l *Loader) LoadMap(data map[string]any) error {
	if len(data) == 0 {
		return nil
	}
	if err := l.k.Load(mapProvider(maps.Unflatten(data, ".")), nil); err != nil {
		return fmt.Errorf("load map: %w", err)
	}
	return nil
}

// Unmarshal unmarshals the loaded configuration into the target struct.
// Uses koanf tags for struct field mapping.
func (l *Loader) Unmarshal(target any) error {
	return l.k.Unmarshal("", target)
}

// GetString returns a string value from the configuration.
func (l *Loader) GetString(key string) string {
	return l.k.String(key)
}

// GetInt returns an int value from the configuration.
func (l *Loader) GetInt(key string) int {
	return l.k.Int(key)
}

// GetBool returns a bool value from the configuration.
func (l *Loader) GetBool(key string) bool {
	return l.k.Bool(key)
}

// IsLoaded returns true if configuration has been loaded.
func (l *Loader) IsLoaded() bool {
	return l.loaded
}

// Keys returns all configuration keys.
func (l *Loader) Keys() []string {
	return l.k.Keys()
}
