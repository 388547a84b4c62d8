package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	TuningFile = "tuning.json"
	MobsFile   = "mobs.yaml"
	ItemsFile  = "petals.json"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	Tuning *TuningConfig
	Mobs   *MobsConfig
	// Items is nil when the built-in item registry should be used
	Items *ItemsConfig
}

// Default returns a configuration made only of built-in values
func Default() *GameConfig {
	return &GameConfig{
		Tuning: DefaultTuning(),
		Mobs:   DefaultMobs(),
	}
}

// Loader loads game configuration files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// LoadTuning loads tuning.json over the built-in defaults
func (l *Loader) LoadTuning() (*TuningConfig, error) {
	data, err := fs.ReadFile(l.fsys, TuningFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", TuningFile, err)
	}

	cfg := DefaultTuning()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", TuningFile, err)
	}

	return cfg, nil
}

// LoadMobs loads mobs.yaml
func (l *Loader) LoadMobs() (*MobsConfig, error) {
	data, err := fs.ReadFile(l.fsys, MobsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", MobsFile, err)
	}

	cfg := DefaultMobs()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", MobsFile, err)
	}
	if cfg.Brood.Threshold <= 0 {
		cfg.Brood.Threshold = DefaultBrood().Threshold
	}

	return cfg, nil
}

// LoadItems loads petals.json
func (l *Loader) LoadItems() (*ItemsConfig, error) {
	data, err := fs.ReadFile(l.fsys, ItemsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ItemsFile, err)
	}

	var cfg ItemsConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ItemsFile, err)
	}

	return &cfg, nil
}

// LoadAll loads every configuration file, failing on the first error
func (l *Loader) LoadAll() (*GameConfig, error) {
	tuning, err := l.LoadTuning()
	if err != nil {
		return nil, err
	}

	mobs, err := l.LoadMobs()
	if err != nil {
		return nil, err
	}

	items, err := l.LoadItems()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Tuning: tuning,
		Mobs:   mobs,
		Items:  items,
	}, nil
}

// LoadOrDefault loads every configuration file it can.
// The returned config is always usable; sections that failed to load keep
// their built-in values and the failures are joined into the error.
func (l *Loader) LoadOrDefault() (*GameConfig, error) {
	cfg := Default()
	var errs []error

	if tuning, err := l.LoadTuning(); err != nil {
		errs = append(errs, err)
	} else {
		cfg.Tuning = tuning
	}

	if mobs, err := l.LoadMobs(); err != nil {
		errs = append(errs, err)
	} else {
		cfg.Mobs = mobs
	}

	if items, err := l.LoadItems(); err != nil {
		errs = append(errs, err)
	} else {
		cfg.Items = items
	}

	return cfg, errors.Join(errs...)
}
