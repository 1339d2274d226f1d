package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/openkraft/visionboard/internal/domain"
	"gopkg.in/yaml.v3"
)

const (
	yamlFileName = ".visionboard.yaml"
	tomlFileName = ".visionboard.toml"

	// datasetEnv overrides the dataset path of the config file.
	datasetEnv = "VISIONBOARD_DATASET"
)

// Loader implements domain.ConfigLoader for .visionboard.yaml and
// .visionboard.toml.
type Loader struct{}

// New creates a Loader.
func New() *Loader { return &Loader{} }

// Load reads the workspace config. path may be a directory, searched for
// .visionboard.yaml then .visionboard.toml, or a config file of either format.
// A directory without a config file yields DefaultConfig.
func (l *Loader) Load(path string) (domain.Config, error) {
	file, err := resolve(path)
	if err != nil {
		return domain.Config{}, err
	}

	cfg := domain.DefaultConfig()
	if file != "" {
		cfg, err = decode(file)
		if err != nil {
			return domain.Config{}, err
		}
	}

	if dataset := os.Getenv(datasetEnv); dataset != "" {
		cfg.Dataset = dataset
	}

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", displayName(file), err)
	}

	// Relative dataset paths are relative to the config file, not the cwd.
	if file != "" && cfg.Dataset != "" && !filepath.IsAbs(cfg.Dataset) && os.Getenv(datasetEnv) == "" {
		cfg.Dataset = filepath.Join(filepath.Dir(file), cfg.Dataset)
	}

	return cfg, nil
}

// resolve returns the config file to read, or "" when none exists.
func resolve(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("reading config: %w", err)
	}
	if !info.IsDir() {
		return path, nil
	}

	for _, name := range []string{yamlFileName, tomlFileName} {
		candidate := filepath.Join(path, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}
	return "", nil
}

func decode(file string) (domain.Config, error) {
	var cfg domain.Config

	switch filepath.Ext(file) {
	case ".toml":
		if _, err := toml.DecodeFile(file, &cfg); err != nil {
			return domain.Config{}, fmt.Errorf("parsing %s: %w", filepath.Base(file), err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(file)
		if err != nil {
			return domain.Config{}, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return domain.Config{}, fmt.Errorf("parsing %s: %w", filepath.Base(file), err)
		}
	default:
		return domain.Config{}, fmt.Errorf("unsupported config format %q (use .yaml or .toml)", filepath.Ext(file))
	}

	return cfg, nil
}

func displayName(file string) string {
	if file == "" {
		return "config"
	}
	return filepath.Base(file)
}
