package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/vvakame/fedecompose/internal/federation"
	"github.com/vvakame/fedecompose/internal/subgraph"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is a composition run described by a config file.
type Config struct {
	Subgraphs []*subgraph.Definition
	Options   *federation.Options
}

// Load reads the config file at path.
// Relative schema file paths are resolved from the directory of path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.load %s: %w", path, err)
	}

	var dto YAMLConfig
	if err := yaml.UnmarshalWithOptions(b, &dto, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("config.load %s: %s: %w", path, yaml.FormatError(err, false, true), ErrInvalidConfig)
	}

	return Map(path, dto)
}
