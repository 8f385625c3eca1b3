package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vvakame/fedecompose/internal/federation"
	"github.com/vvakame/fedecompose/internal/subgraph"
)

// Map converts the decoded file into a Config.
// path is the location of the file and is used to resolve relative schema files.
func Map(path string, yc YAMLConfig) (*Config, error) {
	policy, err := federation.ParseBuiltInDirectivesPolicy(yc.BuiltInDirectives)
	if err != nil {
		return nil, invalidField(path, "builtInDirectives", err.Error())
	}
	if yc.Parallelism < 0 {
		return nil, invalidField(path, "parallelism", "must not be negative")
	}
	for i, name := range yc.ExposeDirectives {
		if !strings.HasPrefix(name, "@") {
			return nil, invalidField(path, fmt.Sprintf("exposeDirectives[%d]", i), fmt.Sprintf("%q must start with @", name))
		}
	}
	if len(yc.Subgraphs) == 0 {
		return nil, invalidField(path, "subgraphs", "at least one subgraph is required")
	}

	cfg := &Config{
		Subgraphs: make([]*subgraph.Definition, 0, len(yc.Subgraphs)),
		Options: &federation.Options{
			ExposeDirectives:  yc.ExposeDirectives,
			BuiltInDirectives: policy,
			Parallelism:       yc.Parallelism,
			SortSchema:        yc.SortSchema,
		},
	}

	baseDir := filepath.Dir(path)
	for i, ys := range yc.Subgraphs {
		fieldPrefix := fmt.Sprintf("subgraphs[%d]", i)
		if strings.TrimSpace(ys.Name) == "" {
			return nil, invalidField(path, fieldPrefix+".name", "name is required")
		}

		source, err := mapSchema(baseDir, ys.Schema)
		if err != nil {
			return nil, invalidField(path, fieldPrefix+".schema", err.Error())
		}

		cfg.Subgraphs = append(cfg.Subgraphs, &subgraph.Definition{
			Name:   ys.Name,
			URL:    ys.URL,
			Source: source,
		})
	}

	return cfg, nil
}

func mapSchema(baseDir string, ys YAMLSchema) (subgraph.Source, error) {
	var sources []subgraph.Source
	if ys.File != "" {
		p := ys.File
		if !filepath.IsAbs(p) {
			p = filepath.Join(baseDir, p)
		}
		sources = append(sources, &subgraph.FileSource{Path: p})
	}
	if ys.Introspect != "" {
		sources = append(sources, &subgraph.RemoteSource{URL: ys.Introspect})
	}
	if ys.SDL != "" {
		sources = append(sources, subgraph.StaticSource(ys.SDL))
	}

	switch len(sources) {
	case 0:
		return nil, fmt.Errorf("one of file, introspect or sdl is required")
	case 1:
		return sources[0], nil
	default:
		return nil, fmt.Errorf("only one of file, introspect or sdl can be set")
	}
}

func invalidField(path, field, msg string) error {
	return fmt.Errorf("config.map %s: field %s: %s: %w", path, field, msg, ErrInvalidConfig)
}
