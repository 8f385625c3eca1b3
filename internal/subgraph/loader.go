package subgraph

import (
	"context"
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vvakame/fedecompose/internal/federation"
	"github.com/vvakame/fedecompose/internal/log"
	"golang.org/x/sync/errgroup"
)

type Definition struct {
	Name   string
	URL    string // optional, routing url of the subgraph
	Source Source
}

// Load fetches and parses every subgraph SDL, at most parallelism at a time.
// The returned list keeps the order of defs.
func Load(ctx context.Context, defs []*Definition, parallelism int) ([]*federation.ServiceDefinition, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("service definitions are must required")
	}

	seen := make(map[string]bool, len(defs))
	for _, def := range defs {
		if def.Name == "" {
			return nil, fmt.Errorf("subgraph name is required")
		}
		if seen[def.Name] {
			return nil, fmt.Errorf("subgraph %s is defined more than once", def.Name)
		}
		seen[def.Name] = true
		if def.Source == nil {
			return nil, fmt.Errorf("subgraph %s doesn't have a schema source", def.Name)
		}
	}

	services := make([]*federation.ServiceDefinition, len(defs))
	eg, egCtx := errgroup.WithContext(ctx)
	if parallelism > 0 {
		eg.SetLimit(parallelism)
	}
	for i, def := range defs {
		i, def := i, def
		eg.Go(func() error {
			ctx := log.WithSubgraph(egCtx, def.Name)
			logger := log.FromContext(ctx)

			sdl, err := def.Source.FetchSDL(ctx)
			if err != nil {
				return fmt.Errorf("fetch sdl of subgraph %s: %w", def.Name, err)
			}
			logger.V(1).Info("sdl fetched", "bytes", len(sdl))

			schemaDoc, gErr := parser.ParseSchema(&ast.Source{
				Name:  def.Name,
				Input: sdl,
			})
			if gErr != nil {
				return fmt.Errorf("parse sdl of subgraph %s: %w", def.Name, gErr)
			}

			services[i] = &federation.ServiceDefinition{
				TypeDefs: schemaDoc,
				Name:     def.Name,
				URL:      def.URL,
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return services, nil
}
