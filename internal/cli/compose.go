package cli

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/vvakame/fedecompose/internal/config"
	"github.com/vvakame/fedecompose/internal/directives"
	"github.com/vvakame/fedecompose/internal/federation"
	"github.com/vvakame/fedecompose/internal/subgraph"
)

func composeCmd() *cobra.Command {
	var configPath string
	var expose []string
	var sortSchema bool
	var hintsFormat string

	c := &cobra.Command{
		Use:   "compose",
		Short: "Compose the subgraphs listed in a config file and print the supergraph SDL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch hintsFormat {
			case "text", "yaml":
			default:
				return fmt.Errorf("unknown hints format %q, expected \"text\" or \"yaml\"", hintsFormat)
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg.Options.ExposeDirectives = append(cfg.Options.ExposeDirectives, expose...)
			if sortSchema {
				cfg.Options.SortSchema = true
			}

			ctx := cmd.Context()
			services, err := subgraph.Load(ctx, cfg.Subgraphs, cfg.Options.Parallelism)
			if err != nil {
				return err
			}

			result, err := federation.ComposeAndValidate(ctx, services, cfg.Options)
			if result != nil {
				if werr := writeHints(cmd.ErrOrStderr(), hintsFormat, result.Hints); werr != nil {
					return werr
				}
			}
			if err != nil {
				return err
			}

			_, err = io.WriteString(cmd.OutOrStdout(), result.SupergraphSDL)
			return err
		},
	}

	c.Flags().StringVarP(&configPath, "config", "c", "fedecompose.yaml", "config file path")
	c.Flags().StringSliceVar(&expose, "expose", nil, "additional custom directives to expose, like @auth")
	c.Flags().BoolVar(&sortSchema, "sort", false, "sort the supergraph lexicographically")
	c.Flags().StringVar(&hintsFormat, "hints-format", "text", "hints output format, text or yaml")

	return c
}

func writeHints(w io.Writer, format string, hints directives.Diagnostics) error {
	if len(hints) == 0 {
		return nil
	}

	if format == "yaml" {
		b, err := yaml.Marshal(hints)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	}

	for _, hint := range hints {
		if _, err := fmt.Fprintln(w, hint.String()); err != nil {
			return err
		}
	}
	return nil
}
