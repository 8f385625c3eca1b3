package federation

import (
	"context"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vvakame/fedecompose/internal/directives"
	"github.com/vvakame/fedecompose/internal/graphql"
	"github.com/vvakame/fedecompose/internal/log"
)

// directiveMetadata holds every custom directive declaration and application
// found in the subgraphs, in service order.
type directiveMetadata struct {
	Declarations []*directives.Declaration
	Applications []*directives.Application
}

// isCustomDirective reports whether the directive is left to the custom directive merger.
func isCustomDirective(directiveName string) bool {
	return !isFederationDirective(directiveName) && !graphql.IsSpecifiedDirective(directiveName)
}

// subgraphDirectiveDefinitions returns the directive definitions in effect for
// one subgraph: the ones it declares, plus the known ones it uses without declaring.
// The first declaration wins when a subgraph declares the same name twice.
func subgraphDirectiveDefinitions(typeDefs *ast.SchemaDocument) (ast.DirectiveDefinitionList, []string) {
	var defs ast.DirectiveDefinitionList
	declared := make(map[string]bool)
	for _, def := range typeDefs.Directives {
		if !isCustomDirective(def.Name) || declared[def.Name] {
			continue
		}
		declared[def.Name] = true
		defs = append(defs, def)
	}

	var synthesized []string
	walkDirectiveApplications(typeDefs, func(directive *ast.Directive, coordinate directives.Coordinate) {
		if declared[directive.Name] {
			return
		}
		known := knownDirectiveDefinition(directive.Name)
		if known == nil {
			return
		}
		declared[directive.Name] = true
		defs = append(defs, known)
		synthesized = append(synthesized, directive.Name)
	})

	return defs, synthesized
}

func newDirectiveMetadata(ctx context.Context, subgraphs []*ServiceDefinition) *directiveMetadata {
	logger := log.FromContext(ctx)

	dm := &directiveMetadata{}
	for _, subgraph := range subgraphs {
		subgraphName := subgraph.Name

		defs, synthesized := subgraphDirectiveDefinitions(subgraph.TypeDefs)
		for _, name := range synthesized {
			logger.V(1).Info("use known directive definition", "service", subgraphName, "directive", name)
		}
		for _, def := range defs {
			dm.Declarations = append(dm.Declarations, directives.NewDeclaration(subgraphName, def))
		}

		walkDirectiveApplications(subgraph.TypeDefs, func(directive *ast.Directive, coordinate directives.Coordinate) {
			if !isCustomDirective(directive.Name) {
				return
			}
			if defs.ForName(directive.Name) == nil {
				// reported by undefinedDirectiveUsed
				return
			}
			dm.Applications = append(dm.Applications, &directives.Application{
				Directive:  directive.Name,
				Coordinate: coordinate,
				Arguments:  directive.Arguments,
				Subgraph:   subgraphName,
				Position:   directive.Position,
			})
		})
	}

	return dm
}
