package federation

import "github.com/vektah/gqlparser/v2/ast"

var tagDirective = &ast.DirectiveDefinition{
	Name: "tag",
	Arguments: ast.ArgumentDefinitionList{
		&ast.ArgumentDefinition{
			Name: "name",
			Type: &ast.Type{
				NamedType: "String",
				NonNull:   true,
			},
		},
	},
	Locations: []ast.DirectiveLocation{
		ast.LocationFieldDefinition,
		ast.LocationObject,
		ast.LocationInterface,
		ast.LocationUnion,
	},
	IsRepeatable: true,
	Position:     blankPos,
}

// Directives with federation-specific semantics. Composition of their
// applications belongs to the type merging engine, never to the custom directive merger.
var federationDirectiveNames = map[string]bool{
	"key":              true,
	"extends":          true,
	"external":         true,
	"requires":         true,
	"provides":         true,
	"shareable":        true,
	"override":         true,
	"inaccessible":     true,
	"interfaceObject":  true,
	"link":             true,
	"composeDirective": true,
}

// Known directives get a fixed definition when a subgraph uses them without
// declaring them, and are always exposed.
var otherKnownDirectiveDefinitions = ast.DirectiveDefinitionList{
	tagDirective,
}

func isFederationDirective(directiveName string) bool {
	return federationDirectiveNames[directiveName]
}

func knownDirectiveDefinition(directiveName string) *ast.DirectiveDefinition {
	return otherKnownDirectiveDefinitions.ForName(directiveName)
}

func knownDirectiveNames() []string {
	names := make([]string, 0, len(otherKnownDirectiveDefinitions))
	for _, def := range otherKnownDirectiveDefinitions {
		names = append(names, def.Name)
	}
	return names
}
