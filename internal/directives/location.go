package directives

import "github.com/vektah/gqlparser/v2/ast"

var executableLocations = map[ast.DirectiveLocation]bool{
	ast.LocationQuery:              true,
	ast.LocationMutation:           true,
	ast.LocationSubscription:       true,
	ast.LocationField:              true,
	ast.LocationFragmentDefinition: true,
	ast.LocationFragmentSpread:     true,
	ast.LocationInlineFragment:     true,
	ast.LocationVariableDefinition: true,
}

var typeSystemLocations = map[ast.DirectiveLocation]bool{
	ast.LocationSchema:               true,
	ast.LocationScalar:               true,
	ast.LocationObject:               true,
	ast.LocationFieldDefinition:      true,
	ast.LocationArgumentDefinition:   true,
	ast.LocationInterface:            true,
	ast.LocationUnion:                true,
	ast.LocationEnum:                 true,
	ast.LocationEnumValue:            true,
	ast.LocationInputObject:          true,
	ast.LocationInputFieldDefinition: true,
}

// IsExecutableLocation reports whether location is valid inside an executable document.
func IsExecutableLocation(location ast.DirectiveLocation) bool {
	return executableLocations[location]
}

// IsTypeSystemLocation reports whether location is valid on schema definition elements.
func IsTypeSystemLocation(location ast.DirectiveLocation) bool {
	return typeSystemLocations[location]
}

// Classification tells which kinds of locations a directive declares.
type Classification struct {
	HasExecutable bool
	HasTypeSystem bool
}

// Classify classifies the union of locations of a directive.
func Classify(locations []ast.DirectiveLocation) Classification {
	var c Classification
	for _, location := range locations {
		switch {
		case executableLocations[location]:
			c.HasExecutable = true
		case typeSystemLocations[location]:
			c.HasTypeSystem = true
		}
	}
	return c
}
