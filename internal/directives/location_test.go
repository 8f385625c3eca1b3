package directives

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vektah/gqlparser/v2/ast"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		locations []ast.DirectiveLocation
		want      Classification
	}{
		{
			name: "empty",
			want: Classification{},
		},
		{
			name:      "executable only",
			locations: []ast.DirectiveLocation{ast.LocationQuery, ast.LocationField, ast.LocationVariableDefinition},
			want:      Classification{HasExecutable: true},
		},
		{
			name:      "type system only",
			locations: []ast.DirectiveLocation{ast.LocationFieldDefinition, ast.LocationObject, ast.LocationSchema},
			want:      Classification{HasTypeSystem: true},
		},
		{
			name:      "mixed",
			locations: []ast.DirectiveLocation{ast.LocationQuery, ast.LocationFieldDefinition},
			want:      Classification{HasExecutable: true, HasTypeSystem: true},
		},
		{
			name:      "unknown location is ignored",
			locations: []ast.DirectiveLocation{"NOT_A_LOCATION"},
			want:      Classification{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Classify(tt.locations))
		})
	}
}

func TestLocationKinds(t *testing.T) {
	t.Parallel()

	for location := range executableLocations {
		assert.True(t, IsExecutableLocation(location), location)
		assert.False(t, IsTypeSystemLocation(location), location)
	}
	for location := range typeSystemLocations {
		assert.True(t, IsTypeSystemLocation(location), location)
		assert.False(t, IsExecutableLocation(location), location)
	}
	assert.Len(t, executableLocations, 8)
	assert.Len(t, typeSystemLocations, 11)
}

func TestCoordinateLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		coordinate Coordinate
		location   ast.DirectiveLocation
		str        string
	}{
		{SchemaCoordinate(), ast.LocationSchema, "<schema>"},
		{TypeCoordinate(ast.Object, "User"), ast.LocationObject, "User"},
		{TypeCoordinate(ast.Scalar, "Date"), ast.LocationScalar, "Date"},
		{TypeCoordinate(ast.Interface, "Node"), ast.LocationInterface, "Node"},
		{TypeCoordinate(ast.Union, "Result"), ast.LocationUnion, "Result"},
		{TypeCoordinate(ast.Enum, "Color"), ast.LocationEnum, "Color"},
		{TypeCoordinate(ast.InputObject, "Filter"), ast.LocationInputObject, "Filter"},
		{FieldCoordinate(ast.Object, "User", "name"), ast.LocationFieldDefinition, "User.name"},
		{FieldCoordinate(ast.Interface, "Node", "id"), ast.LocationFieldDefinition, "Node.id"},
		{FieldCoordinate(ast.Enum, "Color", "RED"), ast.LocationEnumValue, "Color.RED"},
		{FieldCoordinate(ast.InputObject, "Filter", "color"), ast.LocationInputFieldDefinition, "Filter.color"},
		{ArgumentCoordinate(ast.Object, "Query", "user", "id"), ast.LocationArgumentDefinition, "Query.user(id:)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.location, tt.coordinate.Location(), tt.str)
		assert.Equal(t, tt.str, tt.coordinate.String())
	}
}
