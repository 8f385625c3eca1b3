package directives

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// apply parses the directives applied on "type T { f: String <directives> }" of subgraph.
func apply(t *testing.T, subgraph, directives string) []*Application {
	t.Helper()

	doc, gErr := parser.ParseSchema(&ast.Source{Name: subgraph, Input: "type T { f: String " + directives + " }"})
	require.Nil(t, gErr)

	var apps []*Application
	for _, directive := range doc.Definitions[0].Fields[0].Directives {
		apps = append(apps, &Application{
			Directive:  directive.Name,
			Coordinate: FieldCoordinate(ast.Object, "T", "f"),
			Arguments:  directive.Arguments,
			Subgraph:   subgraph,
			Position:   directive.Position,
		})
	}
	return apps
}

func TestFilterApplications(t *testing.T) {
	t.Parallel()

	def := &MergedDefinition{
		Name:      "foo",
		Locations: []ast.DirectiveLocation{ast.LocationFieldDefinition},
		Arguments: []*ArgumentSignature{
			{Name: "name", Type: ast.NonNullNamedType("String", nil)},
		},
	}
	decision := LocationDecision{Rule: RuleExposedUnion, Locations: def.Locations}

	t.Run("not exposed", func(t *testing.T) {
		t.Parallel()

		kept, diags := FilterApplications(def, decision, false, apply(t, "a", `@foo(name: "a")`))
		assert.Empty(t, kept)
		assert.Empty(t, diags)
	})

	t.Run("absent", func(t *testing.T) {
		t.Parallel()

		kept, diags := FilterApplications(def, LocationDecision{Rule: RuleTypeSystemOnly}, true, apply(t, "a", `@foo(name: "a")`))
		assert.Empty(t, kept)
		assert.Empty(t, diags)
	})

	t.Run("exposed keeps every application", func(t *testing.T) {
		t.Parallel()

		var apps []*Application
		apps = append(apps, apply(t, "a", `@foo(name: "a")`)...)
		apps = append(apps, apply(t, "b", `@foo(name: "a")`)...)

		kept, diags := FilterApplications(def, decision, true, apps)
		assert.Empty(t, diags)
		// identical applications of a non-repeatable directive collapse
		require.Len(t, kept, 1)
		assert.Equal(t, "a", kept[0].Subgraph)
	})

	t.Run("non-repeatable with different arguments", func(t *testing.T) {
		t.Parallel()

		var apps []*Application
		apps = append(apps, apply(t, "a", `@foo(name: "a")`)...)
		apps = append(apps, apply(t, "b", `@foo(name: "b")`)...)

		kept, diags := FilterApplications(def, decision, true, apps)
		require.Len(t, kept, 1)
		assert.Equal(t, "a", kept[0].Subgraph)
		require.Len(t, diags, 1)
		assert.False(t, diags.HasErrors())
		assert.Equal(t, CodeInconsistentNonRepeatableArguments, diags[0].Code)
		assert.Equal(t, []string{"a", "b"}, diags[0].Subgraphs)
		assert.Equal(t, `Non-repeatable directive "@foo" is applied to "T.f" with different arguments in subgraph "a" and subgraph "b": the application of subgraph "a" is kept`, diags[0].Message)
	})

	t.Run("non-repeatable applied twice in one subgraph", func(t *testing.T) {
		t.Parallel()

		kept, diags := FilterApplications(def, decision, true, apply(t, "a", `@foo(name: "x") @foo(name: "y")`))
		require.Len(t, kept, 1)
		assert.Equal(t, `"x"`, kept[0].Arguments.ForName("name").Value.String())
		require.Len(t, diags, 1)
		assert.False(t, diags.HasErrors())
		assert.Equal(t, []string{"a"}, diags[0].Subgraphs)
		assert.Equal(t, `Non-repeatable directive "@foo" is applied more than once to "T.f" in subgraph "a": only the first application is kept`, diags[0].Message)
	})

	t.Run("repeatable keeps duplicates", func(t *testing.T) {
		t.Parallel()

		repeatable := *def
		repeatable.Repeatable = true

		kept, diags := FilterApplications(&repeatable, decision, true, apply(t, "a", `@foo(name: "a") @foo(name: "b") @foo(name: "a")`))
		assert.Empty(t, diags)
		assert.Len(t, kept, 3)
	})

	t.Run("missing required argument", func(t *testing.T) {
		t.Parallel()

		kept, diags := FilterApplications(def, decision, true, apply(t, "a", `@foo(name: null)`))
		assert.Nil(t, kept)
		require.Len(t, diags, 1)
		assert.Equal(t, CodeApplicationMissingRequiredArgument, diags[0].Code)
	})

	t.Run("location not kept", func(t *testing.T) {
		t.Parallel()

		apps := apply(t, "a", `@foo(name: "a")`)
		apps[0].Coordinate = TypeCoordinate(ast.Object, "T")

		kept, diags := FilterApplications(def, decision, true, apps)
		assert.Nil(t, kept)
		require.Len(t, diags, 1)
		assert.Equal(t, CodeApplicationInvalidLocation, diags[0].Code)
	})
}

func TestArgumentsKeyIgnoresOrder(t *testing.T) {
	t.Parallel()

	a := apply(t, "a", `@foo(x: 1, y: "s")`)[0]
	b := apply(t, "b", `@foo(y: "s", x: 1)`)[0]
	assert.Equal(t, argumentsKey(a.Arguments), argumentsKey(b.Arguments))
}
