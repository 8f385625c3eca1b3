package federation

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vvakame/fedecompose/internal/directives"
)

type ServiceDefinition struct {
	TypeDefs *ast.SchemaDocument
	Name     string
	URL      string // optional
}

// BuiltInDirectivesPolicy decides what happens to applications of the
// GraphQL built-in directives (@deprecated, @specifiedBy) found in subgraphs.
type BuiltInDirectivesPolicy int

const (
	// BuiltInsAlwaysExposed keeps built-in applications regardless of ExposeDirectives.
	BuiltInsAlwaysExposed BuiltInDirectivesPolicy = iota
	// BuiltInsFollowExposure keeps built-in applications only when named in ExposeDirectives.
	BuiltInsFollowExposure
)

func (p BuiltInDirectivesPolicy) String() string {
	switch p {
	case BuiltInsAlwaysExposed:
		return "always"
	case BuiltInsFollowExposure:
		return "exposure"
	default:
		return fmt.Sprintf("BuiltInDirectivesPolicy(%d)", int(p))
	}
}

func ParseBuiltInDirectivesPolicy(s string) (BuiltInDirectivesPolicy, error) {
	switch s {
	case "", "always":
		return BuiltInsAlwaysExposed, nil
	case "exposure":
		return BuiltInsFollowExposure, nil
	default:
		return 0, fmt.Errorf("unknown built-in directives policy %q, expected \"always\" or \"exposure\"", s)
	}
}

type Options struct {
	// ExposeDirectives lists custom directives, written as "@name", whose
	// definitions and applications are kept in the supergraph as authored.
	ExposeDirectives  []string
	BuiltInDirectives BuiltInDirectivesPolicy
	// Parallelism bounds concurrent directive merges. Zero means GOMAXPROCS.
	Parallelism int
	// SortSchema sorts fields, arguments and applied directives before printing.
	SortSchema bool
}

type CompositionResult struct {
	// nil when Errors is not empty
	Schema        *ast.Schema
	SupergraphSDL string
	// applications on the schema definition, which *ast.Schema can't hold
	SchemaDirectives ast.DirectiveList

	Directives *directives.Result
	Hints      directives.Diagnostics
	Errors     []error
}

// TypeDefinitionsMap collects every subgraph's definitions and extensions of a type, in service order.
type TypeDefinitionsMap map[string][]*TypeDefinitionEntity
type TypeDefinitionEntity struct {
	ServiceName string
	Definition  *ast.Definition
}
