package directives

import (
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

// LocationRule tells which branch of the location policy produced a decision.
type LocationRule int

const (
	// RuleExposedUnion keeps every location any subgraph declared.
	RuleExposedUnion LocationRule = iota + 1
	// RuleTypeSystemOnly drops a directive that has no executable location anywhere.
	RuleTypeSystemOnly
	// RuleExecutableIntersection keeps the executable locations every subgraph agrees on.
	RuleExecutableIntersection
)

func (r LocationRule) String() string {
	switch r {
	case RuleExposedUnion:
		return "exposed-union"
	case RuleTypeSystemOnly:
		return "type-system-only"
	case RuleExecutableIntersection:
		return "executable-intersection"
	default:
		return fmt.Sprintf("LocationRule(%d)", int(r))
	}
}

type LocationDecision struct {
	Rule      LocationRule
	Locations []ast.DirectiveLocation // empty means absent
}

func (d LocationDecision) IsAbsent() bool {
	return len(d.Locations) == 0
}

// DecideLocations computes the supergraph location set of a directive.
func DecideLocations(decls []*Declaration, exposed bool) (LocationDecision, Diagnostics) {
	if len(decls) == 0 {
		return LocationDecision{Rule: RuleTypeSystemOnly}, nil
	}

	union := unionLocations(decls)

	if exposed {
		return LocationDecision{Rule: RuleExposedUnion, Locations: union}, nil
	}

	if !Classify(union).HasExecutable {
		return LocationDecision{Rule: RuleTypeSystemOnly}, nil
	}

	var locations []ast.DirectiveLocation
	for _, location := range decls[0].Locations {
		if !IsExecutableLocation(location) {
			continue
		}
		inAll := true
		for _, decl := range decls[1:] {
			if !decl.HasLocation(location) {
				inAll = false
				break
			}
		}
		if inAll && !containsLocation(locations, location) {
			locations = append(locations, location)
		}
	}

	var diags Diagnostics
	if len(locations) == 0 {
		diags = append(diags, newHint(
			decls[0].Name,
			CodeNoExecutableLocationsIntersection,
			subgraphNames(decls),
			`Directive "@%s" is not included in the supergraph because its declarations in subgraphs %s have no executable location in common`,
			decls[0].Name, joinSubgraphNames(subgraphNames(decls)),
		))
	}

	return LocationDecision{Rule: RuleExecutableIntersection, Locations: locations}, diags
}

// MergeRepeatable reports the supergraph repeatable flag, which holds only if every declaration agrees.
func MergeRepeatable(decls []*Declaration) (bool, Diagnostics) {
	if len(decls) == 0 {
		return false, nil
	}

	var repeatableIn, notRepeatableIn []string
	for _, decl := range decls {
		if decl.Repeatable {
			repeatableIn = append(repeatableIn, decl.Subgraph)
		} else {
			notRepeatableIn = append(notRepeatableIn, decl.Subgraph)
		}
	}

	if len(repeatableIn) == 0 {
		return false, nil
	}
	if len(notRepeatableIn) == 0 {
		return true, nil
	}

	subgraphs := make([]string, 0, len(decls))
	subgraphs = append(subgraphs, repeatableIn...)
	subgraphs = append(subgraphs, notRepeatableIn...)
	diag := newHint(
		decls[0].Name,
		CodeInconsistentRepeatable,
		subgraphs,
		`Directive "@%s" is not repeatable in the supergraph because it is not repeatable in all subgraphs: it is repeatable in %s but not in %s`,
		decls[0].Name, describeSubgraphs(repeatableIn), describeSubgraphs(notRepeatableIn),
	)
	return false, Diagnostics{diag}
}

func unionLocations(decls []*Declaration) []ast.DirectiveLocation {
	var locations []ast.DirectiveLocation
	for _, decl := range decls {
		for _, location := range decl.Locations {
			if !containsLocation(locations, location) {
				locations = append(locations, location)
			}
		}
	}
	return locations
}

func containsLocation(locations []ast.DirectiveLocation, location ast.DirectiveLocation) bool {
	for _, l := range locations {
		if l == location {
			return true
		}
	}
	return false
}

func subgraphNames(decls []*Declaration) []string {
	names := make([]string, 0, len(decls))
	for _, decl := range decls {
		names = append(names, decl.Subgraph)
	}
	return names
}

func joinSubgraphNames(names []string) string {
	quoted := make([]string, 0, len(names))
	for _, name := range names {
		quoted = append(quoted, fmt.Sprintf("%q", name))
	}
	return strings.Join(quoted, ", ")
}

func describeSubgraphs(names []string) string {
	if len(names) == 1 {
		return fmt.Sprintf("subgraph %q", names[0])
	}
	return "subgraphs " + joinSubgraphNames(names)
}
