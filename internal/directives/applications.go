package directives

import (
	"sort"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

// FilterApplications decides which applications of a directive are carried onto the supergraph.
// Unexposed directives never carry applications, whatever locations they keep.
func FilterApplications(def *MergedDefinition, decision LocationDecision, exposed bool, apps []*Application) ([]*Application, Diagnostics) {
	if decision.IsAbsent() || !exposed || def == nil {
		return nil, nil
	}

	var kept []*Application
	var diags Diagnostics
	seen := make(map[Coordinate]*Application)

	for _, app := range apps {
		if appDiags := validateApplication(def, app); len(appDiags) != 0 {
			diags = append(diags, appDiags...)
			continue
		}

		if !def.Repeatable {
			if known, ok := seen[app.Coordinate]; ok {
				if argumentsKey(known.Arguments) != argumentsKey(app.Arguments) {
					diags = append(diags, nonRepeatableConflict(def.Name, known, app))
				}
				continue
			}
			seen[app.Coordinate] = app
		}

		kept = append(kept, app)
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return kept, diags
}

// nonRepeatableConflict reports a dropped application of a non-repeatable directive.
// The first application on the element wins.
func nonRepeatableConflict(name string, known, app *Application) *Diagnostic {
	if known.Subgraph == app.Subgraph {
		return newHint(
			name,
			CodeInconsistentNonRepeatableArguments,
			[]string{app.Subgraph},
			`Non-repeatable directive "@%s" is applied more than once to "%s" in subgraph "%s": only the first application is kept`,
			name, app.Coordinate.String(), app.Subgraph,
		)
	}
	return newHint(
		name,
		CodeInconsistentNonRepeatableArguments,
		[]string{known.Subgraph, app.Subgraph},
		`Non-repeatable directive "@%s" is applied to "%s" with different arguments in subgraph "%s" and subgraph "%s": the application of subgraph "%s" is kept`,
		name, app.Coordinate.String(), known.Subgraph, app.Subgraph, known.Subgraph,
	)
}

func validateApplication(def *MergedDefinition, app *Application) Diagnostics {
	var diags Diagnostics

	location := app.Coordinate.Location()
	if !def.HasLocation(location) {
		diags = append(diags, newError(
			def.Name,
			CodeApplicationInvalidLocation,
			[]string{app.Subgraph},
			`Directive "@%s" is applied to "%s" in subgraph "%s" but location %s is not kept in the supergraph definition`,
			def.Name, app.Coordinate.String(), app.Subgraph, location,
		))
	}

	for _, arg := range def.Arguments {
		if !arg.Required() {
			continue
		}
		given := app.Arguments.ForName(arg.Name)
		if given != nil && given.Value != nil && given.Value.Kind != ast.NullValue {
			continue
		}
		diags = append(diags, newError(
			def.Name,
			CodeApplicationMissingRequiredArgument,
			[]string{app.Subgraph},
			`Directive "@%s" is applied to "%s" in subgraph "%s" without the required argument "%s"`,
			def.Name, app.Coordinate.String(), app.Subgraph, arg.Name,
		))
	}

	return diags
}

func argumentsKey(args ast.ArgumentList) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, arg.Name+":"+arg.Value.String())
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}
