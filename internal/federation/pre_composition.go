package federation

import (
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vvakame/fedecompose/internal/directives"
)

func preCompositionValidators() []func(*ServiceDefinition) []error {
	return []func(definition *ServiceDefinition) []error{
		directiveDefinitionDuplicated,
		undefinedDirectiveUsed,
		directiveUsedOnInvalidLocation,
		nonRepeatableDirectiveRepeated,
	}
}

// A subgraph declares each custom directive at most once
func directiveDefinitionDuplicated(service *ServiceDefinition) []error {
	serviceName := service.Name
	typeDefs := service.TypeDefs

	var errors []error

	seen := make(map[string]bool)
	for _, def := range typeDefs.Directives {
		if !seen[def.Name] {
			seen[def.Name] = true
			continue
		}
		errors = append(errors, newCodedError(
			def.Position,
			"DIRECTIVE_DEFINITION_DUPLICATED",
			"%s Directive @%s is declared more than once.",
			logServiceAndType(serviceName, "@"+def.Name, ""),
			def.Name,
		))
	}

	return errors
}

// Every custom directive applied in a subgraph is declared by that subgraph,
// except the known ones like @tag.
func undefinedDirectiveUsed(service *ServiceDefinition) []error {
	serviceName := service.Name
	typeDefs := service.TypeDefs

	var errors []error

	defs, _ := subgraphDirectiveDefinitions(typeDefs)
	walkDirectiveApplications(typeDefs, func(directive *ast.Directive, coordinate directives.Coordinate) {
		if !isCustomDirective(directive.Name) {
			return
		}
		if defs.ForName(directive.Name) != nil {
			return
		}
		errors = append(errors, newCodedError(
			directive.Position,
			"UNDEFINED_DIRECTIVE_USED",
			"%s Directive @%s is used on %s but is not declared in this subgraph.",
			logServiceAndType(serviceName, coordinate.Type, coordinate.Field),
			directive.Name, coordinate.String(),
		))
	})

	return errors
}

// Custom directives are applied only on the locations their subgraph declaration allows
func directiveUsedOnInvalidLocation(service *ServiceDefinition) []error {
	serviceName := service.Name
	typeDefs := service.TypeDefs

	var errors []error

	defs, _ := subgraphDirectiveDefinitions(typeDefs)
	walkDirectiveApplications(typeDefs, func(directive *ast.Directive, coordinate directives.Coordinate) {
		if !isCustomDirective(directive.Name) {
			return
		}
		def := defs.ForName(directive.Name)
		if def == nil {
			return
		}
		location := coordinate.Location()
		for _, l := range def.Locations {
			if l == location {
				return
			}
		}
		errors = append(errors, newCodedError(
			directive.Position,
			"INVALID_DIRECTIVE_LOCATION",
			"%s Directive @%s may not be used on %s.",
			logServiceAndType(serviceName, coordinate.Type, coordinate.Field),
			directive.Name, location,
		))
	})

	return errors
}

// A non-repeatable custom directive is applied at most once per element in a subgraph
func nonRepeatableDirectiveRepeated(service *ServiceDefinition) []error {
	serviceName := service.Name
	typeDefs := service.TypeDefs

	var errors []error

	type usageKey struct {
		directive  string
		coordinate directives.Coordinate
	}

	defs, _ := subgraphDirectiveDefinitions(typeDefs)
	seen := make(map[usageKey]bool)
	walkDirectiveApplications(typeDefs, func(directive *ast.Directive, coordinate directives.Coordinate) {
		if !isCustomDirective(directive.Name) {
			return
		}
		def := defs.ForName(directive.Name)
		if def == nil || def.IsRepeatable {
			return
		}
		key := usageKey{directive: directive.Name, coordinate: coordinate}
		if !seen[key] {
			seen[key] = true
			return
		}
		errors = append(errors, newCodedError(
			directive.Position,
			"NON_REPEATABLE_DIRECTIVE_APPLIED_MULTIPLE_TIMES",
			"%s Directive @%s is not repeatable but is applied more than once on %s.",
			logServiceAndType(serviceName, coordinate.Type, coordinate.Field),
			directive.Name, coordinate.String(),
		))
	})

	return errors
}
