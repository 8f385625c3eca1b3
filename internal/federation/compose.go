package federation

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"
	"github.com/vvakame/fedecompose/internal/directives"
	"github.com/vvakame/fedecompose/internal/graphql"
	"github.com/vvakame/fedecompose/internal/log"
)

// builtInDirectiveFilter returns the predicate deciding which applied directives
// survive on the copied subgraph definitions.
// Custom and federation directives are always stripped there, exposed custom
// applications are attached again once the supergraph is built.
func builtInDirectiveFilter(policy BuiltInDirectivesPolicy, exposure *directives.ExposureConfig) func(*ast.Directive) bool {
	return func(directive *ast.Directive) bool {
		if !graphql.IsSpecifiedDirective(directive.Name) {
			return false
		}
		switch policy {
		case BuiltInsFollowExposure:
			return exposure.IsExposed(directive.Name)
		default:
			return true
		}
	}
}

func buildTypeDefinitionsMap(serviceList []*ServiceDefinition, keep func(*ast.Directive) bool) (TypeDefinitionsMap, []string) {
	typeDefinitionsMap := TypeDefinitionsMap{}
	var typeNames []string

	for _, service := range serviceList {
		definitions := make(ast.DefinitionList, 0, len(service.TypeDefs.Definitions)+len(service.TypeDefs.Extensions))
		definitions = append(definitions, service.TypeDefs.Definitions...)
		definitions = append(definitions, service.TypeDefs.Extensions...)
		for _, definition := range definitions {
			if _, ok := typeDefinitionsMap[definition.Name]; !ok {
				typeNames = append(typeNames, definition.Name)
			}
			typeDefinitionsMap[definition.Name] = append(typeDefinitionsMap[definition.Name], &TypeDefinitionEntity{
				ServiceName: service.Name,
				Definition:  copyDefinition(definition, keep),
			})
		}
	}

	sort.Strings(typeNames)
	return typeDefinitionsMap, typeNames
}

// mergeTypeDefinitions folds every subgraph's view of a type into one definition.
// Members are unioned by name and the first subgraph declaring a member wins.
func mergeTypeDefinitions(typeName string, entities []*TypeDefinitionEntity) (*ast.Definition, error) {
	first := entities[0].Definition
	merged := &ast.Definition{
		Kind:        first.Kind,
		Name:        typeName,
		Description: first.Description,
		Position:    first.Position,
	}

	for _, entity := range entities {
		def := entity.Definition
		if def.Kind != merged.Kind {
			return nil, newCodedError(
				def.Position,
				"TYPE_KIND_MISMATCH",
				"%s Type is declared as %s in subgraph %q but as %s in subgraph %q.",
				logServiceAndType(entity.ServiceName, typeName, ""),
				def.Kind, entity.ServiceName, merged.Kind, entities[0].ServiceName,
			)
		}

		if merged.Description == "" {
			merged.Description = def.Description
		}
		for _, directive := range def.Directives {
			if merged.Directives.ForName(directive.Name) == nil {
				merged.Directives = append(merged.Directives, directive)
			}
		}
		merged.Interfaces = appendUniqueStrings(merged.Interfaces, def.Interfaces...)
		merged.Types = appendUniqueStrings(merged.Types, def.Types...)
		for _, field := range def.Fields {
			if merged.Fields.ForName(field.Name) == nil {
				merged.Fields = append(merged.Fields, field)
			}
		}
		for _, enumValue := range def.EnumValues {
			if merged.EnumValues.ForName(enumValue.Name) == nil {
				merged.EnumValues = append(merged.EnumValues, enumValue)
			}
		}
	}

	return merged, nil
}

func buildSchemaFromTypeDefinitions(typeDefinitionsMap TypeDefinitionsMap, typeNames []string, mergedDirectives []*directives.MergedDefinition) (*ast.SchemaDocument, []error) {
	var errors []error

	// prelude をベースにしないと String とか各種scalarがなくてめんどくさいことになる
	schemaDoc, gErr := parser.ParseSchema(validator.Prelude)
	if gErr != nil {
		errors = append(errors, gErr)
		return nil, errors
	}

	for _, typeName := range typeNames {
		merged, err := mergeTypeDefinitions(typeName, typeDefinitionsMap[typeName])
		if err != nil {
			errors = append(errors, err)
			continue
		}
		schemaDoc.Definitions = append(schemaDoc.Definitions, merged)
	}

	for _, def := range mergedDirectives {
		schemaDoc.Directives = append(schemaDoc.Directives, def.ToAST())
	}

	return schemaDoc, errors
}

// attachApplications puts every kept application back on the supergraph element
// at its coordinate. Applications on the schema definition are returned separately.
func attachApplications(schema *ast.Schema, mergeResult *directives.Result) (ast.DirectiveList, []error) {
	var schemaDirectives ast.DirectiveList
	var errors []error

	for _, directiveResult := range mergeResult.Directives {
		if directiveResult.Outcome != directives.OutcomeMerged {
			continue
		}
		def := schema.Directives[directiveResult.Name]

		for _, app := range directiveResult.Applications {
			directive := app.ToAST(def)
			coordinate := app.Coordinate

			if coordinate.Schema {
				schemaDirectives = append(schemaDirectives, directive)
				continue
			}

			missing := func() {
				errors = append(errors, newCodedError(
					app.Position,
					"DIRECTIVE_APPLICATION_TARGET_MISSING",
					"%s @%s is applied on %s which is not part of the supergraph.",
					logServiceAndType(app.Subgraph, coordinate.Type, coordinate.Field),
					app.Directive, coordinate.String(),
				))
			}

			namedType := schema.Types[coordinate.Type]
			if namedType == nil || namedType.BuiltIn {
				missing()
				continue
			}
			directive.ParentDefinition = namedType

			switch {
			case coordinate.Field == "":
				namedType.Directives = append(namedType.Directives, directive)

			case namedType.Kind == ast.Enum:
				enumValue := namedType.EnumValues.ForName(coordinate.Field)
				if enumValue == nil {
					missing()
					continue
				}
				enumValue.Directives = append(enumValue.Directives, directive)

			default:
				field := namedType.Fields.ForName(coordinate.Field)
				if field == nil {
					missing()
					continue
				}
				if coordinate.Argument == "" {
					field.Directives = append(field.Directives, directive)
					continue
				}
				argDef := field.Arguments.ForName(coordinate.Argument)
				if argDef == nil {
					missing()
					continue
				}
				argDef.Directives = append(argDef.Directives, directive)
			}
		}
	}

	return schemaDirectives, errors
}

// printSchemaDirectives renders applications on the schema definition, which the
// gqlparser formatter can't print from *ast.Schema.
func printSchemaDirectives(schemaDirectives ast.DirectiveList) string {
	if len(schemaDirectives) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString("extend schema")
	for _, directive := range schemaDirectives {
		buf.WriteString(" @")
		buf.WriteString(directive.Name)
		if len(directive.Arguments) == 0 {
			continue
		}
		args := make([]string, 0, len(directive.Arguments))
		for _, arg := range directive.Arguments {
			args = append(args, fmt.Sprintf("%s: %s", arg.Name, arg.Value.String()))
		}
		buf.WriteString("(")
		buf.WriteString(strings.Join(args, ", "))
		buf.WriteString(")")
	}
	buf.WriteString("\n\n")

	return buf.String()
}

func composeServices(ctx context.Context, services []*ServiceDefinition, opts *Options) *CompositionResult {
	logger := log.FromContext(ctx)
	result := &CompositionResult{}

	exposure, err := directives.ParseExposure(opts.ExposeDirectives)
	if err != nil {
		result.Errors = append(result.Errors, err)
		return result
	}
	// known directives are always part of the supergraph
	mergeExposure := exposure.With(knownDirectiveNames()...)

	dm := newDirectiveMetadata(ctx, services)

	merger := directives.NewMerger(&directives.Options{
		Parallelism: opts.Parallelism,
	})
	mergeResult, err := merger.Merge(ctx, &directives.Input{
		Declarations: dm.Declarations,
		Applications: dm.Applications,
		Exposure:     mergeExposure,
	})
	if err != nil {
		result.Errors = append(result.Errors, err)
		return result
	}
	result.Directives = mergeResult
	result.Hints = mergeResult.Hints()
	if mergeResult.HasErrors() {
		for _, diag := range mergeResult.Errors() {
			result.Errors = append(result.Errors, diag.GQLError())
		}
		return result
	}

	keep := builtInDirectiveFilter(opts.BuiltInDirectives, exposure)
	typeDefinitionsMap, typeNames := buildTypeDefinitionsMap(services, keep)

	schemaDoc, errors := buildSchemaFromTypeDefinitions(typeDefinitionsMap, typeNames, mergeResult.Definitions())
	if len(errors) != 0 {
		result.Errors = append(result.Errors, errors...)
		return result
	}

	schema, gErr := validator.ValidateSchemaDocument(schemaDoc)
	if gErr != nil {
		result.Errors = append(result.Errors, gErr)
		return result
	}

	schemaDirectives, errors := attachApplications(schema, mergeResult)
	if len(errors) != 0 {
		result.Errors = append(result.Errors, errors...)
		return result
	}

	if opts.SortSchema {
		graphql.LexicographicSortSchema(schema)
		sort.SliceStable(schemaDirectives, func(i, j int) bool {
			return schemaDirectives[i].Name < schemaDirectives[j].Name
		})
	}

	var buf bytes.Buffer
	buf.WriteString(printSchemaDirectives(schemaDirectives))
	formatter.NewFormatter(&buf).FormatSchema(schema)

	logger.V(1).Info("supergraph composed", "types", len(typeNames), "directives", len(mergeResult.Definitions()))

	result.Schema = schema
	result.SchemaDirectives = schemaDirectives
	result.SupergraphSDL = buf.String()

	return result
}
