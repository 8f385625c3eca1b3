package federation

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vvakame/fedecompose/internal/directives"
)

// for formatter
var blankPos = &ast.Position{
	Src: &ast.Source{
		BuiltIn: false,
	},
}

func logServiceAndType(serviceName, typeName, fieldName string) string {
	if fieldName != "" {
		fieldName = fmt.Sprintf(".%s", fieldName)
	}
	return fmt.Sprintf("[%s] %s%s ->", serviceName, typeName, fieldName)
}

func newCodedError(pos *ast.Position, code string, format string, args ...interface{}) *gqlerror.Error {
	var gErr *gqlerror.Error
	if pos != nil && pos.Src != nil {
		gErr = gqlerror.ErrorPosf(pos, format, args...)
	} else {
		gErr = gqlerror.Errorf(format, args...)
	}
	if gErr.Extensions == nil {
		gErr.Extensions = make(map[string]interface{})
	}
	gErr.Extensions["code"] = code
	return gErr
}

// walkDirectiveApplications calls fn for every directive applied in typeDefs,
// together with the coordinate of the element it is applied on.
func walkDirectiveApplications(typeDefs *ast.SchemaDocument, fn func(directive *ast.Directive, coordinate directives.Coordinate)) {
	visit := func(list ast.DirectiveList, coordinate directives.Coordinate) {
		for _, directive := range list {
			fn(directive, coordinate)
		}
	}

	schemaDefList := make(ast.SchemaDefinitionList, 0, len(typeDefs.Schema)+len(typeDefs.SchemaExtension))
	schemaDefList = append(schemaDefList, typeDefs.Schema...)
	schemaDefList = append(schemaDefList, typeDefs.SchemaExtension...)
	for _, schemaDef := range schemaDefList {
		visit(schemaDef.Directives, directives.SchemaCoordinate())
	}

	definitions := make(ast.DefinitionList, 0, len(typeDefs.Definitions)+len(typeDefs.Extensions))
	definitions = append(definitions, typeDefs.Definitions...)
	definitions = append(definitions, typeDefs.Extensions...)
	for _, def := range definitions {
		visit(def.Directives, directives.TypeCoordinate(def.Kind, def.Name))
		for _, field := range def.Fields {
			visit(field.Directives, directives.FieldCoordinate(def.Kind, def.Name, field.Name))
			for _, argDef := range field.Arguments {
				visit(argDef.Directives, directives.ArgumentCoordinate(def.Kind, def.Name, field.Name, argDef.Name))
			}
		}
		for _, enumValue := range def.EnumValues {
			visit(enumValue.Directives, directives.FieldCoordinate(def.Kind, def.Name, enumValue.Name))
		}
	}
}

func filterDirectives(list ast.DirectiveList, keep func(*ast.Directive) bool) ast.DirectiveList {
	newDirectives := make(ast.DirectiveList, 0, len(list))
	for _, directive := range list {
		if !keep(directive) {
			continue
		}
		copied := *directive
		copied.Arguments = append(ast.ArgumentList(nil), directive.Arguments...)
		newDirectives = append(newDirectives, &copied)
	}
	return newDirectives
}

// copyDefinition returns a copy of def, down to its arguments and enum values,
// in which only the applied directives accepted by keep remain.
// Subgraph documents are never modified.
func copyDefinition(def *ast.Definition, keep func(*ast.Directive) bool) *ast.Definition {
	copied := *def
	copied.Directives = filterDirectives(def.Directives, keep)
	copied.Interfaces = append([]string(nil), def.Interfaces...)
	copied.Types = append([]string(nil), def.Types...)

	copied.Fields = nil
	for _, field := range def.Fields {
		copiedField := *field
		copiedField.Directives = filterDirectives(field.Directives, keep)
		copiedField.Arguments = nil
		for _, argDef := range field.Arguments {
			copiedArg := *argDef
			copiedArg.Directives = filterDirectives(argDef.Directives, keep)
			copiedField.Arguments = append(copiedField.Arguments, &copiedArg)
		}
		copied.Fields = append(copied.Fields, &copiedField)
	}

	copied.EnumValues = nil
	for _, enumValue := range def.EnumValues {
		copiedValue := *enumValue
		copiedValue.Directives = filterDirectives(enumValue.Directives, keep)
		copied.EnumValues = append(copied.EnumValues, &copiedValue)
	}

	return &copied
}

func appendUniqueStrings(list []string, values ...string) []string {
OUTER:
	for _, value := range values {
		for _, known := range list {
			if known == value {
				continue OUTER
			}
		}
		list = append(list, value)
	}
	return list
}
