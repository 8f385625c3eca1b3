package graphql

import (
	"sort"

	"github.com/vektah/gqlparser/v2/ast"
)

// LexicographicSortSchema sorts the members of every type of schema in place.
// Applied directives keep their relative order when they share a name, and
// directive definition arguments are left as declared.
func LexicographicSortSchema(schema *ast.Schema) *ast.Schema {
	if schema == nil {
		return nil
	}

	for _, def := range schema.Types {
		if def.BuiltIn {
			continue
		}
		sortDefinition(def)
	}
	for _, defs := range schema.PossibleTypes {
		sortDefinitionList(defs)
	}
	for _, defs := range schema.Implements {
		sortDefinitionList(defs)
	}

	return schema
}

func sortDefinition(def *ast.Definition) {
	sortDirectiveList(def.Directives)
	sort.Strings(def.Interfaces)
	sort.Strings(def.Types)

	sort.SliceStable(def.Fields, func(i, j int) bool {
		return def.Fields[i].Name < def.Fields[j].Name
	})
	for _, field := range def.Fields {
		sortDirectiveList(field.Directives)
		sort.SliceStable(field.Arguments, func(i, j int) bool {
			return field.Arguments[i].Name < field.Arguments[j].Name
		})
		for _, argDef := range field.Arguments {
			sortDirectiveList(argDef.Directives)
		}
	}

	sort.SliceStable(def.EnumValues, func(i, j int) bool {
		return def.EnumValues[i].Name < def.EnumValues[j].Name
	})
	for _, enumValue := range def.EnumValues {
		sortDirectiveList(enumValue.Directives)
	}
}

func sortDirectiveList(directives ast.DirectiveList) {
	sort.SliceStable(directives, func(i, j int) bool {
		return directives[i].Name < directives[j].Name
	})
	for _, directive := range directives {
		sort.SliceStable(directive.Arguments, func(i, j int) bool {
			return directive.Arguments[i].Name < directive.Arguments[j].Name
		})
	}
}

func sortDefinitionList(defs []*ast.Definition) {
	sort.SliceStable(defs, func(i, j int) bool {
		return defs[i].Name < defs[j].Name
	})
}
