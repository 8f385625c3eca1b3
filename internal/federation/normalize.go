package federation

import (
	"context"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vvakame/fedecompose/internal/graphql"
	"github.com/vvakame/fedecompose/internal/log"
)

var defaultRootOperationNameLookup = map[ast.Operation]string{
	ast.Query:        "Query",
	ast.Mutation:     "Mutation",
	ast.Subscription: "Subscription",
}

// federation primitives every subgraph may expose through its _service SDL
var federationTypeNames = map[string]bool{
	"_Service":      true,
	"_Any":          true,
	"_FieldSet":     true,
	"_Entity":       true,
	"link__Import":  true,
	"link__Purpose": true,
}

var specifiedScalarNames = map[string]bool{
	"Int":     true,
	"Float":   true,
	"String":  true,
	"Boolean": true,
	"ID":      true,
}

// normalizeTypeDefs returns a copy of typeDefs in which root operation types carry
// their default names and the federation primitives are stripped.
// The original document is left untouched.
func normalizeTypeDefs(ctx context.Context, typeDefs *ast.SchemaDocument) *ast.SchemaDocument {
	return stripCommonPrimitives(
		ctx,
		defaultRootOperationTypes(typeDefs),
	)
}

// rootOperationTypeMap maps the given root operation type names to their
// respective default operation type names, i.e. {RootQuery: 'Query'}.
func rootOperationTypeMap(typeDefs *ast.SchemaDocument) map[string]string {
	rootTypeMap := make(map[string]string)

	schemaDefList := make(ast.SchemaDefinitionList, 0, len(typeDefs.Schema)+len(typeDefs.SchemaExtension))
	schemaDefList = append(schemaDefList, typeDefs.Schema...)
	schemaDefList = append(schemaDefList, typeDefs.SchemaExtension...)
	for _, def := range schemaDefList {
		for _, node := range def.OperationTypes {
			defaultName := defaultRootOperationNameLookup[node.Operation]
			if defaultName == "" || defaultName == node.Type {
				continue
			}
			rootTypeMap[node.Type] = defaultName
		}
	}

	return rootTypeMap
}

func defaultRootOperationTypes(typeDefs *ast.SchemaDocument) *ast.SchemaDocument {
	rootTypeMap := rootOperationTypeMap(typeDefs)
	if len(rootTypeMap) == 0 {
		return typeDefs
	}

	copied := *typeDefs
	renameDefs := func(defs ast.DefinitionList) ast.DefinitionList {
		newDefs := make(ast.DefinitionList, 0, len(defs))
		for _, def := range defs {
			newDefs = append(newDefs, renameTypeReferences(def, rootTypeMap))
		}
		return newDefs
	}
	copied.Definitions = renameDefs(typeDefs.Definitions)
	copied.Extensions = renameDefs(typeDefs.Extensions)

	return &copied
}

// renameTypeReferences renames def itself and every field or argument type that
// refers to a renamed root operation type.
func renameTypeReferences(def *ast.Definition, rootTypeMap map[string]string) *ast.Definition {
	copied := *def
	if newName, ok := rootTypeMap[def.Name]; ok {
		copied.Name = newName
	}

	copied.Fields = nil
	for _, field := range def.Fields {
		copiedField := *field
		copiedField.Type = renameType(field.Type, rootTypeMap)
		copiedField.Arguments = nil
		for _, argDef := range field.Arguments {
			copiedArg := *argDef
			copiedArg.Type = renameType(argDef.Type, rootTypeMap)
			copiedField.Arguments = append(copiedField.Arguments, &copiedArg)
		}
		copied.Fields = append(copied.Fields, &copiedField)
	}

	return &copied
}

func renameType(t *ast.Type, rootTypeMap map[string]string) *ast.Type {
	if t == nil {
		return nil
	}
	copied := *t
	if t.Elem != nil {
		copied.Elem = renameType(t.Elem, rootTypeMap)
	} else if newName, ok := rootTypeMap[t.NamedType]; ok {
		copied.NamedType = newName
	}
	return &copied
}

// This removes the following from a GraphQL Document:
// directive definitions: federation directives and the specified directives
// types: _Service, _Any, _FieldSet, _Entity, link__Import, link__Purpose and the specified scalars
// Query fields: _service, _entities
func stripCommonPrimitives(ctx context.Context, document *ast.SchemaDocument) *ast.SchemaDocument {
	logger := log.FromContext(ctx)

	copied := *document

	copied.Directives = make(ast.DirectiveDefinitionList, 0, len(document.Directives))
	for _, node := range document.Directives {
		if isFederationDirective(node.Name) || graphql.IsSpecifiedDirective(node.Name) {
			logger.V(1).Info("strip directive definition", "directive", node.Name)
			continue
		}
		copied.Directives = append(copied.Directives, node)
	}

	processDefs := func(defs ast.DefinitionList) ast.DefinitionList {
		newDefs := make(ast.DefinitionList, 0, len(defs))
		for _, node := range defs {
			if federationTypeNames[node.Name] {
				continue
			}
			if node.Kind == ast.Scalar && specifiedScalarNames[node.Name] {
				continue
			}

			if node.Kind == ast.Object && node.Name == "Query" {
				newFieldDefs := make(ast.FieldList, 0, len(node.Fields))
				for _, fieldDefinition := range node.Fields {
					switch fieldDefinition.Name {
					case "_service", "_entities":
						// ignore
					default:
						newFieldDefs = append(newFieldDefs, fieldDefinition)
					}
				}
				// If the 'Query' type is now empty just remove it
				if len(newFieldDefs) == 0 {
					continue
				}
				if len(newFieldDefs) != len(node.Fields) {
					copiedNode := *node
					copiedNode.Fields = newFieldDefs
					node = &copiedNode
				}
			}

			newDefs = append(newDefs, node)
		}
		return newDefs
	}
	copied.Definitions = processDefs(document.Definitions)
	copied.Extensions = processDefs(document.Extensions)

	return &copied
}
