package directives

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
)

// for formatter
var blankPos = &ast.Position{
	Src: &ast.Source{
		BuiltIn: false,
	},
}

// ArgumentSignature is an argument of a directive definition.
type ArgumentSignature struct {
	Name         string
	Type         *ast.Type
	DefaultValue *ast.Value // optional
}

func (a *ArgumentSignature) HasDefault() bool {
	return a.DefaultValue != nil
}

// Required reports whether every application must supply the argument.
func (a *ArgumentSignature) Required() bool {
	return a.Type != nil && a.Type.NonNull && !a.HasDefault()
}

// Declaration is one subgraph's definition of a directive.
type Declaration struct {
	Name       string
	Subgraph   string
	Locations  []ast.DirectiveLocation
	Repeatable bool
	Arguments  []*ArgumentSignature
}

// NewDeclaration captures def as declared by subgraph.
func NewDeclaration(subgraph string, def *ast.DirectiveDefinition) *Declaration {
	decl := &Declaration{
		Name:       def.Name,
		Subgraph:   subgraph,
		Locations:  append([]ast.DirectiveLocation{}, def.Locations...),
		Repeatable: def.IsRepeatable,
	}
	for _, argDef := range def.Arguments {
		decl.Arguments = append(decl.Arguments, &ArgumentSignature{
			Name:         argDef.Name,
			Type:         argDef.Type,
			DefaultValue: argDef.DefaultValue,
		})
	}
	return decl
}

func (d *Declaration) Argument(name string) *ArgumentSignature {
	for _, arg := range d.Arguments {
		if arg.Name == name {
			return arg
		}
	}
	return nil
}

func (d *Declaration) HasLocation(location ast.DirectiveLocation) bool {
	for _, l := range d.Locations {
		if l == location {
			return true
		}
	}
	return false
}

// Coordinate identifies an element of a subgraph schema.
// A zero Type with Schema set means the schema definition itself.
type Coordinate struct {
	Schema   bool
	TypeKind ast.DefinitionKind
	Type     string
	Field    string // field, input field or enum value
	Argument string
}

// SchemaCoordinate points at the schema definition.
func SchemaCoordinate() Coordinate {
	return Coordinate{Schema: true}
}

func TypeCoordinate(kind ast.DefinitionKind, typeName string) Coordinate {
	return Coordinate{Type: typeName, TypeKind: kind}
}

func FieldCoordinate(kind ast.DefinitionKind, typeName, fieldName string) Coordinate {
	return Coordinate{Type: typeName, TypeKind: kind, Field: fieldName}
}

func ArgumentCoordinate(kind ast.DefinitionKind, typeName, fieldName, argName string) Coordinate {
	return Coordinate{Type: typeName, TypeKind: kind, Field: fieldName, Argument: argName}
}

// Location is the directive location an application at this coordinate is made on.
func (c Coordinate) Location() ast.DirectiveLocation {
	if c.Schema {
		return ast.LocationSchema
	}
	if c.Argument != "" {
		return ast.LocationArgumentDefinition
	}
	if c.Field != "" {
		switch c.TypeKind {
		case ast.Enum:
			return ast.LocationEnumValue
		case ast.InputObject:
			return ast.LocationInputFieldDefinition
		default:
			return ast.LocationFieldDefinition
		}
	}
	switch c.TypeKind {
	case ast.Scalar:
		return ast.LocationScalar
	case ast.Interface:
		return ast.LocationInterface
	case ast.Union:
		return ast.LocationUnion
	case ast.Enum:
		return ast.LocationEnum
	case ast.InputObject:
		return ast.LocationInputObject
	default:
		return ast.LocationObject
	}
}

func (c Coordinate) String() string {
	switch {
	case c.Schema:
		return "<schema>"
	case c.Argument != "":
		return fmt.Sprintf("%s.%s(%s:)", c.Type, c.Field, c.Argument)
	case c.Field != "":
		return fmt.Sprintf("%s.%s", c.Type, c.Field)
	default:
		return c.Type
	}
}

// Application is one usage of a directive on a subgraph element.
type Application struct {
	Directive  string
	Coordinate Coordinate
	Arguments  ast.ArgumentList
	Subgraph   string
	Position   *ast.Position
}

// ToAST returns the directive as it should be attached on the supergraph element.
func (a *Application) ToAST(def *ast.DirectiveDefinition) *ast.Directive {
	return &ast.Directive{
		Name:       a.Directive,
		Arguments:  append(ast.ArgumentList{}, a.Arguments...),
		Position:   a.Position,
		Definition: def,
		Location:   a.Coordinate.Location(),
	}
}

// MergedDefinition is the supergraph definition of a directive that survived composition.
type MergedDefinition struct {
	Name       string
	Locations  []ast.DirectiveLocation
	Repeatable bool
	Arguments  []*ArgumentSignature
}

func (m *MergedDefinition) Argument(name string) *ArgumentSignature {
	for _, arg := range m.Arguments {
		if arg.Name == name {
			return arg
		}
	}
	return nil
}

func (m *MergedDefinition) HasLocation(location ast.DirectiveLocation) bool {
	for _, l := range m.Locations {
		if l == location {
			return true
		}
	}
	return false
}

func (m *MergedDefinition) ToAST() *ast.DirectiveDefinition {
	def := &ast.DirectiveDefinition{
		Name:         m.Name,
		Locations:    append([]ast.DirectiveLocation{}, m.Locations...),
		IsRepeatable: m.Repeatable,
		Position:     blankPos,
	}
	for _, arg := range m.Arguments {
		def.Arguments = append(def.Arguments, &ast.ArgumentDefinition{
			Name:         arg.Name,
			Type:         arg.Type,
			DefaultValue: arg.DefaultValue,
			Position:     blankPos,
		})
	}
	return def
}
