package directives

import (
	"github.com/vektah/gqlparser/v2/ast"
)

type declaredArgument struct {
	decl *Declaration
	arg  *ArgumentSignature
}

// ReconcileArguments merges the argument signatures of all declarations of one directive.
// The merged list follows first-seen order across declarations.
// When a fatal diagnostic is produced the returned signature is nil.
//
// Only one representative pair of subgraphs is reported per offending argument.
func ReconcileArguments(decls []*Declaration) ([]*ArgumentSignature, Diagnostics) {
	if len(decls) == 0 {
		return nil, nil
	}
	directiveName := decls[0].Name

	var argNames []string
	seen := make(map[string]bool)
	for _, decl := range decls {
		for _, arg := range decl.Arguments {
			if seen[arg.Name] {
				continue
			}
			seen[arg.Name] = true
			argNames = append(argNames, arg.Name)
		}
	}

	var merged []*ArgumentSignature
	var diags Diagnostics
	for _, argName := range argNames {
		var present []*declaredArgument
		var requiredIn, missingIn []*Declaration
		for _, decl := range decls {
			arg := decl.Argument(argName)
			if arg == nil {
				missingIn = append(missingIn, decl)
				continue
			}
			present = append(present, &declaredArgument{decl: decl, arg: arg})
			if arg.Required() {
				requiredIn = append(requiredIn, decl)
			}
		}

		if len(requiredIn) != 0 && len(missingIn) != 0 {
			diags = append(diags, newError(
				directiveName,
				CodeRequiredArgumentMissingInSomeSubgraph,
				[]string{requiredIn[0].Subgraph, missingIn[0].Subgraph},
				`Argument "@%s(%s:)" is required in some subgraphs but does not appear in all subgraphs: it is required in subgraph "%s" but does not appear in subgraph "%s"`,
				directiveName, argName, requiredIn[0].Subgraph, missingIn[0].Subgraph,
			))
			continue
		}

		arg, argDiags := mergeArgument(directiveName, argName, present)
		diags = append(diags, argDiags...)
		if arg != nil {
			merged = append(merged, arg)
		}
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return merged, diags
}

func mergeArgument(directiveName, argName string, present []*declaredArgument) (*ArgumentSignature, Diagnostics) {
	first := present[0]
	merged := &ArgumentSignature{
		Name:         argName,
		Type:         first.arg.Type,
		DefaultValue: first.arg.DefaultValue,
	}
	defaultFrom := first
	var diags Diagnostics

	for _, current := range present[1:] {
		typ, ok := mergeInputType(merged.Type, current.arg.Type)
		if !ok {
			diags = append(diags, newError(
				directiveName,
				CodeDirectiveDefinitionInvalid,
				[]string{first.decl.Subgraph, current.decl.Subgraph},
				`Argument "@%s(%s:)" has incompatible types across subgraphs: "%s" in subgraph "%s" and "%s" in subgraph "%s"`,
				directiveName, argName, first.arg.Type.String(), first.decl.Subgraph, current.arg.Type.String(), current.decl.Subgraph,
			))
			return nil, diags
		}
		merged.Type = typ

		if current.arg.DefaultValue == nil {
			continue
		}
		if merged.DefaultValue == nil {
			merged.DefaultValue = current.arg.DefaultValue
			defaultFrom = current
			continue
		}
		if merged.DefaultValue.String() != current.arg.DefaultValue.String() {
			diags = append(diags, newHint(
				directiveName,
				CodeInconsistentArgumentDefaultValue,
				[]string{defaultFrom.decl.Subgraph, current.decl.Subgraph},
				`Argument "@%s(%s:)" has inconsistent default values across subgraphs: "%s" in subgraph "%s" and "%s" in subgraph "%s"; the first one is used`,
				directiveName, argName, merged.DefaultValue.String(), defaultFrom.decl.Subgraph, current.arg.DefaultValue.String(), current.decl.Subgraph,
			))
		}
	}

	return merged, diags
}

// mergeInputType returns the most nullable type both a and b can be read as.
// Named types and list shapes must be identical; only nullability may differ.
func mergeInputType(a, b *ast.Type) (*ast.Type, bool) {
	if a == nil || b == nil {
		return nil, false
	}
	if (a.Elem == nil) != (b.Elem == nil) {
		return nil, false
	}

	merged := &ast.Type{
		NonNull:  a.NonNull && b.NonNull,
		Position: a.Position,
	}
	if a.Elem != nil {
		elem, ok := mergeInputType(a.Elem, b.Elem)
		if !ok {
			return nil, false
		}
		merged.Elem = elem
		return merged, true
	}

	if a.NamedType != b.NamedType {
		return nil, false
	}
	merged.NamedType = a.NamedType
	return merged, true
}
