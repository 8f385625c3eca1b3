package graphql

// names of the directives declared by validator.Prelude
var specifiedDirectiveNames = map[string]bool{
	"include":     true,
	"skip":        true,
	"deprecated":  true,
	"specifiedBy": true,
	"defer":       true,
}

// IsSpecifiedDirective reports whether the directive is built into every GraphQL schema.
func IsSpecifiedDirective(name string) bool {
	return specifiedDirectiveNames[name]
}
