package directives

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/gqlerror"
)

// Severity tells fatal errors from hints.
type Severity int

const (
	SeverityError Severity = iota
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityHint:
		return "hint"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// MarshalYAML is used by the hint report of the CLI.
func (s Severity) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

const (
	// errors
	CodeRequiredArgumentMissingInSomeSubgraph = "REQUIRED_ARGUMENT_MISSING_IN_SOME_SUBGRAPH"
	CodeDirectiveDefinitionInvalid            = "DIRECTIVE_DEFINITION_INVALID"
	CodeApplicationMissingRequiredArgument    = "DIRECTIVE_APPLICATION_MISSING_REQUIRED_ARGUMENT"
	CodeApplicationInvalidLocation            = "DIRECTIVE_APPLICATION_INVALID_LOCATION"

	// hints
	CodeInconsistentRepeatable             = "INCONSISTENT_TYPE_SYSTEM_DIRECTIVE_REPEATABLE"
	CodeInconsistentArgumentDefaultValue   = "INCONSISTENT_ARGUMENT_DEFAULT_VALUE"
	CodeNoExecutableLocationsIntersection  = "NO_EXECUTABLE_DIRECTIVE_LOCATIONS_INTERSECTION"
	CodeInconsistentNonRepeatableArguments = "INCONSISTENT_NON_REPEATABLE_DIRECTIVE_ARGUMENTS"
)

// Diagnostic is either a fatal composition error or a hint.
type Diagnostic struct {
	Severity  Severity `yaml:"severity"`
	Code      string   `yaml:"code"`
	Directive string   `yaml:"directive"`
	Message   string   `yaml:"message"`
	Subgraphs []string `yaml:"subgraphs,omitempty"`
}

func newError(directive, code string, subgraphs []string, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		Severity:  SeverityError,
		Code:      code,
		Directive: directive,
		Message:   fmt.Sprintf(format, args...),
		Subgraphs: subgraphs,
	}
}

func newHint(directive, code string, subgraphs []string, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		Severity:  SeverityHint,
		Code:      code,
		Directive: directive,
		Message:   fmt.Sprintf(format, args...),
		Subgraphs: subgraphs,
	}
}

func (d *Diagnostic) IsError() bool {
	return d.Severity == SeverityError
}

func (d *Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s: %s", d.Severity, d.Code, d.Message)
}

// GQLError converts the diagnostic to the error shape the rest of composition reports.
func (d *Diagnostic) GQLError() *gqlerror.Error {
	gErr := gqlerror.Errorf("%s", d.Message)
	gErr.Extensions = map[string]interface{}{
		"code": d.Code,
	}
	if len(d.Subgraphs) != 0 {
		gErr.Extensions["subgraphs"] = d.Subgraphs
	}
	return gErr
}

type Diagnostics []*Diagnostic

func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.IsError() {
			return true
		}
	}
	return false
}

func (ds Diagnostics) Errors() Diagnostics {
	var errs Diagnostics
	for _, d := range ds {
		if d.IsError() {
			errs = append(errs, d)
		}
	}
	return errs
}

func (ds Diagnostics) Hints() Diagnostics {
	var hints Diagnostics
	for _, d := range ds {
		if !d.IsError() {
			hints = append(hints, d)
		}
	}
	return hints
}
