package directives

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"github.com/vvakame/fedecompose/internal/log"
	"golang.org/x/sync/errgroup"
)

// Outcome is the final state of one directive name in a merge.
type Outcome int

const (
	OutcomeMerged Outcome = iota + 1
	OutcomeDropped
	OutcomeRejected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMerged:
		return "merged"
	case OutcomeDropped:
		return "dropped"
	case OutcomeRejected:
		return "rejected"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Input is every custom directive declaration and application of a composition run.
type Input struct {
	Declarations []*Declaration
	Applications []*Application
	Exposure     *ExposureConfig
}

// DirectiveResult is the merge result of one directive name.
type DirectiveResult struct {
	Name         string
	Outcome      Outcome
	Rule         LocationRule
	Definition   *MergedDefinition // nil unless merged
	Applications []*Application
	Diagnostics  Diagnostics
}

// Result aggregates every DirectiveResult of a merge.
type Result struct {
	// sorted by directive name
	Directives  []*DirectiveResult
	Diagnostics Diagnostics
}

func (r *Result) HasErrors() bool {
	return r.Diagnostics.HasErrors()
}

func (r *Result) Errors() Diagnostics {
	return r.Diagnostics.Errors()
}

func (r *Result) Hints() Diagnostics {
	return r.Diagnostics.Hints()
}

// Directive returns the result for name, or nil when it was never declared.
func (r *Result) Directive(name string) *DirectiveResult {
	idx := sort.Search(len(r.Directives), func(i int) bool {
		return r.Directives[i].Name >= name
	})
	if idx < len(r.Directives) && r.Directives[idx].Name == name {
		return r.Directives[idx]
	}
	return nil
}

// Definitions returns the definitions to install in the supergraph, sorted by name.
func (r *Result) Definitions() []*MergedDefinition {
	var defs []*MergedDefinition
	for _, d := range r.Directives {
		if d.Outcome == OutcomeMerged {
			defs = append(defs, d.Definition)
		}
	}
	return defs
}

// Applications returns every kept application, grouped by directive name.
func (r *Result) Applications() []*Application {
	var apps []*Application
	for _, d := range r.Directives {
		apps = append(apps, d.Applications...)
	}
	return apps
}

// Options configures a Merger.
type Options struct {
	// Parallelism bounds the number of directives merged concurrently.
	// Zero means runtime.GOMAXPROCS(0).
	Parallelism int
}

// Merger composes custom directives across subgraphs.
type Merger struct {
	parallelism int
}

func NewMerger(opts *Options) *Merger {
	m := &Merger{}
	if opts != nil {
		m.parallelism = opts.Parallelism
	}
	if m.parallelism <= 0 {
		m.parallelism = runtime.GOMAXPROCS(0)
	}
	return m
}

// Merge composes every directive declared in input.
// Output ordering depends only on directive names and per-directive input order.
func (m *Merger) Merge(ctx context.Context, input *Input) (*Result, error) {
	logger := log.FromContext(ctx).WithName("directives")

	declsByName := make(map[string][]*Declaration)
	for _, decl := range input.Declarations {
		declsByName[decl.Name] = append(declsByName[decl.Name], decl)
	}
	appsByName := make(map[string][]*Application)
	for _, app := range input.Applications {
		if _, ok := declsByName[app.Directive]; !ok {
			logger.V(1).Info("ignore application of undeclared directive", "directive", app.Directive, "coordinate", app.Coordinate.String(), "subgraph", app.Subgraph)
			continue
		}
		appsByName[app.Directive] = append(appsByName[app.Directive], app)
	}

	names := make([]string, 0, len(declsByName))
	for name := range declsByName {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]*DirectiveResult, len(names))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(m.parallelism)
	for i, name := range names {
		i, name := i, name
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			results[i] = mergeDirective(name, declsByName[name], appsByName[name], input.Exposure.IsExposed(name))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	result := &Result{Directives: results}
	for _, r := range results {
		result.Diagnostics = append(result.Diagnostics, r.Diagnostics...)

		logger.V(1).Info("directive composed", "directive", r.Name, "outcome", r.Outcome.String(), "rule", r.Rule.String(), "applications", len(r.Applications))
		for _, hint := range r.Diagnostics.Hints() {
			logger.Info(hint.Message, "code", hint.Code, "directive", r.Name)
		}
	}

	return result, nil
}

func mergeDirective(name string, decls []*Declaration, apps []*Application, exposed bool) *DirectiveResult {
	result := &DirectiveResult{Name: name}

	args, diags := ReconcileArguments(decls)
	result.Diagnostics = append(result.Diagnostics, diags...)
	if diags.HasErrors() {
		result.Outcome = OutcomeRejected
		return result
	}

	decision, diags := DecideLocations(decls, exposed)
	result.Diagnostics = append(result.Diagnostics, diags...)
	result.Rule = decision.Rule

	repeatable, diags := MergeRepeatable(decls)
	result.Diagnostics = append(result.Diagnostics, diags...)

	if decision.IsAbsent() {
		result.Outcome = OutcomeDropped
		return result
	}

	def := &MergedDefinition{
		Name:       name,
		Locations:  decision.Locations,
		Repeatable: repeatable,
		Arguments:  args,
	}

	kept, diags := FilterApplications(def, decision, exposed, apps)
	result.Diagnostics = append(result.Diagnostics, diags...)
	if diags.HasErrors() {
		result.Outcome = OutcomeRejected
		return result
	}

	result.Outcome = OutcomeMerged
	result.Definition = def
	result.Applications = kept
	return result
}
