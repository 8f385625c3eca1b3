package federation

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"github.com/vvakame/fedecompose/internal/log"
)

// ComposeAndValidate composes the subgraphs into a supergraph.
// The result always carries the hints collected so far. When err is not nil,
// result.Errors lists every fatal error and result.Schema is nil.
func ComposeAndValidate(ctx context.Context, serviceList []*ServiceDefinition, opts *Options) (*CompositionResult, error) {
	if opts == nil {
		opts = &Options{}
	}

	logger := log.FromContext(ctx).WithName("federation")
	ctx = log.WithLogger(ctx, logger)

	var errors []error

	errors = validateServicesBeforeNormalization(ctx, serviceList)

	normalizedServiceList := make([]*ServiceDefinition, 0, len(serviceList))
	for _, service := range serviceList {
		typeDefs := normalizeTypeDefs(log.WithSubgraph(ctx, service.Name), service.TypeDefs)
		normalizedServiceList = append(normalizedServiceList, &ServiceDefinition{
			TypeDefs: typeDefs,
			Name:     service.Name,
			URL:      service.URL,
		})
	}

	errors = append(errors, validateServicesBeforeComposition(ctx, normalizedServiceList)...)

	if len(errors) > 0 {
		logger.Info("subgraph validation failed", "errors", len(errors))
		return &CompositionResult{Errors: errors}, multierror.Append(nil, errors...)
	}

	result := composeServices(ctx, normalizedServiceList, opts)
	if len(result.Errors) > 0 {
		logger.Info("composition failed", "errors", len(result.Errors), "hints", len(result.Hints))
		result.Schema = nil
		result.SupergraphSDL = ""
		result.SchemaDirectives = nil
		return result, multierror.Append(nil, result.Errors...)
	}

	return result, nil
}
