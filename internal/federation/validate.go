package federation

import (
	"context"

	"github.com/vvakame/fedecompose/internal/log"
)

func validateServicesBeforeNormalization(ctx context.Context, services []*ServiceDefinition) []error {
	var errors []error

	for _, serviceDefinition := range services {
		for _, validator := range preNormalizationValidators() {
			errors = append(errors, validator(serviceDefinition)...)
		}
	}

	return errors
}

func validateServicesBeforeComposition(ctx context.Context, services []*ServiceDefinition) []error {
	logger := log.FromContext(ctx)

	var errors []error

	for _, serviceDefinition := range services {
		var serviceErrors []error
		for _, validator := range preCompositionValidators() {
			serviceErrors = append(serviceErrors, validator(serviceDefinition)...)
		}
		if len(serviceErrors) != 0 {
			logger.V(1).Info("invalid subgraph", "service", serviceDefinition.Name, "errors", len(serviceErrors))
		}
		errors = append(errors, serviceErrors...)
	}

	return errors
}
