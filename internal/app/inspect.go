package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"bundlebridge/internal/core"
)

func (s Service) Inspect(ctx context.Context, req InspectRequest) (InspectResult, error) {
	manifestPath := strings.TrimSpace(req.ManifestPath)
	if manifestPath == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}
	bundle, err := s.Bundles.LoadBundle(manifestPath)
	if err != nil {
		return InspectResult{}, err
	}
	result := InspectResult{
		SymbolicName:          bundle.SymbolicName,
		Version:               bundle.Version,
		Exports:               len(bundle.Exports),
		Requirements:          len(bundle.Requirements),
		ExecutionEnvironments: bundle.ExecutionEnvironments,
		Configurations:        core.BundleConfigurations(bundle),
	}
	log.Ctx(ctx).Debug().
		Str("bundle", bundle.SymbolicName).
		Int("exports", result.Exports).
		Msg("bundle inspected")
	return result, nil
}
