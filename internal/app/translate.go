package app

import (
	"context"
	"net/url"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"bundlebridge/internal/core"
	"bundlebridge/internal/ports"
	"bundlebridge/internal/types"
)

func (s Service) Translate(ctx context.Context, req TranslateRequest) (TranslateResult, error) {
	started := s.Clock()
	manifestPath := strings.TrimSpace(req.ManifestPath)
	if manifestPath == "" {
		return TranslateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}

	bundle, err := s.Bundles.LoadBundle(manifestPath)
	if err != nil {
		return TranslateResult{}, err
	}

	opts := core.TranslateOptions{}
	if baseURI := strings.TrimSpace(req.BaseURI); baseURI != "" {
		parsed, err := url.Parse(baseURI)
		if err != nil {
			return TranslateResult{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid base uri").
				WithCause(err)
		}
		opts.BaseURI = parsed
	}
	if profilesPath := strings.TrimSpace(req.ProfilesPath); profilesPath != "" {
		provider, err := s.Profiles.LoadProfiles(profilesPath)
		if err != nil {
			return TranslateResult{}, err
		}
		opts.Profiles = provider
	}
	if req.CopyManifestAttributes {
		attributes, err := s.Bundles.LoadAttributes(manifestPath)
		if err != nil {
			return TranslateResult{}, err
		}
		opts.ManifestAttributes = attributes
	}

	md, err := core.TranslateBundle(ctx, bundle, opts)
	if err != nil {
		return TranslateResult{}, err
	}

	result := TranslateResult{Descriptor: md}
	if outputPath := strings.TrimSpace(req.OutputPath); outputPath != "" {
		if err := s.Descriptors.WriteDescriptor(outputPath, md); err != nil {
			return TranslateResult{}, err
		}
		result.OutputPath = outputPath
	}

	log.Ctx(ctx).Info().
		Str("bundle", bundle.SymbolicName).
		Str("revision", md.RevisionID.Revision).
		Dur("elapsed", s.Clock().Sub(started)).
		Msg("bundle descriptor translated")
	return result, nil
}

// SummarizeReport flattens a completed resolution report for output
// collaborators and optionally writes it as a snapshot.
func (s Service) SummarizeReport(ctx context.Context, report *core.ResolveReport, outputPath string) (ports.ReportSummary, error) {
	summary := ports.ReportSummary{
		ResolveID:      report.ResolveID(),
		Module:         report.ModuleDescriptor().RevisionID.String(),
		Configurations: report.Configurations(),
		Dependencies:   len(report.Dependencies()),
		Artifacts:      len(report.Artifacts()),
		Problems:       report.AllProblemMessages(),
		ResolveTimeMS:  report.ResolveTime().Milliseconds(),
		DownloadTimeMS: report.DownloadTime().Milliseconds(),
		DownloadSize:   report.DownloadSize(),
	}
	for _, node := range report.EvictedNodes() {
		summary.Evicted = append(summary.Evicted, node.ID().String())
	}
	for _, node := range report.UnresolvedDependencies() {
		summary.Unresolved = append(summary.Unresolved, node.ID().String())
	}
	if outputPath = strings.TrimSpace(outputPath); outputPath != "" {
		if err := s.Reports.WriteReportSummary(outputPath, summary); err != nil {
			return ports.ReportSummary{}, err
		}
	}
	log.Ctx(ctx).Info().
		Str("resolve_id", summary.ResolveID).
		Int("dependencies", summary.Dependencies).
		Bool("errors", report.HasError()).
		Msg("resolution report summarized")
	return summary, nil
}

// FixDescriptor derives the distributable fixed descriptor from a
// completed resolution and writes it when an output path is given.
func (s Service) FixDescriptor(ctx context.Context, report *core.ResolveReport, settings ports.SettingsPort, keep []types.ModuleID, outputPath string) (*types.ModuleDescriptor, error) {
	fixed := report.ToFixedDescriptor(settings, keep)
	if outputPath = strings.TrimSpace(outputPath); outputPath != "" {
		if err := s.Descriptors.WriteDescriptor(outputPath, fixed); err != nil {
			return nil, err
		}
	}
	log.Ctx(ctx).Info().
		Str("module", fixed.RevisionID.String()).
		Int("dependencies", len(fixed.Dependencies())).
		Msg("fixed descriptor written")
	return fixed, nil
}
