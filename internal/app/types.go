package app

import "bundlebridge/internal/types"

type TranslateRequest struct {
	ManifestPath string
	BaseURI      string
	ProfilesPath string
	OutputPath   string

	// CopyManifestAttributes copies the raw manifest main attributes
	// into the descriptor's extra-info, verbatim.
	CopyManifestAttributes bool
}

type TranslateResult struct {
	Descriptor *types.ModuleDescriptor
	OutputPath string
}

type InspectRequest struct {
	ManifestPath string
}

type InspectResult struct {
	SymbolicName          string
	Version               string
	Exports               int
	Requirements          int
	ExecutionEnvironments []string
	Configurations        []string
}
