package ports

import "bundlebridge/internal/types"

// ArtifactFilter selects which artifacts of a resolved node take part in
// the aggregated artifact list. A nil filter keeps everything.
type ArtifactFilter func(types.Artifact) bool

// DependencyNodePort is the read surface of one node in the dependency
// graph produced by the external resolution engine. The aggregator only
// consumes final, already-ordered nodes; it never mutates them.
type DependencyNodePort interface {
	// ID is the identity the node was requested under, before conflict
	// resolution.
	ID() types.ModuleRevisionID
	// ResolvedID is the identity conflict resolution settled on.
	ResolvedID() types.ModuleRevisionID
	ModuleID() types.ModuleID

	// RootConfigurations lists the root-module configurations this node
	// participates in.
	RootConfigurations() []string
	// ConfigurationsFor lists the node's own configurations pulled in by
	// the given root configuration.
	ConfigurationsFor(root string) []string

	IsEvicted(root string) bool
	IsCompletelyEvicted() bool

	HasProblem() bool
	ProblemMessage() string

	SelectedArtifacts(filter ArtifactFilter) []types.Artifact
}
