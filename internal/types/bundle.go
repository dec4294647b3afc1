package types

// ExportPackage describes one package a bundle makes available, together
// with the packages its public API depends on (the uses constraint).
type ExportPackage struct {
	Name    string
	Version string
	Uses    []string
}

type BundleRequirement struct {
	Type RequirementType
	Name string
	// Version holds an exact version or an interval range such as
	// "[1.0,2.0)". Empty means unconstrained.
	Version    string
	Resolution RequirementResolution
}

type BundleArtifact struct {
	URI    string
	Format string
	Source bool
}

// BundleInfo is the parsed description of one deployable bundle, as
// produced by the manifest adapter or handed in by an external parser.
type BundleInfo struct {
	SymbolicName          string
	Version               string
	Exports               []ExportPackage
	Requirements          []BundleRequirement
	Artifacts             []BundleArtifact
	ExecutionEnvironments []string
	HasInnerClasspath     bool
}
