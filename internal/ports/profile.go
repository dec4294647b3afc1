package ports

// ExecutionProfile describes one execution environment: a named platform
// baseline and the packages it provides out of the box.
type ExecutionProfile interface {
	Name() string
	PkgNames() []string
}

// ProfileProviderPort resolves execution-environment identifiers declared
// by bundles. A miss is reported through the ok bool, never as an error.
type ProfileProviderPort interface {
	Profile(environment string) (ExecutionProfile, bool)
}
