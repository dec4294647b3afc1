package ports

import "bundlebridge/internal/types"

type BundleSourcePort interface {
	LoadBundle(path string) (types.BundleInfo, error)
	// LoadAttributes returns the raw manifest main attributes in file
	// order, for verbatim copying into descriptor extra-info.
	LoadAttributes(path string) ([]types.ExtraInfo, error)
}

type ProfileSourcePort interface {
	LoadProfiles(path string) (ProfileProviderPort, error)
}
