package types

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// RequirementType tags what kind of capability a bundle requirement
// targets. The values double as the organisation of synthetic module
// identities built for dependency edges.
type RequirementType string

const (
	RequirementTypeBundle      RequirementType = "osgi.bundle"
	RequirementTypePackage     RequirementType = "package"
	RequirementTypeEnvironment RequirementType = "ee"
)

type RequirementResolution string

const (
	ResolutionMandatory RequirementResolution = "mandatory"
	ResolutionOptional  RequirementResolution = "optional"
)

type DownloadStatus string

const (
	// DownloadStatusNo means the artifact was already in place and no
	// download was attempted.
	DownloadStatusNo         DownloadStatus = "no"
	DownloadStatusSuccessful DownloadStatus = "successful"
	DownloadStatusFailed     DownloadStatus = "failed"
)
