package types

import "time"

// ArtifactDownloadReport records the outcome of one artifact fetch as
// reported by the external resolution engine.
type ArtifactDownloadReport struct {
	Artifact     Artifact
	Status       DownloadStatus
	Size         int64
	DownloadTime time.Duration

	// Merged marks a report whose artifact was resolved once but is
	// attributed to several configurations; merged entries are stripped
	// when reports from multiple configurations are unioned.
	Merged bool
}
