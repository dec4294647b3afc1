package core

import (
	"bundlebridge/internal/ports"
	"bundlebridge/internal/types"
)

// ConfigurationReport gathers the resolution outcome of a single root
// configuration: the dependency nodes pulled in and the download reports
// of their artifacts. Node order is insertion order.
type ConfigurationReport struct {
	conf            string
	nodes           []ports.DependencyNodePort
	seen            map[string]struct{}
	artifactReports []types.ArtifactDownloadReport
}

func NewConfigurationReport(conf string) *ConfigurationReport {
	return &ConfigurationReport{
		conf: conf,
		seen: map[string]struct{}{},
	}
}

func (r *ConfigurationReport) Configuration() string {
	return r.conf
}

// AddDependency records a node for this configuration. A node already
// recorded is kept once.
func (r *ConfigurationReport) AddDependency(node ports.DependencyNodePort) {
	key := node.ID().String()
	if _, ok := r.seen[key]; ok {
		return
	}
	r.seen[key] = struct{}{}
	r.nodes = append(r.nodes, node)
}

func (r *ConfigurationReport) Dependencies() []ports.DependencyNodePort {
	return append([]ports.DependencyNodePort(nil), r.nodes...)
}

func (r *ConfigurationReport) AddArtifactReport(report types.ArtifactDownloadReport) {
	r.artifactReports = append(r.artifactReports, report)
}

// HasError reports whether this configuration carries unresolved
// dependencies or failed downloads.
func (r *ConfigurationReport) HasError() bool {
	if len(r.UnresolvedDependencies()) > 0 {
		return true
	}
	return len(r.FailedArtifactsReports()) > 0
}

// EvictedNodes lists nodes removed from this configuration by conflict
// resolution, in insertion order.
func (r *ConfigurationReport) EvictedNodes() []ports.DependencyNodePort {
	var evicted []ports.DependencyNodePort
	for _, node := range r.nodes {
		if node.IsEvicted(r.conf) {
			evicted = append(evicted, node)
		}
	}
	return evicted
}

func (r *ConfigurationReport) UnresolvedDependencies() []ports.DependencyNodePort {
	var unresolved []ports.DependencyNodePort
	for _, node := range r.nodes {
		if node.HasProblem() {
			unresolved = append(unresolved, node)
		}
	}
	return unresolved
}

// ArtifactsReports returns download reports filtered by status (nil means
// no restriction). With withEvicted false, reports whose artifact belongs
// to a node evicted in this configuration are dropped.
func (r *ConfigurationReport) ArtifactsReports(status *types.DownloadStatus, withEvicted bool) []types.ArtifactDownloadReport {
	var out []types.ArtifactDownloadReport
	for _, report := range r.artifactReports {
		if status != nil && report.Status != *status {
			continue
		}
		if !withEvicted && r.isEvictedArtifact(report.Artifact) {
			continue
		}
		out = append(out, report)
	}
	return out
}

func (r *ConfigurationReport) DownloadReports(rid types.ModuleRevisionID) []types.ArtifactDownloadReport {
	var out []types.ArtifactDownloadReport
	for _, report := range r.artifactReports {
		if report.Artifact.Coordinate.RevisionID == rid {
			out = append(out, report)
		}
	}
	return out
}

func (r *ConfigurationReport) FailedArtifactsReports() []types.ArtifactDownloadReport {
	failed := types.DownloadStatusFailed
	return FilterOutMergedArtifacts(r.ArtifactsReports(&failed, true))
}

func (r *ConfigurationReport) isEvictedArtifact(artifact types.Artifact) bool {
	for _, node := range r.nodes {
		if node.ResolvedID() == artifact.Coordinate.RevisionID {
			return node.IsEvicted(r.conf)
		}
	}
	return false
}

// FilterOutMergedArtifacts strips reports marked as merged: artifacts
// resolved once but attributed to several configurations show up once
// per configuration, and only the originating entry is kept.
func FilterOutMergedArtifacts(reports []types.ArtifactDownloadReport) []types.ArtifactDownloadReport {
	var out []types.ArtifactDownloadReport
	for _, report := range reports {
		if report.Merged {
			continue
		}
		out = append(out, report)
	}
	return out
}
