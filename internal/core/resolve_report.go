package core

import (
	"fmt"
	"time"

	"bundlebridge/internal/ports"
	"bundlebridge/internal/types"
)

// ResolveReport consolidates per-configuration resolution outcomes into a
// whole-module report. One instance is owned by a single resolution
// attempt: it is mutated by the aggregation operations while the engine
// runs and becomes read-only once handed to output consumers.
type ResolveReport struct {
	md *types.ModuleDescriptor

	confReports map[string]*ConfigurationReport
	confOrder   []string

	problemMessages []string

	// dependencies holds every resolved node, ordered from the most
	// dependent to the least dependent.
	dependencies []ports.DependencyNodePort
	artifacts    []types.Artifact

	resolveTime  time.Duration
	downloadTime time.Duration
	downloadSize int64
	resolveID    string
}

func NewResolveReport(md *types.ModuleDescriptor, resolveID string) *ResolveReport {
	if resolveID == "" {
		resolveID = md.RevisionID.Organisation + "-" + md.RevisionID.Name
	}
	return &ResolveReport{
		md:          md,
		confReports: map[string]*ConfigurationReport{},
		resolveID:   resolveID,
	}
}

func (r *ResolveReport) ModuleDescriptor() *types.ModuleDescriptor {
	return r.md
}

func (r *ResolveReport) AddReport(conf string, report *ConfigurationReport) {
	if _, ok := r.confReports[conf]; !ok {
		r.confOrder = append(r.confOrder, conf)
	}
	r.confReports[conf] = report
}

// ConfigurationReport returns the sub-report for a configuration. An
// unknown name is a legitimate miss, reported through the ok bool.
func (r *ResolveReport) ConfigurationReport(conf string) (*ConfigurationReport, bool) {
	report, ok := r.confReports[conf]
	return report, ok
}

// Configurations lists the configurations that received a sub-report, in
// registration order.
func (r *ResolveReport) Configurations() []string {
	return append([]string(nil), r.confOrder...)
}

func (r *ResolveReport) HasError() bool {
	for _, conf := range r.confOrder {
		if r.confReports[conf].HasError() {
			return true
		}
	}
	return false
}

// EvictedNodes unions eviction sets across every configuration,
// deduplicated, insertion order preserved.
func (r *ResolveReport) EvictedNodes() []ports.DependencyNodePort {
	return r.unionNodes(func(report *ConfigurationReport) []ports.DependencyNodePort {
		return report.EvictedNodes()
	})
}

func (r *ResolveReport) UnresolvedDependencies() []ports.DependencyNodePort {
	return r.unionNodes(func(report *ConfigurationReport) []ports.DependencyNodePort {
		return report.UnresolvedDependencies()
	})
}

func (r *ResolveReport) unionNodes(pick func(*ConfigurationReport) []ports.DependencyNodePort) []ports.DependencyNodePort {
	var all []ports.DependencyNodePort
	seen := map[string]struct{}{}
	for _, conf := range r.confOrder {
		for _, node := range pick(r.confReports[conf]) {
			key := node.ID().String()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			all = append(all, node)
		}
	}
	return all
}

// ArtifactsReports unions download reports across configurations,
// filtered by status (nil means unrestricted) and eviction policy.
func (r *ResolveReport) ArtifactsReports(status *types.DownloadStatus, withEvicted bool) []types.ArtifactDownloadReport {
	var all []types.ArtifactDownloadReport
	seen := map[string]struct{}{}
	for _, conf := range r.confOrder {
		for _, report := range r.confReports[conf].ArtifactsReports(status, withEvicted) {
			key := report.Artifact.String() + "|" + string(report.Status)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			all = append(all, report)
		}
	}
	return all
}

func (r *ResolveReport) AllArtifactsReports() []types.ArtifactDownloadReport {
	return r.ArtifactsReports(nil, true)
}

func (r *ResolveReport) FailedArtifactsReports() []types.ArtifactDownloadReport {
	failed := types.DownloadStatusFailed
	return FilterOutMergedArtifacts(r.ArtifactsReports(&failed, true))
}

func (r *ResolveReport) SetProblemMessages(problems []string) {
	r.problemMessages = append([]string(nil), problems...)
}

func (r *ResolveReport) ProblemMessages() []string {
	return append([]string(nil), r.problemMessages...)
}

// AllProblemMessages combines the explicit problem list with one line per
// unresolved dependency and per failed artifact download.
func (r *ResolveReport) AllProblemMessages() []string {
	all := append([]string(nil), r.problemMessages...)
	for _, conf := range r.confOrder {
		report := r.confReports[conf]
		for _, unresolved := range report.UnresolvedDependencies() {
			message := unresolved.ProblemMessage()
			if message == "" {
				all = append(all, fmt.Sprintf("unresolved dependency: %s", unresolved.ID()))
			} else {
				all = append(all, fmt.Sprintf("unresolved dependency: %s: %s", unresolved.ID(), message))
			}
		}
		for _, failed := range report.FailedArtifactsReports() {
			all = append(all, fmt.Sprintf("download failed: %s", failed.Artifact))
		}
	}
	return all
}

// SetDependencies stores the engine's ordered node list, recomputes the
// derived artifact list from non-evicted, problem-free nodes, and fans
// each node out into the sub-report of every root configuration it
// participates in. A root configuration without a sub-report skips the
// node silently.
func (r *ResolveReport) SetDependencies(dependencies []ports.DependencyNodePort, filter ports.ArtifactFilter) {
	r.dependencies = append([]ports.DependencyNodePort(nil), dependencies...)
	r.artifacts = nil
	for _, dependency := range r.dependencies {
		if !dependency.IsCompletelyEvicted() && !dependency.HasProblem() {
			r.artifacts = append(r.artifacts, dependency.SelectedArtifacts(filter)...)
		}
	}
	for _, dependency := range r.dependencies {
		for _, conf := range dependency.RootConfigurations() {
			if report, ok := r.confReports[conf]; ok {
				report.AddDependency(dependency)
			}
		}
	}
}

// Dependencies returns all nodes of this report, most dependent first.
func (r *ResolveReport) Dependencies() []ports.DependencyNodePort {
	return append([]ports.DependencyNodePort(nil), r.dependencies...)
}

// Artifacts returns the artifacts selected for download by this resolve.
func (r *ResolveReport) Artifacts() []types.Artifact {
	return append([]types.Artifact(nil), r.artifacts...)
}

// ModuleIDs lists the module ids concerned by this report, most dependent
// first, deduplicated.
func (r *ResolveReport) ModuleIDs() []types.ModuleID {
	var out []types.ModuleID
	seen := map[types.ModuleID]struct{}{}
	for _, dependency := range r.dependencies {
		mid := dependency.ResolvedID().ModuleID
		if _, ok := seen[mid]; ok {
			continue
		}
		seen[mid] = struct{}{}
		out = append(out, mid)
	}
	return out
}

func (r *ResolveReport) SetResolveTime(elapsed time.Duration) { r.resolveTime = elapsed }
func (r *ResolveReport) ResolveTime() time.Duration           { return r.resolveTime }

func (r *ResolveReport) SetDownloadTime(elapsed time.Duration) { r.downloadTime = elapsed }
func (r *ResolveReport) DownloadTime() time.Duration           { return r.downloadTime }

func (r *ResolveReport) SetDownloadSize(size int64) { r.downloadSize = size }

// DownloadSize is the total size of artifacts actually downloaded, in
// bytes; artifacts already present are not counted.
func (r *ResolveReport) DownloadSize() int64 { return r.downloadSize }

func (r *ResolveReport) ResolveID() string { return r.resolveID }

// ExtendingConfs returns every configuration that transitively extends
// the given one, the given one included. The walk tolerates cycles and
// self-reference: a configuration is never expanded twice.
func (r *ResolveReport) ExtendingConfs(extended string) []string {
	included := map[string]struct{}{extended: {}}
	order := []string{extended}
	confs := r.md.Configurations()
	for changed := true; changed; {
		changed = false
		for _, conf := range confs {
			if _, ok := included[conf.Name]; ok {
				continue
			}
			for _, ext := range conf.Extends {
				if _, ok := included[ext]; !ok {
					continue
				}
				included[conf.Name] = struct{}{}
				order = append(order, conf.Name)
				changed = true
				break
			}
		}
	}
	return order
}

// ToFixedDescriptor derives a distributable point-in-time descriptor from
// a completed resolution: same identity and metadata, configurations
// flattened to plain names, artifacts carried over, and one forced edge
// per surviving dependency node. Module ids listed in midsToKeep stay on
// their pre-resolution identity and are left unforced. Nodes evicted in
// every root configuration contribute no edge.
func (r *ResolveReport) ToFixedDescriptor(settings ports.SettingsPort, midsToKeep []types.ModuleID) *types.ModuleDescriptor {
	fixed := types.NewModuleDescriptor(r.md.RevisionID)
	fixed.Status = r.md.Status
	if fixed.Status == "" && settings != nil {
		fixed.Status = settings.DefaultStatus()
	}
	fixed.Description = r.md.Description
	fixed.HomePage = r.md.HomePage
	for _, namespace := range r.md.ExtraAttributeNamespaces() {
		fixed.AddExtraAttributeNamespace(namespace.Key, namespace.Value)
	}
	for _, info := range r.md.ExtraInfos() {
		fixed.AddExtraInfo(info.Key, info.Value)
	}

	keep := make(map[types.ModuleID]struct{}, len(midsToKeep))
	for _, mid := range midsToKeep {
		keep[mid] = struct{}{}
	}

	for _, conf := range r.confOrder {
		fixed.AddConfiguration(types.Configuration{Name: conf})
	}
	for _, conf := range r.confOrder {
		for _, artifact := range r.md.Artifacts(conf) {
			fixed.AddArtifact(conf, artifact)
		}
	}

	for _, dependency := range r.dependencies {
		var rid types.ModuleRevisionID
		var force bool
		if _, ok := keep[dependency.ModuleID()]; ok {
			rid = dependency.ID()
			force = false
		} else {
			rid = dependency.ResolvedID()
			force = true
		}
		dep := types.NewDependencyDescriptor(rid, force)
		evicted := true
		for _, rootConf := range dependency.RootConfigurations() {
			if dependency.IsEvicted(rootConf) {
				continue
			}
			evicted = false
			for _, targetConf := range dependency.ConfigurationsFor(rootConf) {
				dep.AddConfMapping(rootConf, targetConf)
			}
		}
		if !evicted {
			fixed.AddDependency(dep)
		}
	}

	return fixed
}
