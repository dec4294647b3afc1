package core

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"bundlebridge/internal/ports"
	"bundlebridge/internal/types"
)

type fakeNode struct {
	id         types.ModuleRevisionID
	resolved   types.ModuleRevisionID
	roots      []string
	confs      map[string][]string
	evicted    map[string]bool
	problem    string
	unresolved bool
	artifacts  []types.Artifact
}

func newFakeNode(org, name, revision string) *fakeNode {
	rid := types.NewModuleRevisionID(org, name, "", revision)
	return &fakeNode{
		id:       rid,
		resolved: rid,
		confs:    map[string][]string{},
		evicted:  map[string]bool{},
	}
}

func (n *fakeNode) ID() types.ModuleRevisionID         { return n.id }
func (n *fakeNode) ResolvedID() types.ModuleRevisionID { return n.resolved }
func (n *fakeNode) ModuleID() types.ModuleID           { return n.id.ModuleID }

func (n *fakeNode) RootConfigurations() []string { return n.roots }

func (n *fakeNode) ConfigurationsFor(root string) []string { return n.confs[root] }

func (n *fakeNode) IsEvicted(root string) bool { return n.evicted[root] }

func (n *fakeNode) IsCompletelyEvicted() bool {
	for _, root := range n.roots {
		if !n.evicted[root] {
			return false
		}
	}
	return len(n.roots) > 0
}

func (n *fakeNode) HasProblem() bool       { return n.unresolved || n.problem != "" }
func (n *fakeNode) ProblemMessage() string { return n.problem }

func (n *fakeNode) SelectedArtifacts(filter ports.ArtifactFilter) []types.Artifact {
	var out []types.Artifact
	for _, artifact := range n.artifacts {
		if filter != nil && !filter(artifact) {
			continue
		}
		out = append(out, artifact)
	}
	return out
}

func jarArtifact(node *fakeNode, typ string) types.Artifact {
	return types.Artifact{
		Coordinate: types.ArtifactCoordinate{
			RevisionID: node.resolved,
			Name:       node.resolved.Name,
			Type:       typ,
			Ext:        "jar",
		},
	}
}

func reportFixture() (*ResolveReport, *types.ModuleDescriptor) {
	md := types.NewModuleDescriptor(types.NewModuleRevisionID("osgi.bundle", "com.example", "", "1.0.0"))
	md.AddConfiguration(types.Configuration{Name: "default", Visibility: types.VisibilityPublic})
	md.AddConfiguration(types.Configuration{Name: "optional", Visibility: types.VisibilityPublic, Extends: []string{"default"}})
	return NewResolveReport(md, ""), md
}

func TestResolveReportDefaultID(t *testing.T) {
	report, _ := reportFixture()
	require.Equal(t, "osgi.bundle-com.example", report.ResolveID())
}

func TestResolveReportConfigurationOrder(t *testing.T) {
	report, _ := reportFixture()
	report.AddReport("default", NewConfigurationReport("default"))
	report.AddReport("optional", NewConfigurationReport("optional"))
	report.AddReport("default", NewConfigurationReport("default"))

	require.Equal(t, []string{"default", "optional"}, report.Configurations())

	_, ok := report.ConfigurationReport("default")
	require.True(t, ok)
	_, ok = report.ConfigurationReport("missing")
	require.False(t, ok)
}

func TestResolveReportHasError(t *testing.T) {
	report, _ := reportFixture()
	defaultReport := NewConfigurationReport("default")
	report.AddReport("default", defaultReport)
	require.False(t, report.HasError())

	broken := newFakeNode("osgi.bundle", "org.missing", "[1,)")
	broken.roots = []string{"default"}
	broken.problem = "no matching revision"
	defaultReport.AddDependency(broken)
	require.True(t, report.HasError())
}

func TestResolveReportUnionsDeduplicate(t *testing.T) {
	report, _ := reportFixture()
	defaultReport := NewConfigurationReport("default")
	optionalReport := NewConfigurationReport("optional")
	report.AddReport("default", defaultReport)
	report.AddReport("optional", optionalReport)

	shared := newFakeNode("osgi.bundle", "org.shared", "1.0")
	shared.roots = []string{"default", "optional"}
	shared.evicted = map[string]bool{"default": true, "optional": true}
	only := newFakeNode("osgi.bundle", "org.only", "2.0")
	only.roots = []string{"optional"}
	only.evicted = map[string]bool{"optional": true}

	defaultReport.AddDependency(shared)
	optionalReport.AddDependency(shared)
	optionalReport.AddDependency(only)

	evicted := report.EvictedNodes()
	require.Len(t, evicted, 2)
	require.Same(t, shared, evicted[0].(*fakeNode))
	require.Same(t, only, evicted[1].(*fakeNode))
}

func TestResolveReportSetDependencies(t *testing.T) {
	report, _ := reportFixture()
	defaultReport := NewConfigurationReport("default")
	report.AddReport("default", defaultReport)

	kept := newFakeNode("osgi.bundle", "org.kept", "1.0")
	kept.roots = []string{"default"}
	kept.artifacts = []types.Artifact{jarArtifact(kept, "jar"), jarArtifact(kept, "source")}

	evicted := newFakeNode("osgi.bundle", "org.evicted", "0.9")
	evicted.roots = []string{"default"}
	evicted.evicted = map[string]bool{"default": true}
	evicted.artifacts = []types.Artifact{jarArtifact(evicted, "jar")}

	// the root configuration "extra" has no sub-report and is skipped
	stray := newFakeNode("osgi.bundle", "org.stray", "3.0")
	stray.roots = []string{"extra"}
	stray.artifacts = []types.Artifact{jarArtifact(stray, "jar")}

	onlyBinaries := func(artifact types.Artifact) bool { return artifact.Coordinate.Type == "jar" }
	report.SetDependencies([]ports.DependencyNodePort{kept, evicted, stray}, onlyBinaries)

	require.Len(t, report.Dependencies(), 3)
	require.Len(t, defaultReport.Dependencies(), 2)

	artifacts := report.Artifacts()
	require.Len(t, artifacts, 2)
	require.Equal(t, "org.kept", artifacts[0].Coordinate.RevisionID.Name)
	require.Equal(t, "org.stray", artifacts[1].Coordinate.RevisionID.Name)

	mids := report.ModuleIDs()
	require.Equal(t, []types.ModuleID{
		{Organisation: "osgi.bundle", Name: "org.kept"},
		{Organisation: "osgi.bundle", Name: "org.evicted"},
		{Organisation: "osgi.bundle", Name: "org.stray"},
	}, mids)
}

func TestResolveReportArtifactsReportsUnion(t *testing.T) {
	report, _ := reportFixture()
	defaultReport := NewConfigurationReport("default")
	optionalReport := NewConfigurationReport("optional")
	report.AddReport("default", defaultReport)
	report.AddReport("optional", optionalReport)

	dep := newFakeNode("osgi.bundle", "org.dep", "1.0")
	dep.roots = []string{"default", "optional"}
	defaultReport.AddDependency(dep)
	optionalReport.AddDependency(dep)

	binary := types.ArtifactDownloadReport{Artifact: jarArtifact(dep, "jar"), Status: types.DownloadStatusSuccessful}
	source := types.ArtifactDownloadReport{Artifact: jarArtifact(dep, "source"), Status: types.DownloadStatusSuccessful}
	defaultReport.AddArtifactReport(binary)
	defaultReport.AddArtifactReport(source)
	// the same download attributed to a second configuration unions to
	// a single entry
	optionalReport.AddArtifactReport(binary)
	optionalReport.AddArtifactReport(types.ArtifactDownloadReport{
		Artifact: jarArtifact(dep, "source"),
		Status:   types.DownloadStatusFailed,
	})

	all := report.AllArtifactsReports()
	require.Len(t, all, 3)

	// binary and source share name and ext but stay distinct in the union
	successful := types.DownloadStatusSuccessful
	union := report.ArtifactsReports(&successful, true)
	require.Len(t, union, 2)
	require.Equal(t, "jar", union[0].Artifact.Coordinate.Type)
	require.Equal(t, "source", union[1].Artifact.Coordinate.Type)

	failed := report.FailedArtifactsReports()
	require.Len(t, failed, 1)
	require.Equal(t, "source", failed[0].Artifact.Coordinate.Type)

	require.Contains(t, report.AllProblemMessages(),
		"download failed: osgi.bundle#org.dep;1.0!org.dep.jar(source)")
}

func TestResolveReportAllProblemMessages(t *testing.T) {
	report, _ := reportFixture()
	defaultReport := NewConfigurationReport("default")
	report.AddReport("default", defaultReport)
	report.SetProblemMessages([]string{"circular dependency"})

	noisy := newFakeNode("osgi.bundle", "org.noisy", "2.0")
	noisy.roots = []string{"default"}
	noisy.problem = "no matching revision"
	silent := newFakeNode("osgi.bundle", "org.silent", "3.0")
	silent.roots = []string{"default"}
	silent.unresolved = true
	defaultReport.AddDependency(noisy)
	defaultReport.AddDependency(silent)

	failed := newFakeNode("osgi.bundle", "org.failed", "1.1")
	defaultReport.AddArtifactReport(types.ArtifactDownloadReport{
		Artifact: jarArtifact(failed, "jar"),
		Status:   types.DownloadStatusFailed,
	})
	defaultReport.AddArtifactReport(types.ArtifactDownloadReport{
		Artifact: jarArtifact(failed, "jar"),
		Status:   types.DownloadStatusFailed,
		Merged:   true,
	})

	messages := report.AllProblemMessages()
	require.Equal(t, []string{
		"circular dependency",
		"unresolved dependency: osgi.bundle#org.noisy;2.0: no matching revision",
		"unresolved dependency: osgi.bundle#org.silent;3.0",
		"download failed: osgi.bundle#org.failed;1.1!org.failed.jar",
	}, messages)
}

func TestResolveReportTimersAndSize(t *testing.T) {
	report, _ := reportFixture()
	report.SetResolveTime(2 * time.Second)
	report.SetDownloadTime(500 * time.Millisecond)
	report.SetDownloadSize(4096)
	require.Equal(t, 2*time.Second, report.ResolveTime())
	require.Equal(t, 500*time.Millisecond, report.DownloadTime())
	require.Equal(t, int64(4096), report.DownloadSize())
}

func TestExtendingConfsTolerantOfCycles(t *testing.T) {
	md := types.NewModuleDescriptor(types.NewModuleRevisionID("osgi.bundle", "com.example", "", "1.0.0"))
	md.AddConfiguration(types.Configuration{Name: "a", Extends: []string{"b"}})
	md.AddConfiguration(types.Configuration{Name: "b", Extends: []string{"a"}})
	md.AddConfiguration(types.Configuration{Name: "c", Extends: []string{"b"}})
	md.AddConfiguration(types.Configuration{Name: "unrelated"})
	report := NewResolveReport(md, "cycle")

	confs := report.ExtendingConfs("a")
	if diff := cmp.Diff([]string{"a", "b", "c"}, confs); diff != "" {
		t.Fatalf("unexpected closure (-want +got):\n%s", diff)
	}
}

type fixedStatusSettings struct{ status string }

func (s fixedStatusSettings) DefaultStatus() string { return s.status }

func TestToFixedDescriptor(t *testing.T) {
	report, md := reportFixture()
	md.AddExtraInfo("_osgi_export_p", "1.0.0")
	md.AddExtraAttributeNamespace("o", "bundlebridge:osgi")
	md.AddArtifact("default", types.Artifact{
		Coordinate: types.ArtifactCoordinate{
			RevisionID: md.RevisionID,
			Name:       "com.example",
			Type:       "jar",
			Ext:        "jar",
		},
	})
	report.AddReport("default", NewConfigurationReport("default"))
	report.AddReport("optional", NewConfigurationReport("optional"))

	upgraded := newFakeNode("osgi.bundle", "org.upgraded", "[1,2)")
	upgraded.resolved = types.NewModuleRevisionID("osgi.bundle", "org.upgraded", "", "1.4")
	upgraded.roots = []string{"default"}
	upgraded.confs = map[string][]string{"default": {"default"}}

	pinned := newFakeNode("osgi.bundle", "org.pinned", "[2,3)")
	pinned.resolved = types.NewModuleRevisionID("osgi.bundle", "org.pinned", "", "2.1")
	pinned.roots = []string{"optional"}
	pinned.confs = map[string][]string{"optional": {"default"}}

	gone := newFakeNode("osgi.bundle", "org.gone", "0.1")
	gone.roots = []string{"default"}
	gone.evicted = map[string]bool{"default": true}

	report.SetDependencies([]ports.DependencyNodePort{upgraded, pinned, gone}, nil)

	fixed := report.ToFixedDescriptor(
		fixedStatusSettings{status: "release"},
		[]types.ModuleID{{Organisation: "osgi.bundle", Name: "org.pinned"}},
	)

	require.Equal(t, md.RevisionID, fixed.RevisionID)
	require.Equal(t, "release", fixed.Status)
	require.Contains(t, fixed.ExtraInfos(), types.ExtraInfo{Key: "_osgi_export_p", Value: "1.0.0"})

	// configurations are flattened to plain names
	defaultConf, ok := fixed.Configuration("default")
	require.True(t, ok)
	require.Empty(t, defaultConf.Extends)
	optionalConf, ok := fixed.Configuration("optional")
	require.True(t, ok)
	require.Empty(t, optionalConf.Extends)

	require.Len(t, fixed.Artifacts("default"), 1)

	deps := fixed.Dependencies()
	require.Len(t, deps, 2)

	fixedUpgraded := deps[0]
	require.Equal(t, "1.4", fixedUpgraded.RevisionID.Revision)
	require.True(t, fixedUpgraded.Force)
	require.Equal(t, []string{"default"}, fixedUpgraded.DependencyConfigurations("default"))

	fixedPinned := deps[1]
	require.Equal(t, "[2,3)", fixedPinned.RevisionID.Revision)
	require.False(t, fixedPinned.Force)
	require.Equal(t, []string{"default"}, fixedPinned.DependencyConfigurations("optional"))
}

func TestToFixedDescriptorFallsBackToModuleStatus(t *testing.T) {
	report, md := reportFixture()
	md.Status = "integration"
	fixed := report.ToFixedDescriptor(fixedStatusSettings{status: "release"}, nil)
	require.Equal(t, "integration", fixed.Status)
}
