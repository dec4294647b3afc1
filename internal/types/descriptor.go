package types

// Configuration is a named, inheritable grouping of dependencies and
// artifacts. Extends may form an arbitrary directed graph; cycles are not
// rejected here because bundle use-graphs can legitimately contain mutual
// package uses. Closure computation guards against them instead.
type Configuration struct {
	Name        string
	Visibility  Visibility
	Description string
	Extends     []string
	Transitive  bool
}

// ExtraInfo is one key/value entry on a descriptor. Entries keep their
// insertion order and duplicate keys are allowed.
type ExtraInfo struct {
	Key   string
	Value string
}

// DependencyDescriptor is one dependency edge of a module descriptor. The
// configuration mappings record, per root configuration of the owning
// module, which configurations of the target module are pulled in.
type DependencyDescriptor struct {
	RevisionID ModuleRevisionID
	Force      bool

	confs     map[string][]string
	confOrder []string
}

func NewDependencyDescriptor(rid ModuleRevisionID, force bool) *DependencyDescriptor {
	return &DependencyDescriptor{
		RevisionID: rid,
		Force:      force,
		confs:      map[string][]string{},
	}
}

func (d *DependencyDescriptor) AddConfMapping(root string, target string) {
	if _, ok := d.confs[root]; !ok {
		d.confOrder = append(d.confOrder, root)
	}
	d.confs[root] = append(d.confs[root], target)
}

// ModuleConfigurations lists the root configurations the edge is mapped
// through, in first-mapping order.
func (d *DependencyDescriptor) ModuleConfigurations() []string {
	return append([]string(nil), d.confOrder...)
}

func (d *DependencyDescriptor) DependencyConfigurations(root string) []string {
	return append([]string(nil), d.confs[root]...)
}

// Artifact is a resolvable artifact reference, either a direct URL or a
// pointer to another module's artifact (URL empty, coordinate carrying
// the foreign revision id).
type Artifact struct {
	Coordinate      ArtifactCoordinate
	URL             string
	ExtraAttributes map[string]string
}

// String renders the full artifact identity. The type is appended when it
// differs from the extension so that a module's binary and source
// artifacts, which share name and extension, stay distinguishable.
func (a Artifact) String() string {
	s := a.Coordinate.RevisionID.String() + "!" + a.Coordinate.Name + "." + a.Coordinate.Ext
	if a.Coordinate.Type != "" && a.Coordinate.Type != a.Coordinate.Ext {
		s += "(" + a.Coordinate.Type + ")"
	}
	return s
}

// ExcludeRule suppresses matching module ids on the listed
// configurations. Patterns follow exact-or-regexp semantics, with "*"
// matching anything.
type ExcludeRule struct {
	Organisation    string
	Name            string
	ArtifactPattern string
	TypePattern     string
	ExtPattern      string
	Confs           []string
}

// ModuleDescriptor is the native dependency-graph representation of one
// module: named configurations, dependency edges, artifacts bound to
// configurations, and an order-preserving extra-info bag.
type ModuleDescriptor struct {
	RevisionID  ModuleRevisionID
	Status      string
	Description string
	HomePage    string

	configurations []Configuration
	confIndex      map[string]int
	dependencies   []*DependencyDescriptor
	artifacts      map[string][]Artifact
	artifactConfs  []string
	excludeRules   []ExcludeRule
	extraInfos     []ExtraInfo
	namespaces     []ExtraInfo
}

func NewModuleDescriptor(rid ModuleRevisionID) *ModuleDescriptor {
	return &ModuleDescriptor{
		RevisionID: rid,
		confIndex:  map[string]int{},
		artifacts:  map[string][]Artifact{},
	}
}

// AddConfiguration registers a configuration. Re-adding a name that is
// already present is a no-op: configuration names are unique per
// descriptor and the first registration wins.
func (md *ModuleDescriptor) AddConfiguration(conf Configuration) {
	if _, ok := md.confIndex[conf.Name]; ok {
		return
	}
	md.confIndex[conf.Name] = len(md.configurations)
	md.configurations = append(md.configurations, conf)
}

func (md *ModuleDescriptor) Configuration(name string) (Configuration, bool) {
	idx, ok := md.confIndex[name]
	if !ok {
		return Configuration{}, false
	}
	return md.configurations[idx], true
}

func (md *ModuleDescriptor) HasConfiguration(name string) bool {
	_, ok := md.confIndex[name]
	return ok
}

// ConfigurationNames lists configuration names in registration order.
func (md *ModuleDescriptor) ConfigurationNames() []string {
	names := make([]string, 0, len(md.configurations))
	for _, conf := range md.configurations {
		names = append(names, conf.Name)
	}
	return names
}

func (md *ModuleDescriptor) Configurations() []Configuration {
	return append([]Configuration(nil), md.configurations...)
}

func (md *ModuleDescriptor) AddDependency(dep *DependencyDescriptor) {
	md.dependencies = append(md.dependencies, dep)
}

func (md *ModuleDescriptor) Dependencies() []*DependencyDescriptor {
	return append([]*DependencyDescriptor(nil), md.dependencies...)
}

func (md *ModuleDescriptor) AddArtifact(conf string, artifact Artifact) {
	if _, ok := md.artifacts[conf]; !ok {
		md.artifactConfs = append(md.artifactConfs, conf)
	}
	md.artifacts[conf] = append(md.artifacts[conf], artifact)
}

func (md *ModuleDescriptor) Artifacts(conf string) []Artifact {
	return append([]Artifact(nil), md.artifacts[conf]...)
}

func (md *ModuleDescriptor) AddExcludeRule(rule ExcludeRule) {
	md.excludeRules = append(md.excludeRules, rule)
}

func (md *ModuleDescriptor) ExcludeRules() []ExcludeRule {
	return append([]ExcludeRule(nil), md.excludeRules...)
}

func (md *ModuleDescriptor) AddExtraInfo(key string, value string) {
	md.extraInfos = append(md.extraInfos, ExtraInfo{Key: key, Value: value})
}

func (md *ModuleDescriptor) ExtraInfos() []ExtraInfo {
	return append([]ExtraInfo(nil), md.extraInfos...)
}

func (md *ModuleDescriptor) AddExtraAttributeNamespace(prefix string, uri string) {
	md.namespaces = append(md.namespaces, ExtraInfo{Key: prefix, Value: uri})
}

func (md *ModuleDescriptor) ExtraAttributeNamespaces() []ExtraInfo {
	return append([]ExtraInfo(nil), md.namespaces...)
}
