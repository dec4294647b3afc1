package types

import "fmt"

// ModuleID identifies a module independently of any particular revision.
// For translated bundles the organisation carries the requirement type
// (osgi.bundle, package) rather than a real organisation.
type ModuleID struct {
	Organisation string
	Name         string
}

func (id ModuleID) String() string {
	return fmt.Sprintf("%s#%s", id.Organisation, id.Name)
}

// ModuleRevisionID pins a module to a branch and revision. The revision
// may be an exact version or a version range such as "[1.0,2.0)".
type ModuleRevisionID struct {
	ModuleID
	Branch   string
	Revision string
}

func NewModuleRevisionID(org string, name string, branch string, revision string) ModuleRevisionID {
	return ModuleRevisionID{
		ModuleID: ModuleID{Organisation: org, Name: name},
		Branch:   branch,
		Revision: revision,
	}
}

func (id ModuleRevisionID) String() string {
	if id.Branch == "" {
		return fmt.Sprintf("%s#%s;%s", id.Organisation, id.Name, id.Revision)
	}
	return fmt.Sprintf("%s#%s#%s;%s", id.Organisation, id.Name, id.Branch, id.Revision)
}

// ArtifactCoordinate locates one artifact of a module revision. Empty
// optional fields mean "absent" and are omitted by the ivy URI codec.
type ArtifactCoordinate struct {
	RevisionID ModuleRevisionID
	Name       string
	Type       string
	Ext        string
}
