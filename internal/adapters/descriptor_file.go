package adapters

import (
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"bundlebridge/internal/core"
	"bundlebridge/internal/ports"
	"bundlebridge/internal/types"
)

// DescriptorFileAdapter writes module descriptors and report summaries as
// YAML snapshots.
type DescriptorFileAdapter struct{}

func NewDescriptorFileAdapter() DescriptorFileAdapter {
	return DescriptorFileAdapter{}
}

type descriptorDoc struct {
	Organisation   string          `yaml:"organisation"`
	Module         string          `yaml:"module"`
	Revision       string          `yaml:"revision"`
	Status         string          `yaml:"status,omitempty"`
	Description    string          `yaml:"description,omitempty"`
	HomePage       string          `yaml:"home_page,omitempty"`
	Configurations []confDoc       `yaml:"configurations"`
	Dependencies   []dependencyDoc `yaml:"dependencies,omitempty"`
	Artifacts      []artifactDoc   `yaml:"artifacts,omitempty"`
	Excludes       []excludeDoc    `yaml:"excludes,omitempty"`
	ExtraInfo      []extraInfoDoc  `yaml:"extra_info,omitempty"`
}

type confDoc struct {
	Name       string   `yaml:"name"`
	Visibility string   `yaml:"visibility,omitempty"`
	Extends    []string `yaml:"extends,omitempty"`
	Transitive bool     `yaml:"transitive,omitempty"`
}

type dependencyDoc struct {
	Organisation string              `yaml:"organisation"`
	Name         string              `yaml:"name"`
	Revision     string              `yaml:"revision"`
	Force        bool                `yaml:"force,omitempty"`
	Confs        map[string][]string `yaml:"confs"`
}

type artifactDoc struct {
	Conf      string `yaml:"conf"`
	Name      string `yaml:"name"`
	Type      string `yaml:"type,omitempty"`
	Ext       string `yaml:"ext,omitempty"`
	URL       string `yaml:"url,omitempty"`
	IvyURI    string `yaml:"ivy_uri,omitempty"`
	Packaging string `yaml:"packaging,omitempty"`
}

type excludeDoc struct {
	Organisation string   `yaml:"organisation"`
	Name         string   `yaml:"name"`
	Confs        []string `yaml:"confs"`
}

type extraInfoDoc struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

func (a DescriptorFileAdapter) WriteDescriptor(path string, md *types.ModuleDescriptor) error {
	doc := descriptorDoc{
		Organisation: md.RevisionID.Organisation,
		Module:       md.RevisionID.Name,
		Revision:     md.RevisionID.Revision,
		Status:       md.Status,
		Description:  md.Description,
		HomePage:     md.HomePage,
	}
	for _, conf := range md.Configurations() {
		doc.Configurations = append(doc.Configurations, confDoc{
			Name:       conf.Name,
			Visibility: string(conf.Visibility),
			Extends:    conf.Extends,
			Transitive: conf.Transitive,
		})
	}
	for _, dep := range md.Dependencies() {
		confs := map[string][]string{}
		for _, root := range dep.ModuleConfigurations() {
			confs[root] = dep.DependencyConfigurations(root)
		}
		doc.Dependencies = append(doc.Dependencies, dependencyDoc{
			Organisation: dep.RevisionID.Organisation,
			Name:         dep.RevisionID.Name,
			Revision:     dep.RevisionID.Revision,
			Force:        dep.Force,
			Confs:        confs,
		})
	}
	for _, conf := range md.ConfigurationNames() {
		for _, artifact := range md.Artifacts(conf) {
			entry := artifactDoc{
				Conf:      conf,
				Name:      artifact.Coordinate.Name,
				Type:      artifact.Coordinate.Type,
				Ext:       artifact.Coordinate.Ext,
				URL:       artifact.URL,
				Packaging: artifact.ExtraAttributes["packaging"],
			}
			if artifact.URL == "" {
				entry.IvyURI = core.BuildIvyURI(artifact.Coordinate)
			}
			doc.Artifacts = append(doc.Artifacts, entry)
		}
	}
	for _, rule := range md.ExcludeRules() {
		doc.Excludes = append(doc.Excludes, excludeDoc{
			Organisation: rule.Organisation,
			Name:         rule.Name,
			Confs:        rule.Confs,
		})
	}
	for _, info := range md.ExtraInfos() {
		doc.ExtraInfo = append(doc.ExtraInfo, extraInfoDoc{Key: info.Key, Value: info.Value})
	}
	return a.write(path, doc)
}

func (a DescriptorFileAdapter) WriteReportSummary(path string, summary ports.ReportSummary) error {
	return a.write(path, summary)
}

func (a DescriptorFileAdapter) write(path string, doc any) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal snapshot").
			WithCause(err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create output directory").
				WithCause(err)
		}
	}
	return os.WriteFile(path, data, 0644)
}
