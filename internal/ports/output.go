package ports

import "bundlebridge/internal/types"

type DescriptorWriterPort interface {
	WriteDescriptor(path string, md *types.ModuleDescriptor) error
}

// ReportSummary is the flattened, render-ready view of a resolution
// report handed to output collaborators. Rendering itself (XML, HTML,
// text) lives outside this module.
type ReportSummary struct {
	ResolveID      string   `yaml:"resolve_id"`
	Module         string   `yaml:"module"`
	Configurations []string `yaml:"configurations"`
	Dependencies   int      `yaml:"dependencies"`
	Artifacts      int      `yaml:"artifacts"`
	Evicted        []string `yaml:"evicted,omitempty"`
	Unresolved     []string `yaml:"unresolved,omitempty"`
	Problems       []string `yaml:"problems,omitempty"`
	ResolveTimeMS  int64    `yaml:"resolve_time_ms"`
	DownloadTimeMS int64    `yaml:"download_time_ms"`
	DownloadSize   int64    `yaml:"download_size"`
}

type ReportOutputPort interface {
	WriteReportSummary(path string, summary ReportSummary) error
}
