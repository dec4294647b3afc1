package app

import (
	"time"

	"bundlebridge/internal/adapters"
	"bundlebridge/internal/ports"
)

type Service struct {
	Bundles     ports.BundleSourcePort
	Profiles    ports.ProfileSourcePort
	Descriptors ports.DescriptorWriterPort
	Reports     ports.ReportOutputPort
	Clock       func() time.Time
}

func NewService() Service {
	descriptors := adapters.NewDescriptorFileAdapter()
	return Service{
		Bundles:     adapters.NewManifestFileAdapter(),
		Profiles:    adapters.NewProfileFileAdapter(),
		Descriptors: descriptors,
		Reports:     descriptors,
		Clock:       time.Now,
	}
}
