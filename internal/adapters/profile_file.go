package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"bundlebridge/internal/ports"
)

// StaticProfile is an in-memory execution-environment profile.
type StaticProfile struct {
	ProfileName string   `yaml:"name"`
	Packages    []string `yaml:"packages"`
}

func (p StaticProfile) Name() string {
	return p.ProfileName
}

func (p StaticProfile) PkgNames() []string {
	return append([]string(nil), p.Packages...)
}

// StaticProfileProvider serves profiles from a fixed set.
type StaticProfileProvider struct {
	profiles map[string]StaticProfile
}

func NewStaticProfileProvider(profiles ...StaticProfile) StaticProfileProvider {
	indexed := make(map[string]StaticProfile, len(profiles))
	for _, profile := range profiles {
		indexed[profile.ProfileName] = profile
	}
	return StaticProfileProvider{profiles: indexed}
}

func (p StaticProfileProvider) Profile(environment string) (ports.ExecutionProfile, bool) {
	profile, ok := p.profiles[environment]
	if !ok {
		return nil, false
	}
	return profile, true
}

type profileFileDoc struct {
	Profiles []StaticProfile `yaml:"profiles"`
}

// ProfileFileAdapter loads execution-environment profiles from a YAML
// file of the form:
//
//	profiles:
//	  - name: JavaSE-1.8
//	    packages: [javax.crypto, javax.net.ssl]
type ProfileFileAdapter struct{}

func NewProfileFileAdapter() ProfileFileAdapter {
	return ProfileFileAdapter{}
}

func (a ProfileFileAdapter) LoadProfiles(path string) (ports.ProfileProviderPort, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("profile file not found").
			WithCause(err)
	}
	var doc profileFileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse profile file").
			WithCause(err)
	}
	return NewStaticProfileProvider(doc.Profiles...), nil
}
