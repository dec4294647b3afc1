package core

import (
	"context"
	"fmt"
	"net/url"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"bundlebridge/internal/ports"
	"bundlebridge/internal/types"
)

const (
	ConfNameDefault            = "default"
	ConfNameOptional           = "optional"
	ConfNameTransitiveOptional = "transitive-optional"

	// ConfUsePrefix prefixes the configuration synthesized for each
	// exported or required package.
	ConfUsePrefix = "use_"

	// ExtraInfoExportPrefix keys the extra-info entry holding an exported
	// package's version.
	ExtraInfoExportPrefix = "_osgi_export_"

	extraAttributePrefix       = "o"
	extraAttributeNamespaceURI = "bundlebridge:osgi"
)

// DefaultConf returns a fresh default configuration. Configurations are
// built per call rather than shared so descriptors never alias each
// other's values.
func DefaultConf() types.Configuration {
	return types.Configuration{Name: ConfNameDefault, Visibility: types.VisibilityPublic}
}

func OptionalConf() types.Configuration {
	return types.Configuration{
		Name:        ConfNameOptional,
		Visibility:  types.VisibilityPublic,
		Description: "Optional dependencies",
		Extends:     []string{ConfNameDefault},
		Transitive:  true,
	}
}

func TransitiveOptionalConf() types.Configuration {
	return types.Configuration{
		Name:        ConfNameTransitiveOptional,
		Visibility:  types.VisibilityPublic,
		Description: "Optional dependencies",
		Extends:     []string{ConfNameOptional},
		Transitive:  true,
	}
}

// TranslateOptions carries the optional collaborators of a translation.
// A nil BaseURI skips artifact translation, a nil Profiles skips
// execution-environment exclusion rules, and empty ManifestAttributes
// add no extra-info. Each skip is part of the contract, not an error.
type TranslateOptions struct {
	BaseURI            *url.URL
	ManifestAttributes []types.ExtraInfo
	Profiles           ports.ProfileProviderPort
}

// TranslateBundle converts a parsed bundle description into the native
// module descriptor consumed by the resolution engine: configurations
// encoding package visibility, dependency edges for unsatisfied
// requirements, artifact entries, and extra-info metadata.
func TranslateBundle(ctx context.Context, bundle types.BundleInfo, opts TranslateOptions) (*types.ModuleDescriptor, error) {
	assert.NotEmpty(ctx, bundle.SymbolicName, "bundle symbolic name must be set")
	assert.NotEmpty(ctx, bundle.Version, "bundle version must be set")

	mrid := types.NewModuleRevisionID(string(types.RequirementTypeBundle), bundle.SymbolicName, "", bundle.Version)
	md := types.NewModuleDescriptor(mrid)
	md.AddExtraAttributeNamespace(extraAttributePrefix, extraAttributeNamespaceURI)

	md.AddConfiguration(DefaultConf())
	md.AddConfiguration(OptionalConf())
	md.AddConfiguration(TransitiveOptionalConf())

	exportedPkgNames := make(map[string]struct{}, len(bundle.Exports))
	for _, export := range bundle.Exports {
		md.AddExtraInfo(ExtraInfoExportPrefix+export.Name, export.Version)
		exportedPkgNames[export.Name] = struct{}{}
	}
	for _, export := range bundle.Exports {
		extends := make([]string, 0, len(export.Uses)+1)
		for _, use := range export.Uses {
			extends = append(extends, ConfUsePrefix+use)
		}
		extends = append(extends, ConfNameDefault)
		md.AddConfiguration(types.Configuration{
			Name:        ConfUsePrefix + export.Name,
			Visibility:  types.VisibilityPublic,
			Description: "Exported package " + export.Name,
			Extends:     extends,
			Transitive:  true,
		})
	}

	if err := requirementsAsDependencies(md, bundle, exportedPkgNames); err != nil {
		return nil, err
	}

	if opts.BaseURI != nil {
		for _, bundleArtifact := range bundle.Artifacts {
			typ := "jar"
			ext := "jar"
			packaging := ""
			if bundle.HasInnerClasspath && !bundleArtifact.Source {
				packaging = "bundle"
			}
			if bundleArtifact.Format == "packed" {
				ext = "jar.pack.gz"
				if packaging != "" {
					packaging += ",pack200"
				} else {
					packaging = "pack200"
				}
			}
			if bundleArtifact.Source {
				typ = "source"
			}
			if bundleArtifact.URI == "" {
				continue
			}
			artifact, err := BuildArtifact(mrid, opts.BaseURI, bundleArtifact.URI, typ, ext, packaging)
			if err != nil {
				return nil, err
			}
			md.AddArtifact(ConfNameDefault, artifact)
		}
	}

	if opts.Profiles != nil {
		for _, env := range bundle.ExecutionEnvironments {
			profile, ok := opts.Profiles.Profile(env)
			if !ok {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeNotFound).
					WithMsg(fmt.Sprintf("execution environment profile %s not found", env))
			}
			confs := md.ConfigurationNames()
			for _, pkg := range profile.PkgNames() {
				md.AddExcludeRule(types.ExcludeRule{
					Organisation:    string(types.RequirementTypePackage),
					Name:            pkg,
					ArtifactPattern: "*",
					TypePattern:     "*",
					ExtPattern:      "*",
					Confs:           confs,
				})
			}
		}
	}

	for _, attribute := range opts.ManifestAttributes {
		md.AddExtraInfo(attribute.Key, attribute.Value)
	}

	log.Ctx(ctx).Debug().
		Str("bundle", bundle.SymbolicName).
		Int("configurations", len(md.ConfigurationNames())).
		Int("dependencies", len(md.Dependencies())).
		Msg("bundle translated")
	return md, nil
}

// BundleConfigurations lists the configuration names a bundle translates
// to, without running the full translation.
func BundleConfigurations(bundle types.BundleInfo) []string {
	confs := []string{ConfNameDefault, ConfNameOptional, ConfNameTransitiveOptional}
	for _, export := range bundle.Exports {
		confs = append(confs, ConfUsePrefix+export.Name)
	}
	return confs
}

// BuildArtifact resolves one bundle artifact URI into an artifact entry.
// URIs on the ivy scheme decode to a direct module-artifact reference;
// anything else resolves against the base location when relative.
func BuildArtifact(mrid types.ModuleRevisionID, baseURI *url.URL, rawURI string, typ string, ext string, packaging string) (types.Artifact, error) {
	parsed, err := url.Parse(rawURI)
	if err != nil {
		return types.Artifact{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("unable to make the uri into a url: %s", rawURI)).
			WithCause(err)
	}
	if parsed.Scheme == IvyURIScheme {
		coord, err := DecodeIvyURI(rawURI)
		if err != nil {
			return types.Artifact{}, err
		}
		return types.Artifact{Coordinate: coord}, nil
	}
	if !parsed.IsAbs() {
		parsed = baseURI.ResolveReference(parsed)
	}
	var extraAtt map[string]string
	if packaging != "" {
		extraAtt = map[string]string{"packaging": packaging}
	}
	return types.Artifact{
		Coordinate: types.ArtifactCoordinate{
			RevisionID: mrid,
			Name:       mrid.Name,
			Type:       typ,
			Ext:        ext,
		},
		URL:             parsed.String(),
		ExtraAttributes: extraAtt,
	}, nil
}

func requirementsAsDependencies(md *types.ModuleDescriptor, bundle types.BundleInfo, exportedPkgNames map[string]struct{}) error {
	for _, requirement := range bundle.Requirements {
		// packages exported by the bundle itself satisfy their own
		// requirement; execution environments are handled via exclusion
		// rules
		if requirement.Type == types.RequirementTypePackage {
			if _, ok := exportedPkgNames[requirement.Name]; ok {
				continue
			}
		}
		if requirement.Type == types.RequirementTypeEnvironment {
			continue
		}

		revision, err := requirementRevision(requirement.Version)
		if err != nil {
			return err
		}
		rid := types.NewModuleRevisionID(string(requirement.Type), requirement.Name, "", revision)
		dep := types.NewDependencyDescriptor(rid, false)

		conf := ConfNameDefault
		if requirement.Type == types.RequirementTypePackage {
			conf = ConfUsePrefix + requirement.Name
			md.AddConfiguration(types.Configuration{
				Name:        conf,
				Visibility:  types.VisibilityPublic,
				Description: "Exported package " + requirement.Name,
				Extends:     []string{ConfNameDefault},
				Transitive:  true,
			})
			dep.AddConfMapping(conf, conf)
		}

		if requirement.Resolution == types.ResolutionOptional {
			dep.AddConfMapping(ConfNameOptional, conf)
			dep.AddConfMapping(ConfNameTransitiveOptional, ConfNameTransitiveOptional)
		} else {
			dep.AddConfMapping(ConfNameDefault, conf)
		}

		md.AddDependency(dep)
	}
	return nil
}
