package adapters

import (
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"bundlebridge/internal/core"
	"bundlebridge/internal/shared"
	"bundlebridge/internal/types"
)

const (
	headerSymbolicName  = "Bundle-SymbolicName"
	headerVersion       = "Bundle-Version"
	headerExportPackage = "Export-Package"
	headerImportPackage = "Import-Package"
	headerRequireBundle = "Require-Bundle"
	headerExecutionEnv  = "Bundle-RequiredExecutionEnvironment"
	headerClasspath     = "Bundle-ClassPath"

	attributeVersion   = "version"
	attributeBundleVer = "bundle-version"

	directiveUses       = "uses"
	directiveResolution = "resolution"

	resolutionOptionalID = "optional"
)

// ManifestFileAdapter reads bundle manifests (MANIFEST.MF format) and
// builds the bundle description the translator consumes.
type ManifestFileAdapter struct{}

func NewManifestFileAdapter() ManifestFileAdapter {
	return ManifestFileAdapter{}
}

func (a ManifestFileAdapter) LoadBundle(path string) (types.BundleInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.BundleInfo{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("manifest file not found").
			WithCause(err)
	}
	attributes, err := ParseManifestAttributes(data)
	if err != nil {
		return types.BundleInfo{}, err
	}
	return BundleInfoFromManifest(attributes)
}

// LoadAttributes returns the raw main attributes of a manifest in file
// order, for verbatim copying into descriptor extra-info.
func (a ManifestFileAdapter) LoadAttributes(path string) ([]types.ExtraInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("manifest file not found").
			WithCause(err)
	}
	return ParseManifestAttributes(data)
}

// ParseManifestAttributes unfolds manifest continuation lines (a line
// starting with a single space continues the previous one) and splits
// each logical line on the first colon. Order is preserved and duplicate
// keys are kept.
func ParseManifestAttributes(data []byte) ([]types.ExtraInfo, error) {
	var attributes []types.ExtraInfo
	var logical []string
	for _, line := range strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n") {
		if line == "" {
			continue
		}
		if line[0] == ' ' {
			if len(logical) == 0 {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg("manifest starts with a continuation line")
			}
			logical[len(logical)-1] += line[1:]
			continue
		}
		logical = append(logical, line)
	}
	for _, line := range logical {
		sep := strings.Index(line, ":")
		if sep < 0 {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("malformed manifest line: %s", line))
		}
		key := strings.TrimSpace(line[:sep])
		value := strings.TrimSpace(line[sep+1:])
		attributes = append(attributes, types.ExtraInfo{Key: key, Value: value})
	}
	return attributes, nil
}

// ParseHeaderElements splits one manifest header value into its clauses.
// Clauses are comma-separated, clause parts semicolon-separated; a part
// with ":=" is a directive, with "=" an attribute, anything else a raw
// value. Separators inside double quotes do not split.
func ParseHeaderElements(value string) ([]*core.HeaderElement, error) {
	var elements []*core.HeaderElement
	for _, clause := range splitQuoted(value, ',') {
		if strings.TrimSpace(clause) == "" {
			continue
		}
		element := core.NewHeaderElement()
		for _, part := range splitQuoted(clause, ';') {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if sep := strings.Index(part, ":="); sep >= 0 {
				element.AddDirective(strings.TrimSpace(part[:sep]), shared.Unquote(part[sep+2:]))
				continue
			}
			if sep := strings.Index(part, "="); sep >= 0 {
				element.AddAttribute(strings.TrimSpace(part[:sep]), shared.Unquote(part[sep+1:]))
				continue
			}
			element.AddValue(part)
		}
		if len(element.Values()) == 0 {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("header clause without a value: %s", clause))
		}
		elements = append(elements, element)
	}
	return elements, nil
}

// BundleInfoFromManifest interprets parsed manifest attributes as a
// bundle description.
func BundleInfoFromManifest(attributes []types.ExtraInfo) (types.BundleInfo, error) {
	lookup := map[string]string{}
	for _, attribute := range attributes {
		if _, ok := lookup[attribute.Key]; !ok {
			lookup[attribute.Key] = attribute.Value
		}
	}

	symbolicHeader, ok := lookup[headerSymbolicName]
	if !ok {
		return types.BundleInfo{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest has no Bundle-SymbolicName")
	}
	symbolicElements, err := ParseHeaderElements(symbolicHeader)
	if err != nil {
		return types.BundleInfo{}, err
	}
	bundle := types.BundleInfo{
		SymbolicName: symbolicElements[0].Values()[0],
		Version:      "0.0.0",
	}
	if version, ok := lookup[headerVersion]; ok {
		bundle.Version = strings.TrimSpace(version)
	}

	if exports, ok := lookup[headerExportPackage]; ok {
		elements, err := ParseHeaderElements(exports)
		if err != nil {
			return types.BundleInfo{}, err
		}
		for _, element := range elements {
			version := element.Attribute(attributeVersion)
			if version == "" {
				version = "0.0.0"
			}
			uses := shared.SplitAndTrim(element.Directive(directiveUses), ",")
			for _, pkg := range element.Values() {
				bundle.Exports = append(bundle.Exports, types.ExportPackage{
					Name:    pkg,
					Version: version,
					Uses:    uses,
				})
			}
		}
	}

	if imports, ok := lookup[headerImportPackage]; ok {
		requirements, err := headerRequirements(imports, types.RequirementTypePackage, attributeVersion)
		if err != nil {
			return types.BundleInfo{}, err
		}
		bundle.Requirements = append(bundle.Requirements, requirements...)
	}
	if requires, ok := lookup[headerRequireBundle]; ok {
		requirements, err := headerRequirements(requires, types.RequirementTypeBundle, attributeBundleVer)
		if err != nil {
			return types.BundleInfo{}, err
		}
		bundle.Requirements = append(bundle.Requirements, requirements...)
	}

	if envs, ok := lookup[headerExecutionEnv]; ok {
		bundle.ExecutionEnvironments = shared.SplitAndTrim(envs, ",")
		for _, env := range bundle.ExecutionEnvironments {
			bundle.Requirements = append(bundle.Requirements, types.BundleRequirement{
				Type:       types.RequirementTypeEnvironment,
				Name:       env,
				Resolution: types.ResolutionMandatory,
			})
		}
	}

	if classpath, ok := lookup[headerClasspath]; ok {
		for _, entry := range shared.SplitAndTrim(classpath, ",") {
			if entry != "." {
				bundle.HasInnerClasspath = true
				break
			}
		}
	}

	return bundle, nil
}

func headerRequirements(header string, reqType types.RequirementType, versionAttribute string) ([]types.BundleRequirement, error) {
	elements, err := ParseHeaderElements(header)
	if err != nil {
		return nil, err
	}
	var requirements []types.BundleRequirement
	for _, element := range elements {
		resolution := types.ResolutionMandatory
		if element.Directive(directiveResolution) == resolutionOptionalID {
			resolution = types.ResolutionOptional
		}
		for _, name := range element.Values() {
			requirements = append(requirements, types.BundleRequirement{
				Type:       reqType,
				Name:       name,
				Version:    element.Attribute(versionAttribute),
				Resolution: resolution,
			})
		}
	}
	return requirements, nil
}

func splitQuoted(value string, sep byte) []string {
	var parts []string
	var current strings.Builder
	inQuotes := false
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			current.WriteByte(c)
		case c == sep && !inQuotes:
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}
	parts = append(parts, current.String())
	return parts
}
