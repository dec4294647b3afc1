package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"bundlebridge/internal/app"
	"bundlebridge/internal/core"
	"bundlebridge/internal/policies"
	"bundlebridge/internal/types"
)

const manifestFixture = "Manifest-Version: 1.0\r\n" +
	"Bundle-SymbolicName: org.apache.tools.bundle;singleton:=true\r\n" +
	"Bundle-Version: 1.4.2\r\n" +
	"Export-Package: org.apache.tools;version=\"1.4.2\";uses:=\"org.apache.uti\r\n" +
	" l\",org.apache.util;version=\"1.4.2\"\r\n" +
	"Import-Package: org.apache.log;version=\"[1,2)\",org.apache.extra;resolu\r\n" +
	" tion:=optional\r\n" +
	"Require-Bundle: org.other.bundle;bundle-version=\"2.0\"\r\n" +
	"Bundle-RequiredExecutionEnvironment: JavaSE-1.8\r\n"

const profilesFixture = `profiles:
  - name: JavaSE-1.8
    packages: [javax.crypto, javax.net.ssl]
`

func TestTranslateIntegration(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "MANIFEST.MF")
	require.NoError(t, os.WriteFile(manifestPath, []byte(manifestFixture), 0644))
	profilesPath := filepath.Join(dir, "profiles.yaml")
	require.NoError(t, os.WriteFile(profilesPath, []byte(profilesFixture), 0644))
	outputPath := filepath.Join(dir, "out", "descriptor.yaml")

	service := app.NewService()
	result, err := service.Translate(t.Context(), app.TranslateRequest{
		ManifestPath:           manifestPath,
		BaseURI:                "file:///repo/bundles/",
		ProfilesPath:           profilesPath,
		OutputPath:             outputPath,
		CopyManifestAttributes: true,
	})
	require.NoError(t, err)

	md := result.Descriptor
	require.Equal(t, "osgi.bundle", md.RevisionID.Organisation)
	require.Equal(t, "org.apache.tools.bundle", md.RevisionID.Name)
	require.Equal(t, "1.4.2", md.RevisionID.Revision)

	// fixed confs, one use-conf per exported package, then one per
	// required package not exported by the bundle itself
	require.Equal(t,
		[]string{
			"default", "optional", "transitive-optional",
			"use_org.apache.tools", "use_org.apache.util",
			"use_org.apache.log", "use_org.apache.extra",
		},
		md.ConfigurationNames())

	tools, ok := md.Configuration("use_org.apache.tools")
	require.True(t, ok)
	require.Equal(t, []string{"use_org.apache.util", "default"}, tools.Extends)

	deps := md.Dependencies()
	require.Len(t, deps, 3)
	require.Equal(t, "package#org.apache.log", deps[0].RevisionID.ModuleID.String())
	require.Equal(t, "[1,2)", deps[0].RevisionID.Revision)
	require.Equal(t, "package#org.apache.extra", deps[1].RevisionID.ModuleID.String())
	require.Equal(t, []string{"use_org.apache.extra"}, deps[1].DependencyConfigurations("optional"))
	require.Equal(t, "osgi.bundle#org.other.bundle", deps[2].RevisionID.ModuleID.String())
	require.Equal(t, "[2.0,)", deps[2].RevisionID.Revision)

	// the execution environment packages are excluded on every conf
	policy := policies.NewExcludePolicy(md.ExcludeRules())
	excluded, err := policy.Excludes("default", types.ModuleID{Organisation: "package", Name: "javax.crypto"})
	require.NoError(t, err)
	require.True(t, excluded)
	excluded, err = policy.Excludes("default", types.ModuleID{Organisation: "package", Name: "org.apache.log"})
	require.NoError(t, err)
	require.False(t, excluded)

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	require.Equal(t, "org.apache.tools.bundle", doc["module"])
	require.Equal(t, "1.4.2", doc["revision"])
}

func TestReportIntegration(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "MANIFEST.MF")
	require.NoError(t, os.WriteFile(manifestPath, []byte(manifestFixture), 0644))

	service := app.NewService()
	result, err := service.Translate(t.Context(), app.TranslateRequest{ManifestPath: manifestPath})
	require.NoError(t, err)
	md := result.Descriptor

	report := core.NewResolveReport(md, "")
	for _, conf := range md.ConfigurationNames() {
		report.AddReport(conf, core.NewConfigurationReport(conf))
	}
	require.False(t, report.HasError())

	summaryPath := filepath.Join(dir, "report.yaml")
	summary, err := service.SummarizeReport(t.Context(), report, summaryPath)
	require.NoError(t, err)
	require.Equal(t, "osgi.bundle-org.apache.tools.bundle", summary.ResolveID)
	require.FileExists(t, summaryPath)

	fixedPath := filepath.Join(dir, "fixed.yaml")
	fixed, err := service.FixDescriptor(t.Context(), report, nil, nil, fixedPath)
	require.NoError(t, err)
	conf, ok := fixed.Configuration("use_org.apache.tools")
	require.True(t, ok)
	require.Empty(t, conf.Extends)
	require.FileExists(t, fixedPath)
}
