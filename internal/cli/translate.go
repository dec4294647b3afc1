package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"bundlebridge/internal/app"
)

type translateOptions struct {
	Manifest     string
	BaseURI      string
	Profiles     string
	Output       string
	CopyManifest bool
}

func newTranslateCommand() *cobra.Command {
	opts := translateOptions{}
	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Translate a bundle manifest into a module descriptor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTranslate(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "Bundle manifest path")
	cmd.Flags().StringVar(&opts.BaseURI, "base-uri", "", "Base location for resolving relative artifact URIs (omit to skip artifacts)")
	cmd.Flags().StringVar(&opts.Profiles, "profiles", "", "Execution environment profile file")
	cmd.Flags().StringVar(&opts.Output, "output", "", "Descriptor snapshot output path")
	cmd.Flags().BoolVar(&opts.CopyManifest, "copy-manifest", false, "Copy raw manifest attributes into descriptor extra-info")
	return cmd
}

func runTranslate(cmd *cobra.Command, opts translateOptions) error {
	service := newAppService()
	result, err := service.Translate(cmd.Context(), app.TranslateRequest{
		ManifestPath:           opts.Manifest,
		BaseURI:                opts.BaseURI,
		ProfilesPath:           opts.Profiles,
		OutputPath:             opts.Output,
		CopyManifestAttributes: opts.CopyManifest,
	})
	if err != nil {
		return err
	}

	md := result.Descriptor
	fmt.Printf("module: %s\n", md.RevisionID)
	fmt.Printf("configurations: %d\n", len(md.ConfigurationNames()))
	fmt.Printf("dependencies: %d\n", len(md.Dependencies()))
	if result.OutputPath != "" {
		fmt.Printf("descriptor written to %s\n", result.OutputPath)
	}
	return nil
}
