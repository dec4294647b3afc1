package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bundlebridge/internal/app"
)

type inspectOptions struct {
	Manifest string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect a bundle manifest without translating it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "Bundle manifest path")
	return cmd
}

func runInspect(cmd *cobra.Command, opts inspectOptions) error {
	service := newAppService()
	result, err := service.Inspect(cmd.Context(), app.InspectRequest{
		ManifestPath: opts.Manifest,
	})
	if err != nil {
		return err
	}

	fmt.Printf("bundle: %s %s\n", result.SymbolicName, result.Version)
	fmt.Printf("exports: %d\n", result.Exports)
	fmt.Printf("requirements: %d\n", result.Requirements)
	if len(result.ExecutionEnvironments) > 0 {
		fmt.Printf("execution environments: %s\n", strings.Join(result.ExecutionEnvironments, ", "))
	}
	fmt.Printf("configurations: %s\n", strings.Join(result.Configurations, ", "))
	return nil
}
