package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/natlasdev/natlas/pkg/buildinfo"
)

var versionOutputJSON bool

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print the version, commit hash, and build time of the natlas binary.

Examples:
  natlas version
  natlas version --output-json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := buildinfo.Get("natlas")

			if versionOutputJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "natlas version %s\n", info.Version)
			fmt.Fprintf(out, "  commit:     %s\n", info.Commit)
			fmt.Fprintf(out, "  built:      %s\n", info.BuildTime)
			fmt.Fprintf(out, "  go version: %s\n", info.GoVersion)
			return nil
		},
	}

	cmd.Flags().BoolVar(&versionOutputJSON, "output-json", false, "Output as JSON")

	return cmd
}
