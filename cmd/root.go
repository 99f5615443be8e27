package cmd

import (
	"github.com/spf13/cobra"
)

// Global flags shared by all commands.
var (
	cfgFile string
)

// NewRootCommand creates the root natlas command with all subcommands attached.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "natlas",
		Short: "Nigerian-accented speech transcription and mention detection",
		Long: `natlas transcribes videos with a Nigerian-accented English ASR model,
detects which roster users are mentioned in the transcript, and provides
fuzzy search over transcript collections.

COMMON WORKFLOWS:
  Run the service:    natlas serve
  Process one video:  natlas process lecture.mp4 --roster users.json
  Search transcripts: natlas search "market analysis" --transcripts corpus.json

DISCOVERY:
  natlas <command> --help   Flags and examples for any command`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./natlas.yaml)")

	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewProcessCommand())
	rootCmd.AddCommand(NewSearchCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}
