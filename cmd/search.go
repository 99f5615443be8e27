package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/natlasdev/natlas/config"
	"github.com/natlasdev/natlas/pkg/transcripts"
)

// Search command flags.
var (
	searchTranscriptsPath string
	searchOutput          string
)

// NewSearchCommand creates the search command, which runs fuzzy search over a
// transcript collection loaded from a JSON file.
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy search a transcript collection",
		Long: `Search a collection of transcripts for a query, tolerating the spelling
drift ASR introduces. Results are ranked by relevance and include a
snippet around the first match.

The transcripts file is a JSON array:
  [{"video_id": "vid-001", "transcript": "full transcript text ..."}]

Examples:
  natlas search "market analysis" --transcripts corpus.json
  natlas search "Chinedu" --transcripts corpus.json --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			return runSearch(cmd, cfg, args[0])
		},
	}

	cmd.Flags().StringVar(&searchTranscriptsPath, "transcripts", "", "JSON file with the transcript collection (required)")
	cmd.Flags().StringVarP(&searchOutput, "output", "o", "text", "Output format: json, text")
	cmd.MarkFlagRequired("transcripts")

	return cmd
}

func runSearch(cmd *cobra.Command, cfg *config.Config, query string) error {
	items, err := loadTranscripts(searchTranscriptsPath)
	if err != nil {
		return err
	}

	searcher := transcripts.NewSearcher()
	searcher.SimilarityThreshold = cfg.Matching.SimilarityThreshold
	searcher.SnippetWindow = cfg.Matching.SnippetWindow

	results, err := searcher.Search(query, items)
	if err != nil {
		return err
	}

	if searchOutput == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintln(out, "No matches.")
		return nil
	}

	fmt.Fprintf(out, "Results (%d)\n\n", len(results))
	for _, r := range results {
		fmt.Fprintf(out, "%-20s score=%.3f matches=%d\n", r.VideoID, r.Relevance, r.MatchCount)
		fmt.Fprintf(out, "  %s\n\n", r.Snippet)
	}
	return nil
}

// loadTranscripts reads a JSON array of transcripts from path.
func loadTranscripts(path string) ([]transcripts.Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading transcripts: %w", err)
	}

	var items []transcripts.Transcript
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing transcripts %s: %w", path, err)
	}
	return items, nil
}
