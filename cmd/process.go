package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/natlasdev/natlas/client"
	"github.com/natlasdev/natlas/config"
	"github.com/natlasdev/natlas/pkg/executor"
	"github.com/natlasdev/natlas/pkg/media"
	"github.com/natlasdev/natlas/pkg/mentions"
	"github.com/natlasdev/natlas/services/pipeline"
)

// Process command flags.
var (
	processRosterPath string
	processVideoID    string
	processOutput     string
)

// NewProcessCommand creates the process command, which runs the full
// extract-transcribe-detect pipeline on a local video file.
func NewProcessCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process <video-file>",
		Short: "Transcribe a video and detect roster mentions",
		Long: `Extract the audio track from a video file, transcribe it with the
configured ASR service, and detect which roster users are mentioned
in the transcript.

The roster file is a JSON array of users:
  [{"user_id": 1, "first_name": "Chinedu", "last_name": "Okonkwo", "username": "chinedu.o"}]

Examples:
  natlas process lecture.mp4 --roster users.json
  natlas process lecture.mp4 --roster users.json --video-id lecture-001
  natlas process lecture.mp4 --roster users.json --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			return runProcess(cmd, cfg, args[0])
		},
	}

	cmd.Flags().StringVar(&processRosterPath, "roster", "", "JSON file with the user roster (required)")
	cmd.Flags().StringVar(&processVideoID, "video-id", "", "Identifier for the video (defaults to the file name)")
	cmd.Flags().StringVarP(&processOutput, "output", "o", "text", "Output format: json, text")
	cmd.MarkFlagRequired("roster")

	return cmd
}

func runProcess(cmd *cobra.Command, cfg *config.Config, videoPath string) error {
	if cfg.ASR.Endpoint == "" {
		return fmt.Errorf("no ASR endpoint configured: set asr.endpoint or NATLAS_ASR_ENDPOINT")
	}

	users, err := loadRoster(processRosterPath)
	if err != nil {
		return err
	}

	videoID := processVideoID
	if videoID == "" {
		videoID = videoPath
	}

	log := newLogger(cfg)

	tempDir, err := cfg.EnsureTempAudioDir()
	if err != nil {
		return err
	}

	extractor := media.NewExtractor(executor.New(), tempDir, log)
	transcriber := client.NewASRClient(cfg.ASR.Endpoint, cfg.ASR.Model, log)

	detector := mentions.NewDetector()
	detector.SimilarityThreshold = cfg.Matching.SimilarityThreshold
	detector.Phonetic = cfg.Matching.PhoneticEnabled

	svc := pipeline.New(extractor, transcriber, detector, log)

	result, err := svc.ProcessVideo(cmd.Context(), videoPath, videoID, users)
	if err != nil {
		return fmt.Errorf("processing %s: %w", videoPath, err)
	}

	if processOutput == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Video:    %s\n", result.VideoID)
	fmt.Fprintf(out, "Duration: %.1fs\n", result.DurationSeconds)
	fmt.Fprintf(out, "Mentions: %d\n", result.Mentions.Count)
	for _, m := range result.Mentions.Users {
		name := m.FirstName
		if m.LastName != "" {
			name += " " + m.LastName
		}
		fmt.Fprintf(out, "  #%-6d %-24s %s (%s)\n", m.UserID, name, m.MatchedText, m.MatchType)
	}
	fmt.Fprintf(out, "\nTranscript:\n%s\n", result.Transcript)
	return nil
}

// loadRoster reads a JSON array of users from path.
func loadRoster(path string) ([]mentions.User, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster: %w", err)
	}

	var users []mentions.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("parsing roster %s: %w", path, err)
	}
	return users, nil
}
