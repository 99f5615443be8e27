// Package cmd provides the CLI commands for the natlas tool.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/natlasdev/natlas/client"
	"github.com/natlasdev/natlas/config"
	"github.com/natlasdev/natlas/pkg/executor"
	"github.com/natlasdev/natlas/pkg/logging"
	"github.com/natlasdev/natlas/pkg/media"
	"github.com/natlasdev/natlas/pkg/mentions"
	"github.com/natlasdev/natlas/pkg/transcripts"
	"github.com/natlasdev/natlas/services/api"
	"github.com/natlasdev/natlas/services/pipeline"
)

// NewServeCommand creates the serve command, which runs the HTTP service.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the natlas HTTP service",
		Long: `Run the natlas HTTP service.

Exposes POST /process-video (transcribe a video and detect user mentions),
POST /search (fuzzy search over caller-supplied transcripts), GET /health,
and GET /metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			return runServer(cfg)
		},
	}
	return cmd
}

func runServer(cfg *config.Config) error {
	log := newLogger(cfg)

	tempDir, err := cfg.EnsureTempAudioDir()
	if err != nil {
		return err
	}

	extractor := media.NewExtractor(executor.New(), tempDir, log)

	var transcriber client.Transcriber
	modelLoaded := false
	if cfg.ASR.Endpoint != "" {
		transcriber = client.NewASRClient(cfg.ASR.Endpoint, cfg.ASR.Model, log)
		modelLoaded = true
	}

	detector := mentions.NewDetector()
	detector.SimilarityThreshold = cfg.Matching.SimilarityThreshold
	detector.Phonetic = cfg.Matching.PhoneticEnabled

	searcher := transcripts.NewSearcher()
	searcher.SimilarityThreshold = cfg.Matching.SimilarityThreshold
	searcher.SnippetWindow = cfg.Matching.SnippetWindow

	srv := api.NewServer(api.Options{
		Addr:        cfg.Server.Addr(),
		Pipeline:    pipeline.New(extractor, transcriber, detector, log),
		Searcher:    searcher,
		Logger:      log,
		ModelLoaded: modelLoaded,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info("natlas service listening", logging.F("addr", cfg.Server.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-sigCh:
		log.Info("shutting down", logging.F("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func newLogger(cfg *config.Config) logging.Logger {
	return logging.NewLogger(&logging.Config{
		Level:       logging.Level(cfg.LogLevel),
		ServiceName: "natlas",
		Environment: environmentName(cfg),
		JSONFormat:  cfg.LogJSON,
	})
}

func environmentName(cfg *config.Config) string {
	if cfg.LogJSON {
		return "production"
	}
	return "development"
}
