package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/sb-tools/merchant-lens/pkg/server"
	"github.com/sb-tools/merchant-lens/pkg/services/config"
	"github.com/sb-tools/merchant-lens/pkg/services/consult"
	"github.com/sb-tools/merchant-lens/pkg/services/narrative"
	"github.com/sb-tools/merchant-lens/pkg/store/dataset"
	"github.com/sb-tools/merchant-lens/pkg/store/duckdb"
	duckdbarchive "github.com/sb-tools/merchant-lens/pkg/store/duckdb/archive"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Merchant Lens",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the YAML config file (built-in defaults apply when omitted)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	data, err := dataset.New(ctx, dataset.Settings{Dir: cfg.DataDir})
	if err != nil {
		return fmt.Errorf("failed to load datasets: %w", err)
	}
	logger.Info().
		Str("dir", cfg.DataDir).
		Int("merchants", len(data.Merchants())).
		Msg("datasets loaded")

	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath: cfg.ArchivePath,
	})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}

	archiveStore, err := duckdbarchive.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create archive store: %w", err)
	}

	consultant, err := consult.NewConsultant(data, newGenerator(ctx, logger, cfg), archiveStore, cfg.Narrative.Timeout())
	if err != nil {
		return fmt.Errorf("failed to create consultant: %w", err)
	}

	mux := server.ConfigureRouter(server.Config{
		Dependencies: server.Dependencies{
			Consultant: consultant,
			Logger:     logger,
		},
	})

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	addr := net.JoinHostPort(host, port)
	logger.Info().Msgf("starting server on %s", addr)

	return http.ListenAndServe(addr, mux)
}

// newGenerator picks the narrative backend: Gemini when the configured key
// env is set, a static fallback otherwise so the server still serves reports.
func newGenerator(ctx context.Context, logger zerolog.Logger, cfg *config.Config) narrative.Generator {
	apiKey := os.Getenv(cfg.Narrative.APIKeyEnv)
	if apiKey == "" {
		logger.Warn().
			Str("env", cfg.Narrative.APIKeyEnv).
			Msg("api key not set, narratives fall back to static text")
		return narrative.NewStaticGenerator("")
	}

	generator, err := narrative.NewGeminiGenerator(ctx, narrative.GeminiSettings{
		APIKey: apiKey,
		Model:  cfg.Narrative.Model,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("gemini client unavailable, narratives fall back to static text")
		return narrative.NewStaticGenerator("")
	}
	return generator
}
