package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sb-tools/merchant-lens/pkg/runtime/terminal"
	"github.com/sb-tools/merchant-lens/pkg/services/config"
	"github.com/sb-tools/merchant-lens/pkg/services/consult"
	"github.com/sb-tools/merchant-lens/pkg/services/narrative"
	"github.com/sb-tools/merchant-lens/pkg/store/dataset"

	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	cfg, err := config.Load(os.Getenv("LENS_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data, err := dataset.New(ctx, dataset.Settings{Dir: cfg.DataDir})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	consultant, err := consult.NewConsultant(data, newGenerator(ctx, cfg), nil, cfg.Narrative.Timeout())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cli := terminal.NewCLI(terminal.Options{
		Consultant: consultant,
		Output:     os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newGenerator(ctx context.Context, cfg *config.Config) narrative.Generator {
	apiKey := os.Getenv(cfg.Narrative.APIKeyEnv)
	if apiKey == "" {
		return narrative.NewStaticGenerator("")
	}

	generator, err := narrative.NewGeminiGenerator(ctx, narrative.GeminiSettings{
		APIKey: apiKey,
		Model:  cfg.Narrative.Model,
	})
	if err != nil {
		return narrative.NewStaticGenerator("")
	}
	return generator
}
