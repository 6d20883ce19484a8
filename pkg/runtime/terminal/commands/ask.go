package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/sb-tools/merchant-lens/pkg/models/domain"
	"github.com/sb-tools/merchant-lens/pkg/runtime/terminal/export"
	"github.com/sb-tools/merchant-lens/pkg/services/consult"

	"github.com/spf13/cobra"
)

type AskCmd struct {
	question   string
	narrative  bool
	consultant consult.Consultant
	reporter   *export.Reporter
}

func NewAskCmd(consultant consult.Consultant, reporter *export.Reporter) *cobra.Command {
	ac := &AskCmd{consultant: consultant, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "ask",
		Short: "Run a consultation for a free-text question",
		RunE:  ac.run,
	}

	// Define flags
	cmd.Flags().StringVar(&ac.question, "question", "", "Question text including the merchant id, e.g. \"... (가게 ID: ABC12345)\"")
	cmd.Flags().BoolVar(&ac.narrative, "narrative", false, "Generate the narrative answer as well")

	// Mark required flags
	_ = cmd.MarkFlagRequired("question")

	return cmd
}

func (ac *AskCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	consultation, err := ac.consultant.Consult(ctx, ac.question, ac.narrative)
	if err != nil {
		return fmt.Errorf("failed to run consultation: %w", err)
	}

	report := &domain.Report{
		Title:       consultation.Intent.Label(),
		MerchantID:  consultation.MerchantID,
		Intent:      consultation.Intent,
		Sections:    consultation.Sections,
		GeneratedAt: consultation.CreatedAt,
	}

	if err := ac.reporter.Handle(report); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if consultation.Narrative != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", consultation.Narrative)
	}

	return nil
}
