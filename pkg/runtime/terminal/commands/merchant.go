package commands

import (
	"fmt"
	"time"

	"github.com/sb-tools/merchant-lens/pkg/models/domain"
	"github.com/sb-tools/merchant-lens/pkg/runtime/terminal/export"
	"github.com/sb-tools/merchant-lens/pkg/services/consult"
	"github.com/sb-tools/merchant-lens/pkg/services/report"

	"github.com/spf13/cobra"
)

type MerchantCmd struct {
	merchantID string
	consultant consult.Consultant
	reporter   *export.Reporter
}

func NewMerchantCmd(consultant consult.Consultant, reporter *export.Reporter) *cobra.Command {
	mc := &MerchantCmd{consultant: consultant, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "merchant",
		Short: "Show the basic info section for a merchant",
		RunE:  mc.run,
	}

	cmd.Flags().StringVar(&mc.merchantID, "id", "", "Merchant id, e.g. ABC12345")

	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func (mc *MerchantCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	merchant, err := mc.consultant.MerchantInfo(ctx, mc.merchantID)
	if err != nil {
		return fmt.Errorf("failed to load merchant %s: %w", mc.merchantID, err)
	}

	out := &domain.Report{
		Title:       fmt.Sprintf("%s 가맹점 정보", merchant.ID),
		MerchantID:  merchant.ID,
		Sections:    []domain.ReportSection{report.BasicInfoSection(merchant)},
		GeneratedAt: time.Now(),
	}

	return mc.reporter.Handle(out)
}
