package commands

import (
	"fmt"
	"strings"

	"github.com/sb-tools/merchant-lens/pkg/services/intent"
	"github.com/spf13/cobra"
)

type IntentsCmd struct{}

func NewIntentsCmd() *cobra.Command {
	ic := &IntentsCmd{}
	cmd := &cobra.Command{
		Use:   "intents",
		Short: "List the analysis intents and their trigger keywords",
		RunE:  ic.run,
	}

	return cmd
}

func (ic *IntentsCmd) run(cmd *cobra.Command, args []string) error {
	classifier := intent.NewClassifier()

	for _, rule := range classifier.Rules() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n  트리거: %s\n",
			rule.Intent.Label(), rule.Intent, strings.Join(rule.Triggers, ", "))
	}

	fallback := intent.Default()
	fmt.Fprintf(cmd.OutOrStdout(), "기본값: %s (%s)\n", fallback.Label(), fallback)

	return nil
}
