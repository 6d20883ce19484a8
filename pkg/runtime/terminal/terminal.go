package terminal

import (
	"io"
	"os"

	"github.com/sb-tools/merchant-lens/pkg/runtime/terminal/commands"
	"github.com/sb-tools/merchant-lens/pkg/runtime/terminal/export"

	"github.com/sb-tools/merchant-lens/pkg/services/consult"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	consultant consult.Consultant
	reporter   *export.Reporter
	rootCmd    *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Consultant consult.Consultant
	Output     io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		consultant: opts.Consultant,
		reporter:   export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lens",
		Short: "Merchant consultation tool",
	}

	cmd.AddCommand(commands.NewAskCmd(cli.consultant, cli.reporter))
	cmd.AddCommand(commands.NewMerchantCmd(cli.consultant, cli.reporter))
	cmd.AddCommand(commands.NewIntentsCmd())

	return cmd
}
