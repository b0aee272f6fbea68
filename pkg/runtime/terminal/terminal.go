package terminal

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/FloresJesus/Pharmacy/pkg/runtime/terminal/commands"
	"github.com/FloresJesus/Pharmacy/pkg/runtime/terminal/export"
	"github.com/FloresJesus/Pharmacy/pkg/services/receipt"
	"github.com/FloresJesus/Pharmacy/pkg/services/report"

	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	reports  report.Service
	receipts receipt.Service
	location *time.Location
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Reports  report.Service
	Receipts receipt.Service
	// Location is used to read --from and --to dates.
	Location *time.Location
	Output   io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}

	cli := &CLI{
		reports:  opts.Reports,
		receipts: opts.Receipts,
		location: opts.Location,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

// Execute runs the command selected by args. The context carries the logger.
func (cli *CLI) Execute(ctx context.Context, args ...string) error {
	if args != nil {
		cli.rootCmd.SetArgs(args)
	}
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pharmacy",
		Short:         "Pharmacy reports and receipts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	if cli.reports != nil {
		cmd.AddCommand(commands.NewReportCmd(cli.reports, cli.reporter, cli.location))
		cmd.AddCommand(commands.NewKindsCmd(cli.reports, cli.reporter))
	}
	if cli.receipts != nil {
		cmd.AddCommand(commands.NewReceiptCmd(cli.receipts, cli.reporter))
	}

	return cmd
}
