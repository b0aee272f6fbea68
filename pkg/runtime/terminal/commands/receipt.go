package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/FloresJesus/Pharmacy/pkg/models/domain"
	"github.com/FloresJesus/Pharmacy/pkg/runtime/terminal/export"
	"github.com/FloresJesus/Pharmacy/pkg/services/receipt"

	"github.com/spf13/cobra"
)

type ReceiptCmd struct {
	saleID   int64
	out      string
	issue    bool
	unsigned bool
	timeout  time.Duration

	service  receipt.Service
	reporter *export.Reporter
}

func NewReceiptCmd(service receipt.Service, reporter *export.Reporter) *cobra.Command {
	xc := &ReceiptCmd{service: service, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "receipt",
		Short: "Render or issue the receipt of a sale",
		RunE:  xc.run,
	}

	cmd.Flags().Int64Var(&xc.saleID, "sale", 0, "Sale id")
	cmd.Flags().StringVarP(&xc.out, "out", "o", "", "Output file or directory for the rendered PDF")
	cmd.Flags().BoolVar(&xc.issue, "issue", false, "Store the receipt instead of writing it locally")
	cmd.Flags().BoolVar(&xc.unsigned, "unsigned", false, "Skip the signed download URL when issuing")
	cmd.Flags().DurationVar(&xc.timeout, "timeout", 60*time.Second, "Timeout for the whole command")

	_ = cmd.MarkFlagRequired("sale")

	return cmd
}

func (xc *ReceiptCmd) run(cmd *cobra.Command, _ []string) error {
	if xc.saleID <= 0 {
		return fmt.Errorf("%w: sale id must be positive", domain.ErrInvalidRequest)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), xc.timeout)
	defer cancel()

	if xc.issue {
		stored, err := xc.service.Issue(ctx, domain.IssueRequest{SaleID: xc.saleID, Signed: !xc.unsigned})
		if err != nil {
			return fmt.Errorf("failed to issue receipt: %w", err)
		}
		xc.reporter.Receipt(stored)
		return nil
	}

	data, err := xc.service.Render(ctx, xc.saleID)
	if err != nil {
		return fmt.Errorf("failed to render receipt: %w", err)
	}

	path := outputPath(xc.out, domain.Receipt{SaleID: xc.saleID}.FileName())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	xc.reporter.Saved(path, len(data))
	return nil
}
