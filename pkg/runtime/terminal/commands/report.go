package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/FloresJesus/Pharmacy/pkg/adapters"
	"github.com/FloresJesus/Pharmacy/pkg/models/api"
	"github.com/FloresJesus/Pharmacy/pkg/runtime/terminal/export"
	"github.com/FloresJesus/Pharmacy/pkg/services/report"

	"github.com/spf13/cobra"
)

const formatTable = "table"

type ReportCmd struct {
	kind      string
	from      string
	to        string
	format    string
	threshold float64
	user      string
	out       string
	timeout   time.Duration

	service  report.Service
	reporter *export.Reporter
	location *time.Location
}

func NewReportCmd(service report.Service, reporter *export.Reporter, loc *time.Location) *cobra.Command {
	rc := &ReportCmd{service: service, reporter: reporter, location: loc}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a report",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.kind, "kind", "", "Report kind (see `kinds`)")
	cmd.Flags().StringVar(&rc.from, "from", "", "Start date, YYYY-MM-DD")
	cmd.Flags().StringVar(&rc.to, "to", "", "End date, YYYY-MM-DD")
	cmd.Flags().StringVar(&rc.format, "format", formatTable, "Output format: table, pdf or csv")
	cmd.Flags().Float64Var(&rc.threshold, "threshold", 0, "Stock threshold for low-stock kinds")
	cmd.Flags().StringVar(&rc.user, "user", "", "User recorded in the report audit")
	cmd.Flags().StringVarP(&rc.out, "out", "o", "", "Output file or directory for pdf and csv")
	cmd.Flags().DurationVar(&rc.timeout, "timeout", 60*time.Second, "Timeout for the whole command")

	_ = cmd.MarkFlagRequired("kind")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), rc.timeout)
	defer cancel()

	body := api.ReportRequest{
		Kind:      rc.kind,
		StartDate: rc.from,
		EndDate:   rc.to,
		UserID:    rc.user,
	}
	asTable := strings.EqualFold(rc.format, formatTable)
	if !asTable {
		body.Format = rc.format
	}
	if cmd.Flags().Changed("threshold") {
		threshold := rc.threshold
		body.Threshold = &threshold
	}

	req, err := adapters.MapApiReportRequestToDomain(body, rc.location)
	if err != nil {
		return err
	}

	if asTable {
		tbl, err := rc.service.Table(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		return rc.reporter.Table(tbl)
	}

	file, err := rc.service.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	path := outputPath(rc.out, file.Name)
	if err := os.WriteFile(path, file.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	rc.reporter.Saved(path, len(file.Data))
	return nil
}

// outputPath places name inside out when out is empty or a directory.
func outputPath(out, name string) string {
	if out == "" {
		return name
	}
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		return filepath.Join(out, name)
	}
	return out
}
