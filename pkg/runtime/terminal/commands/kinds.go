package commands

import (
	"github.com/FloresJesus/Pharmacy/pkg/runtime/terminal/export"
	"github.com/FloresJesus/Pharmacy/pkg/services/report"

	"github.com/spf13/cobra"
)

func NewKindsCmd(service report.Service, reporter *export.Reporter) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the available report kinds",
		RunE: func(cmd *cobra.Command, args []string) error {
			return reporter.Kinds(service.Kinds())
		},
	}
}
