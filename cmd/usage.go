package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var usageLimit int

// usageCmd reports AI spend recorded in the usage log.
var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Report AI API usage and cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		report, err := appInstance.UsageService.Report(cmd.Context(), usageLimit)
		if err != nil {
			return fmt.Errorf("failed to build usage report: %w", err)
		}

		fmt.Printf("Total AI spend: $%.4f\n\n", report.TotalCost)

		if len(report.ByOperation) > 0 {
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Operation", "Calls", "In Tokens", "Out Tokens", "Cost"})
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			for _, op := range report.ByOperation {
				table.Append([]string{
					op.Operation,
					fmt.Sprintf("%d", op.Calls),
					fmt.Sprintf("%d", op.InputTokens),
					fmt.Sprintf("%d", op.OutputTokens),
					fmt.Sprintf("$%.4f", op.Cost),
				})
			}
			table.Render()
		}

		if len(report.Entries) > 0 {
			fmt.Printf("\nLast %d events:\n", len(report.Entries))
			for _, e := range report.Entries {
				fmt.Printf("  %s  %-22s %-10s $%.5f\n",
					e.Timestamp.Format("2006-01-02 15:04"), e.Operation, e.ProviderName, e.Cost)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(usageCmd)
	usageCmd.Flags().IntVarP(&usageLimit, "limit", "l", 10, "Number of recent events to show")
}
