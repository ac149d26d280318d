package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print task statistics",
	RunE:  printStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print as JSON")
}

func printStats(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	report, err := a.service.Statistics(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if statsJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintf(out, "Total:         %d\n", report.Total)
	fmt.Fprintf(out, "Completed:     %d\n", report.Completed)
	fmt.Fprintf(out, "Pending:       %d\n", report.Pending)
	fmt.Fprintf(out, "In progress:   %d\n", report.InProgress)
	fmt.Fprintf(out, "Overdue:       %d\n", report.Overdue)
	fmt.Fprintf(out, "High priority: %d\n", report.HighPriority)
	return nil
}
