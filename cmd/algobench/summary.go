package main

import (
	"fmt"

	"algobench/internal/report"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <trace>...",
	Short: "Summarise trace files per algorithm and case",
	Long: `Groups the records of each trace by algorithm and case and reports the
sample count, minimum, maximum and mean duration, and the largest size.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatName, _ := cmd.Flags().GetString("format")
		format, err := report.ParseFormat(formatName)
		if err != nil {
			return err
		}

		traces, err := report.LoadTraces(cmd.Context(), args...)
		if err != nil {
			return fmt.Errorf("failed to load traces: %w", err)
		}
		out := cmd.OutOrStdout()
		for i, t := range traces {
			if i > 0 && format == report.FormatTable {
				fmt.Fprintln(out)
			}
			if err := report.Write(out, t.Summary(), format); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringP("format", "f", "table", "Output format: table, json, yaml or toml")
}
