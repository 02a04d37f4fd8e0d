package main

import (
	"fmt"
	"text/tabwriter"

	"algobench/internal/report"

	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare <old-trace> <new-trace>",
	Short: "Compare two trace files",
	Long: `Matches records of two traces by label and shows the change in mean
duration. Changes within --threshold percent are reported as SAME.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		threshold, _ := cmd.Flags().GetFloat64("threshold")
		if threshold < 0 {
			return fmt.Errorf("threshold must not be negative, got: %v", threshold)
		}

		traces, err := report.LoadTraces(cmd.Context(), args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to load traces: %w", err)
		}
		comparisons := report.Compare(traces[0].Events, traces[1].Events)
		if len(comparisons) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No trace events found")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "LABEL\tOLD (µs)\tNEW (µs)\tDIFF\tSTATUS")
		for _, c := range comparisons {
			prev, diff := fmt.Sprintf("%.2f", c.Prev), fmt.Sprintf("%+.2f%%", c.DiffPercent)
			if c.New {
				prev, diff = "-", "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%s\n", c.Label, prev, c.Curr, diff, c.Status(threshold))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().Float64P("threshold", "t", 5, "Percent change below which a label counts as unchanged")
}
