package main

import (
	"fmt"
	"io"
	"os"

	"algobench/internal/report"

	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <trace>",
	Short: "Convert a trace file to CSV",
	Long: `Writes the records of a trace file as CSV with the columns
cat, dur, name, ph, pid, tid, ts. Output goes to stdout unless --out is set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		return runConvert(cmd, args[0], out)
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringP("out", "o", "", "CSV file to write (default stdout)")
}

func runConvert(cmd *cobra.Command, path, out string) error {
	traces, err := report.LoadTraces(cmd.Context(), path)
	if err != nil {
		return fmt.Errorf("failed to load trace: %w", err)
	}
	t := traces[0]
	if t.Truncated {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s is incomplete, converting %d recovered events\n", path, len(t.Events))
	}
	if len(t.Events) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No trace events found")
		return nil
	}

	var w io.Writer = cmd.OutOrStdout()
	var f *os.File
	if out != "" {
		f, err = os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", out, err)
		}
		defer f.Close()
		w = f
	}

	if err := report.WriteCSV(w, t.Events); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	if f != nil {
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close %s: %w", out, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d events to %s\n", len(t.Events), out)
	}
	return nil
}
