package main

import (
	"fmt"

	"algobench/internal/config"
	"algobench/internal/harness"
	"algobench/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var visualizeCmd = &cobra.Command{
	Use:   "visualize",
	Short: "Visualize the process of the algorithms",
	Long: `Plots the recorded durations of the sorting or searching trace against
the reference complexity curves. The plot reloads whenever a benchmark
rewrites the trace file.

Keys: 1/s sorting, 2/f searching, a toggle curves, r reload, q quit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		modeName, _ := cmd.Flags().GetString("mode")
		mode, err := harness.ParseMode(modeName)
		if err != nil {
			return err
		}
		return runVisualizer(cmd, config.Current(), mode)
	},
}

func init() {
	rootCmd.AddCommand(visualizeCmd)
	visualizeCmd.Flags().String("mode", string(harness.Sorting), "Mode shown first (sorting or searching)")
}

func runVisualizer(cmd *cobra.Command, settings config.Settings, mode harness.Mode) error {
	m, err := ui.NewVisualizerModel(settings.SortingPath, settings.SearchingPath, mode)
	if err != nil {
		return fmt.Errorf("failed to start visualizer: %w", err)
	}
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("visualizer failed: %w", err)
	}
	return nil
}
