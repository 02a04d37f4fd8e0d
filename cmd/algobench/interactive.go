package main

import (
	"errors"
	"fmt"

	"algobench/internal/config"
	"algobench/internal/harness"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"
)

var askOne = survey.AskOne

const (
	menuBenchmarkAll       = "Run all benchmarks"
	menuBenchmarkSorting   = "Run sorting benchmarks"
	menuBenchmarkSearching = "Run searching benchmarks"
	menuVisualize          = "Visualize results"
	menuExit               = "Exit"
)

var menuOptions = []string{
	menuBenchmarkAll,
	menuBenchmarkSorting,
	menuBenchmarkSearching,
	menuVisualize,
	menuExit,
}

// runInteractive asks what to do when algobench is started without a
// subcommand.
func runInteractive(cmd *cobra.Command) error {
	var choice string
	prompt := &survey.Select{
		Message: "What would you like to do?",
		Options: menuOptions,
	}
	if err := askOne(prompt, &choice); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return nil
		}
		return fmt.Errorf("failed to read selection: %w", err)
	}

	var modes []harness.Mode
	switch choice {
	case menuBenchmarkAll:
		modes = harness.Modes
	case menuBenchmarkSorting:
		modes = []harness.Mode{harness.Sorting}
	case menuBenchmarkSearching:
		modes = []harness.Mode{harness.Searching}
	case menuVisualize:
		return runVisualizer(cmd, config.Current(), harness.Sorting)
	default:
		return nil
	}

	useTUI := true
	confirm := &survey.Confirm{
		Message: "Show the live progress dashboard?",
		Default: true,
	}
	if err := askOne(confirm, &useTUI); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return nil
		}
		return fmt.Errorf("failed to read selection: %w", err)
	}
	return runBenchmark(cmd, modes, useTUI)
}
