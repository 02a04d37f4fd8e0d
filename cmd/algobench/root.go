package main

import (
	"fmt"
	"os"

	"algobench/internal/config"
	"algobench/internal/telemetry"
	"algobench/internal/ui"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var exit = os.Exit
var cfgFile string

// flagKeys maps command-line flags to the configuration keys they override.
var flagKeys = map[string]string{
	"verbose":       "verbose",
	"log-file":      "log_file",
	"sorting-out":   "output.sorting",
	"searching-out": "output.searching",
	"runs":          "runs",
	"initial-size":  "initial_size",
	"increment":     "size_increment",
	"pivot":         "pivot",
	"warmup":        "warmup.enabled",
	"metrics-addr":  "metrics_addr",
	"dump":          "output.dump",
}

var rootCmd = &cobra.Command{
	Use:   "algobench",
	Short: "Benchmark and visualize sorting and searching algorithms",
	Long: `algobench times merge sort, quick sort, binary search and interpolation
search across growing input sizes and best, average and worst case inputs.
Every timed call is written to a Chrome trace-event file that can be
plotted, summarised, converted to CSV or compared with an earlier run.

Run without a subcommand for an interactive menu.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd)
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n=== CRITICAL ERROR: Command Execution Panic ===\n")
			fmt.Fprintf(os.Stderr, "Error: %v\n", r)
			exit(1)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'algobench --help' for usage.")
		exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	pf.BoolP("verbose", "v", false, "Enable verbose/debug logging")
	pf.String("log-file", "", "Also append JSON logs to this file")
	pf.Bool("no-color", false, "Disable coloured output")
	pf.String("sorting-out", "results_sorting.json", "Trace file for the sorting benchmarks")
	pf.String("searching-out", "results_searching.json", "Trace file for the searching benchmarks")
}

// setup loads configuration for every subcommand. Flags are bound here, on
// the executing command's merged flag set, so local flags such as --runs
// override config only for the command that defines them.
func setup(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd.Flags()); err != nil {
		return err
	}
	if err := config.Load(cfgFile); err != nil {
		return err
	}

	telemetry.InitLogger(viper.GetBool("verbose"), viper.GetString("log_file"), false)

	noColor, _ := cmd.Flags().GetBool("no-color")
	ui.ConfigureColor(cmd.OutOrStdout(), noColor)

	return config.ValidateConfig()
}

func bindFlags(fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || err != nil {
			return
		}
		if bindErr := viper.BindPFlag(key, f); bindErr != nil {
			err = fmt.Errorf("failed to bind --%s: %w", f.Name, bindErr)
		}
	})
	return err
}
