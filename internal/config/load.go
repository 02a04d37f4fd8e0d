package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"algobench/internal/algo"
	"algobench/internal/harness"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. ALGOBENCH_RUNS or
// ALGOBENCH_OUTPUT_SORTING.
const EnvPrefix = "ALGOBENCH"

// Load initializes the configuration from file and environment variables.
// A missing config.yaml is not an error; an explicit cfgFile that cannot be
// read is.
func Load(cfgFile string) error {
	// .env is optional
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config %s: %w", cfgFile, err)
	}
	fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	return nil
}

// SetDefaults registers the default for every key.
func SetDefaults() {
	viper.SetDefault("runs", 50)
	viper.SetDefault("initial_size", 1000)
	viper.SetDefault("size_increment", 2000)
	viper.SetDefault("pivot", "random")

	viper.SetDefault("warmup.enabled", true)
	viper.SetDefault("warmup.runs", 3)
	viper.SetDefault("warmup.initial_size", 1000)
	viper.SetDefault("warmup.size_increment", 1000)

	viper.SetDefault("output.sorting", "results_sorting.json")
	viper.SetDefault("output.searching", "results_searching.json")
	viper.SetDefault("output.dump", "")

	viper.SetDefault("metrics_addr", "")
	viper.SetDefault("verbose", false)
	viper.SetDefault("log_file", "")
}

// Settings is the typed view of the loaded configuration.
type Settings struct {
	Run           harness.RunDescriptor
	WarmupEnabled bool
	Warmup        harness.RunDescriptor
	Pivot         algo.PivotStrategy
	SortingPath   string
	SearchingPath string
	DumpPath      string
	MetricsAddr   string
	Verbose       bool
	LogFile       string
}

// Current reads Settings from viper. An unknown pivot falls back to random;
// ValidateConfig reports it.
func Current() Settings {
	pivot, _ := algo.ParsePivotStrategy(viper.GetString("pivot"))
	return Settings{
		Run: harness.RunDescriptor{
			NumRuns:       viper.GetInt("runs"),
			InitialSize:   viper.GetInt("initial_size"),
			SizeIncrement: viper.GetInt("size_increment"),
		},
		WarmupEnabled: viper.GetBool("warmup.enabled"),
		Warmup: harness.RunDescriptor{
			NumRuns:       viper.GetInt("warmup.runs"),
			InitialSize:   viper.GetInt("warmup.initial_size"),
			SizeIncrement: viper.GetInt("warmup.size_increment"),
		},
		Pivot:         pivot,
		SortingPath:   viper.GetString("output.sorting"),
		SearchingPath: viper.GetString("output.searching"),
		DumpPath:      viper.GetString("output.dump"),
		MetricsAddr:   viper.GetString("metrics_addr"),
		Verbose:       viper.GetBool("verbose"),
		LogFile:       viper.GetString("log_file"),
	}
}

// TracePath is the output file for mode.
func (s Settings) TracePath(m harness.Mode) string {
	if m == harness.Searching {
		return s.SearchingPath
	}
	return s.SortingPath
}
