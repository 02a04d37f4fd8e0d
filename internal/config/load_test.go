package config

import (
	"os"
	"path/filepath"
	"testing"

	"algobench/internal/algo"
	"algobench/internal/harness"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into a fresh directory so Load never picks up a stray
// config.yaml or .env.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })
	return dir
}

func TestLoad(t *testing.T) {
	defer viper.Reset()

	t.Run("Defaults", func(t *testing.T) {
		viper.Reset()
		chdir(t)

		require.NoError(t, Load(""))
		s := Current()
		assert.Equal(t, harness.RunDescriptor{NumRuns: 50, InitialSize: 1000, SizeIncrement: 2000}, s.Run)
		assert.True(t, s.WarmupEnabled)
		assert.Equal(t, harness.RunDescriptor{NumRuns: 3, InitialSize: 1000, SizeIncrement: 1000}, s.Warmup)
		assert.Equal(t, "results_sorting.json", s.TracePath(harness.Sorting))
		assert.Equal(t, "results_searching.json", s.TracePath(harness.Searching))
		assert.Empty(t, s.DumpPath)
		assert.Empty(t, s.MetricsAddr)
		assert.Equal(t, algo.PivotRandom, s.Pivot)
		_, statErr := os.Stat("config.yaml")
		assert.True(t, os.IsNotExist(statErr), "Load must not create config.yaml")
	})

	t.Run("Load From Env", func(t *testing.T) {
		viper.Reset()
		chdir(t)
		t.Setenv("ALGOBENCH_RUNS", "7")
		t.Setenv("ALGOBENCH_OUTPUT_SORTING", "out/sort.json")
		t.Setenv("ALGOBENCH_WARMUP_ENABLED", "false")

		require.NoError(t, Load(""))
		s := Current()
		assert.Equal(t, 7, s.Run.NumRuns)
		assert.Equal(t, "out/sort.json", s.SortingPath)
		assert.False(t, s.WarmupEnabled)
	})

	t.Run("Load From File", func(t *testing.T) {
		viper.Reset()
		dir := chdir(t)
		cfg := filepath.Join(dir, "bench.yaml")
		require.NoError(t, os.WriteFile(cfg, []byte("runs: 4\ninitial_size: 10\nsize_increment: 5\npivot: first\noutput:\n  dump: all.json\n"), 0644))

		require.NoError(t, Load(cfg))
		s := Current()
		assert.Equal(t, []int{10, 15, 20, 25}, s.Run.Sizes())
		assert.Equal(t, "all.json", s.DumpPath)
		assert.Equal(t, algo.PivotFirst, s.Pivot)
		assert.Equal(t, "results_searching.json", s.SearchingPath, "unset keys keep defaults")
	})

	t.Run("Load From Dotenv", func(t *testing.T) {
		viper.Reset()
		dir := chdir(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ALGOBENCH_INITIAL_SIZE=64\n"), 0644))
		t.Cleanup(func() { os.Unsetenv("ALGOBENCH_INITIAL_SIZE") })

		require.NoError(t, Load(""))
		assert.Equal(t, 64, Current().Run.InitialSize)
	})

	t.Run("Missing Explicit File", func(t *testing.T) {
		viper.Reset()
		dir := chdir(t)
		assert.Error(t, Load(filepath.Join(dir, "nope.yaml")))
	})
}
