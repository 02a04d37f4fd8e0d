package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name      string
		setup     func()
		wantError bool
		errMsg    string
	}{
		{
			name:      "Defaults",
			setup:     func() {},
			wantError: false,
		},
		{
			name: "Valid Configuration",
			setup: func() {
				viper.Set("runs", 5)
				viper.Set("initial_size", 1000)
				viper.Set("size_increment", 0)
				viper.Set("metrics_addr", ":2112")
			},
			wantError: false,
		},
		{
			name: "Invalid Pivot",
			setup: func() {
				viper.Set("pivot", "median")
			},
			wantError: true,
			errMsg:    "pivot must be first, last or random",
		},
		{
			name: "Invalid Runs",
			setup: func() {
				viper.Set("runs", 0)
			},
			wantError: true,
			errMsg:    "runs must be positive",
		},
		{
			name: "Invalid Initial Size",
			setup: func() {
				viper.Set("initial_size", -3)
			},
			wantError: true,
			errMsg:    "initial_size must be positive",
		},
		{
			name: "Negative Increment",
			setup: func() {
				viper.Set("size_increment", -1)
			},
			wantError: true,
			errMsg:    "size_increment must not be negative",
		},
		{
			name: "Invalid Warmup",
			setup: func() {
				viper.Set("warmup.runs", 0)
			},
			wantError: true,
			errMsg:    "warmup.runs must be positive",
		},
		{
			name: "Invalid Warmup Ignored When Disabled",
			setup: func() {
				viper.Set("warmup.enabled", false)
				viper.Set("warmup.runs", 0)
			},
			wantError: false,
		},
		{
			name: "Empty Output Path",
			setup: func() {
				viper.Set("output.searching", "")
			},
			wantError: true,
			errMsg:    "output.searching must not be empty",
		},
		{
			name: "Invalid Metrics Address",
			setup: func() {
				viper.Set("metrics_addr", "localhost")
			},
			wantError: true,
			errMsg:    "metrics_addr must be host:port",
		},
		{
			name: "Multiple Errors",
			setup: func() {
				viper.Set("runs", -1)
				viper.Set("initial_size", 0)
			},
			wantError: true,
			errMsg:    "runs must be positive, got: -1\n  initial_size must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			SetDefaults()
			tt.setup()

			err := ValidateConfig()
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateConfig() error = %v, wantError %v", err, tt.wantError)
				return
			}
			if tt.wantError && err != nil && !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("ValidateConfig() error = %v, want message containing %q", err, tt.errMsg)
			}
		})
	}
	viper.Reset()
}
