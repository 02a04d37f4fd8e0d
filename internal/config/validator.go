package config

import (
	"fmt"
	"net"
	"strconv"

	"algobench/internal/algo"

	"github.com/spf13/viper"
)

// ValidateConfig validates configuration values and returns an error if any are invalid.
// This function should be called after viper has loaded the configuration.
func ValidateConfig() error {
	var errors []string

	checkProgression := func(prefix string) {
		if runs := viper.GetInt(prefix + "runs"); runs <= 0 {
			errors = append(errors, fmt.Sprintf("%sruns must be positive, got: %d", prefix, runs))
		}
		if size := viper.GetInt(prefix + "initial_size"); size <= 0 {
			errors = append(errors, fmt.Sprintf("%sinitial_size must be positive, got: %d", prefix, size))
		}
		if inc := viper.GetInt(prefix + "size_increment"); inc < 0 {
			errors = append(errors, fmt.Sprintf("%ssize_increment must not be negative, got: %d", prefix, inc))
		}
	}

	checkProgression("")
	if viper.GetBool("warmup.enabled") {
		checkProgression("warmup.")
	}

	if _, err := algo.ParsePivotStrategy(viper.GetString("pivot")); err != nil {
		errors = append(errors, fmt.Sprintf("pivot must be first, last or random, got: %q", viper.GetString("pivot")))
	}

	for _, key := range []string{"output.sorting", "output.searching"} {
		if viper.GetString(key) == "" {
			errors = append(errors, fmt.Sprintf("%s must not be empty", key))
		}
	}

	// Validate metrics_addr (if set, host:port with a valid port)
	if addr := viper.GetString("metrics_addr"); addr != "" {
		_, portStr, err := net.SplitHostPort(addr)
		port, perr := strconv.Atoi(portStr)
		if err != nil || perr != nil || port < 0 || port > 65535 {
			errors = append(errors, fmt.Sprintf("metrics_addr must be host:port, got: %q", addr))
		}
	}

	if len(errors) > 0 {
		errorMsg := errors[0]
		for i := 1; i < len(errors); i++ {
			errorMsg += "\n  " + errors[i]
		}
		return fmt.Errorf("configuration validation failed:\n  %s", errorMsg)
	}

	return nil
}
