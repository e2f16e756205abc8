// Package config translates stackctl's environment configuration into a
// strongly typed struct consumed by the deployment driver and the CLI.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces every stackctl environment variable, e.g.
// STACKCTL_REGION, STACKCTL_STACKS.
const EnvPrefix = "STACKCTL"

// Config holds the runtime options read from the environment.
type Config struct {
	// Region is the universal deployment region injected into every stack
	// instantiation. Required by the deployment driver; the output consumer
	// does not need it.
	Region string

	// StackList is the raw comma-separated selection list from
	// STACKCTL_STACKS. Empty means "defer to command-line arguments".
	StackList string

	// OutputsDir overrides the base directory outputs files are resolved
	// under. Empty means the loader default.
	OutputsDir string

	// LogLevel is one of debug, info, warn, error. Empty means info.
	LogLevel string
}

// MissingRegionError is the fatal configuration error raised when the driver
// starts without a region. It aborts the deployment before any work.
type MissingRegionError struct {
	Variable string
}

func (e *MissingRegionError) Error() string {
	return fmt.Sprintf("deployment region not configured: set %s", e.Variable)
}

// Load reads stackctl configuration from the environment.
func Load() *Config {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	return &Config{
		Region:     strings.TrimSpace(v.GetString("region")),
		StackList:  v.GetString("stacks"),
		OutputsDir: strings.TrimSpace(v.GetString("outputs_dir")),
		LogLevel:   strings.TrimSpace(v.GetString("log_level")),
	}
}

// RequireRegion enforces the driver's startup contract: a missing region is
// fatal before any stack is considered.
func (c *Config) RequireRegion() error {
	if c.Region == "" {
		return &MissingRegionError{Variable: EnvPrefix + "_REGION"}
	}
	return nil
}
