package main

import (
	"os"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/sourceplane/stackctl/internal/config"
	"github.com/sourceplane/stackctl/internal/loader"
	"github.com/sourceplane/stackctl/internal/logging"
	"github.com/sourceplane/stackctl/internal/registry"
)

var (
	okMark   = color.New(color.FgGreen).Sprint("✓")
	warnMark = color.New(color.FgYellow).Sprint("!")
)

// buildRegistry loads the stack catalog from the config directory. The CLI
// binds no constructors; the driver substitutes its synth-only default.
func buildRegistry() (*registry.Registry, error) {
	return loader.FromDir(configDir, nil)
}

// newLogger builds the process logger, preferring the flag over the
// environment.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level := logLevel
	if level == "" {
		level = cfg.LogLevel
	}
	return logging.New(level)
}

// resolveOutputsDir picks the outputs base directory: flag, then
// environment, then the process working directory.
func resolveOutputsDir(cfg *config.Config) string {
	if outputsDir != "" {
		return outputsDir
	}
	if cfg.OutputsDir != "" {
		return cfg.OutputsDir
	}
	return "."
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
