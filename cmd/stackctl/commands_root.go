package main

import "github.com/spf13/cobra"

var (
	configDir  string
	outputsDir string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "stackctl",
	Short: "Stack registry and deployment-output resolver",
	Long:  "stackctl catalogs deployable infrastructure stacks, drives their instantiation, and serves validated deployment outputs to application code",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configDir, "config-dir", "c", "stacks", "Config directory holding stack manifests (use * for glob scanning)")
	rootCmd.PersistentFlags().StringVar(&outputsDir, "outputs-dir", "", "Base directory outputs files are resolved under (default: working directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	registerDeployCommand(rootCmd)
	registerOutputsCommand(rootCmd)
	registerStacksCommand(rootCmd)
	registerValidateCommand(rootCmd)
}
