package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sourceplane/stackctl/internal/config"
	"github.com/sourceplane/stackctl/internal/outputs"
	"github.com/sourceplane/stackctl/internal/selector"
)

var validateCmd = &cobra.Command{
	Use:   "validate [stack...]",
	Short: "Validate deployed outputs against their contracts",
	Long:  "Loads each selected stack's outputs file through a fresh loader and reports contract violations without caching across commands.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return validateOutputs(args)
	},
}

func registerValidateCommand(root *cobra.Command) {
	root.AddCommand(validateCmd)
}

func validateOutputs(args []string) error {
	cfg := config.Load()
	reg, err := buildRegistry()
	if err != nil {
		return fmt.Errorf("failed to load stack registry: %w", err)
	}

	sel := selector.Resolve(cfg.StackList, args)
	l := outputs.NewLoader(reg, outputs.WithBase(resolveOutputsDir(cfg)))

	failed := 0
	for _, name := range reg.Names() {
		if !sel.Matches(name) {
			continue
		}
		if _, err := l.Load(name); err != nil {
			failed++
			fmt.Printf("%s %s: %v\n", warnMark, name, err)
			continue
		}
		fmt.Printf("%s %s\n", okMark, name)
	}

	if failed > 0 {
		return fmt.Errorf("%d stack(s) failed output validation", failed)
	}
	fmt.Printf("%s all selected outputs valid\n", okMark)
	return nil
}
