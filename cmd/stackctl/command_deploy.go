package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sourceplane/stackctl/internal/config"
	"github.com/sourceplane/stackctl/internal/driver"
	"github.com/sourceplane/stackctl/internal/gate"
	"github.com/sourceplane/stackctl/internal/selector"
)

var deployCmd = &cobra.Command{
	Use:   "deploy [stack...]",
	Short: "Instantiate the selected stacks",
	Long:  "Runs the deployment pipeline: selection, artifact gating, stage expansion, instantiation. STACKCTL_STACKS overrides positional stack arguments when set.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDeploy(args)
	},
}

func registerDeployCommand(root *cobra.Command) {
	root.AddCommand(deployCmd)
}

func runDeploy(args []string) error {
	cfg := config.Load()
	if err := cfg.RequireRegion(); err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	fmt.Println("□ Loading stack registry...")
	reg, err := buildRegistry()
	if err != nil {
		return fmt.Errorf("failed to load stack registry: %w", err)
	}

	sel := selector.Resolve(cfg.StackList, args)
	if sel.All() {
		fmt.Printf("□ Deploying all %d stacks...\n", reg.Len())
	} else {
		fmt.Printf("□ Deploying selected stacks: %v\n", sel.Names())
	}

	drv := &driver.Driver{
		Registry:  reg,
		Selection: sel,
		Gate:      gate.New(""),
		Logger:    log,
		Region:    cfg.Region,
	}
	summary, err := drv.Run()
	if err != nil {
		return err
	}

	for _, report := range summary.Skipped {
		fmt.Printf("%s %s\n", warnMark, report.Summary())
	}
	for _, id := range summary.Instantiated {
		fmt.Printf("%s instantiated %s\n", okMark, id)
	}
	fmt.Printf("%s deploy complete: %d instantiated, %d skipped\n", okMark, len(summary.Instantiated), len(summary.Skipped))
	return nil
}
