package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sourceplane/stackctl/internal/registry"
)

var stacksLong bool

var stacksCmd = &cobra.Command{
	Use:     "stacks [name]",
	Aliases: []string{"stack"},
	Short:   "List registered stacks",
	Long:    "List the stack catalog in deployment order. Use 'stackctl stacks <name>' for descriptor details.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listStacks(args)
	},
}

func registerStacksCommand(root *cobra.Command) {
	root.AddCommand(stacksCmd)

	stacksCmd.Flags().BoolVarP(&stacksLong, "long", "l", false, "Show detailed information")
}

func listStacks(args []string) error {
	reg, err := buildRegistry()
	if err != nil {
		return fmt.Errorf("failed to load stack registry: %w", err)
	}

	if len(args) > 0 {
		d, ok := reg.Lookup(args[0])
		if !ok {
			return fmt.Errorf("stack not found: %s", args[0])
		}
		printStackDetails(d)
		return nil
	}

	fmt.Println("Registered stacks (deployment order):")
	all := reg.All()
	for i := range all {
		d := &all[i]
		if stacksLong {
			printStackDetails(d)
			continue
		}
		line := "  " + d.Name
		if d.Description != "" {
			line += " — " + d.Description
		}
		fmt.Println(line)
	}

	if !stacksLong {
		fmt.Println("\nRun 'stackctl stacks <name>' for detailed information")
	}
	return nil
}

func printStackDetails(d *registry.Descriptor) {
	fmt.Printf("\n[Stack] %s\n", d.Name)
	if d.Description != "" {
		fmt.Printf("  Description: %s\n", d.Description)
	}
	if d.Name == registry.BootstrapStack {
		fmt.Println("  Bootstrap:   yes (single global unit, always deployed)")
	}
	if len(d.Stages) > 0 {
		fmt.Printf("  Stages:      %s\n", strings.Join(d.Stages, ", "))
	}
	if len(d.Props) > 0 {
		fmt.Println("  Props:")
		for k, v := range d.Props {
			fmt.Printf("    %s: %v\n", k, v)
		}
	}
	if len(d.RequiredArtifacts) > 0 {
		fmt.Println("  Required artifacts:")
		for _, a := range d.RequiredArtifacts {
			fmt.Printf("    %s (%s)\n", a.Path, a.Description)
		}
	}
}
