package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/sourceplane/stackctl/internal/config"
	"github.com/sourceplane/stackctl/internal/outputs"
)

var outputsKey string

var outputsCmd = &cobra.Command{
	Use:   "outputs <stack>",
	Short: "Print a stack's validated deployment outputs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printOutputs(args[0])
	},
}

func registerOutputsCommand(root *cobra.Command) {
	root.AddCommand(outputsCmd)

	outputsCmd.Flags().StringVarP(&outputsKey, "key", "k", "", "Print a single output value")
}

func printOutputs(stack string) error {
	cfg := config.Load()
	reg, err := buildRegistry()
	if err != nil {
		return fmt.Errorf("failed to load stack registry: %w", err)
	}

	l := outputs.NewLoader(reg, outputs.WithBase(resolveOutputsDir(cfg)))
	vals, err := l.Load(stack)
	if err != nil {
		return err
	}

	if outputsKey != "" {
		v, ok := vals[outputsKey]
		if !ok {
			return fmt.Errorf("stack %q has no output %q", stack, outputsKey)
		}
		fmt.Println(v)
		return nil
	}

	keys := make([]string, 0, len(vals))
	for k := range vals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%s = %v\n", k, vals[k])
	}
	return nil
}
