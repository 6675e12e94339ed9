// File: cmd/list.go
package cmd

import (
	"fmt"
	"path/filepath"

	"codepack/pkg/combine"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// listCmd prints the files a combine run would include, without reading them.
var listCmd = &cobra.Command{
	Use:   "list [DIR]",
	Short: "List the supported files under DIR",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, positional []string) error {
		tree, err := cmd.Flags().GetBool("tree")
		if err != nil {
			return fmt.Errorf("error reading flags: %w", err)
		}
		args, err := argumentsFromConfig(viper.GetViper(), positional)
		if err != nil {
			return err
		}

		runner := combine.NewRunner(logger)
		table, err := runner.Table(args)
		if err != nil {
			return err
		}
		entries, err := runner.Scan(args, table)
		if err != nil {
			return fmt.Errorf("failed to collect files: %w", err)
		}

		out := cmd.OutOrStdout()
		if tree {
			root, err := filepath.Abs(args.Directory)
			if err != nil {
				return fmt.Errorf("failed to get absolute path: %w", err)
			}
			fmt.Fprint(out, combine.RenderTree(filepath.Base(root), entries))
			return nil
		}
		for _, e := range entries {
			fmt.Fprintln(out, e.RelativePath)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolP("tree", "t", false, "render the files as a directory tree")
	RootCmd.AddCommand(listCmd)
}
