// File: cmd/languages.go
package cmd

import (
	"fmt"
	"text/tabwriter"

	"codepack/pkg/combine"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "Print the extension to language table in effect",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		args, err := argumentsFromConfig(viper.GetViper(), nil)
		if err != nil {
			return err
		}
		table, err := combine.NewRunner(logger).Table(args)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		for _, ext := range table.Extensions() {
			lang, _ := table.Lookup(ext)
			fmt.Fprintf(w, "%s\t%s\n", ext, lang)
		}
		return w.Flush()
	},
}

func init() {
	RootCmd.AddCommand(languagesCmd)
}
