// File: cmd/combine.go
package cmd

import (
	"fmt"

	"codepack/pkg/combine"
	"codepack/pkg/format"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func registerCombineFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringP("output", "o", "", "write the document to FILE (a directory gets "+combine.DefaultSaveFilename+")")
	flags.BoolP("clipboard", "c", false, "copy the document to the clipboard")
	flags.BoolP("force", "f", false, "overwrite the output file without asking")
	flags.IntP("workers", "w", 1, "files read concurrently; 0 uses one per CPU")
	flags.StringSlice("encoding", nil, "encoding to try, in order (repeatable; default utf-8, latin-1, cp1252)")

	bindFlag("output", flags, "output")
	bindFlag("clipboard", flags, "clipboard")
	bindFlag("force", flags, "force")
	bindFlag("workers", flags, "workers")
	bindFlag("encodings", flags, "encoding")
}

func bindFlag(key string, flags *pflag.FlagSet, name string) {
	if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
		panic(fmt.Sprintf("binding flag %q: %v", name, err))
	}
}

// argumentsFromConfig resolves the combine arguments from v and the
// optional positional directory.
func argumentsFromConfig(v *viper.Viper, positional []string) (combine.Arguments, error) {
	args := combine.DefaultArguments()
	if len(positional) > 0 && positional[0] != "" {
		args.Directory = positional[0]
	}

	if v.IsSet("recursive") {
		args.Recursive = v.GetBool("recursive")
	}
	args.Output = v.GetString("output")
	args.Clipboard = v.GetBool("clipboard")
	args.Force = v.GetBool("force")
	if v.IsSet("workers") {
		args.Workers = v.GetInt("workers")
	}
	args.Encodings = v.GetStringSlice("encodings")
	args.LanguagesFile = v.GetString("languages")
	args.Extensions = v.GetStringMapString("extensions")
	args.Gitignore = v.GetBool("gitignore")
	args.Exclude = v.GetStringSlice("exclude")

	var templates format.Templates
	if err := v.UnmarshalKey("templates", &templates); err != nil {
		return args, fmt.Errorf("invalid templates configuration: %w", err)
	}
	args.Templates = templates

	if args.Workers < 0 {
		return args, fmt.Errorf("workers must be >= 0, got %d", args.Workers)
	}
	return args, nil
}

func runCombine(cmd *cobra.Command, positional []string) error {
	args, err := argumentsFromConfig(viper.GetViper(), positional)
	if err != nil {
		return err
	}

	runner := combine.NewRunner(logger)
	runner.Stdout = cmd.OutOrStdout()
	runner.Stderr = cmd.ErrOrStderr()

	outcome, err := runner.Run(args)
	if err != nil {
		logger.Error("codepack execution failed", zap.Error(err))
		return err
	}
	if outcome.Files == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "No supported files found in %s\n", args.Directory)
	}
	return nil
}
