// File: cmd/root.go
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"codepack/pkg/logging"
	"codepack/pkg/version"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	appName         = "codepack"
	envPrefix       = "CODEPACK"
	localConfigFile = ".codepack.yaml"
)

var (
	cfgFile string
	logger  = zap.NewNop()
)

// RootCmd is the base command when called without any subcommands.
// It combines the supported files under DIR into one document.
var RootCmd = &cobra.Command{
	Use:   "codepack [DIR]",
	Short: "codepack bundles a directory of source files into one document",
	Long: `codepack walks a directory, picks the source files it recognizes and
writes them out as one annotated text block, ready to paste into an AI chat.`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	PersistentPreRunE: setupLogger,
	RunE:              runCombine,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	defer logging.Sync()
	return RootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := RootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/codepack/config.yaml or ./.codepack.yaml)")
	flags.Bool("debug", false, "enable debug logging")
	flags.Bool("recursive", true, "walk subdirectories; false lists the top level only")
	flags.String("languages", "", "YAML file with extra language definitions")
	flags.StringToString("ext", nil, "extra extension mapping, e.g. --ext .vue=Vue (repeatable)")
	flags.Bool("gitignore", false, "skip paths matched by the root .gitignore")
	flags.StringSlice("exclude", nil, "gitignore-style pattern to skip (repeatable)")

	bindFlag("debug", flags, "debug")
	bindFlag("recursive", flags, "recursive")
	bindFlag("languages", flags, "languages")
	bindFlag("extensions", flags, "ext")
	bindFlag("gitignore", flags, "gitignore")
	bindFlag("exclude", flags, "exclude")

	registerCombineFlags(RootCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if _, err := os.Stat(localConfigFile); err == nil {
		viper.SetConfigFile(localConfigFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", appName))
		}
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Error reading config file: %s\n", err)
		}
	}
}

// setupLogger replaces the no-op logger once flags and config are known.
func setupLogger(cmd *cobra.Command, _ []string) error {
	l, err := logging.Setup(viper.GetBool("debug"), appName, version.Get().Version)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = l
	if used := viper.ConfigFileUsed(); used != "" {
		logger.Debug("Using config file", zap.String("file", used))
	}
	return nil
}
