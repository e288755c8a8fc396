// Package cmd defines and implements the CLI commands for the wikiref
// executable.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wikigrab/wikiref/internal/config"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wikiref",
		Short: "Fetches Wikipedia reference lists for a set of topics.",
		Long: `wikiref resolves a search query into related Wikipedia topics and collects
every topic's external reference list, either one page at a time or through a
bounded pool of workers, writing all outcomes to a single JSON file.`,
		SilenceUsage: true,
	}

	cobra.OnInitialize(initConfig)

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.wikiref.yaml)")

	cmd.AddCommand(newFetchCmd())
	return cmd
}

// initConfig initializes Viper: defaults, optional config file, and
// WIKIREF_* environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".wikiref")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	config.SetDefaults(viper.GetViper())

	viper.SetEnvPrefix("WIKIREF")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "read config:", err)
		}
	}
}

// Execute is the main entry point; it exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
