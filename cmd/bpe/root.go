// Command bpe is the command-line harness over the training and encoding
// engine, following the cobra root-plus-subcommands shape used elsewhere in
// this codebase's reference pack (root command, one file per subcommand,
// flags bound in an init-style constructor, RunE returning errors instead of
// calling os.Exit directly).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sharifbpe/bpe/internal/config"
)

var cfgPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bpe",
		Short:         "Train and apply byte-pair-encoding merge rules",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "optional YAML defaults file")

	root.AddCommand(newLearnCmd())
	root.AddCommand(newEncodeCmd())
	return root
}

func loadConfig() *config.Config {
	if cfgPath == "" {
		return config.Default()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return config.Default()
	}
	return cfg
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "bpe: %v\n", err)
		os.Exit(1)
	}
}
