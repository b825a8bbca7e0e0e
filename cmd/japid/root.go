package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "japid",
	Short: "Demo server for the japi JSON:API response normalizer",
	Long: `japid serves a small note API whose handlers return plain values --
mappings, strings, status codes, errors, model entities -- and lets the
japi middleware turn every one of them into a consistent JSON:API envelope.

Quick start:
  japid serve             # start with built-in defaults (in-memory store)
  japid serve -c japid.yaml`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "japid.yaml", "config file path")
}
