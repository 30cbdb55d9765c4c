package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "prismflow",
	Short: "PrismFlow - hardened LLM gateway",
	Long: `PrismFlow is a hardened gateway between application code and an
OpenAI-compatible LLM provider.

It provides:
  - Input sanitization and prompt-injection screening
  - Buffered and SSE streaming chat completion endpoints
  - Token usage and cost accounting per request
  - Strict-JSON output repair and shape validation
  - Prometheus metrics and health probes`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (defaults apply when empty)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
