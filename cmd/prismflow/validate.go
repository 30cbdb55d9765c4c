package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prismflow/gateway/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Validate a configuration file without starting the server.

Checks YAML syntax, applies defaults and environment overrides, and
reports every invalid field at once.

Examples:
  prismflow validate --config config.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(); err != nil {
			return err
		}
		cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
		if err != nil {
			var verr config.ValidationError
			if errors.As(err, &verr) {
				for _, fieldErr := range verr.Errors {
					fmt.Printf("✗ %s\n", fieldErr.Error())
				}
			}
			return err
		}

		fmt.Println("✓ Configuration valid")
		if verbose {
			fmt.Printf("  listen address: %s\n", cfg.Server.ListenAddress)
			fmt.Printf("  upstream:       %s\n", cfg.Upstream.BaseURL)
			fmt.Printf("  vector store:   %s\n", cfg.VectorStore.Backend)
			fmt.Printf("  metrics:        %v (%s)\n", cfg.Telemetry.Metrics.Enabled, cfg.Telemetry.Metrics.Path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
