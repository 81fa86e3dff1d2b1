// Package cli provides the command-line interface for libwebdoc.
package cli

import (
	"github.com/spf13/cobra"

	"libwebdoc/internal/config"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

const appDesc = "API reference generator for PHP LibWeb services"

type rootOptions struct {
	configPath string
	verbose    bool
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "libwebdoc",
		Short: "libwebdoc - " + appDesc,
		Long: `libwebdoc reads the API classes of a PHP code base and documents every
GET_/POST_ method together with the parameters it declares through
param() and params() calls.

Pages are written as markdown and, on request, as Excel, HTML, Word and
OpenAPI reports.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default: ./libwebdoc.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging (DEBUG level)")

	rootCmd.AddCommand(newGenerateCommand(opts))
	rootCmd.AddCommand(newListCommand(opts))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// loadConfig loads and validates the configuration for cmd. Flags declared
// on cmd override the file.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath, cmd.Flags())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// addSourceFlags registers the flags shared by commands that read sources
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("root", "", "Override project root directory")
	cmd.Flags().String("namespace", "", `Override API namespace (e.g. 'App\Api')`)
}
