// Package cli implements the swagen command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mark3labs/swagen/internal/generator"
	"github.com/mark3labs/swagen/internal/logging"
)

// newRegistry returns the dialects the commands dispatch to.
var newRegistry = generator.DefaultRegistry

// Execute runs the swagen CLI.
func Execute() error {
	defer logging.Sync()
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the root command so tests can exercise the CLI easily.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swagen",
		Short: "Generate API clients from API definitions",
		Long: "swagen turns an API definition (or an OpenAPI/Swagger document) into client " +
			"source code for the dialect selected by a profile.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			verbose, err := cmd.Flags().GetBool("verbose")
			if err != nil {
				return err
			}
			jsonLogs, err := cmd.Flags().GetBool("log-json")
			if err != nil {
				return err
			}
			return logging.Initialize(verbose, jsonLogs)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Config file path (YAML or JSON)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging output")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")

	for _, sub := range []*cobra.Command{cmd, newGenerateCmd(), newInitCmd(), newModesCmd(), newDescribeCmd()} {
		// Unknown flags and bad values become usage errors that carry the help text.
		sub.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
			return newUsageError(fmt.Sprintf("%v\n\n%s", err, c.UsageString()))
		})
		if sub != cmd {
			cmd.AddCommand(sub)
		}
	}

	return cmd
}
