package cmd

import (
	"fmt"
	"os"

	"github.com/pltanton/dadjoke-mcp/internal/logger"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "dadjoke-mcp",
	Short: "Dad joke prompt server for MCP clients",
	Long: `dadjoke-mcp exposes a single MCP prompt, dad_joke, that formats a
joke-writing instruction for a downstream model from a topic and an
optional humor style.

Running the bare binary starts the server; see "dadjoke-mcp serve --help"
for transport options.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	RunE: runServe,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logger.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info",
		"Log level: trace, debug, info, warn, error, fatal")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
