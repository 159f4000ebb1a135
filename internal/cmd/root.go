// Package cmd provides the CLI commands for cfgkit.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cfgkit",
	Short: "Read, convert, and edit config files in any supported format",
	Long: `cfgkit works with JSON, YAML, TOML, INI, plain-text, and binary config
files without being told which is which: the format and the text encoding
are detected from content, with the filename suffix as a hint only.

Edits made with set/del are applied in place and re-encoded in the file's
own format; diff shows the structural changes between two files.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(delCmd)
	rootCmd.AddCommand(diffCmd)
}
