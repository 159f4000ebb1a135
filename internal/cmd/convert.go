package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cfgkit/cfgkit"
)

var convertCmd = &cobra.Command{
	Use:   "convert SRC DST",
	Short: "Convert a config file to the format named by DST's suffix",
	Long: `Convert loads SRC with auto-detection and writes it to DST. The output
format is chosen from DST's filename suffix; with an unrecognized suffix
the source format is kept.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := cfgkit.Load(args[0])
		if err != nil {
			return err
		}
		return doc.Save(args[1])
	},
}
