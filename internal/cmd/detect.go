package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cfgkit/cfgkit"
	"github.com/cfgkit/cfgkit/detect"
	"github.com/cfgkit/cfgkit/format"
)

var detectCmd = &cobra.Command{
	Use:   "detect FILE",
	Short: "Report the detected format and text encoding of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		// Binary signatures match on the raw bytes; transcoding first
		// would destroy them.
		if f := cfgkit.Registry().Sniff(data, ""); f == format.Binary {
			fmt.Fprintf(cmd.OutOrStdout(), "format: %s\nencoding: n/a\n", f)
			return nil
		}

		enc := detect.DetectEncoding(data)
		decoded, err := enc.Decode(data)
		if err != nil {
			decoded = data
		}

		f := cfgkit.Registry().Sniff(decoded, filepath.Ext(args[0]))
		fmt.Fprintf(cmd.OutOrStdout(), "format: %s\nencoding: %s (%s confidence)\n",
			f, enc.Name, enc.Confidence)
		return nil
	},
}
