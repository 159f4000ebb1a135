package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cfgkit/cfgkit"
	"github.com/cfgkit/cfgkit/track"
)

var diffCmd = &cobra.Command{
	Use:   "diff OLD NEW",
	Short: "Show structural differences between two config files",
	Long: `Diff loads both files with auto-detection and compares the parsed trees,
so a JSON file can be diffed against a YAML one. Output is one change per
line: added, removed, or modified, with the path and the values involved.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		oldDoc, err := cfgkit.Load(args[0])
		if err != nil {
			return err
		}
		newDoc, err := cfgkit.Load(args[1])
		if err != nil {
			return err
		}

		changes := track.Diff(oldDoc.Value, newDoc.Value)
		for _, c := range changes {
			fmt.Fprintln(cmd.OutOrStdout(), c)
		}
		if len(changes) > 0 {
			return fmt.Errorf("%d difference(s)", len(changes))
		}
		return nil
	},
}
