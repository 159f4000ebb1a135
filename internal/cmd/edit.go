package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cfgkit/cfgkit"
	"github.com/cfgkit/cfgkit/track"
	"github.com/cfgkit/cfgkit/value"
)

// Paths are given either as a JSON array ('["server", "port"]') or in
// dotted form (server.port). Sequence indices are decimal segments.

var getCmd = &cobra.Command{
	Use:   "get FILE PATH",
	Short: "Print the value at a path",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := cfgkit.Load(args[0])
		if err != nil {
			return err
		}
		p, err := track.ParsePath(args[1])
		if err != nil {
			return err
		}

		v, err := doc.Track().Get(p...)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	},
}

var setCmd = &cobra.Command{
	Use:   "set FILE PATH VALUE",
	Short: "Set the value at a path and save the file in place",
	Long: `Set parses VALUE as JSON (so '3', 'true', 'null', '"text"', and nested
documents all work) and falls back to a plain string when it is not valid
JSON. Missing intermediate mappings are created.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := cfgkit.Load(args[0])
		if err != nil {
			return err
		}
		p, err := track.ParsePath(args[1])
		if err != nil {
			return err
		}

		w := doc.Track()
		if err := w.Set(p, parseLiteral(args[2])); err != nil {
			return err
		}
		doc.Value = w.Value()
		return doc.Save("")
	},
}

var delCmd = &cobra.Command{
	Use:   "del FILE PATH",
	Short: "Delete the value at a path and save the file in place",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := cfgkit.Load(args[0])
		if err != nil {
			return err
		}
		p, err := track.ParsePath(args[1])
		if err != nil {
			return err
		}

		w := doc.Track()
		w.Delete(p...)
		doc.Value = w.Value()
		return doc.Save("")
	},
}

// parseLiteral interprets a command-line value: JSON first, raw text as
// the fallback.
func parseLiteral(s string) *value.Value {
	if v, err := cfgkit.Registry().Decode("json", []byte(s)); err == nil {
		return v
	}
	return value.Text(s)
}
