// cfgkit is a format-agnostic config file tool: detect, convert, edit,
// and diff configuration files in any supported format.
package main

import "github.com/cfgkit/cfgkit/internal/cmd"

func main() {
	cmd.Execute()
}
