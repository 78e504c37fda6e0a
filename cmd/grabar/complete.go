package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

var commandNames = []string{
	"convert",
	"merge",
	"validate",
	"stat",
	"sentence",
	"query",
	"import-gloss",
	"export-gloss",
	"bash",
	"version",
	"help",
}

// completeCommand answers the requests of the bash completion script.
// Hidden: not part of the user-facing command set.
func completeCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:   "complete",
		Hidden: true,
		Action: func(c *cli.Context) error {
			for _, s := range completions(c.Args().Slice()) {
				_, _ = fmt.Fprintln(ui.Out, s)
			}
			return nil
		},
	}
}

// completions receives the full COMP_WORDS line, args[0] being the
// binary name. Only the subcommand position is completed.
func completions(args []string) []string {
	commandIndex := 1
	cursorIndex := len(args) - 1
	if cursorIndex != commandIndex {
		return nil
	}

	var out []string
	for _, c := range commandNames {
		if strings.HasPrefix(c, args[cursorIndex]) {
			out = append(out, c)
		}
	}
	return out
}
