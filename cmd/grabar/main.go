package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

// Build metadata, set via -ldflags.
var (
	BuildTag    = "dev"
	BuildCommit = "none"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	if err := newApp(ui).Run(os.Args); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "grabar: %v\n", err)
}

func newApp(ui UI) *cli.App {
	return &cli.App{
		Name:      "grabar",
		Usage:     "convert scraped Classical Armenian treebanks to CoNLL-U",
		Writer:    ui.Out,
		ErrWriter: ui.Err,
		Commands: []*cli.Command{
			convertCommand(ui),
			mergeCommand(ui),
			validateCommand(ui),
			statCommand(ui),
			sentenceCommand(ui),
			queryCommand(ui),
			importGlossCommand(ui),
			exportGlossCommand(ui),
			bashCommand(ui),
			completeCommand(ui),
			versionCommand(ui),
		},
	}
}
