package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/grabar/pipeline"
	"github.com/revelaction/grabar/query"
	"github.com/revelaction/grabar/render"
	"github.com/revelaction/grabar/storage"
)

func queryCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "query",
		Usage:     "interactive corpus inspection",
		ArgsUsage: "<input file>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Usage: "input format: proiel or conllu"},
			&cli.StringFlag{Name: "gloss-db", Usage: "gloss lexicon database", EnvVars: []string{"GRABAR_GLOSS_DB"}},
			&cli.BoolFlag{Name: "color", Usage: "ANSI colors"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("query: want exactly one input file")
			}
			rep := &pipeline.Report{}
			corpus, err := readCorpus(c.Args().First(), c.String("format"), false, rep)
			if err != nil {
				return err
			}

			var gr storage.GlossReader
			if db := c.String("gloss-db"); db != "" {
				reader, closeDB, err := openGlossReader(db)
				if err != nil {
					return err
				}
				defer closeDB()
				gr = reader
			}

			r := render.NewRenderer(ui.Out)
			r.HasColor = c.Bool("color")
			return query.NewHandler(corpus, gr, r, ui.Out).Run()
		},
	}
}
