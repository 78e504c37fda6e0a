package main

import (
	"fmt"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/grabar/storage/filesystem"
)

func importGlossCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "import-gloss",
		Usage:     "import a gloss lexicon TSV into the database",
		ArgsUsage: "<lexicon.tsv>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "gloss-db", Required: true, Usage: "gloss lexicon database", EnvVars: []string{"GRABAR_GLOSS_DB"}},
			&cli.BoolFlag{Name: "progress", Usage: "show a progress bar"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("import-gloss: want exactly one lexicon file")
			}

			src := filesystem.NewGlossHandler(c.Args().First())
			glosses, err := src.All()
			if err != nil {
				return err
			}

			dst, closeDB, err := openGlossDB(c.String("gloss-db"))
			if err != nil {
				return err
			}
			defer closeDB()

			var bar *uiprogress.Bar
			if c.Bool("progress") {
				uiprogress.Start()
				bar = uiprogress.AddBar(len(glosses))
				bar.AppendCompleted()
				bar.PrependElapsed()
				defer uiprogress.Stop()
			}

			count := 0
			for _, g := range glosses {
				if err := dst.Write(g); err != nil {
					return fmt.Errorf("failed to write gloss %s: %w", g.Lemma, err)
				}
				count++
				if bar != nil {
					bar.Incr()
				}
			}

			fmt.Fprintf(ui.Out, "imported %d glosses into %s\n", count, c.String("gloss-db"))
			return nil
		},
	}
}

func exportGlossCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "export-gloss",
		Usage: "export the gloss database as TSV",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "gloss-db", Required: true, Usage: "gloss lexicon database", EnvVars: []string{"GRABAR_GLOSS_DB"}},
		},
		Action: func(c *cli.Context) error {
			src, closeDB, err := openGlossDB(c.String("gloss-db"))
			if err != nil {
				return err
			}
			defer closeDB()

			glosses, err := src.All()
			if err != nil {
				return err
			}
			for _, g := range glosses {
				pos, lid := g.POS, g.LId
				if pos == "" {
					pos = "_"
				}
				if lid == "" {
					lid = "_"
				}
				fmt.Fprintf(ui.Out, "%s\t%s\t%s\t%s\n", g.Lemma, pos, lid, g.Gloss)
			}
			return nil
		},
	}
}
