package main

import (
	"fmt"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/grabar/pipeline"
	"github.com/revelaction/grabar/rules"
	"github.com/revelaction/grabar/storage"
	"github.com/revelaction/grabar/storage/filesystem"
)

func convertCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "convert a legacy corpus to CoNLL-U",
		ArgsUsage: "<input file>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file (default stdout)"},
			&cli.StringFlag{Name: "format", Usage: "input format: proiel or conllu (default: by extension)"},
			&cli.BoolFlag{Name: "strict", Usage: "skip malformed lines instead of passing them through"},
			&cli.StringFlag{Name: "lemma-table", Usage: "lemma conversion table (TSV)", EnvVars: []string{"GRABAR_LEXICON_PATH"}},
			&cli.StringFlag{Name: "tables", Usage: "directory of rule tables, applied in name order"},
			&cli.StringFlag{Name: "gloss-db", Usage: "gloss lexicon database", EnvVars: []string{"GRABAR_GLOSS_DB"}},
			&cli.BoolFlag{Name: "progress", Usage: "show a progress bar"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("convert: want exactly one input file")
			}
			return convert(c, ui)
		},
	}
}

func convert(c *cli.Context, ui UI) error {
	rep := &pipeline.Report{}
	corpus, err := readCorpus(c.Args().First(), c.String("format"), c.Bool("strict"), rep)
	if err != nil {
		return err
	}

	stages := []pipeline.Stage{
		pipeline.CollapseRoots(),
		pipeline.DropEmpty("P"),
		pipeline.PromoteElided(),
		pipeline.SplitInlineMarks(),
	}

	if path := c.String("lemma-table"); path != "" {
		table, err := rules.LoadTableFile(path)
		if err != nil {
			return err
		}
		stages = append(stages, pipeline.Rules("lemma-table", rules.NewSet(rules.Convert("lemma-table", table))))
	}

	if dir := c.String("tables"); dir != "" {
		tableStages, err := dirTableStages(dir)
		if err != nil {
			return err
		}
		stages = append(stages, tableStages...)
	}

	if db := c.String("gloss-db"); db != "" {
		gr, closeDB, err := openGlossReader(db)
		if err != nil {
			return err
		}
		defer closeDB()
		stages = append(stages, pipeline.Glosses(glossLookup(gr)))
	}

	stages = append(stages,
		pipeline.Renumber(),
		pipeline.RebuildText(),
	)

	runner := &pipeline.Runner{Stages: stages}
	if c.Bool("progress") {
		uiprogress.Start()
		bar := uiprogress.AddBar(len(corpus))
		bar.AppendCompleted()
		bar.PrependElapsed()
		runner.Progress = func(done, total int) { bar.Incr() }
		defer uiprogress.Stop()
	}

	finalRep := runner.Run(corpus)
	for _, f := range rep.Faults() {
		finalRep.Add(f)
	}

	if err := writeCorpus(c.String("out"), corpus, ui); err != nil {
		return err
	}
	return finalRep.Write(ui.Err)
}

// dirTableStages builds one rule stage per table file in dir, in the
// order Names reports them.
func dirTableStages(dir string) ([]pipeline.Stage, error) {
	th := filesystem.NewTableHandler(dir)
	names, err := th.Names()
	if err != nil {
		return nil, err
	}

	var stages []pipeline.Stage
	for _, name := range names {
		table, err := th.Table(name)
		if err != nil {
			return nil, err
		}
		stages = append(stages, pipeline.Rules(name, rules.NewSet(rules.Convert(name, table))))
	}
	return stages, nil
}

// glossLookup adapts a GlossReader to the pipeline stage: the first
// entry wins, most specific first.
func glossLookup(gr storage.GlossReader) func(lemma, pos string) (string, bool) {
	return func(lemma, pos string) (string, bool) {
		glosses, err := gr.Lookup(lemma, pos)
		if err != nil || len(glosses) == 0 {
			return "", false
		}
		return glosses[0].Gloss, true
	}
}

// openGlossReader picks the backend from the path: .tsv files are read
// directly, anything else is treated as a SQLite database.
func openGlossReader(path string) (storage.GlossReader, func(), error) {
	if isTSV(path) {
		return filesystem.NewGlossHandler(path), func() {}, nil
	}
	return openGlossDB(path)
}
