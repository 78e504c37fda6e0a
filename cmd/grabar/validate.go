package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/grabar/pipeline"
	"github.com/revelaction/grabar/sentence"
)

func validateCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "check a corpus for structural faults",
		ArgsUsage: "<input file>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Usage: "input format: proiel or conllu"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("validate: want exactly one input file")
			}
			return validate(c, ui)
		},
	}
}

func validate(c *cli.Context, ui UI) error {
	rep := &pipeline.Report{}
	corpus, err := readCorpus(c.Args().First(), c.String("format"), false, rep)
	if err != nil {
		return err
	}

	for _, s := range corpus {
		x := sentence.NewIndex(s)
		id := s.SentID()

		for _, t := range x.Dangling() {
			rep.Add(pipeline.Fault{
				Kind:   pipeline.FaultDangling,
				Stage:  "validate",
				SentID: id,
				Detail: fmt.Sprintf("token %s points to missing head %s", t.ID, t.Head),
			})
		}
		for _, cid := range x.CheckCycles() {
			rep.Add(pipeline.Fault{
				Kind:   pipeline.FaultStage,
				Stage:  "validate",
				SentID: id,
				Detail: fmt.Sprintf("token %s is part of a head cycle", cid),
			})
		}
		if roots := x.Roots(); len(roots) != 1 {
			rep.Add(pipeline.Fault{
				Kind:   pipeline.FaultStage,
				Stage:  "validate",
				SentID: id,
				Detail: fmt.Sprintf("%d roots", len(roots)),
			})
		}
	}

	if err := rep.Write(ui.Out); err != nil {
		return err
	}
	if !rep.Empty() {
		return fmt.Errorf("%d faults in %d sentences", len(rep.Faults()), len(corpus))
	}
	fmt.Fprintf(ui.Out, "%d sentences ok\n", len(corpus))
	return nil
}
