package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/grabar/match"
	"github.com/revelaction/grabar/pipeline"
)

func mergeCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "merge",
		Usage:     "merge the annotations of a second corpus into a primary one",
		ArgsUsage: "<primary> <secondary>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file (default stdout)"},
			&cli.StringFlag{Name: "format", Usage: "primary input format: proiel or conllu"},
			&cli.StringFlag{Name: "secondary-format", Usage: "secondary input format: proiel or conllu"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return fmt.Errorf("merge: want a primary and a secondary corpus file")
			}
			return merge(c, ui)
		},
	}
}

func merge(c *cli.Context, ui UI) error {
	rep := &pipeline.Report{}
	primary, err := readCorpus(c.Args().Get(0), c.String("format"), false, rep)
	if err != nil {
		return err
	}
	secondary, err := readCorpus(c.Args().Get(1), c.String("secondary-format"), false, rep)
	if err != nil {
		return err
	}

	alignment := match.Align(primary, secondary)
	for _, s := range alignment.UnmatchedA {
		rep.Add(pipeline.Fault{
			Kind:   pipeline.FaultIrreconcilable,
			Stage:  "align",
			SentID: s.SentID(),
			Detail: "no counterpart in the secondary corpus",
		})
	}
	for _, s := range alignment.UnmatchedB {
		rep.Add(pipeline.Fault{
			Kind:   pipeline.FaultIrreconcilable,
			Stage:  "align",
			SentID: s.SentID(),
			Detail: "no counterpart in the primary corpus",
		})
	}

	merged := 0
	for _, pair := range alignment.Pairs {
		if err := match.Merge(pair); err != nil {
			rep.Add(pipeline.Fault{
				Kind:   pipeline.FaultIrreconcilable,
				Stage:  "merge",
				SentID: pair.A.SentID(),
				Detail: err.Error(),
			})
			continue
		}
		merged++
	}
	fmt.Fprintf(ui.Err, "merged %d of %d sentences\n", merged, len(primary))

	if err := writeCorpus(c.String("out"), primary, ui); err != nil {
		return err
	}
	return rep.Write(ui.Err)
}
