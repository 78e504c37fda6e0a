package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/grabar/conllu"
	"github.com/revelaction/grabar/pipeline"
	"github.com/revelaction/grabar/render"
	"github.com/revelaction/grabar/sentence"
)

func sentenceCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "sentence",
		Usage:     "print one sentence of a corpus",
		ArgsUsage: "<input file> <sent_id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Usage: "input format: proiel or conllu"},
			&cli.StringFlag{Name: "view", Value: "tree", Usage: "view: tree, text, conllu or json"},
			&cli.BoolFlag{Name: "color", Usage: "ANSI colors"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return fmt.Errorf("sentence: want an input file and a sent_id")
			}
			rep := &pipeline.Report{}
			corpus, err := readCorpus(c.Args().Get(0), c.String("format"), false, rep)
			if err != nil {
				return err
			}

			id := c.Args().Get(1)
			for _, s := range corpus {
				if s.SentID() != id {
					continue
				}
				r := render.NewRenderer(ui.Out)
				r.HasColor = c.Bool("color")
				switch c.String("view") {
				case "tree":
					r.Tree(s)
				case "text":
					r.Sentence(s, nil)
				case "conllu":
					return conllu.Write(ui.Out, []*sentence.Sentence{s})
				case "json":
					return render.NewJSONRenderer(ui.Out).Render([]*sentence.Sentence{s})
				default:
					return fmt.Errorf("unknown view %q", c.String("view"))
				}
				return nil
			}
			return fmt.Errorf("no sentence %q in %s", id, c.Args().Get(0))
		},
	}
}
