package main

import (
	"fmt"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/grabar/pipeline"
	"github.com/revelaction/grabar/stat"
)

func statCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "stat",
		Usage:     "print corpus statistics",
		ArgsUsage: "<input file>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Usage: "input format: proiel or conllu"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("stat: want exactly one input file")
			}
			rep := &pipeline.Report{}
			corpus, err := readCorpus(c.Args().First(), c.String("format"), false, rep)
			if err != nil {
				return err
			}

			h := stat.NewHandler()
			h.Aggregate(corpus)
			st := h.Get()

			fmt.Fprintf(ui.Out, "sentences: %d\n", st.NumSentences)
			fmt.Fprintf(ui.Out, "tokens: %d\n", st.NumTokens)
			fmt.Fprintf(ui.Out, "spans: %d\n", st.NumSpans)
			fmt.Fprintf(ui.Out, "malformed lines: %d\n", st.NumMalformed)
			fmt.Fprintf(ui.Out, "tokens/sentence: %d\n", st.TokensPerSentenceMean)

			printCounts(ui, "upos", st.POSCounts)
			printCounts(ui, "deprel", st.DeprelCounts)
			return nil
		},
	}
}

func printCounts(ui UI, label string, counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	for _, k := range keys {
		fmt.Fprintf(ui.Out, "%s %-12s %6d\n", label, k, counts[k])
	}
}
