package main

import (
	"fmt"
	"path/filepath"

	"github.com/revelaction/grabar/conllu"
	"github.com/revelaction/grabar/pipeline"
	"github.com/revelaction/grabar/proiel"
	"github.com/revelaction/grabar/sentence"
)

// readCorpus loads a corpus file, picking the parser from the format
// flag or, when empty, from the file extension. Parser faults go into
// the report.
func readCorpus(path, format string, strict bool, rep *pipeline.Report) ([]*sentence.Sentence, error) {
	switch pickFormat(path, format) {
	case "proiel":
		return proiel.ReadFile(path)
	case "conllu":
		mode := conllu.Lenient
		if strict {
			mode = conllu.Strict
		}
		sents, faults, err := conllu.ReadFile(path, mode)
		if err != nil {
			return nil, err
		}
		for _, f := range faults {
			rep.Add(pipeline.Fault{
				Kind:   pipeline.FaultMalformed,
				Stage:  "parse",
				Detail: fmt.Sprintf("%s line %d: %v", filepath.Base(path), f.Line, f.Err),
			})
		}
		return sents, nil
	default:
		return nil, fmt.Errorf("unknown format %q for %s", format, path)
	}
}

func pickFormat(path, format string) string {
	if format != "" {
		return format
	}
	switch filepath.Ext(path) {
	case ".conllu":
		return "conllu"
	default:
		return "proiel"
	}
}

// writeCorpus writes CoNLL-U to the given path, or to stdout when the
// path is "-" or empty.
func writeCorpus(path string, sents []*sentence.Sentence, ui UI) error {
	if path == "" || path == "-" {
		return conllu.Write(ui.Out, sents)
	}
	return conllu.WriteFile(path, sents)
}
