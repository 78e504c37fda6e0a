// Package filesystem stores glosses and rule tables as tab separated
// files under a root directory.
package filesystem

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/revelaction/grabar/storage"
)

const blank = "_"

// GlossHandler reads and writes a gloss lexicon held in a single TSV
// file: lemma, part of speech, lexeme id, gloss. "_" marks an unset
// column.
type GlossHandler struct {
	path string
}

var _ storage.GlossRepository = (*GlossHandler)(nil)

func NewGlossHandler(path string) *GlossHandler {
	return &GlossHandler{path: path}
}

func (gh *GlossHandler) All() ([]storage.Gloss, error) {
	f, err := os.Open(gh.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var glosses []storage.Gloss
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		cols := strings.Split(text, "\t")
		if len(cols) < 4 {
			return nil, fmt.Errorf("gloss file %s line %d: want 4 columns, got %d", gh.path, line, len(cols))
		}
		glosses = append(glosses, storage.Gloss{
			Lemma: unblank(cols[0]),
			POS:   unblank(cols[1]),
			LId:   unblank(cols[2]),
			Gloss: unblank(cols[3]),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return glosses, nil
}

func (gh *GlossHandler) Lookup(lemma, pos string) ([]storage.Gloss, error) {
	all, err := gh.All()
	if err != nil {
		return nil, err
	}

	var withPOS, withoutPOS []storage.Gloss
	for _, g := range all {
		if g.Lemma != lemma {
			continue
		}
		switch {
		case g.POS == pos && pos != "":
			withPOS = append(withPOS, g)
		case g.POS == "":
			withoutPOS = append(withoutPOS, g)
		}
	}
	return append(withPOS, withoutPOS...), nil
}

func (gh *GlossHandler) Write(g storage.Gloss) error {
	f, err := os.OpenFile(gh.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "%s\t%s\t%s\t%s\n",
		orBlank(g.Lemma), orBlank(g.POS), orBlank(g.LId), orBlank(g.Gloss))
	return err
}

func unblank(s string) string {
	if s == blank {
		return ""
	}
	return s
}

func orBlank(s string) string {
	if s == "" {
		return blank
	}
	return s
}
