// Package query is the interactive corpus inspection REPL: look up
// sentences by id, print their dependency tree, search by lemma or
// surface form, and consult the gloss lexicon.
package query

import (
	"errors"
	"fmt"
	"io"
	"strings"

	prompt "github.com/c-bata/go-prompt"

	"github.com/revelaction/grabar/render"
	"github.com/revelaction/grabar/search"
	"github.com/revelaction/grabar/sentence"
	"github.com/revelaction/grabar/stat"
	"github.com/revelaction/grabar/storage"
)

const completionThreshold = 2

var errQuit = errors.New("quit")

type Handler struct {
	Corpus   []*sentence.Sentence
	Glosses  storage.GlossReader
	Renderer *render.Renderer
	Out      io.Writer

	byID   map[string]*sentence.Sentence
	search *search.Search
}

func NewHandler(corpus []*sentence.Sentence, gr storage.GlossReader, r *render.Renderer, out io.Writer) *Handler {
	byID := make(map[string]*sentence.Sentence, len(corpus))
	for _, s := range corpus {
		if id := s.SentID(); id != "" {
			byID[id] = s
		}
	}
	return &Handler{
		Corpus:   corpus,
		Glosses:  gr,
		Renderer: r,
		Out:      out,
		byID:     byID,
		search:   search.New(corpus),
	}
}

func (h *Handler) Run() error {
	fmt.Fprintln(h.Out, "commands: sent, tree, find, gloss, stat, quit")

	history := []string{}
	for {
		in := prompt.Input("grabar> ", h.completer(),
			prompt.OptionTitle("grabar query"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
		)

		history = append(history, in)
		if err := h.eval(in); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Fprintf(h.Out, "error: %v\n", err)
		}
	}
}

func (h *Handler) eval(in string) error {
	fields := strings.Fields(in)
	if len(fields) == 0 {
		return nil
	}

	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "quit", "exit":
		return errQuit
	case "sent":
		s, err := h.sentenceArg(args)
		if err != nil {
			return err
		}
		h.Renderer.Sentence(s, nil)
		return nil
	case "tree":
		s, err := h.sentenceArg(args)
		if err != nil {
			return err
		}
		h.Renderer.Tree(s)
		return nil
	case "find":
		if len(args) == 0 {
			return errors.New("usage: find <lemma or form>")
		}
		return h.find(args[0])
	case "gloss":
		if len(args) == 0 {
			return errors.New("usage: gloss <lemma>")
		}
		return h.gloss(args[0])
	case "stat":
		return h.stat()
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (h *Handler) sentenceArg(args []string) (*sentence.Sentence, error) {
	if len(args) == 0 {
		return nil, errors.New("usage: sent|tree <sent_id>")
	}
	s, ok := h.byID[args[0]]
	if !ok {
		return nil, fmt.Errorf("no sentence %q", args[0])
	}
	return s, nil
}

// find prints every sentence containing the query as lemma or surface
// form, with the hits highlighted.
func (h *Handler) find(q string) error {
	hits := h.search.Find(q)
	for _, hit := range hits {
		highlight := make(map[sentence.ID]bool, len(hit.IDs))
		for _, id := range hit.IDs {
			highlight[id] = true
		}
		fmt.Fprintf(h.Out, "%s ", hit.Sentence.SentID())
		h.Renderer.Sentence(hit.Sentence, highlight)
	}
	fmt.Fprintf(h.Out, "%d sentences\n", len(hits))
	return nil
}

func (h *Handler) gloss(lemma string) error {
	if h.Glosses == nil {
		return errors.New("no gloss lexicon configured")
	}
	glosses, err := h.Glosses.Lookup(lemma, "")
	if err != nil {
		return err
	}
	if len(glosses) == 0 {
		fmt.Fprintf(h.Out, "no gloss for %q\n", lemma)
		return nil
	}
	for _, g := range glosses {
		pos := g.POS
		if pos == "" {
			pos = "_"
		}
		fmt.Fprintf(h.Out, "%s\t%s\t%s\n", g.Lemma, pos, g.Gloss)
	}
	return nil
}

func (h *Handler) stat() error {
	sh := stat.NewHandler()
	sh.Aggregate(h.Corpus)
	st := sh.Get()
	fmt.Fprintf(h.Out, "sentences: %d\ntokens: %d\nspans: %d\ntokens/sentence: %d\n",
		st.NumSentences, st.NumTokens, st.NumSpans, st.TokensPerSentenceMean)
	return nil
}

func (h *Handler) completer() func(in prompt.Document) []prompt.Suggest {
	commands := []prompt.Suggest{
		{Text: "sent", Description: "print a sentence"},
		{Text: "tree", Description: "print the dependency tree"},
		{Text: "find", Description: "search by lemma or form"},
		{Text: "gloss", Description: "look up a gloss"},
		{Text: "stat", Description: "corpus statistics"},
		{Text: "quit", Description: "leave"},
	}

	return func(in prompt.Document) []prompt.Suggest {
		befCursor := in.TextBeforeCursor()
		if befCursor == "" {
			return nil
		}

		tokens := strings.Split(befCursor, " ")
		if len(tokens) == 1 {
			return prompt.FilterHasPrefix(commands, tokens[0], true)
		}

		switch tokens[0] {
		case "sent", "tree":
			return h.completeSentID(in.GetWordBeforeCursor())
		case "find", "gloss":
			return h.completeLemma(in.GetWordBeforeCursor())
		}
		return nil
	}
}

func (h *Handler) completeSentID(word string) (s []prompt.Suggest) {
	if len(word) < completionThreshold {
		return s
	}
	for _, snt := range h.Corpus {
		if id := snt.SentID(); strings.HasPrefix(id, word) {
			s = append(s, prompt.Suggest{Text: id, Description: snt.Text()})
		}
	}
	return s
}

func (h *Handler) completeLemma(word string) (s []prompt.Suggest) {
	if len(word) < completionThreshold {
		return s
	}
	for _, lemma := range h.search.Lemmas(word) {
		s = append(s, prompt.Suggest{Text: lemma})
	}
	return s
}
