package pipeline

import (
	"fmt"
	"strings"

	"github.com/revelaction/grabar/edit"
	"github.com/revelaction/grabar/rules"
	"github.com/revelaction/grabar/sentence"
)

// miscEmptySort is the legacy attribute marking tokens with no surface
// form, carried through the converter in MISC.
const miscEmptySort = "empty-token-sort"

// promotionOrder ranks the dependents of an elided predicate; the
// highest ranked one takes the predicate's place.
var promotionOrder = []string{
	"nsubj", "obj", "iobj", "obl", "advmod",
	"csubj", "ccomp", "advcl", "dislocated", "vocative",
}

// inlineMarks are the intonation signs written inside the word they
// modify. They become separate punctuation tokens under a multiword
// placeholder that keeps the original surface form.
var inlineMarks = []rune{'՜', '՛', '՞', '՝'}

// Renumber reassigns sequential ids and rewrites heads, recording every
// dangling head reference as a fault.
func Renumber() Stage {
	return StageFunc{StageName: "renumber", Fn: func(s *sentence.Sentence, rep *Report) error {
		_, dangling, short := sentence.Renumber(s)
		for _, d := range dangling {
			rep.Add(Fault{
				Kind:   FaultDangling,
				Stage:  "renumber",
				SentID: s.SentID(),
				Detail: fmt.Sprintf("token %s points to missing head %s", d.Token, d.Head),
			})
		}
		for _, sp := range short {
			rep.Add(Fault{
				Kind:   FaultStage,
				Stage:  "renumber",
				SentID: s.SentID(),
				Detail: fmt.Sprintf("span %s declared %d members, %d present", sp.Span, sp.Declared, sp.Present),
			})
		}
		return nil
	}}
}

// Rules wraps a rule set as a stage.
func Rules(name string, set *rules.Set) Stage {
	return StageFunc{StageName: name, Fn: func(s *sentence.Sentence, _ *Report) error {
		_, err := set.Apply(s)
		return err
	}}
}

// CollapseRoots keeps the first root of a sentence and turns any
// further root into a clausal complement of it, restoring the single
// root invariant.
func CollapseRoots() Stage {
	return StageFunc{StageName: "collapse-roots", Fn: func(s *sentence.Sentence, _ *Report) error {
		x := sentence.NewIndex(s)
		roots := x.Roots()
		if len(roots) < 2 {
			return nil
		}
		for _, extra := range roots[1:] {
			edit.Reattach(extra, roots[0].ID, "ccomp")
		}
		return nil
	}}
}

// DropEmpty deletes the tokens whose legacy empty-token-sort matches
// sort. A candidate that still governs tokens is reported and kept;
// deleting it would orphan its dependents.
func DropEmpty(sort string) Stage {
	name := "drop-empty-" + strings.ToLower(sort)
	return StageFunc{StageName: name, Fn: func(s *sentence.Sentence, rep *Report) error {
		x := sentence.NewIndex(s)
		for _, t := range s.Atomic() {
			if v, _ := t.Misc.Get(miscEmptySort); v != sort {
				continue
			}
			if deps := x.Dependents(t.ID); len(deps) > 0 {
				rep.Add(Fault{
					Kind:   FaultStage,
					Stage:  name,
					SentID: s.SentID(),
					Detail: fmt.Sprintf("empty token %s still has %d dependents", t.ID, len(deps)),
				})
				continue
			}
			if err := edit.Delete(s, x, t); err != nil {
				return err
			}
			x = sentence.NewIndex(s)
		}
		return nil
	}}
}

// PromoteElided resolves elided predicates (legacy empty-token-sort V):
// the highest ranked dependent is promoted into the predicate's place
// and its siblings become orphans. A predicate with no dependents is
// simply dropped.
func PromoteElided() Stage {
	return StageFunc{StageName: "promote-elided", Fn: func(s *sentence.Sentence, _ *Report) error {
		for {
			x := sentence.NewIndex(s)
			elided := findEmptySort(s, "V")
			if elided == nil {
				return nil
			}
			node := pickPromotion(x, elided)
			if node == nil {
				if err := edit.Delete(s, x, elided); err != nil {
					return err
				}
				continue
			}
			if err := edit.Promote(s, x, node, elided, "orphan"); err != nil {
				return err
			}
		}
	}}
}

func findEmptySort(s *sentence.Sentence, sort string) *sentence.Token {
	for _, t := range s.Atomic() {
		if v, _ := t.Misc.Get(miscEmptySort); v == sort {
			return t
		}
	}
	return nil
}

func pickPromotion(x *sentence.Index, head *sentence.Token) *sentence.Token {
	deps := x.Dependents(head.ID)
	for _, rel := range promotionOrder {
		for _, d := range deps {
			if d.Deprel == rel {
				return d
			}
		}
	}
	// No ranked dependent: fall back to the first non-punctuation one.
	for _, d := range deps {
		if d.Deprel != "punct" {
			return d
		}
	}
	return nil
}

// SplitInlineMarks detaches intonation signs written inside a word into
// punctuation tokens, grouped with their host under a multiword
// placeholder carrying the original form.
func SplitInlineMarks() Stage {
	return StageFunc{StageName: "split-inline-marks", Fn: func(s *sentence.Sentence, _ *Report) error {
		for {
			x := sentence.NewIndex(s)
			tok, mark := findInlineMark(s)
			if tok == nil {
				return nil
			}
			base := strings.Replace(tok.Form, string(mark), "", 1)

			var parts []edit.Part
			host := 0
			// An opening guillemet fused to the word becomes its own
			// punctuation token before the host.
			if strings.HasPrefix(base, "«") {
				parts = append(parts, punctPart("«"))
				base = strings.TrimPrefix(base, "«")
				host = 1
			}
			// A form of bare punctuation leaves no content word; the
			// guillemet then hosts the span.
			if base != "" {
				parts = append(parts, edit.Part{Form: base})
			} else {
				host = 0
			}
			parts = append(parts, punctPart(string(mark)))

			err := edit.Split(s, x, tok, parts, edit.SplitOptions{Span: true, Host: host})
			if err != nil {
				return err
			}
		}
	}}
}

func punctPart(form string) edit.Part {
	return edit.Part{
		Form:   form,
		Lemma:  form,
		UPOS:   "PUNCT",
		Feats:  sentence.Tags{},
		Deprel: "punct",
	}
}

// findInlineMark returns the first token carrying an intonation sign
// inside a longer form, and the sign itself. Tokens already grouped
// under a placeholder are left alone.
func findInlineMark(s *sentence.Sentence) (*sentence.Token, rune) {
	skip := 0
	for _, t := range s.Tokens {
		if t.Malformed() {
			continue
		}
		if t.IsSpan() {
			skip = t.SpanMembers()
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		runes := []rune(t.Form)
		if len(runes) < 2 {
			continue
		}
		for _, r := range runes {
			for _, m := range inlineMarks {
				if r == m {
					return t, m
				}
			}
		}
	}
	return nil, 0
}

// Glosses annotates tokens with a translation gloss from the lexicon.
// Tokens that already carry one keep it. The lookup is injected so the
// stage works against any gloss backend.
func Glosses(lookup func(lemma, pos string) (string, bool)) Stage {
	return StageFunc{StageName: "glosses", Fn: func(s *sentence.Sentence, _ *Report) error {
		for _, t := range s.Atomic() {
			if t.Lemma == "" {
				continue
			}
			if _, ok := t.Misc.Get("Gloss"); ok {
				continue
			}
			if gloss, ok := lookup(t.Lemma, t.UPOS); ok {
				t.Misc = t.Misc.Set("Gloss", gloss)
				t.MarkEdited()
			}
		}
		return nil
	}}
}

// RebuildText recomputes the text comment from the surface forms,
// honoring multiword placeholders and adjacency marks.
func RebuildText() Stage {
	return StageFunc{StageName: "rebuild-text", Fn: func(s *sentence.Sentence, _ *Report) error {
		var b strings.Builder
		skip := 0
		for _, t := range s.Tokens {
			if t.Malformed() {
				continue
			}
			if skip > 0 {
				skip--
				continue
			}
			if t.IsSpan() {
				skip = t.SpanMembers()
			}
			b.WriteString(t.Form)
			if t.SpaceAfter() {
				b.WriteByte(' ')
			}
		}
		text := strings.TrimRight(b.String(), " ")
		if text != "" {
			s.SetComment(sentence.KeyText, text)
		}
		return nil
	}}
}
