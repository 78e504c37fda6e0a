// Package match aligns two renditions of the same corpus and merges
// their annotations: typically a syntactically annotated stream and a
// morphologically richer one, scraped from different sources with
// slightly different tokenization.
//
// Sentences are paired by normalized text, tokens by normalized form
// with a small set of clitic reconciliation moves for the cases where
// one source writes a pronoun clitic as part of its host and the other
// as a token of its own. Anything beyond that is an irreconcilable
// merge and is reported, never guessed.
package match

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/revelaction/grabar/sentence"
)

// Suffix clitics written fused to the host by some sources: the deictic
// articles. Prefix clitics are prepositions glued to their object.
var (
	suffixClitics = []string{"ս", "դ", "ն"}
	prefixClitics = []string{"յ", "զ", "ց"}
)

// IrreconcilableError reports a token mismatch the clitic moves cannot
// bridge. The sentence pair is left unmerged.
type IrreconcilableError struct {
	SentID string
	FormA  string
	FormB  string
	PosA   int
	PosB   int
}

func (e *IrreconcilableError) Error() string {
	return fmt.Sprintf("match: sentence %s: token %d %q does not reconcile with %q",
		e.SentID, e.PosA+1, e.FormA, e.FormB)
}

// Normalize builds the comparison key for a form or a sentence text:
// lowercased, punctuation stripped, whitespace collapsed. The inline
// intonation marks and guillemets that differ between sources disappear
// with the rest of the punctuation.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Pair is an aligned sentence pair: A from the primary corpus, B from
// the secondary.
type Pair struct {
	A *sentence.Sentence
	B *sentence.Sentence
}

// Alignment is the result of pairing two corpora.
type Alignment struct {
	Pairs []Pair

	// Sentences of either corpus with no counterpart.
	UnmatchedA []*sentence.Sentence
	UnmatchedB []*sentence.Sentence
}

// Align pairs the sentences of two corpora by normalized text. Each
// secondary sentence is consumed at most once; order breaks ties between
// identical texts.
func Align(a, b []*sentence.Sentence) Alignment {
	byText := make(map[string][]int, len(b))
	for i, s := range b {
		byText[alignKey(s)] = append(byText[alignKey(s)], i)
	}
	used := make(map[int]bool, len(b))

	var out Alignment
	for _, s := range a {
		key := alignKey(s)
		idxs := byText[key]
		if len(idxs) == 0 {
			out.UnmatchedA = append(out.UnmatchedA, s)
			continue
		}
		i := idxs[0]
		byText[key] = idxs[1:]
		used[i] = true
		out.Pairs = append(out.Pairs, Pair{A: s, B: b[i]})
	}
	for i, s := range b {
		if !used[i] {
			out.UnmatchedB = append(out.UnmatchedB, s)
		}
	}
	return out
}

// alignKey prefers the text comment; a corpus without one falls back to
// the concatenated surface forms.
func alignKey(s *sentence.Sentence) string {
	if text := s.Text(); text != "" {
		return Normalize(text)
	}
	var b strings.Builder
	for _, t := range s.Tokens {
		if t.IsSpan() {
			continue
		}
		b.WriteString(t.Form)
		b.WriteByte(' ')
	}
	return Normalize(b.String())
}

// Merge copies the secondary sentence's annotations onto the primary in
// place. The primary keeps its ids, heads and relations; the secondary
// contributes lemma and part of speech where the primary has none, and
// its features and misc tags are merged in.
//
// Tokenization differences are bridged by the clitic moves; any other
// mismatch aborts with an IrreconcilableError before the primary has
// been modified.
func Merge(p Pair) error {
	a := p.A.Atomic()
	b := p.B.Atomic()

	type step struct {
		da, db int
		fromB  *sentence.Token
		intoA  []*sentence.Token
	}
	var plan []step

	i, j := 0, 0
	for i < len(a) && j < len(b) {
		fa := Normalize(a[i].Form)
		fb := Normalize(b[j].Form)
		switch {
		case fa == fb:
			plan = append(plan, step{da: 1, db: 1, fromB: b[j], intoA: a[i : i+1]})
		case i+1 < len(a):
			// Primary keeps the clitic separate, secondary fuses it. The
			// content word, not the clitic, takes the annotations.
			host, ok := cliticFusion(fa, Normalize(a[i+1].Form), fb)
			if !ok {
				if j+1 < len(b) {
					if host, ok := cliticFusion(fb, Normalize(b[j+1].Form), fa); ok {
						plan = append(plan, step{da: 1, db: 2, fromB: b[j+host], intoA: a[i : i+1]})
						break
					}
				}
				return &IrreconcilableError{
					SentID: p.A.SentID(),
					FormA:  a[i].Form, FormB: b[j].Form,
					PosA: i, PosB: j,
				}
			}
			plan = append(plan, step{da: 2, db: 1, fromB: b[j], intoA: a[i+host : i+host+1]})
		case j+1 < len(b):
			// Primary fuses, secondary splits. The fused token takes the
			// annotations of the secondary's content word.
			host, ok := cliticFusion(fb, Normalize(b[j+1].Form), fa)
			if !ok {
				return &IrreconcilableError{
					SentID: p.A.SentID(),
					FormA:  a[i].Form, FormB: b[j].Form,
					PosA: i, PosB: j,
				}
			}
			plan = append(plan, step{da: 1, db: 2, fromB: b[j+host], intoA: a[i : i+1]})
		default:
			return &IrreconcilableError{
				SentID: p.A.SentID(),
				FormA:  a[i].Form, FormB: b[j].Form,
				PosA: i, PosB: j,
			}
		}
		last := plan[len(plan)-1]
		i += last.da
		j += last.db
	}
	if i < len(a) || j < len(b) {
		return &IrreconcilableError{
			SentID: p.A.SentID(),
			FormA:  tailForm(a, i), FormB: tailForm(b, j),
			PosA: i, PosB: j,
		}
	}

	for _, st := range plan {
		for _, tok := range st.intoA {
			annotate(tok, st.fromB)
		}
	}
	return nil
}

// cliticFusion reports whether the two adjacent forms spell the fused
// form as host+suffix clitic or prefix clitic+host. It returns the
// index (0 or 1) of the content word within the pair.
func cliticFusion(first, second, fused string) (int, bool) {
	for _, c := range suffixClitics {
		if second == c && first+c == fused {
			return 0, true
		}
	}
	for _, c := range prefixClitics {
		if first == c && c+second == fused {
			return 1, true
		}
	}
	return 0, false
}

func annotate(dst, src *sentence.Token) {
	if dst.Lemma == "" {
		dst.Lemma = src.Lemma
	}
	if dst.UPOS == "" {
		dst.UPOS = src.UPOS
	}
	if dst.XPOS == "" {
		dst.XPOS = src.XPOS
	}
	dst.Feats = dst.Feats.Merge(src.Feats)
	dst.Misc = dst.Misc.Merge(src.Misc)
	dst.MarkEdited()
}

func tailForm(tokens []*sentence.Token, i int) string {
	if i < len(tokens) {
		return tokens[i].Form
	}
	return ""
}
