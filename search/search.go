// Package search finds sentences in an in-memory corpus by lemma or
// surface form, over a small inverted index built once per corpus.
package search

import (
	"sort"
	"strings"

	"github.com/revelaction/grabar/sentence"
)

// Hit is one matching sentence with the ids of the matched tokens,
// ready for highlighting.
type Hit struct {
	Sentence *sentence.Sentence
	IDs      []sentence.ID
}

type Search struct {
	corpus  []*sentence.Sentence
	byLemma map[string][]int
	byForm  map[string][]int
}

// New builds the index over the corpus. Corpus edits after this point
// are not reflected; rebuild after a pipeline run.
func New(corpus []*sentence.Sentence) *Search {
	s := &Search{
		corpus:  corpus,
		byLemma: map[string][]int{},
		byForm:  map[string][]int{},
	}
	for i, snt := range corpus {
		for _, t := range snt.Atomic() {
			if t.Lemma != "" {
				s.byLemma[t.Lemma] = appendUnique(s.byLemma[t.Lemma], i)
			}
			if t.Form != "" {
				s.byForm[t.Form] = appendUnique(s.byForm[t.Form], i)
			}
		}
	}
	return s
}

// Find returns the sentences containing q as lemma or surface form, in
// corpus order.
func (s *Search) Find(q string) []Hit {
	idxs := appendUniqueAll(s.byLemma[q], s.byForm[q])
	sort.Ints(idxs)

	hits := make([]Hit, 0, len(idxs))
	for _, i := range idxs {
		snt := s.corpus[i]
		hit := Hit{Sentence: snt}
		for _, t := range snt.Atomic() {
			if t.Lemma == q || t.Form == q {
				hit.IDs = append(hit.IDs, t.ID)
			}
		}
		hits = append(hits, hit)
	}
	return hits
}

// Lemmas returns the indexed lemmas with the given prefix, sorted. Used
// for prompt completion.
func (s *Search) Lemmas(prefix string) []string {
	var out []string
	for lemma := range s.byLemma {
		if strings.HasPrefix(lemma, prefix) {
			out = append(out, lemma)
		}
	}
	sort.Strings(out)
	return out
}

func appendUnique(idxs []int, i int) []int {
	if n := len(idxs); n > 0 && idxs[n-1] == i {
		return idxs
	}
	return append(idxs, i)
}

func appendUniqueAll(a, b []int) []int {
	seen := map[int]bool{}
	var out []int
	for _, i := range append(append([]int{}, a...), b...) {
		if !seen[i] {
			seen[i] = true
			out = append(out, i)
		}
	}
	return out
}
