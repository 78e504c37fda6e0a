package stat

import (
	"testing"

	"github.com/revelaction/grabar/sentence"
)

func TestAggregate(t *testing.T) {
	s1 := &sentence.Sentence{Tokens: []*sentence.Token{
		{ID: sentence.Num(1), Form: "տէր", UPOS: "NOUN", Head: sentence.Num(2), Deprel: "nsubj"},
		{ID: sentence.Num(2), Form: "ասէ", UPOS: "VERB", Head: sentence.Root, Deprel: "root"},
	}}
	span := &sentence.Token{ID: sentence.Span(1, 2), Form: "Աւա՜ղ"}
	s2 := &sentence.Sentence{Tokens: []*sentence.Token{
		span,
		{ID: sentence.Num(1), Form: "Աւաղ", UPOS: "INTJ", Head: sentence.Root, Deprel: "root"},
		{ID: sentence.Num(2), Form: "՜", UPOS: "PUNCT", Head: sentence.Num(1), Deprel: "punct"},
		{ID: sentence.Num(3), Form: "ձեզ", UPOS: "PRON", Head: sentence.Root, Deprel: "root"},
	}}

	h := NewHandler()
	h.Aggregate([]*sentence.Sentence{s1, s2})
	got := h.Get()

	if got.NumSentences != 2 || got.NumTokens != 5 || got.NumSpans != 1 {
		t.Errorf("sentences %d tokens %d spans %d", got.NumSentences, got.NumTokens, got.NumSpans)
	}
	if got.TokensPerSentenceMean != 2 {
		t.Errorf("mean = %d", got.TokensPerSentenceMean)
	}
	if got.POSCounts["VERB"] != 1 || got.POSCounts["PUNCT"] != 1 {
		t.Errorf("pos = %v", got.POSCounts)
	}
	if got.DeprelCounts["root"] != 3 {
		t.Errorf("deprel = %v", got.DeprelCounts)
	}
	// One sentence with a single root, one violating the invariant.
	if got.RootCountDis[1] != 1 || got.RootCountDis[2] != 1 {
		t.Errorf("roots = %v", got.RootCountDis)
	}
	if got.TokensPerSentenceDis[2] != 1 || got.TokensPerSentenceDis[3] != 1 {
		t.Errorf("dis = %v", got.TokensPerSentenceDis)
	}
}
